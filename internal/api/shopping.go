package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kondate-app/backend/internal/middleware"
	"github.com/kondate-app/backend/internal/service"
)

// ShoppingHandler handles shopping-list reads and deletion
type ShoppingHandler struct {
	recipes *service.RecipeService
}

// NewShoppingHandler creates a new ShoppingHandler instance
func NewShoppingHandler(recipes *service.RecipeService) *ShoppingHandler {
	return &ShoppingHandler{recipes: recipes}
}

// ListShoppingLists returns all of the user's shopping lists with recipe
// titles.
func (h *ShoppingHandler) ListShoppingLists(c *gin.Context) {
	views, err := h.recipes.ShoppingLists(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list shopping lists"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// LatestShoppingList returns the list for the user's most recent recipe.
func (h *ShoppingHandler) LatestShoppingList(c *gin.Context) {
	view, err := h.recipes.LatestShoppingList(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get shopping list"})
		return
	}
	if view == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ClearShoppingLists deletes all of the user's shopping lists.
func (h *ShoppingHandler) ClearShoppingLists(c *gin.Context) {
	if err := h.recipes.ClearShoppingLists(c.Request.Context(), middleware.UserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear shopping lists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
