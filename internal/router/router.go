package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kondate-app/backend/internal/api"
	"github.com/kondate-app/backend/internal/middleware"
	"github.com/kondate-app/backend/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(
	proposeHandler *api.ProposeHandler,
	recipeHandler *api.RecipeHandler,
	shoppingHandler *api.ShoppingHandler,
	authService middleware.TokenValidator,
	limiter service.Limiter,
	burstPolicy service.RateLimitPolicy,
) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Generation routes: anonymous callers are admitted, identified by IP.
	// The burst guard sits in front; the daily quota runs in the pipeline.
	propose := v1.Group("/propose")
	propose.Use(middleware.OptionalAuthMiddleware(authService))
	{
		propose.POST("",
			middleware.RateLimitMiddleware(limiter, "propose:burst", burstPolicy),
			proposeHandler.Propose)
		propose.GET("/drafts/:id", proposeHandler.GetDraft)
		propose.DELETE("/drafts/:id", proposeHandler.DeleteDraft)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		recipes := protected.Group("/recipes")
		{
			recipes.POST("", recipeHandler.SaveRecipe)
			recipes.GET("", recipeHandler.ListRecipes)
			recipes.GET("/:id", recipeHandler.GetRecipe)
		}

		shopping := protected.Group("/shopping")
		{
			shopping.GET("", shoppingHandler.ListShoppingLists)
			shopping.GET("/latest", shoppingHandler.LatestShoppingList)
			shopping.DELETE("", shoppingHandler.ClearShoppingLists)
		}
	}

	return router
}
