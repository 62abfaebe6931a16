package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kondate-app/backend/internal/model"
	"github.com/kondate-app/backend/internal/types"
)

// RecipeService persists accepted proposals and serves recipe and
// shopping-list reads.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// ShoppingListView is a shopping list joined with its recipe title.
type ShoppingListView struct {
	RecipeID    uuid.UUID            `json:"recipe_id"`
	RecipeTitle string               `json:"recipe_title"`
	Items       []types.ShoppingItem `json:"items"`
}

// SaveProposal persists a validated proposal as a recipe plus its derived
// shopping list. The proposal has already passed validate.Proposal, so the
// inserts are straight copies.
func (s *RecipeService) SaveProposal(ctx context.Context, userID uuid.UUID, p *types.RecipeProposal) (*model.Recipe, error) {
	recipe := model.Recipe{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       p.Title,
		Description: p.Description,
		CookTimeMin: p.CookTimeMin,
		Ingredients: model.JSONBIngredients(p.Ingredients),
		Steps:       model.JSONBStringArray(p.Steps),
		Tools:       model.JSONBStringArray(p.Tools),
		Notes:       model.JSONBStringArray(p.Notes),
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}

	list := model.ShoppingList{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipe.ID,
		Items:    model.JSONBShoppingItems(p.ShoppingList),
	}
	if err := s.db.WithContext(ctx).Create(&list).Error; err != nil {
		return nil, err
	}

	return &recipe, nil
}

// ListRecipes lists the user's recipes, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]*model.Recipe, error) {
	var recipes []model.Recipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	result := make([]*model.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}

// GetRecipe retrieves one of the user's recipes by ID.
func (s *RecipeService) GetRecipe(ctx context.Context, userID, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.db.WithContext(ctx).
		First(&recipe, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ShoppingLists returns all of the user's shopping lists with their recipe
// titles.
func (s *RecipeService) ShoppingLists(ctx context.Context, userID uuid.UUID) ([]ShoppingListView, error) {
	var lists []model.ShoppingList
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&lists).Error
	if err != nil {
		return nil, err
	}

	views := make([]ShoppingListView, 0, len(lists))
	for _, list := range lists {
		var recipe model.Recipe
		title := ""
		if err := s.db.WithContext(ctx).Select("title").First(&recipe, "id = ?", list.RecipeID).Error; err == nil {
			title = recipe.Title
		}
		views = append(views, ShoppingListView{
			RecipeID:    list.RecipeID,
			RecipeTitle: title,
			Items:       []types.ShoppingItem(list.Items),
		})
	}
	return views, nil
}

// LatestShoppingList returns the shopping list of the user's most recently
// created recipe, or nil when the user has none.
func (s *RecipeService) LatestShoppingList(ctx context.Context, userID uuid.UUID) (*ShoppingListView, error) {
	var recipe model.Recipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&recipe).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var list model.ShoppingList
	err = s.db.WithContext(ctx).
		First(&list, "user_id = ? AND recipe_id = ?", userID, recipe.ID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &ShoppingListView{
		RecipeID:    recipe.ID,
		RecipeTitle: recipe.Title,
		Items:       []types.ShoppingItem(list.Items),
	}, nil
}

// ClearShoppingLists deletes all of the user's shopping lists.
func (s *RecipeService) ClearShoppingLists(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.ShoppingList{}).Error
}
