package types

// BudgetLevel is the caller's spending preference for a proposal.
type BudgetLevel string

const (
	BudgetLow    BudgetLevel = "low"
	BudgetMedium BudgetLevel = "medium"
	BudgetHigh   BudgetLevel = "high"
)

// ItemCategory classifies a shopping-list item for the store layout filter.
type ItemCategory string

const (
	CategoryMeat      ItemCategory = "meat"
	CategoryFish      ItemCategory = "fish"
	CategoryVegetable ItemCategory = "vegetable"
	CategorySeasoning ItemCategory = "seasoning"
	CategoryOther     ItemCategory = "other"
)

// RequestConstraints are the caller-supplied generation parameters.
// Defaults are applied during parsing, see internal/validate.
type RequestConstraints struct {
	ExcludeIngredients []string    `json:"exclude_ingredients"`
	AvailableTools     []string    `json:"available_tools"`
	Servings           int         `json:"servings" validate:"gt=0"`
	Goals              []string    `json:"goals"`
	BudgetLevel        BudgetLevel `json:"budget_level" validate:"oneof=low medium high"`
	Locale             string      `json:"locale"`
}

// Ingredient is one recipe ingredient with its quantity.
type Ingredient struct {
	Name     string  `json:"name" validate:"required"`
	Qty      float64 `json:"qty" validate:"gte=0"`
	Unit     string  `json:"unit"`
	Optional bool    `json:"optional"`
}

// ShoppingItem is one purchasable item derived from a recipe.
type ShoppingItem struct {
	Name     string       `json:"name" validate:"required"`
	Qty      float64      `json:"qty"`
	Unit     string       `json:"unit"`
	Category ItemCategory `json:"category" validate:"oneof=meat fish vegetable seasoning other"`
}

// RecipeProposal is the structured recipe produced by the LLM. A proposal
// only ever reaches callers after passing validate.Proposal.
type RecipeProposal struct {
	Title        string         `json:"title" validate:"required"`
	Description  string         `json:"description" validate:"max=200"`
	CookTimeMin  int            `json:"cook_time_min" validate:"gt=0,lte=45"`
	Ingredients  []Ingredient   `json:"ingredients" validate:"min=1,dive"`
	Steps        []string       `json:"steps" validate:"min=1,dive,required"`
	Tools        []string       `json:"tools"`
	ShoppingList []ShoppingItem `json:"shopping_list" validate:"dive"`
	Notes        []string       `json:"notes"`
}
