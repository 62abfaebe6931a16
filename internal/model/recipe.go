package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kondate-app/backend/internal/types"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}
	return json.Unmarshal(asBytes(value), a)
}

// JSONBIngredients stores typed ingredients in JSONB
type JSONBIngredients []types.Ingredient

// Value implements the driver.Valuer interface
func (a JSONBIngredients) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBIngredients) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBIngredients{}
		return nil
	}
	return json.Unmarshal(asBytes(value), a)
}

// JSONBShoppingItems stores typed shopping items in JSONB
type JSONBShoppingItems []types.ShoppingItem

// Value implements the driver.Valuer interface
func (a JSONBShoppingItems) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBShoppingItems) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBShoppingItems{}
		return nil
	}
	return json.Unmarshal(asBytes(value), a)
}

func asBytes(value interface{}) []byte {
	switch v := value.(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	default:
		return nil
	}
}

// Recipe is a persisted, already-validated recipe proposal.
type Recipe struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string           `gorm:"size:255;not null" json:"title"`
	Description string           `gorm:"type:text" json:"description"`
	CookTimeMin int              `gorm:"not null" json:"cook_time_min"`
	Ingredients JSONBIngredients `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Steps       JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`
	Tools       JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tools"`
	Notes       JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"notes"`
}

// ShoppingList holds the purchasable items derived from one saved recipe.
type ShoppingList struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	UserID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	RecipeID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Items     JSONBShoppingItems `gorm:"type:jsonb;not null;default:'[]'" json:"items"`
}
