package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
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

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// RecipeIngredient is one (name, amount) pair in a generated recipe.
type RecipeIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// RecipePayload is a generated recipe. It is transient until the user saves
// it, at which point the full payload is persisted on the SavedRecipe row.
// Steps are order-significant.
type RecipePayload struct {
	Name               string             `json:"name"`
	Difficulty         string             `json:"difficulty"`
	Time               string             `json:"time"`
	Servings           string             `json:"servings"`
	Ingredients        []RecipeIngredient `json:"ingredients"`
	Steps              []string           `json:"steps"`
	MissingIngredients []string           `json:"missing_ingredients"`
}

// Value implements the driver.Valuer interface
func (p RecipePayload) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements the sql.Scanner interface
func (p *RecipePayload) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported type for RecipePayload: %T", value)
	}
	return json.Unmarshal(bytes, p)
}

// RecipePayloadList stores the full set of recipes from one generation.
type RecipePayloadList []RecipePayload

// Value implements the driver.Valuer interface
func (l RecipePayloadList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *RecipePayloadList) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	case nil:
		*l = RecipePayloadList{}
		return nil
	default:
		return fmt.Errorf("unsupported type for RecipePayloadList: %T", value)
	}
	return json.Unmarshal(bytes, l)
}

// SavedRecipe is a recipe a user chose to keep, with their rating and notes.
// Deletes are hard deletes.
type SavedRecipe struct {
	ID         uuid.UUID     `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	UserID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	RecipeName string        `gorm:"size:255;not null" json:"recipe_name"`
	RecipeData RecipePayload `gorm:"type:jsonb;not null" json:"recipe_data"`
	Rating     *int          `gorm:"check:rating >= 1 AND rating <= 5" json:"rating"`
	Notes      string        `gorm:"type:text" json:"notes"`
}

func (r *SavedRecipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeHistory records one generation run: the ingredients the user selected
// and every recipe that came back. Append-only; UserID is nil for anonymous
// use.
type RecipeHistory struct {
	ID          uuid.UUID         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt   time.Time         `json:"created_at"`
	UserID      *uuid.UUID        `gorm:"type:uuid;index" json:"user_id"`
	Ingredients JSONBStringArray  `gorm:"type:jsonb;not null" json:"ingredients"`
	Recipes     RecipePayloadList `gorm:"type:jsonb;not null" json:"recipes"`
}

func (h *RecipeHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
