package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrInvalidQuantity is returned when a recipe ingredient quantity is not in (0, 99999.99].
var ErrInvalidQuantity = errors.New("models: quantity in grams must be greater than 0 and at most 99999.99")

// MaxQuantityInGrams is the largest quantity a recipe row may hold.
var MaxQuantityInGrams = decimal.RequireFromString("99999.99")

type RecipeIngredient struct {
	gorm.Model
	RecipeID        uint            `gorm:"not null;index" json:"recipe_id"`
	Recipe          *Recipe         `gorm:"foreignKey:RecipeID" json:"-"`
	IngredientID    uint            `gorm:"not null;index" json:"ingredient_id"`
	Ingredient      *Ingredient     `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	QuantityInGrams decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity_in_grams"`
}

// Validate checks the quantity bounds and scale.
func (ri RecipeIngredient) Validate() error {
	if !ri.QuantityInGrams.IsPositive() || ri.QuantityInGrams.GreaterThan(MaxQuantityInGrams) {
		return fmt.Errorf("%w: got %s", ErrInvalidQuantity, ri.QuantityInGrams)
	}
	return checkScale("quantity_in_grams", ri.QuantityInGrams)
}

func (ri *RecipeIngredient) BeforeSave(tx *gorm.DB) error {
	return ri.Validate()
}

// String renders the row as "Flour in 100.00g for Bread".
func (ri RecipeIngredient) String() string {
	ingredient := "unknown ingredient"
	if ri.Ingredient != nil {
		ingredient = ri.Ingredient.Name
	}
	recipe := "unknown recipe"
	if ri.Recipe != nil {
		recipe = ri.Recipe.Name
	}
	return fmt.Sprintf("%s in %sg for %s", ingredient, ri.QuantityInGrams.StringFixed(2), recipe)
}
