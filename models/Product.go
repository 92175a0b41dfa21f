package models

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bakery/internal/costing"
)

// ErrNegativeSalePrice is returned when a product is priced below zero.
var ErrNegativeSalePrice = errors.New("models: sale price must not be negative")

// Product is a sellable item made from one recipe.
type Product struct {
	gorm.Model
	ProductType string             `gorm:"not null;index" json:"product_type"`
	SalePrice   decimal.Decimal    `gorm:"type:decimal(10,2);not null" json:"sale_price"`
	RecipeID    *uint              `gorm:"index" json:"recipe_id"`
	Recipe      *Recipe            `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
	Variations  []ProductVariation `gorm:"foreignKey:ProductID" json:"variations,omitempty"`
}

func (p Product) Validate() error {
	if p.SalePrice.IsNegative() {
		return ErrNegativeSalePrice
	}
	return checkScale("sale_price", p.SalePrice)
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}

// CalculateCost sums the recipe rows. Recipe, its rows and their ingredients
// must be preloaded.
func (p Product) CalculateCost() (decimal.Decimal, error) {
	if p.Recipe == nil {
		return decimal.Zero, costing.ErrMissingRecipe
	}
	return costing.Cost(p.Recipe.CostLines()), nil
}

// CalculateProfit returns the sale price minus the recipe cost.
func (p Product) CalculateProfit() (decimal.Decimal, error) {
	cost, err := p.CalculateCost()
	if err != nil {
		return decimal.Zero, err
	}
	return costing.Profit(p.SalePrice, cost), nil
}

// CalculateMargin returns profit as a percentage of the sale price. It fails
// with costing.ErrUndefinedMargin when the sale price is zero.
func (p Product) CalculateMargin() (decimal.Decimal, error) {
	profit, err := p.CalculateProfit()
	if err != nil {
		return decimal.Zero, err
	}
	return costing.Margin(p.SalePrice, profit)
}

// Costing returns the full figure set, leaving the margin null for a zero price.
func (p Product) Costing() (costing.Summary, error) {
	cost, err := p.CalculateCost()
	if err != nil {
		return costing.Summary{}, err
	}
	return costing.Summarize(p.SalePrice, cost), nil
}

// Shape returns the footprint shape of the product recipe, or "" without one.
func (p Product) Shape() costing.Shape {
	if p.Recipe == nil {
		return ""
	}
	return p.Recipe.Shape
}

// MainVariation returns the loaded variation flagged main, if any.
func (p Product) MainVariation() *ProductVariation {
	for i := range p.Variations {
		if p.Variations[i].MainVariation {
			return &p.Variations[i]
		}
	}
	return nil
}

// DeriveMainVariation builds the main variation of a newly created product by
// copying its recipe dimensions. The caller persists the result.
func (p Product) DeriveMainVariation() (ProductVariation, error) {
	if p.Recipe == nil {
		return ProductVariation{}, costing.ErrMissingRecipe
	}
	return ProductVariation{
		ProductID:     p.ID,
		Diameter:      p.Recipe.Diameter,
		Length:        p.Recipe.Length,
		Width:         p.Recipe.Width,
		MainVariation: true,
	}, nil
}

func (p Product) String() string {
	return p.ProductType
}
