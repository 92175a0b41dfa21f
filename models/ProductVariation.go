package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bakery/internal/costing"
)

// ProductVariation is an alternate physical size of a product. Exactly one
// variation per product carries MainVariation; its footprint is the baseline
// the others are costed against.
type ProductVariation struct {
	gorm.Model
	ProductID     uint                `gorm:"not null;index" json:"product_id"`
	Product       *Product            `gorm:"foreignKey:ProductID" json:"-"`
	Diameter      decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"diameter"`
	Length        decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"length"`
	Width         decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"width"`
	MainVariation bool                `gorm:"not null;default:false" json:"main_variation"`
}

// CalculateSurfaceArea uses the recipe shape of the owning product.
func (v ProductVariation) CalculateSurfaceArea(product *Product) decimal.Decimal {
	if product == nil {
		return decimal.Zero
	}
	return costing.SurfaceArea(product.Shape(), v.Diameter, v.Length, v.Width)
}

// AdjustmentFactor compares the footprint with the main sibling loaded on
// product. The main variation itself, a product without a main variation and
// a main variation without area all yield 1.
func (v ProductVariation) AdjustmentFactor(product *Product) decimal.Decimal {
	if product == nil {
		return decimal.NewFromInt(1)
	}
	main := product.MainVariation()
	if main == nil || (v.ID != 0 && main.ID == v.ID) {
		return decimal.NewFromInt(1)
	}
	return costing.AdjustmentFactor(v.CalculateSurfaceArea(product), main.CalculateSurfaceArea(product))
}

// AdjustedCost scales the product cost by the adjustment factor.
func (v ProductVariation) AdjustedCost(product *Product) (decimal.Decimal, error) {
	if product == nil {
		return decimal.Zero, costing.ErrMissingRecipe
	}
	cost, err := product.CalculateCost()
	if err != nil {
		return decimal.Zero, err
	}
	return costing.AdjustCost(cost, v.AdjustmentFactor(product)), nil
}

func (v ProductVariation) AdjustedProfit(product *Product) (decimal.Decimal, error) {
	cost, err := v.AdjustedCost(product)
	if err != nil {
		return decimal.Zero, err
	}
	return costing.Profit(product.SalePrice, cost), nil
}

// AdjustedMargin fails with costing.ErrUndefinedMargin for a zero sale price,
// like Product.CalculateMargin.
func (v ProductVariation) AdjustedMargin(product *Product) (decimal.Decimal, error) {
	profit, err := v.AdjustedProfit(product)
	if err != nil {
		return decimal.Zero, err
	}
	return costing.Margin(product.SalePrice, profit)
}

// Costing returns the adjusted figure set for the variation.
func (v ProductVariation) Costing(product *Product) (costing.Summary, error) {
	cost, err := v.AdjustedCost(product)
	if err != nil {
		return costing.Summary{}, err
	}
	return costing.Summarize(product.SalePrice, cost), nil
}
