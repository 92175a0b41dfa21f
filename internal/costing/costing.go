// Package costing derives cost, profit and margin figures for bakery products
// from recipe composition, ingredient pricing and the footprint of each
// product variation.
//
// All currency values are rounded to two places with decimal.Round, which
// rounds half away from zero (0.125 becomes 0.13, -0.125 becomes -0.13).
package costing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the number of decimal places kept on every money figure.
const CurrencyPlaces = 2

var (
	// ErrMissingRecipe is returned when a product has no recipe to cost.
	ErrMissingRecipe = errors.New("costing: product has no recipe")
	// ErrUndefinedMargin is returned when a margin is requested for a product
	// whose sale price is not positive.
	ErrUndefinedMargin = errors.New("costing: margin is undefined without a positive sale price")
	// ErrTooManyPlaces is returned for an input carrying more decimal places
	// than its column stores.
	ErrTooManyPlaces = errors.New("costing: more than two decimal places")
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// HasCurrencyScale reports whether value is representable with
// CurrencyPlaces decimals. Trailing zeros are accepted, so 1.500 passes.
func HasCurrencyScale(value decimal.Decimal) bool {
	return value.Equal(value.Round(CurrencyPlaces))
}

// Line is a single ingredient contribution to a recipe.
type Line struct {
	QuantityGrams decimal.Decimal
	PricePerGram  decimal.Decimal
}

// Cost sums quantity × price over the lines. An empty recipe costs 0.00.
func Cost(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.QuantityGrams.Mul(line.PricePerGram))
	}
	return total.Round(CurrencyPlaces)
}

// Profit returns salePrice - cost.
func Profit(salePrice, cost decimal.Decimal) decimal.Decimal {
	return salePrice.Sub(cost.Round(CurrencyPlaces)).Round(CurrencyPlaces)
}

// Margin returns profit as a percentage of salePrice.
func Margin(salePrice, profit decimal.Decimal) (decimal.Decimal, error) {
	if !salePrice.IsPositive() {
		return decimal.Zero, ErrUndefinedMargin
	}
	return profit.Div(salePrice).Mul(hundred).Round(CurrencyPlaces), nil
}

// AdjustmentFactor scales a variation against the main variation footprint.
// A zero main area yields the neutral factor 1.
func AdjustmentFactor(area, mainArea decimal.Decimal) decimal.Decimal {
	if !mainArea.IsPositive() {
		return one
	}
	if area.Equal(mainArea) {
		return one
	}
	return area.Div(mainArea)
}

// AdjustCost scales a base cost by factor.
func AdjustCost(cost, factor decimal.Decimal) decimal.Decimal {
	return cost.Mul(factor).Round(CurrencyPlaces)
}

// Summary is the derived figure set for a product or one of its variations.
// Margin is null when the sale price is zero.
type Summary struct {
	Cost   decimal.Decimal     `json:"cost"`
	Profit decimal.Decimal     `json:"profit"`
	Margin decimal.NullDecimal `json:"margin"`
}

// Summarize computes profit and margin for cost against salePrice.
func Summarize(salePrice, cost decimal.Decimal) Summary {
	summary := Summary{
		Cost:   cost.Round(CurrencyPlaces),
		Profit: Profit(salePrice, cost),
	}
	if margin, err := Margin(salePrice, summary.Profit); err == nil {
		summary.Margin = decimal.NewNullDecimal(margin)
	}
	return summary
}
