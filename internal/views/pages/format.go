package pages

import (
	"strings"

	"github.com/shopspring/decimal"

	"bakery/internal/costing"
)

// DefaultDash returns an em dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

// Money renders an amount with two decimals.
func Money(value decimal.Decimal) string {
	return value.StringFixed(costing.CurrencyPlaces)
}

// Percent renders a margin, or a dash when the margin is undefined.
func Percent(value decimal.NullDecimal) string {
	if !value.Valid {
		return DefaultDash("")
	}
	return value.Decimal.StringFixed(costing.CurrencyPlaces) + "%"
}

// Factor renders an adjustment factor with four decimals.
func Factor(value decimal.Decimal) string {
	return value.StringFixed(4)
}

// Measure renders an optional dimension in centimetres.
func Measure(value decimal.NullDecimal) string {
	if !value.Valid {
		return DefaultDash("")
	}
	return value.Decimal.StringFixed(costing.CurrencyPlaces) + " cm"
}

// InputValue renders an optional decimal for a form field.
func InputValue(value decimal.NullDecimal) string {
	if !value.Valid {
		return ""
	}
	return value.Decimal.String()
}

// ShapeLabel names a recipe shape code.
func ShapeLabel(shape costing.Shape) string {
	return shape.Label()
}
