package models

import (
	"github.com/shopspring/decimal"

	"bakery/internal/costing"
)

// ScaleError is returned by the save hooks when a decimal column would have
// to round the value it is given. Field is the form field name of the column.
type ScaleError struct {
	Field string
	Value decimal.Decimal
}

func (e *ScaleError) Error() string {
	return "models: " + e.Field + " " + e.Value.String() + " has more than two decimal places"
}

func (e *ScaleError) Unwrap() error {
	return costing.ErrTooManyPlaces
}

func checkScale(field string, value decimal.Decimal) error {
	if !costing.HasCurrencyScale(value) {
		return &ScaleError{Field: field, Value: value}
	}
	return nil
}
