package catalog

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"bakery/internal/costing"
)

var phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)

// newValidator returns a validator that reports form field names, checks
// phone numbers and compares decimal fields numerically. It panics when a
// custom tag cannot be registered.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if value, ok := field.Interface().(decimal.Decimal); ok {
			return value.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "decimal2", hasCurrencyScale)

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("catalog: register %q validation: %v", tag, err))
	}
}

// hasCurrencyScale backs the decimal2 tag. The custom type func hands the
// validator a float64, so the original decimal is read back from the parent
// struct to keep its exact scale.
func hasCurrencyScale(fl validator.FieldLevel) bool {
	parent := fl.Parent()
	for parent.Kind() == reflect.Pointer {
		if parent.IsNil() {
			return true
		}
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return true
	}
	field := parent.FieldByName(fl.StructFieldName())
	if !field.IsValid() || !field.CanInterface() {
		return true
	}
	switch value := field.Interface().(type) {
	case decimal.Decimal:
		return costing.HasCurrencyScale(value)
	case decimal.NullDecimal:
		return !value.Valid || costing.HasCurrencyScale(value.Decimal)
	}
	return true
}
