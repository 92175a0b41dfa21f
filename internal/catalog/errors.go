package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"bakery/internal/costing"
	"bakery/models"
)

var (
	// ErrNotFound is returned when a record does not exist or was deleted.
	ErrNotFound = errors.New("catalog: record not found")
	// ErrInvalid is matched by every ValidationError.
	ErrInvalid = errors.New("catalog: invalid input")
	// ErrMainVariationInUse is returned when deleting a main variation that still has siblings.
	ErrMainVariationInUse = errors.New("catalog: main variation cannot be deleted while other variations exist")
)

// ValidationError maps form field names to a human readable message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, e.Fields[key]))
	}
	return "catalog: invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

func (e *ValidationError) orNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// FieldErrors extracts the per-field messages from err, if it is a ValidationError.
func FieldErrors(err error) map[string]string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}

func fieldError(field, message string) error {
	verr := &ValidationError{}
	verr.add(field, message)
	return verr
}

// fromValidator converts validator failures into a ValidationError keyed by
// form field names.
func fromValidator(err error, verr *ValidationError) error {
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return err
	}
	for _, fe := range failures {
		verr.add(fieldKey(fe), fieldMessage(fe))
	}
	return nil
}

func fieldKey(fe validator.FieldError) string {
	key := fe.Namespace()
	if i := strings.IndexByte(key, '.'); i >= 0 {
		key = key[i+1:]
	}
	return key
}

const tooManyPlacesMessage = "Ensure that there are no more than 2 decimal places."

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "phone":
		return "Phone number must be entered in the format '+999999999'. Up to 15 digits allowed."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "decimal2":
		return tooManyPlacesMessage
	case "oneof", "uuid":
		return "Select a valid choice."
	default:
		return "Enter a valid value."
	}
}

// dimensionErrors records a costing dimension failure against its form field.
func dimensionErrors(err error, verr *ValidationError) {
	var dimErr *costing.DimensionError
	if errors.As(err, &dimErr) {
		verr.add(dimErr.Field, dimensionMessage(dimErr.Err))
		return
	}
	verr.add("shape", dimensionMessage(err))
}

func dimensionMessage(err error) string {
	switch {
	case errors.Is(err, costing.ErrMissingDimension):
		return "This field is required for the selected shape."
	case errors.Is(err, costing.ErrForeignDimension):
		return "This field does not apply to the selected shape."
	case errors.Is(err, costing.ErrInvalidDimension):
		return "Ensure this value is between 0.01 and 999.99."
	case errors.Is(err, costing.ErrTooManyPlaces):
		return tooManyPlacesMessage
	case errors.Is(err, costing.ErrUnknownShape):
		return "Select a valid choice."
	default:
		return "Enter a valid value."
	}
}

// lookupError maps gorm's not-found error to ErrNotFound.
func lookupError(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("load %s: %w", what, err)
}

// hookError maps model hook validation failures to a ValidationError.
func hookError(err error) error {
	var scaleErr *models.ScaleError
	if errors.As(err, &scaleErr) {
		return fieldError(scaleErr.Field, tooManyPlacesMessage)
	}
	switch {
	case errors.Is(err, models.ErrInvalidPrice):
		return fieldError("price_per_gram", "Ensure this value is greater than or equal to 0.01.")
	case errors.Is(err, models.ErrInvalidQuantity):
		return fieldError("quantity_in_grams", "Ensure this value is greater than 0 and at most 99999.99.")
	case errors.Is(err, models.ErrNegativeSalePrice):
		return fieldError("sale_price", "Ensure this value is greater than or equal to 0.")
	}
	return err
}
