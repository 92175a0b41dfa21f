package costing

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Shape classifies the footprint of a recipe.
type Shape string

const (
	ShapeCircular    Shape = "C"
	ShapeRectangular Shape = "R"
)

var (
	ErrUnknownShape     = errors.New("costing: unknown shape")
	ErrMissingDimension = errors.New("costing: missing dimension for shape")
	ErrForeignDimension = errors.New("costing: dimension does not apply to shape")
	ErrInvalidDimension = errors.New("costing: dimension out of range")
)

var (
	minDimension = decimal.RequireFromString("0.01")
	maxDimension = decimal.RequireFromString("999.99")
	pi           = decimal.NewFromFloat(math.Pi)
	two          = decimal.NewFromInt(2)
)

// Shapes lists the supported shapes in display order.
func Shapes() []Shape {
	return []Shape{ShapeCircular, ShapeRectangular}
}

// ParseShape accepts the stored code or the label, case-insensitively.
func ParseShape(value string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "c", "circular":
		return ShapeCircular, nil
	case "r", "rectangular":
		return ShapeRectangular, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownShape, value)
	}
}

// Label returns the human readable name of the shape.
func (s Shape) Label() string {
	switch s {
	case ShapeCircular:
		return "Circular"
	case ShapeRectangular:
		return "Rectangular"
	default:
		return "Unknown"
	}
}

// Dimensions is the footprint of a recipe or variation. Only Circle and
// Rectangle implement it.
type Dimensions interface {
	Shape() Shape
	Area() decimal.Decimal
	isDimensions()
}

// Circle is a round footprint.
type Circle struct {
	Diameter decimal.Decimal
}

func (Circle) Shape() Shape { return ShapeCircular }

// Area returns π × (diameter / 2)².
func (c Circle) Area() decimal.Decimal {
	radius := c.Diameter.Div(two)
	return pi.Mul(radius).Mul(radius)
}

func (Circle) isDimensions() {}

// Rectangle is a rectangular footprint.
type Rectangle struct {
	Length decimal.Decimal
	Width  decimal.Decimal
}

func (Rectangle) Shape() Shape { return ShapeRectangular }

// Area returns length × width.
func (r Rectangle) Area() decimal.Decimal {
	return r.Length.Mul(r.Width)
}

func (Rectangle) isDimensions() {}

// Footprint builds the dimensions for shape from nullable columns. The second
// result is false when a dimension the shape requires is missing.
func Footprint(shape Shape, diameter, length, width decimal.NullDecimal) (Dimensions, bool) {
	switch shape {
	case ShapeCircular:
		if !diameter.Valid {
			return nil, false
		}
		return Circle{Diameter: diameter.Decimal}, true
	case ShapeRectangular:
		if !length.Valid || !width.Valid {
			return nil, false
		}
		return Rectangle{Length: length.Decimal, Width: width.Decimal}, true
	default:
		return nil, false
	}
}

// SurfaceArea returns the footprint area for shape, or zero when a required
// dimension is missing. The value is a relative scaling metric only.
func SurfaceArea(shape Shape, diameter, length, width decimal.NullDecimal) decimal.Decimal {
	dims, ok := Footprint(shape, diameter, length, width)
	if !ok {
		return decimal.Zero
	}
	return dims.Area()
}

// DimensionError names the dimension that failed validation. Err is one of
// the dimension sentinels.
type DimensionError struct {
	Field string
	Err   error
}

func (e *DimensionError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *DimensionError) Unwrap() error {
	return e.Err
}

// ValidateDimensions checks that exactly the dimensions shape needs are set
// and that each lies in the storable range.
func ValidateDimensions(shape Shape, diameter, length, width decimal.NullDecimal) error {
	switch shape {
	case ShapeCircular:
		if !diameter.Valid {
			return &DimensionError{Field: "diameter", Err: ErrMissingDimension}
		}
		if length.Valid {
			return &DimensionError{Field: "length", Err: ErrForeignDimension}
		}
		if width.Valid {
			return &DimensionError{Field: "width", Err: ErrForeignDimension}
		}
		return checkRange("diameter", diameter.Decimal)
	case ShapeRectangular:
		if !length.Valid {
			return &DimensionError{Field: "length", Err: ErrMissingDimension}
		}
		if !width.Valid {
			return &DimensionError{Field: "width", Err: ErrMissingDimension}
		}
		if diameter.Valid {
			return &DimensionError{Field: "diameter", Err: ErrForeignDimension}
		}
		if err := checkRange("length", length.Decimal); err != nil {
			return err
		}
		return checkRange("width", width.Decimal)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownShape, string(shape))
	}
}

// ValidateOverride checks the optional dimensions of a variation against the
// shape of its recipe. Unlike ValidateDimensions, a missing dimension is
// accepted; such a variation has no footprint, so its adjustment factor is 0.
func ValidateOverride(shape Shape, diameter, length, width decimal.NullDecimal) error {
	switch shape {
	case ShapeCircular:
		if length.Valid {
			return &DimensionError{Field: "length", Err: ErrForeignDimension}
		}
		if width.Valid {
			return &DimensionError{Field: "width", Err: ErrForeignDimension}
		}
	case ShapeRectangular:
		if diameter.Valid {
			return &DimensionError{Field: "diameter", Err: ErrForeignDimension}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownShape, string(shape))
	}
	for _, dim := range []struct {
		name  string
		value decimal.NullDecimal
	}{{"diameter", diameter}, {"length", length}, {"width", width}} {
		if !dim.value.Valid {
			continue
		}
		if err := checkRange(dim.name, dim.value.Decimal); err != nil {
			return err
		}
	}
	return nil
}

func checkRange(name string, value decimal.Decimal) error {
	if value.LessThan(minDimension) || value.GreaterThan(maxDimension) {
		return &DimensionError{Field: name, Err: ErrInvalidDimension}
	}
	if !HasCurrencyScale(value) {
		return &DimensionError{Field: name, Err: ErrTooManyPlaces}
	}
	return nil
}
