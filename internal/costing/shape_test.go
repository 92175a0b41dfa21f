package costing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   string
		want    Shape
		wantErr bool
	}{
		{"C", ShapeCircular, false},
		{"circular", ShapeCircular, false},
		{" Rectangular ", ShapeRectangular, false},
		{"r", ShapeRectangular, false},
		{"triangle", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			got, err := ParseShape(tt.value)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownShape) {
					t.Fatalf("ParseShape(%q) error = %v, want ErrUnknownShape", tt.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseShape(%q) returned error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Fatalf("ParseShape(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestSurfaceArea(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		shape    Shape
		diameter string
		length   string
		width    string
		want     string
	}{
		{"circle", ShapeCircular, "10", "", "", "78.54"},
		{"rectangle", ShapeRectangular, "", "10", "5", "50.00"},
		{"circle without diameter", ShapeCircular, "", "10", "5", "0"},
		{"rectangle missing width", ShapeRectangular, "", "10", "", "0"},
		{"unknown shape", Shape("X"), "10", "10", "10", "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SurfaceArea(tt.shape, null(t, tt.diameter), null(t, tt.length), null(t, tt.width))
			assertDecimal(t, "area", got.Round(2), tt.want)
		})
	}
}

func TestCircleAreaMatchesPi(t *testing.T) {
	t.Parallel()

	area := Circle{Diameter: decimal.NewFromInt(10)}.Area()
	if got := area.StringFixed(2); got != "78.54" {
		t.Fatalf("circle area = %s, want 78.54", got)
	}
	if (Circle{}).Shape() != ShapeCircular || (Rectangle{}).Shape() != ShapeRectangular {
		t.Fatal("dimension variants report the wrong shape")
	}
}

func TestValidateDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		shape    Shape
		diameter string
		length   string
		width    string
		want     error
	}{
		{"valid circle", ShapeCircular, "20", "", "", nil},
		{"valid rectangle", ShapeRectangular, "", "30", "20", nil},
		{"circle missing diameter", ShapeCircular, "", "", "", ErrMissingDimension},
		{"circle with length", ShapeCircular, "20", "5", "", ErrForeignDimension},
		{"rectangle missing length", ShapeRectangular, "", "", "20", ErrMissingDimension},
		{"rectangle with diameter", ShapeRectangular, "10", "30", "20", ErrForeignDimension},
		{"diameter too small", ShapeCircular, "0", "", "", ErrInvalidDimension},
		{"width too large", ShapeRectangular, "", "10", "1000", ErrInvalidDimension},
		{"diameter with three places", ShapeCircular, "10.005", "", "", ErrTooManyPlaces},
		{"length with three places", ShapeRectangular, "", "30.125", "20", ErrTooManyPlaces},
		{"trailing zeros", ShapeCircular, "10.500", "", "", nil},
		{"unknown shape", Shape(""), "", "", "", ErrUnknownShape},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateDimensions(tt.shape, null(t, tt.diameter), null(t, tt.length), null(t, tt.width))
			if tt.want == nil {
				if err != nil {
					t.Fatalf("ValidateDimensions returned error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("ValidateDimensions error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateDimensionsNamesField(t *testing.T) {
	t.Parallel()

	err := ValidateDimensions(ShapeRectangular, null(t, ""), null(t, "30"), null(t, ""))
	var dimErr *DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected DimensionError, got %v", err)
	}
	if dimErr.Field != "width" {
		t.Fatalf("DimensionError.Field = %q, want %q", dimErr.Field, "width")
	}
}

func TestValidateOverride(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		shape    Shape
		diameter string
		length   string
		width    string
		want     error
	}{
		{"circle without override", ShapeCircular, "", "", "", nil},
		{"circle diameter", ShapeCircular, "15", "", "", nil},
		{"rectangle partial", ShapeRectangular, "", "12", "", nil},
		{"circle with width", ShapeCircular, "", "", "4", ErrForeignDimension},
		{"rectangle with diameter", ShapeRectangular, "8", "", "", ErrForeignDimension},
		{"negative length", ShapeRectangular, "", "-1", "5", ErrInvalidDimension},
		{"unknown shape", Shape("X"), "", "", "", ErrUnknownShape},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateOverride(tt.shape, null(t, tt.diameter), null(t, tt.length), null(t, tt.width))
			if tt.want == nil {
				if err != nil {
					t.Fatalf("ValidateOverride returned error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("ValidateOverride error = %v, want %v", err, tt.want)
			}
		})
	}
}
