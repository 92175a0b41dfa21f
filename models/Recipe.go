package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bakery/internal/costing"
)

// Recipe is a named formulation with a footprint and a set of ingredient rows.
// Only the dimensions its shape needs are stored; the others stay NULL.
type Recipe struct {
	gorm.Model
	Name        string              `gorm:"not null;index" json:"name"`
	Description string              `json:"description"`
	Shape       costing.Shape       `gorm:"type:varchar(1);not null" json:"shape"`
	Diameter    decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"diameter"`
	Length      decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"length"`
	Width       decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"width"`
	Ingredients []RecipeIngredient  `gorm:"foreignKey:RecipeID" json:"ingredients"`
}

// Dimensions returns the recipe footprint, validating it against the shape.
func (r Recipe) Dimensions() (costing.Dimensions, error) {
	if err := costing.ValidateDimensions(r.Shape, r.Diameter, r.Length, r.Width); err != nil {
		return nil, err
	}
	dims, _ := costing.Footprint(r.Shape, r.Diameter, r.Length, r.Width)
	return dims, nil
}

// SetDimensions stores dims and clears the columns that do not apply to it.
func (r *Recipe) SetDimensions(dims costing.Dimensions) {
	r.Diameter = decimal.NullDecimal{}
	r.Length = decimal.NullDecimal{}
	r.Width = decimal.NullDecimal{}
	switch d := dims.(type) {
	case costing.Circle:
		r.Shape = costing.ShapeCircular
		r.Diameter = decimal.NewNullDecimal(d.Diameter)
	case costing.Rectangle:
		r.Shape = costing.ShapeRectangular
		r.Length = decimal.NewNullDecimal(d.Length)
		r.Width = decimal.NewNullDecimal(d.Width)
	}
}

// CostLines projects the loaded ingredient rows. Rows whose ingredient was not
// loaded, or has been deleted, are skipped.
func (r Recipe) CostLines() []costing.Line {
	lines := make([]costing.Line, 0, len(r.Ingredients))
	for _, row := range r.Ingredients {
		if row.Ingredient == nil {
			continue
		}
		lines = append(lines, costing.Line{
			QuantityGrams: row.QuantityInGrams,
			PricePerGram:  row.Ingredient.PricePerGram,
		})
	}
	return lines
}

func (r Recipe) String() string {
	return r.Name
}
