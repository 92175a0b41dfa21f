package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"bakery/internal/catalog"
	"bakery/internal/views/pages"
)

// formDecoder reads typed values from a submission and collects the fields
// that could not be parsed.
type formDecoder struct {
	values url.Values
	errors map[string]string
}

func newFormDecoder(r *http.Request) (*formDecoder, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &formDecoder{values: r.PostForm, errors: map[string]string{}}, nil
}

func (d *formDecoder) text(name string) string {
	return strings.TrimSpace(d.values.Get(name))
}

func (d *formDecoder) decimal(name string) decimal.Decimal {
	raw := d.text(name)
	if raw == "" {
		d.errors[name] = "This field is required."
		return decimal.Zero
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		d.errors[name] = "Enter a number."
		return decimal.Zero
	}
	return value
}

func (d *formDecoder) optionalDecimal(name string) decimal.NullDecimal {
	raw := d.text(name)
	if raw == "" {
		return decimal.NullDecimal{}
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		d.errors[name] = "Enter a number."
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(value)
}

func (d *formDecoder) id(name string) uint {
	raw := d.text(name)
	if raw == "" {
		return 0
	}
	id, ok := pages.ParseUint(raw)
	if !ok {
		d.errors[name] = "Select a valid choice."
	}
	return id
}

func (d *formDecoder) checkbox(name string) bool {
	switch strings.ToLower(d.text(name)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

// err returns the parse failures as a catalog validation error.
func (d *formDecoder) err() error {
	if len(d.errors) == 0 {
		return nil
	}
	return &catalog.ValidationError{Fields: d.errors}
}

func decodeSupplier(d *formDecoder) catalog.SupplierInput {
	return catalog.SupplierInput{
		Name:    d.text("name"),
		RUC:     d.text("ruc"),
		Email:   d.text("email"),
		Phone:   d.text("phone"),
		Address: d.text("address"),
	}
}

func decodeIngredient(d *formDecoder) catalog.IngredientInput {
	return catalog.IngredientInput{
		Name:         d.text("name"),
		SupplierID:   d.text("supplier"),
		PricePerGram: d.decimal("price_per_gram"),
	}
}

// decodeRecipe reads the recipe fields and the submitted ingredient rows, in
// the order pages.SubmittedRows shows them.
func decodeRecipe(d *formDecoder) catalog.RecipeInput {
	in := catalog.RecipeInput{
		Name:        d.text("name"),
		Description: d.text("description"),
		Shape:       d.text("shape"),
		Diameter:    d.optionalDecimal("diameter"),
		Length:      d.optionalDecimal("length"),
		Width:       d.optionalDecimal("width"),
	}
	for i, row := range pages.SubmittedRows(d.values, nil) {
		field := fmt.Sprintf("ingredients[%d].", i)
		var input catalog.RecipeRowInput
		if row.IngredientID != "" {
			id, ok := pages.ParseUint(row.IngredientID)
			if !ok {
				d.errors[field+"ingredient_id"] = "Select a valid choice."
			}
			input.IngredientID = id
		}
		if row.Quantity != "" {
			quantity, err := decimal.NewFromString(row.Quantity)
			if err != nil {
				d.errors[field+"quantity_in_grams"] = "Enter a number."
			}
			input.QuantityInGrams = quantity
		}
		in.Ingredients = append(in.Ingredients, input)
	}
	return in
}

func decodeProduct(d *formDecoder) catalog.ProductInput {
	return catalog.ProductInput{
		ProductType: d.text("product_type"),
		SalePrice:   d.decimal("sale_price"),
		RecipeID:    d.id("recipe"),
	}
}

func decodeVariation(d *formDecoder) catalog.VariationInput {
	return catalog.VariationInput{
		Diameter: d.optionalDecimal("diameter"),
		Length:   d.optionalDecimal("length"),
		Width:    d.optionalDecimal("width"),
		Main:     d.checkbox("main_variation"),
	}
}
