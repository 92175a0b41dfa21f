package pages

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"bakery/internal/costing"
	"bakery/models"
)

// Option is one entry of a select input.
type Option struct {
	Value string
	Label string
}

// Form carries the state of an edit form: the submitted or stored values,
// the field errors of the last submission and the select options it needs.
type Form struct {
	Title   string
	Action  string
	Cancel  string
	Submit  string
	Values  map[string]string
	Errors  map[string]string
	Options map[string][]Option
	Rows    []RecipeRow
}

// RecipeRow is one ingredient line of the recipe form.
type RecipeRow struct {
	IngredientID string
	Quantity     string
	Error        string
	Options      []Option
}

// NewForm returns an empty form posting to action.
func NewForm(title, action, cancel string) Form {
	return Form{
		Title:   title,
		Action:  action,
		Cancel:  cancel,
		Submit:  "Save",
		Values:  map[string]string{},
		Errors:  map[string]string{},
		Options: map[string][]Option{},
	}
}

// WithValues copies the first value of every submitted field.
func (f Form) WithValues(values url.Values) Form {
	for key, v := range values {
		if len(v) > 0 {
			f.Values[key] = v[0]
		}
	}
	return f
}

// WithErrors attaches field errors, typically from catalog.FieldErrors.
func (f Form) WithErrors(errors map[string]string) Form {
	for key, message := range errors {
		f.Errors[key] = message
	}
	for i := range f.Rows {
		prefix := fmt.Sprintf("ingredients[%d].", i)
		for _, field := range []string{"ingredient_id", "quantity_in_grams"} {
			if message, ok := errors[prefix+field]; ok && f.Rows[i].Error == "" {
				f.Rows[i].Error = message
			}
		}
	}
	return f
}

// Value returns the current value of a field.
func (f Form) Value(name string) string {
	return f.Values[name]
}

// Error returns the error message of a field, if any.
func (f Form) Error(name string) string {
	return f.Errors[name]
}

func (f Form) HasErrors() bool {
	return len(f.Errors) > 0
}

func SupplierValues(s models.Supplier) map[string]string {
	return map[string]string{
		"name":    s.Name,
		"ruc":     s.RUC,
		"email":   s.Email,
		"phone":   s.Phone,
		"address": s.Address,
	}
}

func IngredientValues(i models.Ingredient) map[string]string {
	values := map[string]string{
		"name":           i.Name,
		"price_per_gram": Money(i.PricePerGram),
	}
	if i.SupplierID != nil {
		values["supplier"] = *i.SupplierID
	}
	return values
}

func RecipeValues(r models.Recipe) map[string]string {
	return map[string]string{
		"name":        r.Name,
		"description": r.Description,
		"shape":       string(r.Shape),
		"diameter":    InputValue(r.Diameter),
		"length":      InputValue(r.Length),
		"width":       InputValue(r.Width),
	}
}

func ProductValues(p models.Product) map[string]string {
	values := map[string]string{
		"product_type": p.ProductType,
		"sale_price":   Money(p.SalePrice),
	}
	if p.RecipeID != nil {
		values["recipe"] = strconv.FormatUint(uint64(*p.RecipeID), 10)
	}
	return values
}

func VariationValues(v models.ProductVariation) map[string]string {
	values := map[string]string{
		"diameter": InputValue(v.Diameter),
		"length":   InputValue(v.Length),
		"width":    InputValue(v.Width),
	}
	if v.MainVariation {
		values["main_variation"] = "on"
	}
	return values
}

// RecipeRows builds form rows from stored recipe ingredients.
func RecipeRows(rows []models.RecipeIngredient, options []Option) []RecipeRow {
	result := make([]RecipeRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, RecipeRow{
			IngredientID: strconv.FormatUint(uint64(row.IngredientID), 10),
			Quantity:     Money(row.QuantityInGrams),
			Options:      options,
		})
	}
	return result
}

// SubmittedRows rebuilds form rows from the parallel ingredient_id[] and
// quantity[] fields of a submission. Rows left entirely blank are dropped.
func SubmittedRows(values url.Values, options []Option) []RecipeRow {
	ids := values["ingredient_id[]"]
	quantities := values["quantity[]"]
	n := max(len(ids), len(quantities))
	rows := make([]RecipeRow, 0, n)
	for i := 0; i < n; i++ {
		row := RecipeRow{Options: options}
		if i < len(ids) {
			row.IngredientID = strings.TrimSpace(ids[i])
		}
		if i < len(quantities) {
			row.Quantity = strings.TrimSpace(quantities[i])
		}
		if row.IngredientID == "" && row.Quantity == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func SupplierOptions(suppliers []models.Supplier) []Option {
	options := make([]Option, 0, len(suppliers))
	for _, s := range suppliers {
		options = append(options, Option{Value: s.ID, Label: s.String()})
	}
	return options
}

func IngredientOptions(ingredients []models.Ingredient) []Option {
	options := make([]Option, 0, len(ingredients))
	for _, i := range ingredients {
		options = append(options, Option{Value: strconv.FormatUint(uint64(i.ID), 10), Label: i.String()})
	}
	return options
}

func RecipeOptions(recipes []models.Recipe) []Option {
	options := make([]Option, 0, len(recipes))
	for _, r := range recipes {
		options = append(options, Option{Value: strconv.FormatUint(uint64(r.ID), 10), Label: r.String()})
	}
	return options
}

func ShapeOptions() []Option {
	shapes := costing.Shapes()
	options := make([]Option, 0, len(shapes))
	for _, shape := range shapes {
		options = append(options, Option{Value: string(shape), Label: shape.Label()})
	}
	return options
}
