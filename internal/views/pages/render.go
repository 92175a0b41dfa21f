// Package pages renders the catalog screens as templ components backed by
// embedded html/template files.
package pages

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"bakery/internal/catalog"
	"bakery/internal/costing"
	"bakery/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("pages").Funcs(template.FuncMap{
	"money":      Money,
	"percent":    Percent,
	"factor":     Factor,
	"measure":    Measure,
	"shape":      ShapeLabel,
	"dash":       DefaultDash,
	"recipeCost": RecipeCost,
	"supplier":   SupplierName,
	"field":      FieldOf,
}).ParseFS(templateFS, "templates/*.html"))

func view(name string, data any) templ.Component {
	t := templates.Lookup(name)
	if t == nil {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return fmt.Errorf("pages: unknown template %q", name)
		})
	}
	return templ.FromGoHTML(t, data)
}

// Field is the view of a single form input.
type Field struct {
	Name    string
	Label   string
	Type    string
	Value   string
	Error   string
	Options []Option
}

// FieldOf extracts one input of a form for the shared field templates.
func FieldOf(form Form, name, label, kind string) Field {
	return Field{
		Name:    name,
		Label:   label,
		Type:    kind,
		Value:   form.Value(name),
		Error:   form.Error(name),
		Options: form.Options[name],
	}
}

// RecipeCost is the undivided ingredient cost of a recipe.
func RecipeCost(recipe models.Recipe) string {
	return Money(costing.Cost(recipe.CostLines()))
}

// SupplierName labels the supplier of an ingredient.
func SupplierName(ingredient models.Ingredient) string {
	if ingredient.Supplier == nil {
		return DefaultDash("")
	}
	return ingredient.Supplier.String()
}

type SuppliersPage struct {
	Query     string
	Suppliers []models.Supplier
}

type IngredientsPage struct {
	Filter      catalog.IngredientFilter
	Suppliers   []Option
	Ingredients []models.Ingredient
}

type RecipesPage struct {
	Query   string
	Recipes []models.Recipe
}

type ProductsPage struct {
	Filters  ProductFilters
	Costings []catalog.ProductCosting
}

// VariationsPage lists a product's variations with a form to add one.
type VariationsPage struct {
	Costing catalog.ProductCosting
	Form    Form
}

// ConfirmDelete asks before a destructive post.
type ConfirmDelete struct {
	Title   string
	Message string
	Action  string
	Cancel  string
}

func Suppliers(data SuppliersPage) templ.Component { return view("suppliers", data) }

func SupplierTable(suppliers []models.Supplier) templ.Component {
	return view("supplier_table", suppliers)
}

func SupplierForm(form Form) templ.Component { return view("supplier_form", form) }

func Ingredients(data IngredientsPage) templ.Component { return view("ingredients", data) }

func IngredientTable(ingredients []models.Ingredient) templ.Component {
	return view("ingredient_table", ingredients)
}

func IngredientForm(form Form) templ.Component { return view("ingredient_form", form) }

func Recipes(data RecipesPage) templ.Component { return view("recipes", data) }

func RecipeTable(recipes []models.Recipe) templ.Component { return view("recipe_table", recipes) }

func RecipeForm(form Form) templ.Component { return view("recipe_form", form) }

// RecipeIngredientRow is the fragment appended to the recipe form for a new
// ingredient line.
func RecipeIngredientRow(row RecipeRow) templ.Component {
	return view("recipe_ingredient_row", row)
}

func Products(data ProductsPage) templ.Component { return view("products", data) }

func ProductTable(costings []catalog.ProductCosting) templ.Component {
	return view("product_table", costings)
}

func ProductForm(form Form) templ.Component { return view("product_form", form) }

func Variations(data VariationsPage) templ.Component { return view("variations", data) }

func VariationTable(c catalog.ProductCosting) templ.Component {
	return view("variation_table", c)
}

func VariationForm(form Form) templ.Component { return view("variation_form", form) }

func Confirm(data ConfirmDelete) templ.Component { return view("confirm_delete", data) }
