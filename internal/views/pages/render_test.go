package pages

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bakery/internal/catalog"
	"bakery/internal/costing"
	"bakery/models"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestSupplierTableRendersRows(t *testing.T) {
	out := render(t, SupplierTable([]models.Supplier{{ID: "s-1", Name: "Molinos <del> Sur", RUC: "1790012345001"}}))
	if !strings.Contains(out, "Molinos &lt;del&gt; Sur") {
		t.Fatalf("expected escaped supplier name: %s", out)
	}
	if !strings.Contains(out, "/suppliers/s-1/update") {
		t.Fatalf("expected edit link: %s", out)
	}

	empty := render(t, SupplierTable(nil))
	if !strings.Contains(empty, "No suppliers found.") {
		t.Fatalf("expected empty state: %s", empty)
	}
}

func TestFormRendersValuesAndErrors(t *testing.T) {
	form := NewForm("New supplier", "/suppliers/new", "/suppliers").
		WithValues(url.Values{"name": {"Molinos"}, "phone": {"12"}}).
		WithErrors(map[string]string{"phone": "Enter a valid phone number."})

	out := render(t, SupplierForm(form))
	if !strings.Contains(out, `value="Molinos"`) {
		t.Fatalf("expected submitted value to be kept: %s", out)
	}
	if !strings.Contains(out, "Enter a valid phone number.") {
		t.Fatalf("expected field error: %s", out)
	}
	if !strings.Contains(out, `action="/suppliers/new"`) {
		t.Fatalf("expected form action: %s", out)
	}
}

func TestSelectFieldMarksCurrentOption(t *testing.T) {
	form := NewForm("New product", "/products/new", "/products")
	form.Values["recipe"] = "2"
	form.Options["recipe"] = []Option{{Value: "1", Label: "Brownie"}, {Value: "2", Label: "Sponge"}}

	out := render(t, ProductForm(form))
	if !strings.Contains(out, `<option value="2" selected>Sponge</option>`) {
		t.Fatalf("expected selected recipe option: %s", out)
	}
}

func TestRecipeRowsCarrySubmissionAndErrors(t *testing.T) {
	options := []Option{{Value: "1", Label: "Flour"}}
	rows := SubmittedRows(url.Values{
		"ingredient_id[]": {"1", "", ""},
		"quantity[]":      {"100", "0", " "},
	}, options)
	if len(rows) != 2 || rows[0].IngredientID != "1" || rows[1].Quantity != "0" {
		t.Fatalf("unexpected rows: %+v", rows)
	}

	form := NewForm("Edit recipe", "/recipes/1/update", "/recipes")
	form.Rows = rows
	form = form.WithErrors(map[string]string{"ingredients[1].quantity_in_grams": "Ensure this value is greater than 0."})
	if form.Rows[1].Error == "" || form.Rows[0].Error != "" {
		t.Fatalf("expected error on second row only: %+v", form.Rows)
	}

	out := render(t, RecipeForm(form))
	if strings.Count(out, `class="recipe-row"`) != 2 {
		t.Fatalf("expected two ingredient rows: %s", out)
	}
	if !strings.Contains(out, `<option value="1" selected>Flour</option>`) {
		t.Fatalf("expected first row ingredient selected: %s", out)
	}
}

func TestRecipeIngredientRowFragment(t *testing.T) {
	out := render(t, RecipeIngredientRow(RecipeRow{Options: []Option{{Value: "3", Label: "Cocoa"}}}))
	if !strings.Contains(out, `name="ingredient_id[]"`) || !strings.Contains(out, `name="quantity[]"`) {
		t.Fatalf("expected row inputs: %s", out)
	}
	if strings.Contains(out, "selected") {
		t.Fatalf("expected empty row to select nothing: %s", out)
	}
}

func TestRecipeTableShowsCost(t *testing.T) {
	recipe := models.Recipe{
		Model:    gorm.Model{ID: 4},
		Name:     "Sponge",
		Shape:    costing.ShapeCircular,
		Diameter: decimal.NewNullDecimal(decimal.RequireFromString("20")),
		Ingredients: []models.RecipeIngredient{{
			Ingredient:      &models.Ingredient{PricePerGram: decimal.RequireFromString("1.50")},
			QuantityInGrams: decimal.RequireFromString("100"),
		}},
	}
	out := render(t, RecipeTable([]models.Recipe{recipe}))
	for _, token := range []string{"Circular", "20.00 cm", "150.00"} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected %q in output: %s", token, out)
		}
	}
}

func TestProductTableShowsFigures(t *testing.T) {
	costings := []catalog.ProductCosting{
		{
			Product: models.Product{Model: gorm.Model{ID: 1}, ProductType: "Sponge cake", SalePrice: decimal.RequireFromString("600")},
			Summary: costing.Summary{
				Cost:   decimal.RequireFromString("550"),
				Profit: decimal.RequireFromString("50"),
				Margin: decimal.NewNullDecimal(decimal.RequireFromString("8.33")),
			},
		},
		{
			Product: models.Product{Model: gorm.Model{ID: 2}, ProductType: "Tasting slice"},
			Summary: costing.Summary{Cost: decimal.RequireFromString("10"), Profit: decimal.RequireFromString("-10")},
		},
		{
			Product:       models.Product{Model: gorm.Model{ID: 3}, ProductType: "Mystery"},
			MissingRecipe: true,
		},
	}
	out := render(t, ProductTable(costings))
	for _, token := range []string{"550.00", "50.00", "8.33%", "-10.00", "—", "No recipe to cost.", "/products/1/variations"} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected %q in output: %s", token, out)
		}
	}
}

func TestVariationTableOffersPromotionForSiblingsOnly(t *testing.T) {
	main := models.ProductVariation{Model: gorm.Model{ID: 1}, MainVariation: true}
	quarter := models.ProductVariation{Model: gorm.Model{ID: 2}, Diameter: decimal.NewNullDecimal(decimal.RequireFromString("10"))}
	c := catalog.ProductCosting{
		Product: models.Product{ProductType: "Sponge cake"},
		Variations: []catalog.VariationCosting{
			{Variation: main, Factor: decimal.NewFromInt(1)},
			{Variation: quarter, Factor: decimal.RequireFromString("0.25"), Summary: costing.Summary{Cost: decimal.RequireFromString("137.5")}},
		},
	}
	out := render(t, VariationTable(c))
	if strings.Contains(out, "/variations/1/main") {
		t.Fatalf("expected no promotion for the main variation: %s", out)
	}
	if !strings.Contains(out, "/variations/2/main") {
		t.Fatalf("expected promotion for the sibling: %s", out)
	}
	for _, token := range []string{"0.2500", "137.50", "10.00 cm"} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected %q in output: %s", token, out)
		}
	}
}

func TestUnknownTemplateFailsToRender(t *testing.T) {
	var buf bytes.Buffer
	if err := view("missing", nil).Render(context.Background(), &buf); err == nil {
		t.Fatal("expected an error for an unknown template")
	}
}

func TestIngredientValuesIncludeSupplier(t *testing.T) {
	id := "s-1"
	values := IngredientValues(models.Ingredient{Name: "Flour", SupplierID: &id, PricePerGram: decimal.RequireFromString("0.5")})
	if values["supplier"] != "s-1" || values["price_per_gram"] != "0.50" {
		t.Fatalf("unexpected values: %v", values)
	}
}
