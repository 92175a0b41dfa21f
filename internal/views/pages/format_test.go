package pages

import (
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"money rounds to cents", Money(decimal.RequireFromString("137.5")), "137.50"},
		{"percent", Percent(decimal.NewNullDecimal(decimal.RequireFromString("8.333"))), "8.33%"},
		{"undefined percent", Percent(decimal.NullDecimal{}), "—"},
		{"factor", Factor(decimal.RequireFromString("0.25")), "0.2500"},
		{"measure", Measure(decimal.NewNullDecimal(decimal.RequireFromString("20"))), "20.00 cm"},
		{"missing measure", Measure(decimal.NullDecimal{}), "—"},
		{"input value", InputValue(decimal.NewNullDecimal(decimal.RequireFromString("12.5"))), "12.5"},
		{"empty input value", InputValue(decimal.NullDecimal{}), ""},
		{"dash keeps text", DefaultDash("Quito"), "Quito"},
		{"dash on blank", DefaultDash("   "), "—"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Fatalf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestProductFiltersFromRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/products?product_type=+cake+&sale_price=45.00", nil)
	filters := ProductFiltersFromRequest(req)
	if filters.ProductType != "cake" || filters.SalePrice != "45.00" {
		t.Fatalf("unexpected filters: %+v", filters)
	}
	filter := filters.Catalog()
	if !filter.SalePrice.Valid || !filter.SalePrice.Decimal.Equal(decimal.RequireFromString("45")) {
		t.Fatalf("expected exact price filter, got %+v", filter.SalePrice)
	}
}

func TestProductFiltersIgnoreUnparsablePrice(t *testing.T) {
	t.Parallel()

	filter := ProductFilters{ProductType: "cake", SalePrice: "cheap"}.Catalog()
	if filter.SalePrice.Valid {
		t.Fatalf("expected price filter to be ignored, got %+v", filter.SalePrice)
	}
	if filter.ProductType != "cake" {
		t.Fatalf("expected product type to be kept, got %q", filter.ProductType)
	}
}

func TestIngredientFiltersFromRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/ingredients?q=flour&supplier=abc", nil)
	filter := IngredientFiltersFromRequest(req)
	if filter.Query != "flour" || filter.SupplierID != "abc" {
		t.Fatalf("unexpected filter: %+v", filter)
	}
	if got := SearchQuery(httptest.NewRequest("GET", "/suppliers?q=%20molinos", nil)); got != "molinos" {
		t.Fatalf("SearchQuery = %q", got)
	}
}

func TestParseUint(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		in   string
		want uint
		ok   bool
	}{
		{"7", 7, true},
		{" 12 ", 12, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
	} {
		got, ok := ParseUint(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseUint(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
