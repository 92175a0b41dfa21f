package pages

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"bakery/internal/catalog"
)

// SearchQuery returns the trimmed "q" parameter used by every list page.
func SearchQuery(r *http.Request) string {
	if err := r.ParseForm(); err != nil {
		return ""
	}
	return strings.TrimSpace(r.FormValue("q"))
}

// ProductFilters capture the client-driven state of the product table.
type ProductFilters struct {
	ProductType string
	SalePrice   string
}

// ProductFiltersFromRequest extracts filter inputs for the product table.
func ProductFiltersFromRequest(r *http.Request) ProductFilters {
	filters := ProductFilters{}
	if err := r.ParseForm(); err != nil {
		return filters
	}
	filters.ProductType = strings.TrimSpace(r.FormValue("product_type"))
	filters.SalePrice = strings.TrimSpace(r.FormValue("sale_price"))
	return filters
}

// Catalog converts the filters into a store query. An unparsable price is
// ignored rather than matching nothing.
func (f ProductFilters) Catalog() catalog.ProductFilter {
	filter := catalog.ProductFilter{ProductType: f.ProductType}
	if price, err := decimal.NewFromString(f.SalePrice); err == nil {
		filter.SalePrice = decimal.NewNullDecimal(price)
	}
	return filter
}

// IngredientFiltersFromRequest extracts the ingredient search and supplier filter.
func IngredientFiltersFromRequest(r *http.Request) catalog.IngredientFilter {
	filter := catalog.IngredientFilter{}
	if err := r.ParseForm(); err != nil {
		return filter
	}
	filter.Query = strings.TrimSpace(r.FormValue("q"))
	filter.SupplierID = strings.TrimSpace(r.FormValue("supplier"))
	return filter
}

// ParseUint parses a positive identifier, returning false for anything else.
func ParseUint(value string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
