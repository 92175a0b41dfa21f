package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"bakery/internal/catalog"
	"bakery/internal/views/pages"
)

type variationCostingResponse struct {
	ID            uint    `json:"id"`
	MainVariation bool    `json:"main_variation"`
	Diameter      *string `json:"diameter"`
	Length        *string `json:"length"`
	Width         *string `json:"width"`
	Area          string  `json:"area"`
	Factor        string  `json:"factor"`
	Cost          string  `json:"cost"`
	Profit        string  `json:"profit"`
	Margin        *string `json:"margin"`
}

type productCostingResponse struct {
	ProductID     uint                       `json:"product_id"`
	ProductType   string                     `json:"product_type"`
	SalePrice     string                     `json:"sale_price"`
	MissingRecipe bool                       `json:"missing_recipe"`
	Cost          *string                    `json:"cost"`
	Profit        *string                    `json:"profit"`
	Margin        *string                    `json:"margin"`
	Variations    []variationCostingResponse `json:"variations"`
}

func fixed(value decimal.NullDecimal) *string {
	if !value.Valid {
		return nil
	}
	s := pages.Money(value.Decimal)
	return &s
}

func money(value decimal.Decimal) *string {
	return fixed(decimal.NewNullDecimal(value))
}

func newProductCostingResponse(c catalog.ProductCosting) productCostingResponse {
	resp := productCostingResponse{
		ProductID:     c.Product.ID,
		ProductType:   c.Product.ProductType,
		SalePrice:     pages.Money(c.Product.SalePrice),
		MissingRecipe: c.MissingRecipe,
		Variations:    make([]variationCostingResponse, 0, len(c.Variations)),
	}
	if c.MissingRecipe {
		return resp
	}
	resp.Cost = money(c.Cost)
	resp.Profit = money(c.Profit)
	resp.Margin = fixed(c.Margin)
	for _, v := range c.Variations {
		resp.Variations = append(resp.Variations, variationCostingResponse{
			ID:            v.Variation.ID,
			MainVariation: v.Variation.MainVariation,
			Diameter:      fixed(v.Variation.Diameter),
			Length:        fixed(v.Variation.Length),
			Width:         fixed(v.Variation.Width),
			Area:          pages.Money(v.Area),
			Factor:        pages.Factor(v.Factor),
			Cost:          pages.Money(v.Cost),
			Profit:        pages.Money(v.Profit),
			Margin:        fixed(v.Margin),
		})
	}
	return resp
}

// ProductCostingAPI returns the costing summary of a product as JSON.
func ProductCostingAPI(w http.ResponseWriter, r *http.Request) {
	s, err := catalogStore()
	if err != nil {
		writeJSONError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	id, err := uintParam(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "product not found")
		return
	}
	c, err := s.ProductCosting(r.Context(), id)
	if err != nil {
		status := statusOf(err)
		if status == http.StatusNotFound {
			writeJSONError(w, status, "product not found")
			return
		}
		writeJSONError(w, status, http.StatusText(status))
		return
	}
	writeJSON(w, http.StatusOK, newProductCostingResponse(c))
}
