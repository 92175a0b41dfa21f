package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"bakery/internal/costing"
	"bakery/models"
)

// VariationCosting is the adjusted figure set of one variation.
type VariationCosting struct {
	Variation models.ProductVariation
	Area      decimal.Decimal
	Factor    decimal.Decimal
	costing.Summary
}

// ProductCosting is the figure set of a product and its variations.
// MissingRecipe is set when the product cannot be costed.
type ProductCosting struct {
	Product       models.Product
	MissingRecipe bool
	costing.Summary
	Variations []VariationCosting
}

// Cost derives the figures of a product loaded with its recipe, ingredients
// and variations.
func Cost(product models.Product) (ProductCosting, error) {
	result := ProductCosting{Product: product}
	summary, err := product.Costing()
	if errors.Is(err, costing.ErrMissingRecipe) {
		result.MissingRecipe = true
		return result, nil
	}
	if err != nil {
		return ProductCosting{}, err
	}
	result.Summary = summary

	result.Variations = make([]VariationCosting, 0, len(product.Variations))
	for _, variation := range product.Variations {
		adjusted, err := variation.Costing(&product)
		if err != nil {
			return ProductCosting{}, err
		}
		result.Variations = append(result.Variations, VariationCosting{
			Variation: variation,
			Area:      variation.CalculateSurfaceArea(&product).Round(costing.CurrencyPlaces),
			Factor:    variation.AdjustmentFactor(&product),
			Summary:   adjusted,
		})
	}
	return result, nil
}

func (s *Store) ProductCosting(ctx context.Context, id uint) (ProductCosting, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return ProductCosting{}, err
	}
	return Cost(product)
}

func (s *Store) ProductCostings(ctx context.Context, filter ProductFilter) ([]ProductCosting, error) {
	products, err := s.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	results := make([]ProductCosting, 0, len(products))
	for _, product := range products {
		result, err := Cost(product)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}
