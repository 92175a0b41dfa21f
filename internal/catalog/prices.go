package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bakery/internal/costing"
	"bakery/models"
)

// PriceUpdate is one line of a supplier price sheet. Supplier is matched by
// name and may be empty.
type PriceUpdate struct {
	Name         string
	PricePerGram decimal.Decimal
	Supplier     string
}

// ImportResult counts what ImportPrices changed.
type ImportResult struct {
	Created   int
	Updated   int
	Unchanged int
}

// ImportPrices upserts ingredient prices by name in one transaction. Any
// invalid line aborts the whole import, including a price with more than two
// decimal places; prices are never rounded on the way in.
func (s *Store) ImportPrices(ctx context.Context, updates []PriceUpdate) (ImportResult, error) {
	var result ImportResult
	err := s.tx(ctx, func(tx *gorm.DB) error {
		suppliers := map[string]*string{}
		for i, update := range updates {
			name := strings.TrimSpace(update.Name)
			if name == "" {
				return fieldError(fmt.Sprintf("line %d", i+1), "Ingredient name is required.")
			}
			price := update.PricePerGram
			if price.LessThan(models.MinPricePerGram) {
				return fieldError(fmt.Sprintf("line %d", i+1), "Ensure the price per gram is at least 0.01.")
			}
			if !costing.HasCurrencyScale(price) {
				return fieldError(fmt.Sprintf("line %d", i+1), tooManyPlacesMessage)
			}

			supplierID, err := resolveSupplier(tx, suppliers, update.Supplier)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}

			var ingredient models.Ingredient
			err = tx.Where("LOWER(name) = ?", strings.ToLower(name)).Order("id asc").First(&ingredient).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				ingredient = models.Ingredient{Name: name, SupplierID: supplierID, PricePerGram: price}
				if err := tx.Create(&ingredient).Error; err != nil {
					return fmt.Errorf("line %d: create ingredient: %w", i+1, hookError(err))
				}
				result.Created++
				continue
			case err != nil:
				return fmt.Errorf("line %d: load ingredient: %w", i+1, err)
			}

			sameSupplier := supplierID == nil || (ingredient.SupplierID != nil && *ingredient.SupplierID == *supplierID)
			if ingredient.PricePerGram.Equal(price) && sameSupplier {
				result.Unchanged++
				continue
			}
			ingredient.PricePerGram = price
			if supplierID != nil {
				ingredient.SupplierID = supplierID
			}
			if err := tx.Save(&ingredient).Error; err != nil {
				return fmt.Errorf("line %d: update ingredient: %w", i+1, hookError(err))
			}
			result.Updated++
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

func resolveSupplier(tx *gorm.DB, cache map[string]*string, name string) (*string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	key := strings.ToLower(name)
	if id, ok := cache[key]; ok {
		return id, nil
	}
	var supplier models.Supplier
	if err := tx.Where("LOWER(name) = ?", key).First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fieldError("supplier", fmt.Sprintf("Unknown supplier %q.", name))
		}
		return nil, fmt.Errorf("load supplier: %w", err)
	}
	cache[key] = &supplier.ID
	return &supplier.ID, nil
}
