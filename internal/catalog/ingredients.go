package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bakery/models"
)

type IngredientInput struct {
	Name         string          `form:"name" validate:"required,max=255"`
	SupplierID   string          `form:"supplier" validate:"omitempty,uuid"`
	PricePerGram decimal.Decimal `form:"price_per_gram" validate:"gte=0.01,decimal2"`
}

// IngredientFilter narrows ListIngredients. Zero values match everything.
type IngredientFilter struct {
	Query      string
	SupplierID string
}

func (s *Store) ListIngredients(ctx context.Context, filter IngredientFilter) ([]models.Ingredient, error) {
	db := s.db.WithContext(ctx).Preload("Supplier").Order("name asc")
	db = contains(db, "name", filter.Query)
	if supplierID := strings.TrimSpace(filter.SupplierID); supplierID != "" {
		db = db.Where("supplier_id = ?", supplierID)
	}

	var ingredients []models.Ingredient
	if err := db.Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

func (s *Store) GetIngredient(ctx context.Context, id uint) (models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).Preload("Supplier").First(&ingredient, id).Error; err != nil {
		return models.Ingredient{}, lookupError(err, "ingredient")
	}
	return ingredient, nil
}

// validateIngredient checks in and resolves the optional supplier.
func (s *Store) validateIngredient(ctx context.Context, in IngredientInput) (*string, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	if in.SupplierID == "" {
		return nil, nil
	}
	if _, err := s.GetSupplier(ctx, in.SupplierID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fieldError("supplier", "Select a valid choice.")
		}
		return nil, err
	}
	supplierID := in.SupplierID
	return &supplierID, nil
}

func (s *Store) CreateIngredient(ctx context.Context, in IngredientInput) (models.Ingredient, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.SupplierID = strings.TrimSpace(in.SupplierID)
	supplierID, err := s.validateIngredient(ctx, in)
	if err != nil {
		return models.Ingredient{}, err
	}

	ingredient := models.Ingredient{
		Name:         in.Name,
		SupplierID:   supplierID,
		PricePerGram: in.PricePerGram,
	}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return models.Ingredient{}, fmt.Errorf("create ingredient: %w", hookError(err))
	}
	return s.GetIngredient(ctx, ingredient.ID)
}

func (s *Store) UpdateIngredient(ctx context.Context, id uint, in IngredientInput) (models.Ingredient, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.SupplierID = strings.TrimSpace(in.SupplierID)
	supplierID, err := s.validateIngredient(ctx, in)
	if err != nil {
		return models.Ingredient{}, err
	}

	ingredient, err := s.GetIngredient(ctx, id)
	if err != nil {
		return models.Ingredient{}, err
	}
	ingredient.Name = in.Name
	ingredient.SupplierID = supplierID
	ingredient.Supplier = nil
	ingredient.PricePerGram = in.PricePerGram
	if err := s.db.WithContext(ctx).Save(&ingredient).Error; err != nil {
		return models.Ingredient{}, fmt.Errorf("update ingredient: %w", hookError(err))
	}
	return s.GetIngredient(ctx, id)
}

// DeleteIngredient removes the ingredient and every recipe row using it.
func (s *Store) DeleteIngredient(ctx context.Context, id uint) error {
	return s.tx(ctx, func(tx *gorm.DB) error {
		var ingredient models.Ingredient
		if err := tx.First(&ingredient, id).Error; err != nil {
			return lookupError(err, "ingredient")
		}
		if err := deleteIngredients(tx, []uint{id}); err != nil {
			return fmt.Errorf("delete ingredient: %w", err)
		}
		return nil
	})
}
