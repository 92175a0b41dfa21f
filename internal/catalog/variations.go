package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bakery/internal/costing"
	"bakery/models"
)

// VariationInput holds the dimension overrides of a variation. Main asks for
// the variation to become the main one; it never clears the flag.
type VariationInput struct {
	Diameter decimal.NullDecimal `form:"diameter"`
	Length   decimal.NullDecimal `form:"length"`
	Width    decimal.NullDecimal `form:"width"`
	Main     bool                `form:"main_variation"`
}

func (s *Store) GetVariation(ctx context.Context, id uint) (models.ProductVariation, error) {
	var variation models.ProductVariation
	if err := s.db.WithContext(ctx).First(&variation, id).Error; err != nil {
		return models.ProductVariation{}, lookupError(err, "variation")
	}
	return variation, nil
}

func (s *Store) validateVariation(ctx context.Context, productID uint, in VariationInput) error {
	var product models.Product
	if err := s.db.WithContext(ctx).Preload("Recipe").First(&product, productID).Error; err != nil {
		return lookupError(err, "product")
	}
	if product.Recipe == nil {
		return costing.ErrMissingRecipe
	}
	verr := &ValidationError{}
	if err := costing.ValidateOverride(product.Recipe.Shape, in.Diameter, in.Length, in.Width); err != nil {
		dimensionErrors(err, verr)
	}
	return verr.orNil()
}

// AddVariation stores a new variation. It becomes main when requested or when
// the product has no main variation.
func (s *Store) AddVariation(ctx context.Context, productID uint, in VariationInput) (models.ProductVariation, error) {
	if err := s.validateVariation(ctx, productID, in); err != nil {
		return models.ProductVariation{}, err
	}

	variation := models.ProductVariation{
		ProductID: productID,
		Diameter:  in.Diameter,
		Length:    in.Length,
		Width:     in.Width,
	}
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if _, err := lockProduct(tx, productID); err != nil {
			return err
		}
		var mains int64
		if err := tx.Model(&models.ProductVariation{}).
			Where("product_id = ? AND main_variation = ?", productID, true).
			Count(&mains).Error; err != nil {
			return fmt.Errorf("count main variations: %w", err)
		}

		if err := tx.Omit(clause.Associations).Create(&variation).Error; err != nil {
			return fmt.Errorf("create variation: %w", err)
		}
		if in.Main || mains == 0 {
			return promote(tx, &variation)
		}
		return nil
	})
	if err != nil {
		return models.ProductVariation{}, err
	}
	return variation, nil
}

// UpdateVariation replaces the dimension overrides, and promotes the
// variation when in.Main is set.
func (s *Store) UpdateVariation(ctx context.Context, id uint, in VariationInput) (models.ProductVariation, error) {
	variation, err := s.GetVariation(ctx, id)
	if err != nil {
		return models.ProductVariation{}, err
	}
	if err := s.validateVariation(ctx, variation.ProductID, in); err != nil {
		return models.ProductVariation{}, err
	}

	err = s.tx(ctx, func(tx *gorm.DB) error {
		if _, err := lockProduct(tx, variation.ProductID); err != nil {
			return err
		}
		if err := tx.First(&variation, id).Error; err != nil {
			return lookupError(err, "variation")
		}
		variation.Diameter = in.Diameter
		variation.Length = in.Length
		variation.Width = in.Width
		if err := tx.Model(&variation).
			Select("diameter", "length", "width").
			Updates(&variation).Error; err != nil {
			return fmt.Errorf("update variation: %w", err)
		}
		if in.Main && !variation.MainVariation {
			return promote(tx, &variation)
		}
		return nil
	})
	if err != nil {
		return models.ProductVariation{}, err
	}
	return variation, nil
}

// SetMainVariation makes the variation the main one of its product. The
// previous main is cleared in the same transaction, after the product row is
// locked, so exactly one main variation remains under concurrent requests.
func (s *Store) SetMainVariation(ctx context.Context, id uint) (models.ProductVariation, error) {
	var variation models.ProductVariation
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&variation, id).Error; err != nil {
			return lookupError(err, "variation")
		}
		if _, err := lockProduct(tx, variation.ProductID); err != nil {
			return err
		}
		// Re-read under the lock; a concurrent request may have deleted it.
		if err := tx.First(&variation, id).Error; err != nil {
			return lookupError(err, "variation")
		}
		return promote(tx, &variation)
	})
	if err != nil {
		return models.ProductVariation{}, err
	}
	return variation, nil
}

// promote clears the main flag on the siblings of variation, then sets it on
// variation. The caller holds the product lock.
func promote(tx *gorm.DB, variation *models.ProductVariation) error {
	if err := tx.Model(&models.ProductVariation{}).
		Where("product_id = ? AND id <> ? AND main_variation = ?", variation.ProductID, variation.ID, true).
		Update("main_variation", false).Error; err != nil {
		return fmt.Errorf("clear main variation: %w", err)
	}
	if err := tx.Model(variation).Update("main_variation", true).Error; err != nil {
		return fmt.Errorf("set main variation: %w", err)
	}
	variation.MainVariation = true
	return nil
}

// DeleteVariation removes a variation. The main variation can only be
// removed once it is the last one.
func (s *Store) DeleteVariation(ctx context.Context, id uint) error {
	variation, err := s.GetVariation(ctx, id)
	if err != nil {
		return err
	}
	return s.tx(ctx, func(tx *gorm.DB) error {
		if _, err := lockProduct(tx, variation.ProductID); err != nil {
			return err
		}
		if err := tx.First(&variation, id).Error; err != nil {
			return lookupError(err, "variation")
		}
		if variation.MainVariation {
			var siblings int64
			if err := tx.Model(&models.ProductVariation{}).
				Where("product_id = ? AND id <> ?", variation.ProductID, variation.ID).
				Count(&siblings).Error; err != nil {
				return fmt.Errorf("count variations: %w", err)
			}
			if siblings > 0 {
				return ErrMainVariationInUse
			}
		}
		if err := tx.Delete(&variation).Error; err != nil {
			return fmt.Errorf("delete variation: %w", err)
		}
		return nil
	})
}
