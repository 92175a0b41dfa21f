package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bakery/models"
)

type ProductInput struct {
	ProductType string          `form:"product_type" validate:"required,max=255"`
	SalePrice   decimal.Decimal `form:"sale_price" validate:"gte=0,decimal2"`
	RecipeID    uint            `form:"recipe" validate:"required"`
}

// ProductFilter narrows ListProducts. ProductType matches a substring and
// SalePrice an exact price.
type ProductFilter struct {
	ProductType string
	SalePrice   decimal.NullDecimal
}

// withCosting preloads everything the costing methods read.
func withCosting(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Recipe").
		Preload("Recipe.Ingredients").
		Preload("Recipe.Ingredients.Ingredient").
		Preload("Variations", func(db *gorm.DB) *gorm.DB {
			return db.Order("main_variation desc, id asc")
		})
}

func (s *Store) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	db := withCosting(s.db.WithContext(ctx)).Order("product_type asc, id asc")
	db = contains(db, "product_type", filter.ProductType)
	if filter.SalePrice.Valid {
		db = db.Where("sale_price = ?", filter.SalePrice.Decimal)
	}

	var products []models.Product
	if err := db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetProduct loads a product with its recipe, ingredients and variations.
func (s *Store) GetProduct(ctx context.Context, id uint) (models.Product, error) {
	var product models.Product
	if err := withCosting(s.db.WithContext(ctx)).First(&product, id).Error; err != nil {
		return models.Product{}, lookupError(err, "product")
	}
	return product, nil
}

func (s *Store) validateProduct(ctx context.Context, in ProductInput) (models.Recipe, error) {
	if err := s.check(in); err != nil {
		return models.Recipe{}, err
	}
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, in.RecipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Recipe{}, fieldError("recipe", "Select a valid choice.")
		}
		return models.Recipe{}, fmt.Errorf("load recipe: %w", err)
	}
	return recipe, nil
}

// CreateProduct stores the product and derives its main variation from the
// recipe dimensions in the same transaction.
func (s *Store) CreateProduct(ctx context.Context, in ProductInput) (models.Product, error) {
	in.ProductType = strings.TrimSpace(in.ProductType)
	recipe, err := s.validateProduct(ctx, in)
	if err != nil {
		return models.Product{}, err
	}

	recipeID := recipe.ID
	product := models.Product{
		ProductType: in.ProductType,
		SalePrice:   in.SalePrice,
		RecipeID:    &recipeID,
	}
	err = s.tx(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&product).Error; err != nil {
			return fmt.Errorf("create product: %w", hookError(err))
		}
		product.Recipe = &recipe
		main, err := product.DeriveMainVariation()
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&main).Error; err != nil {
			return fmt.Errorf("create main variation: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Product{}, err
	}
	return s.GetProduct(ctx, product.ID)
}

// UpdateProduct changes the label, price and recipe. Variations are not
// re-derived when the recipe changes.
func (s *Store) UpdateProduct(ctx context.Context, id uint, in ProductInput) (models.Product, error) {
	in.ProductType = strings.TrimSpace(in.ProductType)
	recipe, err := s.validateProduct(ctx, in)
	if err != nil {
		return models.Product{}, err
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return models.Product{}, lookupError(err, "product")
	}
	recipeID := recipe.ID
	product.ProductType = in.ProductType
	product.SalePrice = in.SalePrice
	product.RecipeID = &recipeID
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(&product).Error; err != nil {
		return models.Product{}, fmt.Errorf("update product: %w", hookError(err))
	}
	return s.GetProduct(ctx, id)
}

// DeleteProduct removes the product and its variations.
func (s *Store) DeleteProduct(ctx context.Context, id uint) error {
	return s.tx(ctx, func(tx *gorm.DB) error {
		if _, err := lockProduct(tx, id); err != nil {
			return err
		}
		if err := deleteProducts(tx, []uint{id}); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		return nil
	})
}
