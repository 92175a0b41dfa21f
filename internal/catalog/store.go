// Package catalog persists suppliers, ingredients, recipes, products and
// product variations, and derives the costing figures shown for them.
package catalog

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bakery/models"
)

// Store runs catalog operations against a gorm database.
type Store struct {
	db       *gorm.DB
	validate *validator.Validate
}

func New(db *gorm.DB) *Store {
	return &Store{db: db, validate: newValidator()}
}

func (s *Store) tx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// check runs the struct tags of input followed by any extra checks.
func (s *Store) check(input any, extra ...func(*ValidationError)) error {
	verr := &ValidationError{}
	if err := s.validate.Struct(input); err != nil {
		if err := fromValidator(err, verr); err != nil {
			return err
		}
	}
	for _, fn := range extra {
		fn(verr)
	}
	return verr.orNil()
}

// contains narrows query to rows whose column holds term, ignoring case.
func contains(query *gorm.DB, column, term string) *gorm.DB {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return query
	}
	return query.Where("LOWER("+column+") LIKE ?", "%"+term+"%")
}

// lockProduct takes a row lock on the product so that concurrent changes to
// its variations serialize. sqlite ignores the locking clause; its writers
// are serialized by the database lock.
func lockProduct(tx *gorm.DB, productID uint) (models.Product, error) {
	var product models.Product
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, productID).Error; err != nil {
		return models.Product{}, lookupError(err, "product")
	}
	return product, nil
}

func deleteProducts(tx *gorm.DB, productIDs []uint) error {
	if len(productIDs) == 0 {
		return nil
	}
	if err := tx.Where("product_id IN ?", productIDs).Delete(&models.ProductVariation{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", productIDs).Delete(&models.Product{}).Error
}

func deleteRecipes(tx *gorm.DB, recipeIDs []uint) error {
	if len(recipeIDs) == 0 {
		return nil
	}
	if err := tx.Where("recipe_id IN ?", recipeIDs).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	var productIDs []uint
	if err := tx.Model(&models.Product{}).Where("recipe_id IN ?", recipeIDs).Pluck("id", &productIDs).Error; err != nil {
		return err
	}
	if err := deleteProducts(tx, productIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", recipeIDs).Delete(&models.Recipe{}).Error
}

func deleteIngredients(tx *gorm.DB, ingredientIDs []uint) error {
	if len(ingredientIDs) == 0 {
		return nil
	}
	if err := tx.Where("ingredient_id IN ?", ingredientIDs).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ingredientIDs).Delete(&models.Ingredient{}).Error
}

// Ping checks that the underlying database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
