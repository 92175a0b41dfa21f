package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bakery/internal/costing"
	"bakery/models"
)

// RecipeInput is a recipe submission: the recipe fields and its full list of
// ingredient rows, which replaces the stored rows on update.
type RecipeInput struct {
	Name        string              `form:"name" validate:"required,max=255"`
	Description string              `form:"description" validate:"max=255"`
	Shape       string              `form:"shape" validate:"required"`
	Diameter    decimal.NullDecimal `form:"diameter"`
	Length      decimal.NullDecimal `form:"length"`
	Width       decimal.NullDecimal `form:"width"`
	Ingredients []RecipeRowInput    `form:"ingredients" validate:"dive"`
}

type RecipeRowInput struct {
	IngredientID    uint            `form:"ingredient_id" validate:"required"`
	QuantityInGrams decimal.Decimal `form:"quantity_in_grams" validate:"gt=0,lte=99999.99,decimal2"`
}

func (s *Store) ListRecipes(ctx context.Context, query string) ([]models.Recipe, error) {
	db := s.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Order("name asc")
	db = contains(db, "name", query)

	var recipes []models.Recipe
	if err := db.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe loads a recipe with its rows and their ingredients.
func (s *Store) GetRecipe(ctx context.Context, id uint) (models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error; err != nil {
		return models.Recipe{}, lookupError(err, "recipe")
	}
	return recipe, nil
}

func (s *Store) CreateRecipe(ctx context.Context, in RecipeInput) (models.Recipe, error) {
	return s.saveRecipe(ctx, 0, in)
}

// UpdateRecipe replaces the recipe fields and rows. Existing product
// variations keep their dimensions.
func (s *Store) UpdateRecipe(ctx context.Context, id uint, in RecipeInput) (models.Recipe, error) {
	return s.saveRecipe(ctx, id, in)
}

func (s *Store) validateRecipe(ctx context.Context, in RecipeInput) (costing.Dimensions, error) {
	var dims costing.Dimensions
	err := s.check(in, func(verr *ValidationError) {
		if strings.TrimSpace(in.Shape) == "" {
			return
		}
		shape, err := costing.ParseShape(in.Shape)
		if err != nil {
			verr.add("shape", "Select a valid choice.")
			return
		}
		if err := costing.ValidateDimensions(shape, in.Diameter, in.Length, in.Width); err != nil {
			dimensionErrors(err, verr)
			return
		}
		dims, _ = costing.Footprint(shape, in.Diameter, in.Length, in.Width)
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(in.Ingredients))
	for _, row := range in.Ingredients {
		ids = append(ids, row.IngredientID)
	}
	if len(ids) == 0 {
		return dims, nil
	}

	var known []uint
	if err := s.db.WithContext(ctx).Model(&models.Ingredient{}).Where("id IN ?", ids).Pluck("id", &known).Error; err != nil {
		return nil, fmt.Errorf("check recipe ingredients: %w", err)
	}
	found := make(map[uint]bool, len(known))
	for _, id := range known {
		found[id] = true
	}
	verr := &ValidationError{}
	for i, row := range in.Ingredients {
		if !found[row.IngredientID] {
			verr.add(fmt.Sprintf("ingredients[%d].ingredient_id", i), "Select a valid choice.")
		}
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return dims, nil
}

func (s *Store) saveRecipe(ctx context.Context, id uint, in RecipeInput) (models.Recipe, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	dims, err := s.validateRecipe(ctx, in)
	if err != nil {
		return models.Recipe{}, err
	}

	var recipeID uint
	err = s.tx(ctx, func(tx *gorm.DB) error {
		var recipe models.Recipe
		if id != 0 {
			if err := tx.First(&recipe, id).Error; err != nil {
				return lookupError(err, "recipe")
			}
		}
		recipe.Name = in.Name
		recipe.Description = in.Description
		recipe.SetDimensions(dims)

		if err := tx.Omit(clause.Associations).Save(&recipe).Error; err != nil {
			return fmt.Errorf("save recipe: %w", err)
		}
		recipeID = recipe.ID

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("clear recipe ingredients: %w", err)
		}
		if len(in.Ingredients) == 0 {
			return nil
		}
		rows := make([]models.RecipeIngredient, 0, len(in.Ingredients))
		for _, row := range in.Ingredients {
			rows = append(rows, models.RecipeIngredient{
				RecipeID:        recipe.ID,
				IngredientID:    row.IngredientID,
				QuantityInGrams: row.QuantityInGrams,
			})
		}
		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return fmt.Errorf("save recipe ingredients: %w", hookError(err))
		}
		return nil
	})
	if err != nil {
		return models.Recipe{}, err
	}
	return s.GetRecipe(ctx, recipeID)
}

// DeleteRecipe removes the recipe with its rows, and the products made from
// it together with their variations.
func (s *Store) DeleteRecipe(ctx context.Context, id uint) error {
	return s.tx(ctx, func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, id).Error; err != nil {
			return lookupError(err, "recipe")
		}
		if err := deleteRecipes(tx, []uint{id}); err != nil {
			return fmt.Errorf("delete recipe: %w", err)
		}
		return nil
	})
}
