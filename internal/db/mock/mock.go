package mock

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bakery/internal/catalog"
	"bakery/internal/db"
	applog "bakery/internal/log"
)

var sequence atomic.Int64

// New returns an in-memory sqlite database seeded with a small bakery: two
// suppliers, their ingredients, a round and a rectangular recipe, and
// products with size variations.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	dsn := fmt.Sprintf("file:bakery-mock-%d?mode=memory&cache=shared", sequence.Add(1))
	database, err := gorm.Open(sqlite.Open(dsn), db.GormConfig(logger.Silent))
	if err != nil {
		return nil, err
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := seed(ctx, catalog.New(database)); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func size(value string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(value))
}

func seed(ctx context.Context, store *catalog.Store) error {
	applog.Debug(ctx, "seeding mock database")

	mill, err := store.CreateSupplier(ctx, catalog.SupplierInput{
		Name:    "Molinos del Sur",
		RUC:     "1790012345001",
		Email:   "ventas@molinosdelsur.example",
		Phone:   "+593991234567",
		Address: "Av. de los Granos 120, Quito",
	})
	if err != nil {
		return fmt.Errorf("seed supplier: %w", err)
	}
	dairy, err := store.CreateSupplier(ctx, catalog.SupplierInput{
		Name:    "Lácteos Andinos",
		RUC:     "0990054321001",
		Email:   "pedidos@lacteosandinos.example",
		Phone:   "042345678901",
		Address: "Km 4.5 Vía a la Costa, Guayaquil",
	})
	if err != nil {
		return fmt.Errorf("seed supplier: %w", err)
	}

	ingredients := map[string]catalog.IngredientInput{
		"flour":     {Name: "Wheat flour", SupplierID: mill.ID, PricePerGram: price("0.02")},
		"sugar":     {Name: "Cane sugar", SupplierID: mill.ID, PricePerGram: price("0.03")},
		"cocoa":     {Name: "Cocoa powder", SupplierID: mill.ID, PricePerGram: price("0.15")},
		"butter":    {Name: "Butter", SupplierID: dairy.ID, PricePerGram: price("0.08")},
		"eggs":      {Name: "Eggs", SupplierID: dairy.ID, PricePerGram: price("0.05")},
		"chocolate": {Name: "Dark chocolate", PricePerGram: price("0.22")},
	}
	ids := make(map[string]uint, len(ingredients))
	for key, in := range ingredients {
		ingredient, err := store.CreateIngredient(ctx, in)
		if err != nil {
			return fmt.Errorf("seed ingredient %s: %w", in.Name, err)
		}
		ids[key] = ingredient.ID
	}

	cake, err := store.CreateRecipe(ctx, catalog.RecipeInput{
		Name:        "Chocolate cake",
		Description: "Three layer chocolate sponge",
		Shape:       "C",
		Diameter:    size("20"),
		Ingredients: []catalog.RecipeRowInput{
			{IngredientID: ids["flour"], QuantityInGrams: price("300")},
			{IngredientID: ids["sugar"], QuantityInGrams: price("250")},
			{IngredientID: ids["cocoa"], QuantityInGrams: price("80")},
			{IngredientID: ids["butter"], QuantityInGrams: price("200")},
			{IngredientID: ids["eggs"], QuantityInGrams: price("240")},
		},
	})
	if err != nil {
		return fmt.Errorf("seed recipe: %w", err)
	}
	brownie, err := store.CreateRecipe(ctx, catalog.RecipeInput{
		Name:        "Brownie tray",
		Description: "Fudgy brownie baked in a sheet pan",
		Shape:       "R",
		Length:      size("30"),
		Width:       size("20"),
		Ingredients: []catalog.RecipeRowInput{
			{IngredientID: ids["flour"], QuantityInGrams: price("150")},
			{IngredientID: ids["sugar"], QuantityInGrams: price("300")},
			{IngredientID: ids["chocolate"], QuantityInGrams: price("200")},
			{IngredientID: ids["butter"], QuantityInGrams: price("180")},
			{IngredientID: ids["eggs"], QuantityInGrams: price("200")},
		},
	})
	if err != nil {
		return fmt.Errorf("seed recipe: %w", err)
	}

	cakeProduct, err := store.CreateProduct(ctx, catalog.ProductInput{ProductType: "Chocolate cake", SalePrice: price("45.00"), RecipeID: cake.ID})
	if err != nil {
		return fmt.Errorf("seed product: %w", err)
	}
	for _, diameter := range []string{"15", "25"} {
		if _, err := store.AddVariation(ctx, cakeProduct.ID, catalog.VariationInput{Diameter: size(diameter)}); err != nil {
			return fmt.Errorf("seed variation: %w", err)
		}
	}

	brownieProduct, err := store.CreateProduct(ctx, catalog.ProductInput{ProductType: "Brownie tray", SalePrice: price("60.00"), RecipeID: brownie.ID})
	if err != nil {
		return fmt.Errorf("seed product: %w", err)
	}
	if _, err := store.AddVariation(ctx, brownieProduct.ID, catalog.VariationInput{Length: size("15"), Width: size("20")}); err != nil {
		return fmt.Errorf("seed variation: %w", err)
	}

	if _, err := store.CreateProduct(ctx, catalog.ProductInput{ProductType: "Tasting slice", SalePrice: decimal.Zero, RecipeID: cake.ID}); err != nil {
		return fmt.Errorf("seed product: %w", err)
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
