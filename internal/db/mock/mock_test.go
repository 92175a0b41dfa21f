package mock

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"bakery/internal/catalog"
	"bakery/models"
)

func TestNewSeedsExpectedRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := New(ctx)
	if err != nil {
		t.Fatalf("mock database initialization failed: %v", err)
	}

	var suppliers []models.Supplier
	if err := db.WithContext(ctx).Find(&suppliers).Error; err != nil {
		t.Fatalf("query suppliers: %v", err)
	}
	if len(suppliers) != 2 {
		t.Fatalf("suppliers = %d, want 2", len(suppliers))
	}

	costings, err := catalog.New(db).ProductCostings(ctx, catalog.ProductFilter{})
	if err != nil {
		t.Fatalf("product costings: %v", err)
	}
	if len(costings) != 3 {
		t.Fatalf("products = %d, want 3", len(costings))
	}
	for _, c := range costings {
		mains := 0
		for _, v := range c.Variations {
			if v.Variation.MainVariation {
				mains++
			}
		}
		if mains != 1 {
			t.Fatalf("%s has %d main variations, want 1", c.Product.ProductType, mains)
		}
	}
}

func TestNewReturnsIndependentDatabases(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	first, err := New(ctx)
	if err != nil {
		t.Fatalf("first mock database: %v", err)
	}
	second, err := New(ctx)
	if err != nil {
		t.Fatalf("second mock database: %v", err)
	}

	if err := first.WithContext(ctx).Model(&models.Ingredient{}).
		Where("name = ?", "Butter").
		UpdateColumn("price_per_gram", decimal.RequireFromString("0.50")).Error; err != nil {
		t.Fatalf("update butter: %v", err)
	}

	var butter models.Ingredient
	if err := second.WithContext(ctx).Where("name = ?", "Butter").First(&butter).Error; err != nil {
		t.Fatalf("load butter: %v", err)
	}
	if !butter.PricePerGram.Equal(decimal.RequireFromString("0.08")) {
		t.Fatalf("second database butter price = %s, want 0.08", butter.PricePerGram)
	}
}
