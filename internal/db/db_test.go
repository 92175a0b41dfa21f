package db

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"gorm.io/gorm/logger"

	"bakery/internal/config"
	"bakery/models"
)

func TestInitializeRequiresURL(t *testing.T) {
	t.Parallel()

	db, err := Initialize(config.DatabaseConfig{URL: ""})
	if err == nil {
		t.Fatal("expected error when database URL is empty")
	}
	if db != nil {
		t.Fatal("expected returned db handle to be nil on error")
	}
}

func TestIsPostgres(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want bool
	}{
		{"postgres://bakery@localhost/bakery", true},
		{"POSTGRESQL://bakery@localhost/bakery", true},
		{"host=localhost user=bakery dbname=bakery", true},
		{"file:bakery.db", false},
		{"sqlite://bakery.db", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			if got := IsPostgres(tt.url); got != tt.want {
				t.Fatalf("IsPostgres(%q) = %t, want %t", tt.url, got, tt.want)
			}
		})
	}
}

func TestAutoMigrateRejectsNilDatabase(t *testing.T) {
	t.Parallel()

	if err := AutoMigrate(nil); err == nil {
		t.Fatal("expected error when database handle is nil")
	}
}

func TestMigrateRejectsNilDatabase(t *testing.T) {
	t.Parallel()

	if err := Migrate(context.Background(), nil); err == nil {
		t.Fatal("expected error when database handle is nil")
	}
}

func TestConfigureWithSQLite(t *testing.T) {
	t.Parallel()

	database, err := Configure(context.Background(), config.DatabaseConfig{
		URL:          "file:db-configure?mode=memory&cache=shared",
		MaxOpenConns: 1,
	})
	if err != nil {
		t.Fatalf("configure sqlite database: %v", err)
	}

	for _, model := range Models() {
		if !database.Migrator().HasTable(model) {
			t.Fatalf("expected table for %T", model)
		}
	}
}

func TestMainVariationIndexRejectsSecondMain(t *testing.T) {
	t.Parallel()

	database, err := Initialize(config.DatabaseConfig{URL: "file:db-main-index?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	database.Logger = database.Logger.LogMode(logger.Silent)
	if err := AutoMigrate(database); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	first := models.ProductVariation{ProductID: 1, MainVariation: true}
	if err := database.Create(&first).Error; err != nil {
		t.Fatalf("create first main: %v", err)
	}
	second := models.ProductVariation{ProductID: 1, MainVariation: true}
	if err := database.Create(&second).Error; err == nil {
		t.Fatal("expected unique index to reject a second main variation")
	}
	other := models.ProductVariation{ProductID: 2, MainVariation: true}
	if err := database.Create(&other).Error; err != nil {
		t.Fatalf("main variation on another product: %v", err)
	}
}

func TestEmbeddedMigrationsDeclareUpAndDown(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected embedded migrations")
	}
	for _, entry := range entries {
		body, err := fs.ReadFile(migrationFS, "migrations/"+entry.Name())
		if err != nil {
			t.Fatalf("read %s: %v", entry.Name(), err)
		}
		text := string(body)
		if !strings.Contains(text, "-- +goose Up") || !strings.Contains(text, "-- +goose Down") {
			t.Fatalf("%s is missing goose annotations", entry.Name())
		}
	}
}

func TestConfigurePropagatesInitializationError(t *testing.T) {
	t.Parallel()

	if _, err := Configure(context.Background(), config.DatabaseConfig{}); err == nil {
		t.Fatal("expected configuration error when initialize fails")
	}
}

func TestMustConfigurePanicsOnError(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic when configuration fails")
		}
	}()

	MustConfigure(context.Background(), config.DatabaseConfig{})
}
