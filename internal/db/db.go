package db

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"bakery/internal/config"
	applog "bakery/internal/log"
	"bakery/models"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// mainVariationIndex keeps at most one live main variation per product.
const mainVariationIndex = `CREATE UNIQUE INDEX IF NOT EXISTS uniq_product_variations_main
	ON product_variations (product_id)
	WHERE main_variation AND deleted_at IS NULL`

var DB *gorm.DB

// Models lists every persisted model in dependency order.
func Models() []any {
	return []any{
		&models.Supplier{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Product{},
		&models.ProductVariation{},
	}
}

// GormConfig returns the gorm settings shared by every connection.
func GormConfig(level logger.LogLevel) *gorm.Config {
	return &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(level),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		DisableForeignKeyConstraintWhenMigrating: true,
	}
}

// IsPostgres reports whether url addresses a Postgres server.
func IsPostgres(url string) bool {
	url = strings.ToLower(strings.TrimSpace(url))
	return strings.HasPrefix(url, "postgres://") ||
		strings.HasPrefix(url, "postgresql://") ||
		strings.Contains(url, "host=")
}

func dialector(url string) gorm.Dialector {
	if IsPostgres(url) {
		return postgres.Open(url)
	}
	return sqlite.Open(strings.TrimPrefix(url, "sqlite://"))
}

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("database URL must not be empty")
	}

	db, err := gorm.Open(dialector(cfg.URL), GormConfig(logger.Warn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	return db, nil
}

// AutoMigrate creates the schema from the models. It is used for sqlite,
// where the versioned SQL migrations do not apply.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database handle is nil")
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	if err := db.Exec(mainVariationIndex).Error; err != nil {
		return fmt.Errorf("create main variation index: %w", err)
	}
	return nil
}

// Migrate applies the embedded goose migrations to a Postgres database.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database handle is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}

	goose.SetBaseFS(migrationFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	applog.Info(ctx, "running database migrations")
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}
	applog.Info(ctx, "database migrations completed")
	return nil
}

func Configure(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	database, err := Initialize(cfg)
	if err != nil {
		return nil, err
	}

	if IsPostgres(cfg.URL) {
		err = Migrate(ctx, database)
	} else {
		err = AutoMigrate(database)
	}
	if err != nil {
		return nil, err
	}

	DB = database

	return database, nil
}

func MustConfigure(ctx context.Context, cfg config.DatabaseConfig) *gorm.DB {
	database, err := Configure(ctx, cfg)
	if err != nil {
		panic(err)
	}

	return database
}

func Get() *gorm.DB {
	return DB
}
