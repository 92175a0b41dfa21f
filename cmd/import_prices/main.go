package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"bakery/internal/catalog"
	"bakery/internal/config"
	"bakery/internal/db"
	applog "bakery/internal/log"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: import_prices <price-sheet.csv|price-sheet.pdf>")
		os.Exit(2)
	}

	if err := run(context.Background(), os.Args[1], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string, out io.Writer) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("price sheet path must not be empty")
	}

	updates, err := readPriceSheet(path)
	if err != nil {
		return fmt.Errorf("read price sheet: %w", err)
	}
	if len(updates) == 0 {
		return fmt.Errorf("price sheet %s has no price lines", path)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		return err
	}

	database, err := db.Configure(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	result, err := catalog.New(database).ImportPrices(ctx, updates)
	if err != nil {
		if fields := catalog.FieldErrors(err); fields != nil {
			for field, message := range fields {
				fmt.Fprintf(out, "%s: %s\n", field, message)
			}
		}
		return fmt.Errorf("import prices: %w", err)
	}

	applog.Info(ctx, "price sheet imported", "path", path, "created", result.Created, "updated", result.Updated, "unchanged", result.Unchanged)
	fmt.Fprintf(out, "imported %d lines: %d created, %d updated, %d unchanged\n",
		len(updates), result.Created, result.Updated, result.Unchanged)
	return nil
}
