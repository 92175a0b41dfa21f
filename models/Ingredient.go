package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrInvalidPrice is returned when an ingredient price per gram is below 0.01.
var ErrInvalidPrice = errors.New("models: price per gram must be at least 0.01")

// MinPricePerGram is the lowest price an ingredient may carry.
var MinPricePerGram = decimal.RequireFromString("0.01")

type Ingredient struct {
	gorm.Model
	Name         string          `gorm:"not null;index" json:"name"`
	SupplierID   *string         `gorm:"type:varchar(36);index" json:"supplier_id,omitempty"`
	Supplier     *Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	PricePerGram decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_per_gram"`
}

// Validate reports whether the ingredient can be persisted.
func (i Ingredient) Validate() error {
	if i.PricePerGram.LessThan(MinPricePerGram) {
		return fmt.Errorf("%w: got %s", ErrInvalidPrice, i.PricePerGram)
	}
	return checkScale("price_per_gram", i.PricePerGram)
}

// BeforeSave rejects invalid prices on every insert and full save.
func (i *Ingredient) BeforeSave(tx *gorm.DB) error {
	return i.Validate()
}

// String truncates the name to 50 characters for list displays.
func (i Ingredient) String() string {
	runes := []rune(i.Name)
	if len(runes) > 50 {
		return string(runes[:50])
	}
	return i.Name
}
