package catalog

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"bakery/models"
)

type SupplierInput struct {
	Name    string `form:"name" validate:"required,max=255"`
	RUC     string `form:"ruc" validate:"required,max=13"`
	Email   string `form:"email" validate:"required,email"`
	Phone   string `form:"phone" validate:"required,max=20,phone"`
	Address string `form:"address" validate:"required"`
}

func (in SupplierInput) trimmed() SupplierInput {
	return SupplierInput{
		Name:    strings.TrimSpace(in.Name),
		RUC:     strings.TrimSpace(in.RUC),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
	}
}

func (in SupplierInput) apply(supplier *models.Supplier) {
	supplier.Name = in.Name
	supplier.RUC = in.RUC
	supplier.Email = in.Email
	supplier.Phone = in.Phone
	supplier.Address = in.Address
}

// ListSuppliers returns suppliers ordered by name. A non-empty query matches
// the name or the tax id.
func (s *Store) ListSuppliers(ctx context.Context, query string) ([]models.Supplier, error) {
	db := s.db.WithContext(ctx).Order("name asc")
	if term := strings.ToLower(strings.TrimSpace(query)); term != "" {
		like := "%" + term + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(ruc) LIKE ?", like, like)
	}

	var suppliers []models.Supplier
	if err := db.Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

func (s *Store) GetSupplier(ctx context.Context, id string) (models.Supplier, error) {
	var supplier models.Supplier
	if err := s.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		return models.Supplier{}, lookupError(err, "supplier")
	}
	return supplier, nil
}

func (s *Store) CreateSupplier(ctx context.Context, in SupplierInput) (models.Supplier, error) {
	in = in.trimmed()
	if err := s.check(in); err != nil {
		return models.Supplier{}, err
	}

	var supplier models.Supplier
	in.apply(&supplier)
	if err := s.db.WithContext(ctx).Create(&supplier).Error; err != nil {
		return models.Supplier{}, fmt.Errorf("create supplier: %w", err)
	}
	return supplier, nil
}

func (s *Store) UpdateSupplier(ctx context.Context, id string, in SupplierInput) (models.Supplier, error) {
	in = in.trimmed()
	if err := s.check(in); err != nil {
		return models.Supplier{}, err
	}

	supplier, err := s.GetSupplier(ctx, id)
	if err != nil {
		return models.Supplier{}, err
	}
	in.apply(&supplier)
	if err := s.db.WithContext(ctx).Save(&supplier).Error; err != nil {
		return models.Supplier{}, fmt.Errorf("update supplier: %w", err)
	}
	return supplier, nil
}

// DeleteSupplier removes the supplier together with its ingredients and the
// recipe rows that use them.
func (s *Store) DeleteSupplier(ctx context.Context, id string) error {
	return s.tx(ctx, func(tx *gorm.DB) error {
		var supplier models.Supplier
		if err := tx.First(&supplier, "id = ?", id).Error; err != nil {
			return lookupError(err, "supplier")
		}

		var ingredientIDs []uint
		if err := tx.Model(&models.Ingredient{}).Where("supplier_id = ?", id).Pluck("id", &ingredientIDs).Error; err != nil {
			return fmt.Errorf("list supplier ingredients: %w", err)
		}
		if err := deleteIngredients(tx, ingredientIDs); err != nil {
			return fmt.Errorf("delete supplier ingredients: %w", err)
		}
		if err := tx.Delete(&supplier).Error; err != nil {
			return fmt.Errorf("delete supplier: %w", err)
		}
		return nil
	})
}
