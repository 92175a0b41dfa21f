package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier is a vendor of raw materials. Suppliers are keyed by a UUID string.
type Supplier struct {
	ID          string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string         `gorm:"not null;index" json:"name"`
	RUC         string         `gorm:"column:ruc;type:varchar(13)" json:"ruc"`
	Email       string         `json:"email"`
	Phone       string         `gorm:"type:varchar(20)" json:"phone"`
	Address     string         `gorm:"type:text" json:"address"`
	Ingredients []Ingredient   `gorm:"foreignKey:SupplierID" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a random identifier when none is set.
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (s Supplier) String() string {
	return s.Name
}
