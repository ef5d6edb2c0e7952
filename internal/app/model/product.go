package model

import (
	"time"

	"gorm.io/gorm"
)

// Product is a reference catalog entry (e.g. Pipe, Tubing, Valves).
// Reference catalogs are seeded once and read-only afterwards.
type Product struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Combinations []ProductCombination `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
