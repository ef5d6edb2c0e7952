package model

import (
	"time"

	"gorm.io/gorm"
)

// Material is a reference catalog entry (e.g. Stainless Steel, Aluminium).
type Material struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Combinations []ProductCombination `gorm:"foreignKey:MaterialID" json:"-"`
}

func (Material) TableName() string {
	return "materials"
}
