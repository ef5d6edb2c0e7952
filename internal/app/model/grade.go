package model

import (
	"time"

	"gorm.io/gorm"
)

// Grade is a reference catalog entry (e.g. 304, A105, C45).
type Grade struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Combinations []ProductCombination `gorm:"foreignKey:GradeID" json:"-"`
}

func (Grade) TableName() string {
	return "grades"
}
