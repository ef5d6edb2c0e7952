package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ProductCombination is one product x material x grade record with optional
// physical and commercial attributes. FinalProductName is derived and owned by
// the server; clients never set it directly.
type ProductCombination struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	ProductID        uint           `gorm:"not null;index" json:"product_id"`
	MaterialID       uint           `gorm:"not null;index" json:"material_id"`
	GradeID          uint           `gorm:"not null;index" json:"grade_id"`
	FinalProductName string         `gorm:"not null" json:"final_product_name"`
	Shape            string         `gorm:"default:''" json:"shape"`
	Length           string         `gorm:"default:''" json:"length"`
	Thickness        string         `gorm:"default:''" json:"thickness"`
	Price            string         `gorm:"default:''" json:"price"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Product  Product  `gorm:"foreignKey:ProductID" json:"product"`
	Material Material `gorm:"foreignKey:MaterialID" json:"material"`
	Grade    Grade    `gorm:"foreignKey:GradeID" json:"grade"`
}

func (ProductCombination) TableName() string {
	return "product_combinations"
}

// ComposeFinalName builds the display name for a combination. Every write path
// goes through this function; names are reproduced verbatim, no trimming or
// casing is applied.
func ComposeFinalName(materialName, gradeName, productName string) string {
	return fmt.Sprintf("%s %s %s", materialName, gradeName, productName)
}
