package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ingredient is a priced, unit-denominated raw material.
type Ingredient struct {
	gorm.Model
	Name        string           `gorm:"size:64;not null" json:"name"`
	UnitID      uint             `gorm:"not null" json:"unit_id"`
	Unit        *MeasurementUnit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Description string           `gorm:"type:text" json:"description"`
	Price       decimal.Decimal  `gorm:"type:decimal(5,2);not null" json:"price"`
}
