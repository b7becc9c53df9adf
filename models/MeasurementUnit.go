package models

import (
	"gorm.io/gorm"
)

// MeasurementUnit is a static glossary entry describing a quantity unit.
// The registry is seeded at startup and never mutated by application logic.
type MeasurementUnit struct {
	gorm.Model
	FullName    string `gorm:"size:50;uniqueIndex;not null" json:"full_name"`
	Designation string `gorm:"size:10;not null" json:"designation"`
}
