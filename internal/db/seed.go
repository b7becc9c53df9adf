package db

import (
	"fmt"

	"gorm.io/gorm"

	"primecost/models"
)

// DefaultUnits is the fixed measurement-unit glossary. The registry is
// reference data: the application reads it but never mutates it.
var DefaultUnits = []models.MeasurementUnit{
	{FullName: "liter", Designation: "l"},
	{FullName: "milliliter", Designation: "ml"},
	{FullName: "gram", Designation: "g"},
	{FullName: "kilogram", Designation: "kg"},
	{FullName: "piece", Designation: "pcs"},
}

// SeedUnits inserts any missing registry units, keyed by full name. Calling
// it repeatedly is safe.
func SeedUnits(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database handle is nil")
	}

	for _, unit := range DefaultUnits {
		record := models.MeasurementUnit{FullName: unit.FullName, Designation: unit.Designation}
		if err := db.Where("full_name = ?", unit.FullName).FirstOrCreate(&record).Error; err != nil {
			return fmt.Errorf("seed unit %s: %w", unit.FullName, err)
		}
	}

	return nil
}
