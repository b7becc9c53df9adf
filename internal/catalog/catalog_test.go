package catalog

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"primecost/models"
)

var testDatabaseCounter int64

func newTestService(t *testing.T, opts Options) (*Service, *gorm.DB) {
	t.Helper()

	name := fmt.Sprintf("file:catalog_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDatabaseCounter, 1))
	database, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := database.AutoMigrate(
		&models.MeasurementUnit{},
		&models.Ingredient{},
		&models.Dish{},
		&models.DishIngredient{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return New(database, opts), database
}

func createTestUnit(t *testing.T, db *gorm.DB, fullName, designation string) models.MeasurementUnit {
	t.Helper()
	unit := models.MeasurementUnit{FullName: fullName, Designation: designation}
	if err := db.Create(&unit).Error; err != nil {
		t.Fatalf("failed to create unit %s: %v", fullName, err)
	}
	return unit
}

func createTestIngredient(t *testing.T, db *gorm.DB, name, price string, unitID uint) models.Ingredient {
	t.Helper()
	ingredient := models.Ingredient{
		Name:   name,
		UnitID: unitID,
		Price:  decimal.RequireFromString(price),
	}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("failed to create ingredient %s: %v", name, err)
	}
	return ingredient
}

func createTestDish(t *testing.T, db *gorm.DB, name string) models.Dish {
	t.Helper()
	dish := models.Dish{Name: name}
	if err := db.Create(&dish).Error; err != nil {
		t.Fatalf("failed to create dish %s: %v", name, err)
	}
	return dish
}

func dishAssociations(t *testing.T, db *gorm.DB, dishID uint) map[uint]float64 {
	t.Helper()
	var rows []models.DishIngredient
	if err := db.Where("dish_id = ?", dishID).Find(&rows).Error; err != nil {
		t.Fatalf("failed to load associations: %v", err)
	}
	set := make(map[uint]float64, len(rows))
	for _, row := range rows {
		if _, exists := set[row.IngredientID]; exists {
			t.Fatalf("duplicate association row for ingredient %d", row.IngredientID)
		}
		set[row.IngredientID] = row.Amount
	}
	return set
}
