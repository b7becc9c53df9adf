package handlers

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"primecost/internal/catalog"
	"primecost/models"
)

var testDatabaseCounter int64

func withTestService(t *testing.T) *gorm.DB {
	t.Helper()

	originalDatabase := database
	originalService := service

	name := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDatabaseCounter, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.MeasurementUnit{},
		&models.Ingredient{},
		&models.Dish{},
		&models.DishIngredient{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	Configure(db, catalog.New(db, catalog.Options{}))

	t.Cleanup(func() {
		database = originalDatabase
		service = originalService
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func createUnit(t *testing.T, db *gorm.DB, fullName, designation string) models.MeasurementUnit {
	t.Helper()
	unit := models.MeasurementUnit{FullName: fullName, Designation: designation}
	if err := db.Create(&unit).Error; err != nil {
		t.Fatalf("failed to create unit: %v", err)
	}
	return unit
}
