package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"primecost/models"
)

func TestDeleteIngredientGuard(t *testing.T) {
	svc, db := newTestService(t, Options{})
	ctx := context.Background()

	unit := createTestUnit(t, db, "gram", "g")
	beet := createTestIngredient(t, db, "Beet", "0.4", unit.ID)
	dish := createTestDish(t, db, "Borscht")

	if err := svc.ReconcileDishIngredients(ctx, dish.ID, []IngredientRow{
		{IngredientID: beet.ID, Quantity: 300},
	}); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	err := svc.DeleteIngredient(ctx, beet.ID)
	var conflict *ReferentialConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected referential conflict, got %v", err)
	}
	wantMessage := fmt.Sprintf("Cannot delete ingredient %q because it is part of the following dishes: \nBorscht", "Beet")
	if conflict.Error() != wantMessage {
		t.Fatalf("conflict message = %q, want %q", conflict.Error(), wantMessage)
	}

	// The ingredient row must survive a blocked delete.
	if _, err := svc.GetIngredient(ctx, beet.ID); err != nil {
		t.Fatalf("ingredient disappeared after blocked delete: %v", err)
	}

	// Once the referencing dish is gone the delete goes through.
	if err := svc.DeleteDish(ctx, dish.ID); err != nil {
		t.Fatalf("DeleteDish failed: %v", err)
	}
	if err := svc.DeleteIngredient(ctx, beet.ID); err != nil {
		t.Fatalf("DeleteIngredient after dish removal failed: %v", err)
	}
	if _, err := svc.GetIngredient(ctx, beet.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record-not-found after delete, got %v", err)
	}
}

func TestDeleteIngredientListsAllBlockingDishes(t *testing.T) {
	svc, db := newTestService(t, Options{})
	ctx := context.Background()

	unit := createTestUnit(t, db, "gram", "g")
	salt := createTestIngredient(t, db, "Salt", "0.1", unit.ID)
	first := createTestDish(t, db, "Soup")
	second := createTestDish(t, db, "Bread")

	for _, dish := range []models.Dish{first, second} {
		if err := svc.ReconcileDishIngredients(ctx, dish.ID, []IngredientRow{
			{IngredientID: salt.ID, Quantity: 2},
		}); err != nil {
			t.Fatalf("reconcile for %s failed: %v", dish.Name, err)
		}
	}

	err := svc.DeleteIngredient(ctx, salt.ID)
	var conflict *ReferentialConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected referential conflict, got %v", err)
	}
	if len(conflict.DishNames) != 2 || conflict.DishNames[0] != "Soup" || conflict.DishNames[1] != "Bread" {
		t.Fatalf("unexpected blocking dish names: %v", conflict.DishNames)
	}
}

func TestDeleteIngredientNotFound(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	err := svc.DeleteIngredient(context.Background(), 42)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record-not-found error, got %v", err)
	}
}

func TestCreateIngredient(t *testing.T) {
	svc, db := newTestService(t, Options{})
	ctx := context.Background()

	unit := createTestUnit(t, db, "kilogram", "kg")

	ingredient, err := svc.CreateIngredient(ctx, IngredientInput{
		Name:        "  Flour  ",
		Description: "Wheat flour",
		UnitID:      unit.ID,
		Price:       decimal.RequireFromString("42.50"),
	})
	if err != nil {
		t.Fatalf("CreateIngredient returned error: %v", err)
	}
	if ingredient.Name != "Flour" {
		t.Fatalf("name not trimmed: %q", ingredient.Name)
	}
	if ingredient.Unit == nil || ingredient.Unit.Designation != "kg" {
		t.Fatalf("unit not preloaded: %+v", ingredient.Unit)
	}
	if !ingredient.Price.Equal(decimal.RequireFromString("42.5")) {
		t.Fatalf("unexpected price: %s", ingredient.Price)
	}
}

func TestCreateIngredientUnknownUnit(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	_, err := svc.CreateIngredient(context.Background(), IngredientInput{
		Name:   "Ghost",
		UnitID: 777,
		Price:  decimal.RequireFromString("1"),
	})
	var validation *ValidationError
	if !errors.As(err, &validation) || validation.Field != "unit_id" {
		t.Fatalf("expected unit_id validation error, got %v", err)
	}
}

func TestUpdateIngredient(t *testing.T) {
	svc, db := newTestService(t, Options{})
	ctx := context.Background()

	gram := createTestUnit(t, db, "gram", "g")
	kilo := createTestUnit(t, db, "kilogram", "kg")
	ingredient := createTestIngredient(t, db, "Sugar", "1.20", gram.ID)

	updated, err := svc.UpdateIngredient(ctx, ingredient.ID, IngredientInput{
		Name:   "Cane Sugar",
		UnitID: kilo.ID,
		Price:  decimal.RequireFromString("950.99"),
	})
	if err != nil {
		t.Fatalf("UpdateIngredient returned error: %v", err)
	}
	if updated.Name != "Cane Sugar" || updated.UnitID != kilo.ID {
		t.Fatalf("update not applied: %+v", updated)
	}

	_, err = svc.UpdateIngredient(ctx, 9999, IngredientInput{
		Name:   "Missing",
		UnitID: gram.ID,
		Price:  decimal.RequireFromString("1"),
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record-not-found for missing ingredient, got %v", err)
	}
}

func TestIngredientValidation(t *testing.T) {
	svc, db := newTestService(t, Options{})
	ctx := context.Background()
	unit := createTestUnit(t, db, "gram", "g")

	longName := make([]byte, 65)
	for i := range longName {
		longName[i] = 'a'
	}

	tests := []struct {
		name  string
		input IngredientInput
		field string
	}{
		{"empty name", IngredientInput{UnitID: unit.ID, Price: decimal.RequireFromString("1")}, "name"},
		{"name too long", IngredientInput{Name: string(longName), UnitID: unit.ID, Price: decimal.RequireFromString("1")}, "name"},
		{"missing unit", IngredientInput{Name: "Salt", Price: decimal.RequireFromString("1")}, "unit_id"},
		{"negative price", IngredientInput{Name: "Salt", UnitID: unit.ID, Price: decimal.RequireFromString("-1")}, "price"},
		{"price too large", IngredientInput{Name: "Salt", UnitID: unit.ID, Price: decimal.RequireFromString("1000")}, "price"},
		{"too many decimal places", IngredientInput{Name: "Salt", UnitID: unit.ID, Price: decimal.RequireFromString("1.005")}, "price"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateIngredient(ctx, tt.input)
			var validation *ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if validation.Field != tt.field {
				t.Fatalf("validation field = %q, want %q", validation.Field, tt.field)
			}
		})
	}
}

func TestIngredientOptionsShape(t *testing.T) {
	svc, db := newTestService(t, Options{})
	ctx := context.Background()

	gram := createTestUnit(t, db, "gram", "g")
	piece := createTestUnit(t, db, "piece", "pcs")
	createTestIngredient(t, db, "Flour", "0.5", gram.ID)
	createTestIngredient(t, db, "Egg", "5", piece.ID)

	options, err := svc.IngredientOptions(ctx)
	if err != nil {
		t.Fatalf("IngredientOptions returned error: %v", err)
	}
	if len(options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(options))
	}
	flour := options[0]
	if flour.Name != "Flour" || len(flour.Units) != 1 {
		t.Fatalf("unexpected first option: %+v", flour)
	}
	if flour.Units[0].Name != "g" || flour.Units[0].Value != "gram" || flour.Units[0].ID != gram.ID {
		t.Fatalf("unexpected unit projection: %+v", flour.Units[0])
	}
}

func TestListIngredientsOrdersByName(t *testing.T) {
	svc, db := newTestService(t, Options{})
	ctx := context.Background()

	unit := createTestUnit(t, db, "gram", "g")
	createTestIngredient(t, db, "Zucchini", "1", unit.ID)
	createTestIngredient(t, db, "Apple", "1", unit.ID)

	ingredients, err := svc.ListIngredients(ctx)
	if err != nil {
		t.Fatalf("ListIngredients returned error: %v", err)
	}
	if len(ingredients) != 2 || ingredients[0].Name != "Apple" {
		t.Fatalf("unexpected ingredient order: %+v", ingredients)
	}
	if ingredients[0].Unit == nil {
		t.Fatal("unit not preloaded on list")
	}
}

func TestListUnits(t *testing.T) {
	svc, db := newTestService(t, Options{})
	ctx := context.Background()

	createTestUnit(t, db, "gram", "g")
	createTestUnit(t, db, "liter", "l")

	units, err := svc.ListUnits(ctx)
	if err != nil {
		t.Fatalf("ListUnits returned error: %v", err)
	}
	if len(units) != 2 || units[0].FullName != "gram" {
		t.Fatalf("unexpected units: %+v", units)
	}
}
