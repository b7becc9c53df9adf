package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	maxIngredientNameLength = 64
	maxDishNameLength       = 128
)

// priceLimit follows the decimal(5,2) column: three integer digits at most.
var priceLimit = decimal.NewFromInt(1000)

func validateIngredientInput(in IngredientInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if utf8.RuneCountInString(name) > maxIngredientNameLength {
		return &ValidationError{Field: "name", Message: "must be at most 64 characters"}
	}
	if in.UnitID == 0 {
		return &ValidationError{Field: "unit_id", Message: "is required"}
	}
	if in.Price.IsNegative() {
		return &ValidationError{Field: "price", Message: "must not be negative"}
	}
	if in.Price.GreaterThanOrEqual(priceLimit) {
		return &ValidationError{Field: "price", Message: "must be below 1000"}
	}
	if !in.Price.Equal(in.Price.Round(2)) {
		return &ValidationError{Field: "price", Message: "must have at most 2 decimal places"}
	}
	return nil
}

func validateDishInput(in DishInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if utf8.RuneCountInString(name) > maxDishNameLength {
		return &ValidationError{Field: "name", Message: "must be at most 128 characters"}
	}
	return nil
}
