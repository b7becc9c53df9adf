package models

import (
	"gorm.io/gorm"
)

// DishIngredient links one dish to one ingredient with a quantity. At most
// one live row exists per (dish, ingredient) pair; the reconciliation engine
// maintains that invariant by always updating-or-creating on the pair.
type DishIngredient struct {
	gorm.Model
	DishID       uint    `gorm:"not null;index" json:"dish_id"`
	IngredientID uint    `gorm:"not null;index" json:"ingredient_id"`
	Amount       float64 `gorm:"not null" json:"amount"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}
