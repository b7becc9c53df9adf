package models

import (
	"gorm.io/gorm"
)

// Dish is a named recipe composed of weighted ingredient quantities.
type Dish struct {
	gorm.Model
	Name        string           `gorm:"size:128;not null" json:"name"`
	Description string           `gorm:"type:text" json:"description"`
	Ingredients []DishIngredient `gorm:"foreignKey:DishID" json:"ingredients"`
}

// TotalCost sums amount times ingredient price over the loaded associations.
// The product is computed in floating point against the decimal price; the
// resulting precision loss is accepted. Associations without a preloaded
// ingredient contribute nothing.
func (d *Dish) TotalCost() float64 {
	var total float64
	for _, association := range d.Ingredients {
		if association.Ingredient == nil {
			continue
		}
		total += association.Amount * association.Ingredient.Price.InexactFloat64()
	}
	return total
}
