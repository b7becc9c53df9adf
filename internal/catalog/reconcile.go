package catalog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"primecost/models"
)

// reconcile treats rows as the complete desired association set for the dish:
// proposed pairs are upserted, everything else is removed. It must run inside
// a transaction so a failing row leaves prior state untouched. Blank rows
// (zero ingredient id) carry no meaning and are skipped. A duplicated
// ingredient id resolves last-write-wins through the upsert primitive.
func (s *Service) reconcile(tx *gorm.DB, dishID uint, rows []IngredientRow) error {
	kept := make([]uint, 0, len(rows))
	seen := make(map[uint]bool, len(rows))

	for _, row := range rows {
		if row.IngredientID == 0 {
			continue
		}

		var ingredient models.Ingredient
		if err := tx.First(&ingredient, row.IngredientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) && s.lenient {
				continue
			}
			return fmt.Errorf("resolve ingredient %d: %w", row.IngredientID, err)
		}

		if err := upsertAssociation(tx, dishID, ingredient.ID, row.Quantity); err != nil {
			return err
		}

		if !seen[ingredient.ID] {
			seen[ingredient.ID] = true
			kept = append(kept, ingredient.ID)
		}
	}

	stale := tx.Where("dish_id = ?", dishID)
	if len(kept) > 0 {
		stale = stale.Where("ingredient_id NOT IN ?", kept)
	}
	if err := stale.Delete(&models.DishIngredient{}).Error; err != nil {
		return fmt.Errorf("remove stale associations: %w", err)
	}

	return nil
}

// upsertAssociation is the engine's primitive: look up the association by its
// (dish, ingredient) natural key, update the amount when present, insert
// otherwise. It never creates a second row for the same pair.
func upsertAssociation(tx *gorm.DB, dishID, ingredientID uint, amount float64) error {
	var association models.DishIngredient
	err := tx.Where("dish_id = ? AND ingredient_id = ?", dishID, ingredientID).
		First(&association).Error

	switch {
	case err == nil:
		if err := tx.Model(&association).Update("amount", amount).Error; err != nil {
			return fmt.Errorf("update association %d/%d: %w", dishID, ingredientID, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		association = models.DishIngredient{
			DishID:       dishID,
			IngredientID: ingredientID,
			Amount:       amount,
		}
		if err := tx.Create(&association).Error; err != nil {
			return fmt.Errorf("create association %d/%d: %w", dishID, ingredientID, err)
		}
	default:
		return fmt.Errorf("load association %d/%d: %w", dishID, ingredientID, err)
	}

	return nil
}
