package catalog

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"primecost/models"
)

// IngredientRow is one proposed (ingredient, quantity) pair of a dish form
// submission. A zero IngredientID marks a blank row.
type IngredientRow struct {
	IngredientID uint    `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

// DishInput carries the writable dish fields. Rows is the complete desired
// association set; a nil Rows leaves the existing associations untouched,
// while an empty non-nil slice clears them.
type DishInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Rows        []IngredientRow `json:"ingredients"`
}

// CreateDish persists a new dish and reconciles its initial ingredient rows
// in the same transaction.
func (s *Service) CreateDish(ctx context.Context, in DishInput) (*models.Dish, error) {
	if err := validateDishInput(in); err != nil {
		return nil, err
	}

	dish := models.Dish{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&dish).Error; err != nil {
			return fmt.Errorf("create dish: %w", err)
		}
		if len(in.Rows) > 0 {
			return s.reconcile(tx, dish.ID, in.Rows)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetDish(ctx, dish.ID)
}

// UpdateDish applies metadata changes and, when rows are supplied, reconciles
// the association set, all in one transaction so a partial failure cannot
// leave name and ingredient list inconsistent.
func (s *Service) UpdateDish(ctx context.Context, id uint, in DishInput) (*models.Dish, error) {
	if err := validateDishInput(in); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dish models.Dish
		if err := tx.First(&dish, id).Error; err != nil {
			return fmt.Errorf("load dish %d: %w", id, err)
		}
		updates := map[string]any{
			"name":        strings.TrimSpace(in.Name),
			"description": in.Description,
		}
		if err := tx.Model(&dish).Updates(updates).Error; err != nil {
			return fmt.Errorf("update dish %d: %w", id, err)
		}
		if in.Rows != nil {
			return s.reconcile(tx, id, in.Rows)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetDish(ctx, id)
}

// ReconcileDishIngredients brings the dish's association set into exact
// correspondence with the proposed rows.
func (s *Service) ReconcileDishIngredients(ctx context.Context, dishID uint, rows []IngredientRow) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dish models.Dish
		if err := tx.First(&dish, dishID).Error; err != nil {
			return fmt.Errorf("load dish %d: %w", dishID, err)
		}
		return s.reconcile(tx, dishID, rows)
	})
}

// DeleteDish removes a dish and its associations. Referenced ingredients are
// untouched. Associations go first so the dish row never outlives orphans.
func (s *Service) DeleteDish(ctx context.Context, dishID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dish models.Dish
		if err := tx.First(&dish, dishID).Error; err != nil {
			return fmt.Errorf("load dish %d: %w", dishID, err)
		}
		if err := tx.Where("dish_id = ?", dishID).Delete(&models.DishIngredient{}).Error; err != nil {
			return fmt.Errorf("remove associations of dish %d: %w", dishID, err)
		}
		if err := tx.Delete(&dish).Error; err != nil {
			return fmt.Errorf("delete dish %d: %w", dishID, err)
		}
		return nil
	})
}

// GetDish loads one dish with its associations, their ingredients, and the
// ingredients' units.
func (s *Service) GetDish(ctx context.Context, dishID uint) (*models.Dish, error) {
	var dish models.Dish
	if err := s.db.WithContext(ctx).
		Preload("Ingredients", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("dish_ingredients.id asc")
		}).
		Preload("Ingredients.Ingredient.Unit").
		First(&dish, dishID).Error; err != nil {
		return nil, fmt.Errorf("load dish %d: %w", dishID, err)
	}
	return &dish, nil
}

// ListDishes returns all dishes with their associations, newest first.
func (s *Service) ListDishes(ctx context.Context) ([]models.Dish, error) {
	var dishes []models.Dish
	if err := s.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Order("id desc").
		Find(&dishes).Error; err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}
	return dishes, nil
}

// DishTotalCost recomputes the dish cost from its current association state.
func (s *Service) DishTotalCost(ctx context.Context, dishID uint) (float64, error) {
	dish, err := s.GetDish(ctx, dishID)
	if err != nil {
		return 0, err
	}
	return dish.TotalCost(), nil
}
