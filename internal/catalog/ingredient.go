package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"primecost/models"
)

// IngredientInput carries the writable ingredient fields.
type IngredientInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitID      uint            `json:"unit_id"`
	Price       decimal.Decimal `json:"price"`
}

// UnitOption is the nested unit entry of the picker projection.
type UnitOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	ID    uint   `json:"id"`
}

// IngredientOption is one entry of the picker projection consumed by the
// client-side ingredient form. The field names and nesting are a wire
// contract and must not change.
type IngredientOption struct {
	Name  string       `json:"name"`
	ID    uint         `json:"id"`
	Units []UnitOption `json:"units"`
}

// CreateIngredient validates the input, resolves the measurement unit, and
// persists a new ingredient.
func (s *Service) CreateIngredient(ctx context.Context, in IngredientInput) (*models.Ingredient, error) {
	if err := validateIngredientInput(in); err != nil {
		return nil, err
	}

	ingredient := models.Ingredient{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		UnitID:      in.UnitID,
		Price:       in.Price,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := resolveUnit(tx, in.UnitID); err != nil {
			return err
		}
		return tx.Create(&ingredient).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetIngredient(ctx, ingredient.ID)
}

// UpdateIngredient applies the input to an existing ingredient.
func (s *Service) UpdateIngredient(ctx context.Context, id uint, in IngredientInput) (*models.Ingredient, error) {
	if err := validateIngredientInput(in); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ingredient models.Ingredient
		if err := tx.First(&ingredient, id).Error; err != nil {
			return fmt.Errorf("load ingredient %d: %w", id, err)
		}
		if err := resolveUnit(tx, in.UnitID); err != nil {
			return err
		}
		updates := map[string]any{
			"name":        strings.TrimSpace(in.Name),
			"description": in.Description,
			"unit_id":     in.UnitID,
			"price":       in.Price,
		}
		return tx.Model(&ingredient).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetIngredient(ctx, id)
}

// GetIngredient loads one ingredient with its measurement unit.
func (s *Service) GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).Preload("Unit").First(&ingredient, id).Error; err != nil {
		return nil, fmt.Errorf("load ingredient %d: %w", id, err)
	}
	return &ingredient, nil
}

// ListIngredients returns all ingredients with their units, by name.
func (s *Service) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Preload("Unit").Order("name asc").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

// DeleteIngredient removes an ingredient unless any dish still references it.
// A missing id yields gorm.ErrRecordNotFound; a referenced ingredient yields
// *ReferentialConflictError naming the blocking dishes. There is no force
// delete.
func (s *Service) DeleteIngredient(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ingredient models.Ingredient
		if err := tx.First(&ingredient, id).Error; err != nil {
			return fmt.Errorf("load ingredient %d: %w", id, err)
		}

		var dishIDs []uint
		if err := tx.Model(&models.DishIngredient{}).
			Where("ingredient_id = ?", id).
			Distinct().
			Pluck("dish_id", &dishIDs).Error; err != nil {
			return fmt.Errorf("find referencing dishes: %w", err)
		}

		if len(dishIDs) > 0 {
			var names []string
			if err := tx.Model(&models.Dish{}).
				Where("id IN ?", dishIDs).
				Order("id asc").
				Pluck("name", &names).Error; err != nil {
				return fmt.Errorf("load referencing dish names: %w", err)
			}
			return &ReferentialConflictError{IngredientName: ingredient.Name, DishNames: names}
		}

		return tx.Delete(&ingredient).Error
	})
}

// IngredientOptions builds the read-only projection for the client-side
// ingredient picker.
func (s *Service) IngredientOptions(ctx context.Context) ([]IngredientOption, error) {
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Preload("Unit").Order("id asc").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("load ingredient options: %w", err)
	}

	options := make([]IngredientOption, 0, len(ingredients))
	for _, ingredient := range ingredients {
		option := IngredientOption{
			Name:  ingredient.Name,
			ID:    ingredient.ID,
			Units: []UnitOption{},
		}
		if ingredient.Unit != nil {
			option.Units = append(option.Units, UnitOption{
				Name:  ingredient.Unit.Designation,
				Value: ingredient.Unit.FullName,
				ID:    ingredient.Unit.ID,
			})
		}
		options = append(options, option)
	}
	return options, nil
}

// ListUnits returns the measurement unit registry.
func (s *Service) ListUnits(ctx context.Context) ([]models.MeasurementUnit, error) {
	var units []models.MeasurementUnit
	if err := s.db.WithContext(ctx).Order("id asc").Find(&units).Error; err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	return units, nil
}

func resolveUnit(tx *gorm.DB, unitID uint) error {
	var unit models.MeasurementUnit
	if err := tx.First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ValidationError{Field: "unit_id", Message: fmt.Sprintf("measurement unit %d does not exist", unitID)}
		}
		return fmt.Errorf("resolve unit %d: %w", unitID, err)
	}
	return nil
}
