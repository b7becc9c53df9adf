package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"primecost/internal/catalog"
	applog "primecost/internal/log"
	"primecost/internal/report"
	"primecost/models"
)

type dishIngredientView struct {
	ID             uint    `json:"id"`
	IngredientID   uint    `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	Amount         float64 `json:"amount"`
	Unit           string  `json:"unit"`
	LineCost       float64 `json:"line_cost"`
}

type dishResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Ingredients []dishIngredientView `json:"ingredients"`
	TotalCost   float64              `json:"total_cost"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type dishCostResponse struct {
	DishID    uint    `json:"dish_id"`
	TotalCost float64 `json:"total_cost"`
}

// DishResource handles REST-style interactions for dish records, including
// the ingredient reconciliation and cost endpoints.
func DishResource(w http.ResponseWriter, r *http.Request) {
	if service == nil {
		applog.Debug(r.Context(), "dish request without configured service")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/dishes")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			listDishes(w, r)
		case http.MethodPost:
			createDish(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	segments := strings.Split(path, "/")
	idValue, err := strconv.ParseUint(segments[0], 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid dish identifier", "identifier", segments[0], "error", err)
		http.NotFound(w, r)
		return
	}
	dishID := uint(idValue)

	if len(segments) > 1 {
		switch segments[1] {
		case "ingredients":
			if r.Method != http.MethodPut {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			reconcileDish(w, r, dishID)
		case "cost":
			if r.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			showDishCost(w, r, dishID)
		case "report":
			if r.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			showDishReport(w, r, dishID)
		default:
			http.NotFound(w, r)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		showDish(w, r, dishID)
	case http.MethodPut:
		updateDish(w, r, dishID)
	case http.MethodDelete:
		deleteDish(w, r, dishID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listDishes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dishes, err := service.ListDishes(ctx)
	if err != nil {
		applog.Error(ctx, "failed to list dishes", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load dishes")
		return
	}

	responses := make([]dishResponse, 0, len(dishes))
	for _, dish := range dishes {
		responses = append(responses, projectDish(dish))
	}
	writeJSON(w, http.StatusOK, responses)
}

func showDish(w http.ResponseWriter, r *http.Request, dishID uint) {
	ctx := r.Context()
	dish, err := service.GetDish(ctx, dishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			applog.Debug(ctx, "dish not found", "id", dishID)
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load dish", "error", err, "id", dishID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load dish")
		return
	}
	writeJSON(w, http.StatusOK, projectDish(*dish))
}

func createDish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload catalog.DishInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid dish create payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	dish, err := service.CreateDish(ctx, payload)
	if err != nil {
		var validation *catalog.ValidationError
		switch {
		case errors.As(err, &validation):
			applog.Debug(ctx, "dish validation failed", "error", err)
			writeJSONError(w, http.StatusBadRequest, validation.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			applog.Debug(ctx, "dish create references unknown ingredient", "error", err)
			writeJSONError(w, http.StatusBadRequest, "unknown ingredient in submitted rows")
		default:
			applog.Error(ctx, "failed to create dish", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "unable to create dish")
		}
		return
	}

	writeJSON(w, http.StatusCreated, projectDish(*dish))
}

func updateDish(w http.ResponseWriter, r *http.Request, dishID uint) {
	ctx := r.Context()
	var payload catalog.DishInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid dish update payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	dish, err := service.UpdateDish(ctx, dishID, payload)
	if err != nil {
		var validation *catalog.ValidationError
		switch {
		case errors.As(err, &validation):
			applog.Debug(ctx, "dish update validation failed", "error", err)
			writeJSONError(w, http.StatusBadRequest, validation.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			applog.Debug(ctx, "dish or ingredient not found for update", "id", dishID, "error", err)
			http.NotFound(w, r)
		default:
			applog.Error(ctx, "failed to update dish", "error", err, "id", dishID)
			writeJSONError(w, http.StatusInternalServerError, "unable to update dish")
		}
		return
	}

	writeJSON(w, http.StatusOK, projectDish(*dish))
}

func reconcileDish(w http.ResponseWriter, r *http.Request, dishID uint) {
	ctx := r.Context()
	var rows []catalog.IngredientRow
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		applog.Debug(ctx, "invalid reconcile payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := service.ReconcileDishIngredients(ctx, dishID, rows); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			applog.Debug(ctx, "reconcile target not found", "id", dishID, "error", err)
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to reconcile dish ingredients", "error", err, "id", dishID)
		writeJSONError(w, http.StatusInternalServerError, "unable to save dish ingredients")
		return
	}

	showDish(w, r, dishID)
}

// deleteDish is the JSON deletion endpoint, reporting through the
// `{status, message}` shape.
func deleteDish(w http.ResponseWriter, r *http.Request, dishID uint) {
	ctx := r.Context()
	err := service.DeleteDish(ctx, dishID)
	if err == nil {
		writeStatusOK(w)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		applog.Debug(ctx, "dish not found for delete", "id", dishID)
		writeStatusError(w, http.StatusNotFound, "No such dish.")
		return
	}
	applog.Error(ctx, "failed to delete dish", "error", err, "id", dishID)
	writeStatusError(w, http.StatusInternalServerError, "unable to delete dish")
}

func showDishCost(w http.ResponseWriter, r *http.Request, dishID uint) {
	ctx := r.Context()
	total, err := service.DishTotalCost(ctx, dishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			applog.Debug(ctx, "dish not found for cost", "id", dishID)
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to compute dish cost", "error", err, "id", dishID)
		writeJSONError(w, http.StatusInternalServerError, "unable to compute dish cost")
		return
	}
	writeJSON(w, http.StatusOK, dishCostResponse{DishID: dishID, TotalCost: total})
}

func showDishReport(w http.ResponseWriter, r *http.Request, dishID uint) {
	ctx := r.Context()
	dish, err := service.GetDish(ctx, dishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			applog.Debug(ctx, "dish not found for report", "id", dishID)
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load dish for report", "error", err, "id", dishID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load dish")
		return
	}

	sheet, err := report.BuildCostSheet(*dish)
	if err != nil {
		applog.Error(ctx, "failed to build cost sheet", "error", err, "id", dishID)
		writeJSONError(w, http.StatusInternalServerError, "unable to build cost sheet")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=dish_%d_cost_sheet.pdf", dishID))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(sheet); err != nil {
		applog.Error(ctx, "failed to write cost sheet response", "error", err, "id", dishID)
	}
}

func projectDish(dish models.Dish) dishResponse {
	response := dishResponse{
		ID:          dish.ID,
		Name:        dish.Name,
		Description: dish.Description,
		Ingredients: make([]dishIngredientView, 0, len(dish.Ingredients)),
		TotalCost:   dish.TotalCost(),
		CreatedAt:   dish.CreatedAt,
		UpdatedAt:   dish.UpdatedAt,
	}

	for _, association := range dish.Ingredients {
		view := dishIngredientView{
			ID:           association.ID,
			IngredientID: association.IngredientID,
			Amount:       association.Amount,
		}
		if association.Ingredient != nil {
			view.IngredientName = association.Ingredient.Name
			view.LineCost = association.Amount * association.Ingredient.Price.InexactFloat64()
			if association.Ingredient.Unit != nil {
				view.Unit = association.Ingredient.Unit.Designation
			}
		}
		response.Ingredients = append(response.Ingredients, view)
	}

	return response
}
