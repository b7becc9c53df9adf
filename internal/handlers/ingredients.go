package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"primecost/internal/catalog"
	applog "primecost/internal/log"
	"primecost/models"
)

type ingredientResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitID      uint            `json:"unit_id"`
	Unit        *unitResponse   `json:"unit,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IngredientResource handles REST-style interactions for ingredient records.
func IngredientResource(w http.ResponseWriter, r *http.Request) {
	if service == nil {
		applog.Debug(r.Context(), "ingredient request without configured service")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/ingredients")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			listIngredients(w, r)
		case http.MethodPost:
			createIngredient(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if path == "options" {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		listIngredientOptions(w, r)
		return
	}

	idValue, err := strconv.ParseUint(path, 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid ingredient identifier", "identifier", path, "error", err)
		http.NotFound(w, r)
		return
	}
	ingredientID := uint(idValue)

	switch r.Method {
	case http.MethodGet:
		showIngredient(w, r, ingredientID)
	case http.MethodPut:
		updateIngredient(w, r, ingredientID)
	case http.MethodDelete:
		deleteIngredient(w, r, ingredientID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listIngredients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ingredients, err := service.ListIngredients(ctx)
	if err != nil {
		applog.Error(ctx, "failed to list ingredients", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load ingredients")
		return
	}

	responses := make([]ingredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		responses = append(responses, projectIngredient(ingredient))
	}
	writeJSON(w, http.StatusOK, responses)
}

func listIngredientOptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	options, err := service.IngredientOptions(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load ingredient options", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load ingredient options")
		return
	}
	writeJSON(w, http.StatusOK, options)
}

func showIngredient(w http.ResponseWriter, r *http.Request, ingredientID uint) {
	ctx := r.Context()
	ingredient, err := service.GetIngredient(ctx, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			applog.Debug(ctx, "ingredient not found", "id", ingredientID)
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load ingredient", "error", err, "id", ingredientID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load ingredient")
		return
	}
	writeJSON(w, http.StatusOK, projectIngredient(*ingredient))
}

func createIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload catalog.IngredientInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid ingredient create payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	ingredient, err := service.CreateIngredient(ctx, payload)
	if err != nil {
		var validation *catalog.ValidationError
		if errors.As(err, &validation) {
			applog.Debug(ctx, "ingredient validation failed", "error", err)
			writeJSONError(w, http.StatusBadRequest, validation.Error())
			return
		}
		applog.Error(ctx, "failed to create ingredient", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to create ingredient")
		return
	}

	writeJSON(w, http.StatusCreated, projectIngredient(*ingredient))
}

func updateIngredient(w http.ResponseWriter, r *http.Request, ingredientID uint) {
	ctx := r.Context()
	var payload catalog.IngredientInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid ingredient update payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	ingredient, err := service.UpdateIngredient(ctx, ingredientID, payload)
	if err != nil {
		var validation *catalog.ValidationError
		switch {
		case errors.As(err, &validation):
			applog.Debug(ctx, "ingredient update validation failed", "error", err)
			writeJSONError(w, http.StatusBadRequest, validation.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			applog.Debug(ctx, "ingredient not found for update", "id", ingredientID)
			http.NotFound(w, r)
		default:
			applog.Error(ctx, "failed to update ingredient", "error", err, "id", ingredientID)
			writeJSONError(w, http.StatusInternalServerError, "unable to update ingredient")
		}
		return
	}

	writeJSON(w, http.StatusOK, projectIngredient(*ingredient))
}

// deleteIngredient is the JSON deletion endpoint. It always reports through
// the `{status, message}` shape and the referential guard is its only gate:
// there is no force-delete variant.
func deleteIngredient(w http.ResponseWriter, r *http.Request, ingredientID uint) {
	ctx := r.Context()
	err := service.DeleteIngredient(ctx, ingredientID)
	if err == nil {
		writeStatusOK(w)
		return
	}

	var conflict *catalog.ReferentialConflictError
	switch {
	case errors.As(err, &conflict):
		applog.Debug(ctx, "ingredient delete blocked", "id", ingredientID, "dishes", len(conflict.DishNames))
		writeStatusError(w, http.StatusConflict, conflict.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		applog.Debug(ctx, "ingredient not found for delete", "id", ingredientID)
		writeStatusError(w, http.StatusNotFound, "No such ingredient.")
	default:
		applog.Error(ctx, "failed to delete ingredient", "error", err, "id", ingredientID)
		writeStatusError(w, http.StatusInternalServerError, "unable to delete ingredient")
	}
}

func projectIngredient(ingredient models.Ingredient) ingredientResponse {
	response := ingredientResponse{
		ID:          ingredient.ID,
		Name:        ingredient.Name,
		Description: ingredient.Description,
		UnitID:      ingredient.UnitID,
		Price:       ingredient.Price,
		CreatedAt:   ingredient.CreatedAt,
		UpdatedAt:   ingredient.UpdatedAt,
	}
	if ingredient.Unit != nil {
		response.Unit = &unitResponse{
			ID:          ingredient.Unit.ID,
			FullName:    ingredient.Unit.FullName,
			Designation: ingredient.Unit.Designation,
		}
	}
	return response
}
