package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"primecost/internal/catalog"
	applog "primecost/internal/log"
)

var (
	database *gorm.DB
	service  *catalog.Service
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(db *gorm.DB, svc *catalog.Service) {
	database = db
	service = svc
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeStatusOK and writeStatusError emit the `{status, message}` shape the
// delete endpoints are contracted to return.
func writeStatusOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeStatusError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"status": "error", "message": message})
}
