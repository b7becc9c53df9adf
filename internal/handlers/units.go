package handlers

import (
	"net/http"

	applog "primecost/internal/log"
)

type unitResponse struct {
	ID          uint   `json:"id"`
	FullName    string `json:"full_name"`
	Designation string `json:"designation"`
}

// UnitList serves the read-only measurement unit registry.
func UnitList(w http.ResponseWriter, r *http.Request) {
	if service == nil {
		applog.Debug(r.Context(), "unit request without configured service")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	units, err := service.ListUnits(r.Context())
	if err != nil {
		applog.Error(r.Context(), "failed to list measurement units", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load measurement units")
		return
	}

	responses := make([]unitResponse, 0, len(units))
	for _, unit := range units {
		responses = append(responses, unitResponse{
			ID:          unit.ID,
			FullName:    unit.FullName,
			Designation: unit.Designation,
		})
	}
	writeJSON(w, http.StatusOK, responses)
}
