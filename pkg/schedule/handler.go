package schedule

import (
	"encoding/json"
	"net/http"
	"strconv"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service}
}

// GetCalendar handles GET /api/agenda?veterinario={id}. A missing
// veterinarian parameter yields an empty feed, not an error.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vetParam := r.URL.Query().Get("veterinario")
	if vetParam == "" {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode([]CalendarEvent{})
		return
	}

	vetId, err := strconv.Atoi(vetParam)
	if err != nil {
		http.Error(w, "invalid veterinarian id", http.StatusBadRequest)
		return
	}

	events, err := h.service.BuildCalendar(r.Context(), vetId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(events); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
