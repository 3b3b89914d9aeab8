package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/fortuna/courtside/internal/service"
	"github.com/fortuna/courtside/internal/store"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db         *store.Database
	narratives *service.NarrativeService
}

// NewHandler creates a new handler
func NewHandler(db *store.Database, narratives *service.NarrativeService) *Handler {
	return &Handler{
		db:         db,
		narratives: narratives,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := h.db.HealthCheck(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  status,
		"service": "courtside",
		"version": "1.0.0",
	})
}

// GetNarratives returns posted threads, filtered by date when given
func (h *Handler) GetNarratives(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}

		threads, err := h.narratives.GetThreadsByDate(r.Context(), date)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch narratives", err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"narratives": threads,
			"count":      len(threads),
		})
		return
	}

	limitStr := r.URL.Query().Get("limit")
	limit := 20 // default
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	threads, err := h.narratives.GetRecentThreads(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch narratives", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"narratives": threads,
		"count":      len(threads),
	})
}

// GetNarrative returns the posted thread for a specific game
func (h *Handler) GetNarrative(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["gameID"]

	thread, err := h.narratives.GetThread(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Narrative not found", err)
		return
	}

	respondJSON(w, http.StatusOK, thread)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
