package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/dmriera/fleetdash/internal/core/ports"
)

// HistoryHandler serves persisted snapshot history for trend charts.
type HistoryHandler struct {
	Service      ports.DashboardService
	DefaultLimit int
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(service ports.DashboardService, defaultLimit int) *HistoryHandler {
	return &HistoryHandler{Service: service, DefaultLimit: defaultLimit}
}

// HandleGetHistory returns recent snapshots, newest first (?limit=N).
func (h *HistoryHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := h.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		if n < limit || limit <= 0 {
			limit = n
		}
	}

	history, err := h.Service.History(r.Context(), limit)
	if err != nil {
		log.Printf("History query failed: %v", err)
		http.Error(w, "History unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"snapshots": history,
		"count":     len(history),
	})
}
