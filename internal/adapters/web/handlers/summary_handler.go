package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dmriera/fleetdash/internal/core/ports"
)

// SummaryHandler serves the reconciled snapshot and the refresh trigger.
type SummaryHandler struct {
	Service ports.DashboardService
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(service ports.DashboardService) *SummaryHandler {
	return &SummaryHandler{Service: service}
}

// HandleGetSummary returns the latest snapshot.
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Service.Current())
}

// HandleRefresh runs one on-demand refresh cycle and returns the resulting
// snapshot.
func (h *SummaryHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := h.Service.Refresh(r.Context())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

// HandleHealth reports liveness plus the age of the served data.
func (h *SummaryHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := h.Service.Current()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":            "ok",
		"snapshot_id":       snap.ID,
		"data_age_minutes":  snap.Freshness.Minutes,
		"missing_documents": len(snap.Missing),
	})
}
