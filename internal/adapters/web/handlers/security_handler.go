package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dmriera/fleetdash/internal/core/domain"
	"github.com/dmriera/fleetdash/internal/core/ports"
)

// SecurityHandler serves the security incident view.
type SecurityHandler struct {
	Service ports.DashboardService
}

// NewSecurityHandler creates a new SecurityHandler.
func NewSecurityHandler(service ports.DashboardService) *SecurityHandler {
	return &SecurityHandler{Service: service}
}

// HandleGetIncidents returns the incident list together with the reconciled
// severity breakdown, optionally filtered by severity (?severity=critical).
func (h *SecurityHandler) HandleGetIncidents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	incidents := h.Service.Incidents()
	if severity := r.URL.Query().Get("severity"); severity != "" {
		filtered := make([]domain.Incident, 0, len(incidents))
		for _, inc := range incidents {
			if inc.Severity == severity {
				filtered = append(filtered, inc)
			}
		}
		incidents = filtered
	}
	if incidents == nil {
		incidents = []domain.Incident{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"incidents": incidents,
		"metrics":   h.Service.Current().IncidentMetrics,
	})
}
