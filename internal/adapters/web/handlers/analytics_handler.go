package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dmriera/fleetdash/internal/core/ports"
)

// AnalyticsHandler serves the pass-through analytics documents and the
// license view.
type AnalyticsHandler struct {
	Service ports.DashboardService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(service ports.DashboardService) *AnalyticsHandler {
	return &AnalyticsHandler{Service: service}
}

// HandleGetAnalytics forwards the raw analytics documents unmodified. The
// reconciler never interprets them; the renderer does.
func (h *AnalyticsHandler) HandleGetAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	analytics := h.Service.Analytics()
	w.Header().Set("Content-Type", "application/json")
	if analytics == nil {
		w.Write([]byte(`{}`))
		return
	}
	json.NewEncoder(w).Encode(analytics)
}

// HandleGetLicense returns the license config together with the reconciled
// expiry status.
func (h *AnalyticsHandler) HandleGetLicense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := h.Service.Current()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"license": h.Service.License(),
		"active":  snap.LicenseActive,
		"expiry":  snap.Expiry,
	})
}
