package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dmriera/fleetdash/internal/core/domain"
	"github.com/dmriera/fleetdash/internal/core/ports"
)

// DeviceHandler serves the device and blocked-device lists.
type DeviceHandler struct {
	Service ports.DashboardService
}

// NewDeviceHandler creates a new DeviceHandler.
func NewDeviceHandler(service ports.DashboardService) *DeviceHandler {
	return &DeviceHandler{Service: service}
}

// HandleListDevices returns the live device list, optionally filtered by
// status (?status=active|blocked|suspended).
func (h *DeviceHandler) HandleListDevices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	devices := h.Service.Devices()
	if status := r.URL.Query().Get("status"); status != "" {
		filtered := make([]domain.Device, 0, len(devices))
		for _, d := range devices {
			if d.Status == status {
				filtered = append(filtered, d)
			}
		}
		devices = filtered
	}
	if devices == nil {
		devices = []domain.Device{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"devices": devices,
		"count":   len(devices),
	})
}

// HandleListBlocked returns the blocked-device entries.
func (h *DeviceHandler) HandleListBlocked(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	blocked := h.Service.BlockedDevices()
	if blocked == nil {
		blocked = []domain.BlockedEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"devices": blocked,
		"count":   len(blocked),
	})
}
