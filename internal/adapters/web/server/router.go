package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes wires the read-only dashboard API.
func SetupRoutes(s *Server) http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/summary", s.SummaryHandler.HandleGetSummary).Methods(http.MethodGet)
	api.HandleFunc("/refresh", s.SummaryHandler.HandleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/health", s.SummaryHandler.HandleHealth).Methods(http.MethodGet)

	api.HandleFunc("/devices", s.DeviceHandler.HandleListDevices).Methods(http.MethodGet)
	api.HandleFunc("/devices/blocked", s.DeviceHandler.HandleListBlocked).Methods(http.MethodGet)

	api.HandleFunc("/security", s.SecurityHandler.HandleGetIncidents).Methods(http.MethodGet)
	api.HandleFunc("/analytics", s.AnalyticsHandler.HandleGetAnalytics).Methods(http.MethodGet)
	api.HandleFunc("/license", s.AnalyticsHandler.HandleGetLicense).Methods(http.MethodGet)
	api.HandleFunc("/history", s.HistoryHandler.HandleGetHistory).Methods(http.MethodGet)
	api.HandleFunc("/report", s.ReportHandler.HandleDownloadReport).Methods(http.MethodGet)

	// WebSocket snapshot push
	r.HandleFunc("/ws", s.WSManager.HandleWebSocket)

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Static dashboard assets
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(s.StaticDir)))

	return r
}
