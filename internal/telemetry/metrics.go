package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// FleetDevices tracks the reconciled device counters per status bucket
	FleetDevices = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "fleetdash",
			Name:      "devices",
			Help:      "Reconciled device count by status",
		},
		[]string{"status"},
	)

	// FleetIncidents tracks the incident severity breakdown
	FleetIncidents = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "fleetdash",
			Name:      "incidents",
			Help:      "Security incident count by severity",
		},
		[]string{"severity"},
	)

	// IncidentsTotal tracks the total incident count from the live list
	IncidentsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fleetdash",
			Name:      "incidents_total",
			Help:      "Total number of security incidents",
		},
	)

	// RefreshTotal counts completed refresh cycles
	RefreshTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fleetdash",
			Name:      "refresh_total",
			Help:      "Total number of completed refresh cycles",
		},
	)

	// DocumentsMissing counts feed documents that failed to load or parse
	DocumentsMissing = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fleetdash",
			Name:      "documents_missing_total",
			Help:      "Total number of feed documents that failed to load",
		},
		[]string{"document"},
	)

	// MetadataInconsistencies counts metadata summaries that disagreed with
	// their live collection
	MetadataInconsistencies = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fleetdash",
			Name:      "metadata_inconsistencies_total",
			Help:      "Total number of detected metadata count mismatches",
		},
		[]string{"field"},
	)

	// DataAgeMinutes tracks the age of the displayed data
	DataAgeMinutes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fleetdash",
			Name:      "data_age_minutes",
			Help:      "Minutes elapsed since the feed data was last updated",
		},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry
// This function is idempotent and can be called multiple times safely
func InitMetrics() {
	once.Do(func() {
		// Register metrics, ignoring errors if already registered
		// This prevents panics when metrics are already in the registry
		prometheus.DefaultRegisterer.Register(FleetDevices)
		prometheus.DefaultRegisterer.Register(FleetIncidents)
		prometheus.DefaultRegisterer.Register(IncidentsTotal)
		prometheus.DefaultRegisterer.Register(RefreshTotal)
		prometheus.DefaultRegisterer.Register(DocumentsMissing)
		prometheus.DefaultRegisterer.Register(MetadataInconsistencies)
		prometheus.DefaultRegisterer.Register(DataAgeMinutes)
	})
}
