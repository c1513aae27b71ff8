package domain

import "time"

// DeviceMetrics are the reconciled device counters shown on the dashboard.
// They are always derived from the live device list, never from metadata.
type DeviceMetrics struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Blocked   int `json:"blocked"`
	Suspended int `json:"suspended"`
}

// IncidentMetrics are the reconciled incident counters.
type IncidentMetrics struct {
	Total          int            `json:"total"`
	SeverityCounts map[string]int `json:"severity_counts"`
}

// Inconsistency is an advisory warning raised when a metadata summary
// disagrees with the live collection it describes. It never blocks rendering;
// the displayed numbers always come from the actual counts.
type Inconsistency struct {
	Field         string `json:"field"` // "total_devices" or "active_devices"
	ClaimedTotal  int    `json:"claimed_total"`
	ActualTotal   int    `json:"actual_total"`
	ClaimedActive int    `json:"claimed_active"`
	ActualActive  int    `json:"actual_active"`
}

// Freshness tiers
const (
	FreshnessFresh = "fresh" // updated less than a minute ago
	FreshnessAging = "aging" // minutes ago
	FreshnessStale = "stale" // an hour or more ago
)

// Freshness is the coarse data-age bucket derived from the last update time.
type Freshness struct {
	Tier    string `json:"tier"`
	Minutes int    `json:"minutes"`
	Label   string `json:"label"` // "just updated", "45m ago", "3h ago"
}

// Expiry tiers
const (
	ExpiryNormal   = "normal"
	ExpiryWarning  = "warning"
	ExpiryCritical = "critical"
)

// ExpiryStatus is the license expiry bucket. Already-expired licenses fall in
// the critical tier; there is no separate "expired" state.
type ExpiryStatus struct {
	Tier     string `json:"tier"`
	DaysLeft int    `json:"days_left"`
}

// MissingDocument records a feed document that failed to load or parse.
// Missing documents degrade the dependent metrics to zero values; they are
// never fatal.
type MissingDocument struct {
	Name   string    `json:"name"`
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

// DocumentBundle is one immutable set of feed documents handed to the
// reconciler. Absent documents are nil slots, not errors.
type DocumentBundle struct {
	Devices   *DeviceDocument
	Blocked   *BlockedDocument
	Incidents *IncidentDocument
	License   *LicenseConfig
	Analytics *AnalyticsDocument

	Missing   []MissingDocument
	FetchedAt time.Time
}

// Snapshot is the reconciled view of one refresh cycle. Each cycle produces a
// fresh snapshot that wholly replaces the previous one.
type Snapshot struct {
	ID              string            `json:"id"`
	DeviceMetrics   DeviceMetrics     `json:"device_metrics"`
	IncidentMetrics IncidentMetrics   `json:"incident_metrics"`
	Inconsistency   *Inconsistency    `json:"inconsistency,omitempty"`
	Freshness       Freshness         `json:"freshness"`
	LicenseActive   bool              `json:"license_active"`
	Expiry          ExpiryStatus      `json:"expiry"`
	Missing         []MissingDocument `json:"missing_documents,omitempty"`
	GeneratedAt     time.Time         `json:"generated_at"`
}

// NewIncidentMetrics returns zeroed incident metrics with every known severity
// present, so renderers never see a missing key.
func NewIncidentMetrics() IncidentMetrics {
	counts := make(map[string]int, len(SeverityLevels))
	for _, s := range SeverityLevels {
		counts[s] = 0
	}
	return IncidentMetrics{SeverityCounts: counts}
}

// IsStale returns true if the snapshot is older than the given TTL.
func (s *Snapshot) IsStale(ttl time.Duration) bool {
	return time.Since(s.GeneratedAt) > ttl
}
