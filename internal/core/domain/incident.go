package domain

import "time"

// Incident is a single security incident from the incident feed.
type Incident struct {
	ID           string    `json:"id,omitempty"`
	IncidentType string    `json:"incident_type"`
	Severity     string    `json:"severity"` // "critical", "high", "medium", "low"
	DeviceID     string    `json:"device_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Description  string    `json:"description,omitempty"`
}

// Severity levels
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// SeverityLevels lists all known severities in display order.
var SeverityLevels = []string{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// IncidentDocument is the security incident feed: incident list plus the
// producer-supplied severity aggregate.
type IncidentDocument struct {
	Incidents      []Incident     `json:"incidents"`
	SeverityCounts map[string]int `json:"severity_counts,omitempty"`
	LastUpdated    time.Time      `json:"last_updated,omitempty"`
}
