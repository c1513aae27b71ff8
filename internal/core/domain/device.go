package domain

import "time"

// Device represents a single managed device as reported by the registry feed.
type Device struct {
	ID          string    `json:"id"`
	DeviceModel string    `json:"device_model"`
	Platform    string    `json:"platform"` // "android", "ios", "windows"
	Status      string    `json:"status"`   // "active", "blocked", "suspended"
	LastSeen    time.Time `json:"last_seen"`
	Location    Location  `json:"location"`
	Strikes     int       `json:"strikes"`
}

// Location carries the coarse geo info attached to a device record.
type Location struct {
	Country string `json:"country"`
	City    string `json:"city,omitempty"`
}

// Device statuses
const (
	StatusActive    = "active"
	StatusBlocked   = "blocked"
	StatusSuspended = "suspended"
)

// DeviceMetadata is the producer-maintained summary shipped alongside the
// registry. It may drift from the live device list and is never treated as
// authoritative; the reconciler only uses it to detect producer-side bugs.
type DeviceMetadata struct {
	TotalDevices  int       `json:"total_devices"`
	ActiveDevices int       `json:"active_devices"`
	GeneratedAt   time.Time `json:"generated_at,omitempty"`
}

// DeviceDocument is the device registry feed: live device list plus the
// untrusted metadata summary.
type DeviceDocument struct {
	Devices  []Device        `json:"devices"`
	Metadata *DeviceMetadata `json:"metadata,omitempty"`
}

// BlockedDocument is the blocked-device feed. Producers ship either the full
// entry list, just the metadata count, or both.
type BlockedDocument struct {
	Devices  []BlockedEntry   `json:"devices,omitempty"`
	Metadata *BlockedMetadata `json:"metadata,omitempty"`
}

// BlockedEntry is a single entry in the blocked-device feed.
type BlockedEntry struct {
	ID        string    `json:"id"`
	Reason    string    `json:"reason,omitempty"`
	BlockedAt time.Time `json:"blocked_at,omitempty"`
}

// BlockedMetadata is the summary attached to the blocked-device feed.
type BlockedMetadata struct {
	TotalBlocked int `json:"total_blocked"`
}
