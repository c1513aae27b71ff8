package domain

import "time"

// LicenseConfig is the license configuration feed.
type LicenseConfig struct {
	IsActive       bool      `json:"is_active"`
	ExpirationDate time.Time `json:"expiration_date"`
	Plan           string    `json:"plan,omitempty"`
	MaxDevices     int       `json:"max_devices,omitempty"`
}
