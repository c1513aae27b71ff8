package feed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/dmriera/fleetdash/internal/core/domain"
)

// Device models for realistic mock data
var mockModels = []string{
	"iPhone 14 Pro", "iPhone 13", "Samsung Galaxy S23", "Samsung Galaxy A54",
	"Google Pixel 7", "OnePlus 11", "Xiaomi 13", "Motorola Edge 40",
	"iPad Air", "Samsung Tab S9", "Surface Go", "Lenovo Tab P11",
}

var mockPlatforms = []string{"android", "ios", "windows"}

var mockCountries = []string{"ES", "US", "DE", "FR", "GB", "MX", "BR", "IT"}

var mockIncidentTypes = []string{
	"jailbreak_detected", "root_detected", "geo_violation",
	"strike_limit_exceeded", "tamper_attempt", "outdated_agent",
}

// MockSource generates a plausible fleet for demo mode. Every fetch produces
// a slightly different fleet so the dashboard visibly refreshes.
type MockSource struct {
	rng *rand.Rand
}

// NewMockSource creates a mock source with its own RNG.
func NewMockSource(seed int64) *MockSource {
	return &MockSource{rng: rand.New(rand.NewSource(seed))}
}

// FetchBundle generates a full document bundle. The metadata summary is
// occasionally skewed on purpose so the inconsistency path gets exercised.
func (s *MockSource) FetchBundle(ctx context.Context) domain.DocumentBundle {
	now := time.Now()

	total := 20 + s.rng.Intn(30)
	devices := make([]domain.Device, 0, total)
	active, blocked := 0, 0
	for i := 0; i < total; i++ {
		d := domain.Device{
			ID:          fmt.Sprintf("dev-%04d", i+1),
			DeviceModel: mockModels[s.rng.Intn(len(mockModels))],
			Platform:    mockPlatforms[s.rng.Intn(len(mockPlatforms))],
			Status:      domain.StatusActive,
			LastSeen:    now.Add(-time.Duration(s.rng.Intn(120)) * time.Minute),
			Location:    domain.Location{Country: mockCountries[s.rng.Intn(len(mockCountries))]},
			Strikes:     s.rng.Intn(4),
		}
		switch r := s.rng.Float64(); {
		case r < 0.10:
			d.Status = domain.StatusBlocked
			blocked++
		case r < 0.20:
			d.Status = domain.StatusSuspended
		default:
			active++
		}
		devices = append(devices, d)
	}

	meta := &domain.DeviceMetadata{TotalDevices: total, ActiveDevices: active, GeneratedAt: now}
	if s.rng.Float64() < 0.2 {
		// Simulate a stale producer summary
		meta.TotalDevices += s.rng.Intn(3) + 1
	}

	blockedEntries := make([]domain.BlockedEntry, 0, blocked)
	for _, d := range devices {
		if d.Status == domain.StatusBlocked {
			blockedEntries = append(blockedEntries, domain.BlockedEntry{
				ID:        d.ID,
				Reason:    "strike_limit_exceeded",
				BlockedAt: now.Add(-time.Duration(s.rng.Intn(72)) * time.Hour),
			})
		}
	}

	incidentCount := s.rng.Intn(8)
	incidents := make([]domain.Incident, 0, incidentCount)
	severityCounts := map[string]int{}
	for i := 0; i < incidentCount; i++ {
		severity := domain.SeverityLevels[s.rng.Intn(len(domain.SeverityLevels))]
		incidents = append(incidents, domain.Incident{
			ID:           fmt.Sprintf("inc-%04d", i+1),
			IncidentType: mockIncidentTypes[s.rng.Intn(len(mockIncidentTypes))],
			Severity:     severity,
			DeviceID:     devices[s.rng.Intn(len(devices))].ID,
			Timestamp:    now.Add(-time.Duration(s.rng.Intn(1440)) * time.Minute),
		})
		severityCounts[severity]++
	}

	return domain.DocumentBundle{
		Devices: &domain.DeviceDocument{Devices: devices, Metadata: meta},
		Blocked: &domain.BlockedDocument{
			Devices:  blockedEntries,
			Metadata: &domain.BlockedMetadata{TotalBlocked: len(blockedEntries)},
		},
		Incidents: &domain.IncidentDocument{
			Incidents:      incidents,
			SeverityCounts: severityCounts,
			LastUpdated:    now,
		},
		License: &domain.LicenseConfig{
			IsActive:       true,
			ExpirationDate: now.Add(45 * 24 * time.Hour),
			Plan:           "enterprise",
			MaxDevices:     500,
		},
		FetchedAt: now,
	}
}
