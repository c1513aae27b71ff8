package storage

import "github.com/dmriera/fleetdash/internal/core/domain"

// toModel converts a domain snapshot to its persistence model. Only the
// counters and tiers are kept; raw documents are not persisted.
func toModel(s domain.Snapshot) SnapshotModel {
	return SnapshotModel{
		ID:          s.ID,
		GeneratedAt: s.GeneratedAt,

		TotalDevices:     s.DeviceMetrics.Total,
		ActiveDevices:    s.DeviceMetrics.Active,
		BlockedDevices:   s.DeviceMetrics.Blocked,
		SuspendedDevices: s.DeviceMetrics.Suspended,

		TotalIncidents:    s.IncidentMetrics.Total,
		CriticalIncidents: s.IncidentMetrics.SeverityCounts[domain.SeverityCritical],
		HighIncidents:     s.IncidentMetrics.SeverityCounts[domain.SeverityHigh],
		MediumIncidents:   s.IncidentMetrics.SeverityCounts[domain.SeverityMedium],
		LowIncidents:      s.IncidentMetrics.SeverityCounts[domain.SeverityLow],

		FreshnessTier:    s.Freshness.Tier,
		DataAgeMinutes:   s.Freshness.Minutes,
		LicenseActive:    s.LicenseActive,
		ExpiryTier:       s.Expiry.Tier,
		ExpiryDaysLeft:   s.Expiry.DaysLeft,
		Inconsistent:     s.Inconsistency != nil,
		MissingDocuments: len(s.Missing),
	}
}

// toDomain converts a persistence model back to a domain snapshot. The
// inconsistency detail and missing-document list are not stored, so only the
// counters survive the round trip.
func toDomain(m SnapshotModel) domain.Snapshot {
	metrics := domain.NewIncidentMetrics()
	metrics.Total = m.TotalIncidents
	metrics.SeverityCounts[domain.SeverityCritical] = m.CriticalIncidents
	metrics.SeverityCounts[domain.SeverityHigh] = m.HighIncidents
	metrics.SeverityCounts[domain.SeverityMedium] = m.MediumIncidents
	metrics.SeverityCounts[domain.SeverityLow] = m.LowIncidents

	return domain.Snapshot{
		ID:          m.ID,
		GeneratedAt: m.GeneratedAt,
		DeviceMetrics: domain.DeviceMetrics{
			Total:     m.TotalDevices,
			Active:    m.ActiveDevices,
			Blocked:   m.BlockedDevices,
			Suspended: m.SuspendedDevices,
		},
		IncidentMetrics: metrics,
		Freshness: domain.Freshness{
			Tier:    m.FreshnessTier,
			Minutes: m.DataAgeMinutes,
		},
		LicenseActive: m.LicenseActive,
		Expiry: domain.ExpiryStatus{
			Tier:     m.ExpiryTier,
			DaysLeft: m.ExpiryDaysLeft,
		},
	}
}
