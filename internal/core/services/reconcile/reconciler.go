// Package reconcile computes the numbers the dashboard is allowed to trust.
//
// Feed producers ship precomputed summaries alongside the raw collections, and
// those summaries drift. The rule here is: displayed counts always derive from
// the live collections; metadata summaries are only cross-checked to surface
// producer-side bugs. Every function degrades to zero values on missing input
// and never returns an error.
package reconcile

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmriera/fleetdash/internal/core/domain"
)

// Reconciler derives dashboard metrics from raw feed documents. It is
// stateless and reentrant; callers may invoke it concurrently.
type Reconciler struct{}

// New creates a new Reconciler.
func New() *Reconciler {
	return &Reconciler{}
}

// ComputeDeviceMetrics derives device counters from the live device list and
// the blocked-device feed.
//
// The blocked count is max(blocked-in-registry, blocked-feed count): either
// source may undercount due to independent staleness, so the larger figure is
// taken to avoid under-reporting blocked devices.
func (r *Reconciler) ComputeDeviceMetrics(devices []domain.Device, blocked *domain.BlockedDocument) domain.DeviceMetrics {
	m := domain.DeviceMetrics{Total: len(devices)}

	blockedFromDevices := 0
	for _, d := range devices {
		switch d.Status {
		case domain.StatusActive:
			m.Active++
		case domain.StatusBlocked:
			blockedFromDevices++
		}
	}

	m.Blocked = blockedFromDevices
	if fromRecord := blockedRecordCount(blocked); fromRecord > m.Blocked {
		m.Blocked = fromRecord
	}

	// Clamp: when the two blocked signals disagree the subtraction can go
	// negative, and a negative counter must never reach the renderer.
	m.Suspended = m.Total - m.Active - m.Blocked
	if m.Suspended < 0 {
		m.Suspended = 0
	}

	return m
}

// blockedRecordCount extracts the blocked count from the blocked-device feed.
// The entry list wins over the metadata count when present; a nil document
// counts as zero.
func blockedRecordCount(blocked *domain.BlockedDocument) int {
	if blocked == nil {
		return 0
	}
	if blocked.Devices != nil {
		return len(blocked.Devices)
	}
	if blocked.Metadata != nil {
		return blocked.Metadata.TotalBlocked
	}
	return 0
}

// ComputeIncidentMetrics derives incident counters from the incident feed.
//
// The total comes from the live incident list, but the severity breakdown is
// read from the producer-supplied aggregate rather than re-counted. The feed
// producer aggregates severities server-side and this asymmetry with the
// device-count logic is intentional, preserved source behavior.
func (r *Reconciler) ComputeIncidentMetrics(doc *domain.IncidentDocument) domain.IncidentMetrics {
	m := domain.NewIncidentMetrics()
	if doc == nil {
		return m
	}

	m.Total = len(doc.Incidents)

	for severity, count := range doc.SeverityCounts {
		m.SeverityCounts[severity] = count
	}

	return m
}

// DetectInconsistency cross-checks the metadata summary against the live
// device list. It returns nil when the summary agrees (or is absent), and an
// advisory warning carrying both the claimed and actual values when it does
// not. The warning never blocks rendering and the displayed numbers are
// unaffected; they always use the actual counts.
func (r *Reconciler) DetectInconsistency(devices []domain.Device, meta *domain.DeviceMetadata) *domain.Inconsistency {
	if meta == nil {
		return nil
	}

	actualTotal := len(devices)
	actualActive := 0
	for _, d := range devices {
		if d.Status == domain.StatusActive {
			actualActive++
		}
	}

	if meta.TotalDevices == actualTotal && meta.ActiveDevices == actualActive {
		return nil
	}

	field := "total_devices"
	if meta.TotalDevices == actualTotal {
		field = "active_devices"
	}

	return &domain.Inconsistency{
		Field:         field,
		ClaimedTotal:  meta.TotalDevices,
		ActualTotal:   actualTotal,
		ClaimedActive: meta.ActiveDevices,
		ActualActive:  actualActive,
	}
}

// ComputeFreshness buckets the elapsed time since the last data update.
func (r *Reconciler) ComputeFreshness(lastUpdated, now time.Time) domain.Freshness {
	minutes := int(now.Sub(lastUpdated) / time.Minute)

	switch {
	case minutes < 1:
		return domain.Freshness{Tier: domain.FreshnessFresh, Minutes: minutes, Label: "just updated"}
	case minutes < 60:
		return domain.Freshness{Tier: domain.FreshnessAging, Minutes: minutes, Label: fmt.Sprintf("%dm ago", minutes)}
	default:
		return domain.Freshness{Tier: domain.FreshnessStale, Minutes: minutes, Label: fmt.Sprintf("%dh ago", minutes/60)}
	}
}

// ComputeExpiryStatus buckets the time remaining on the license.
//
// daysLeft is rounded up, so a license expiring later today still counts as
// one day left. Expired licenses (negative daysLeft) land in the critical tier
// together with "7 or fewer days left"; there is deliberately no separate
// expired state.
func (r *Reconciler) ComputeExpiryStatus(expiration, now time.Time) domain.ExpiryStatus {
	remaining := expiration.Sub(now)
	daysLeft := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		daysLeft++
	}

	tier := domain.ExpiryCritical
	switch {
	case daysLeft > 30:
		tier = domain.ExpiryNormal
	case daysLeft > 7:
		tier = domain.ExpiryWarning
	}

	return domain.ExpiryStatus{Tier: tier, DaysLeft: daysLeft}
}

// Reconcile computes a full snapshot from one bundle of feed documents.
// Missing documents degrade their metrics to zero values; the snapshot is
// always produced.
func (r *Reconciler) Reconcile(bundle domain.DocumentBundle, now time.Time) domain.Snapshot {
	snap := domain.Snapshot{
		ID:          uuid.NewString(),
		Missing:     bundle.Missing,
		GeneratedAt: now,
	}

	var devices []domain.Device
	var meta *domain.DeviceMetadata
	if bundle.Devices != nil {
		devices = bundle.Devices.Devices
		meta = bundle.Devices.Metadata
	}

	snap.DeviceMetrics = r.ComputeDeviceMetrics(devices, bundle.Blocked)
	snap.IncidentMetrics = r.ComputeIncidentMetrics(bundle.Incidents)
	snap.Inconsistency = r.DetectInconsistency(devices, meta)

	lastUpdated := bundle.FetchedAt
	if bundle.Incidents != nil && !bundle.Incidents.LastUpdated.IsZero() {
		lastUpdated = bundle.Incidents.LastUpdated
	}
	snap.Freshness = r.ComputeFreshness(lastUpdated, now)

	if bundle.License != nil {
		snap.LicenseActive = bundle.License.IsActive
		snap.Expiry = r.ComputeExpiryStatus(bundle.License.ExpirationDate, now)
	}

	return snap
}
