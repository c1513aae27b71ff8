// Package dashboard owns the refresh cycle: fetch documents, reconcile them
// into a snapshot, and hand the snapshot to whoever renders it.
package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmriera/fleetdash/internal/core/domain"
	"github.com/dmriera/fleetdash/internal/core/ports"
	"github.com/dmriera/fleetdash/internal/core/services/reconcile"
	"github.com/dmriera/fleetdash/internal/telemetry"
)

// Service drives the periodic reconciliation. The latest snapshot and bundle
// are immutable values replaced wholesale on every refresh; readers only ever
// see a complete snapshot, never a partially updated one.
type Service struct {
	source     ports.DocumentSource
	store      ports.SnapshotStore
	reconciler *reconcile.Reconciler

	mu       sync.RWMutex
	snapshot domain.Snapshot
	bundle   domain.DocumentBundle

	notifiers []ports.SnapshotNotifier
}

// New creates a dashboard service. store may be nil when history persistence
// is disabled.
func New(source ports.DocumentSource, store ports.SnapshotStore) *Service {
	return &Service{
		source:     source,
		store:      store,
		reconciler: reconcile.New(),
	}
}

// AddNotifier registers a notifier that receives every new snapshot.
// Not safe to call after the refresh loop has started.
func (s *Service) AddNotifier(n ports.SnapshotNotifier) {
	s.notifiers = append(s.notifiers, n)
}

// Current returns the latest snapshot.
func (s *Service) Current() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Refresh runs one fetch-and-reconcile cycle and returns the new snapshot.
func (s *Service) Refresh(ctx context.Context) domain.Snapshot {
	bundle := s.source.FetchBundle(ctx)
	snap := s.reconciler.Reconcile(bundle, time.Now())

	s.mu.Lock()
	s.bundle = bundle
	s.snapshot = snap
	s.mu.Unlock()

	s.publish(ctx, bundle, snap)
	return snap
}

// StartRefreshLoop refreshes on a fixed cadence until the context is done.
// An immediate first refresh runs before the ticker starts so the dashboard
// never serves an empty snapshot longer than one fetch.
func (s *Service) StartRefreshLoop(ctx context.Context, interval time.Duration) {
	go func() {
		s.Refresh(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Refresh(ctx)
			}
		}
	}()
}

// Devices returns the live device list of the latest bundle.
func (s *Service) Devices() []domain.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.bundle.Devices == nil {
		return nil
	}
	return s.bundle.Devices.Devices
}

// BlockedDevices returns the blocked entries of the latest bundle.
func (s *Service) BlockedDevices() []domain.BlockedEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.bundle.Blocked == nil {
		return nil
	}
	return s.bundle.Blocked.Devices
}

// Incidents returns the incident list of the latest bundle.
func (s *Service) Incidents() []domain.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.bundle.Incidents == nil {
		return nil
	}
	return s.bundle.Incidents.Incidents
}

// Analytics returns the raw analytics documents, forwarded unmodified.
func (s *Service) Analytics() *domain.AnalyticsDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle.Analytics
}

// License returns the license config of the latest bundle.
func (s *Service) License() *domain.LicenseConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle.License
}

// History returns recent persisted snapshots, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]domain.Snapshot, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.History(ctx, limit)
}

// publish records the cycle in metrics, storage and notifiers.
func (s *Service) publish(ctx context.Context, bundle domain.DocumentBundle, snap domain.Snapshot) {
	telemetry.RefreshTotal.Inc()
	telemetry.FleetDevices.WithLabelValues(domain.StatusActive).Set(float64(snap.DeviceMetrics.Active))
	telemetry.FleetDevices.WithLabelValues(domain.StatusBlocked).Set(float64(snap.DeviceMetrics.Blocked))
	telemetry.FleetDevices.WithLabelValues(domain.StatusSuspended).Set(float64(snap.DeviceMetrics.Suspended))
	telemetry.IncidentsTotal.Set(float64(snap.IncidentMetrics.Total))
	for severity, count := range snap.IncidentMetrics.SeverityCounts {
		telemetry.FleetIncidents.WithLabelValues(severity).Set(float64(count))
	}
	telemetry.DataAgeMinutes.Set(float64(snap.Freshness.Minutes))

	for _, m := range bundle.Missing {
		telemetry.DocumentsMissing.WithLabelValues(m.Name).Inc()
		slog.Warn("Feed document missing", "document", m.Name, "reason", m.Reason)
	}

	if snap.Inconsistency != nil {
		telemetry.MetadataInconsistencies.WithLabelValues(snap.Inconsistency.Field).Inc()
		slog.Warn("Metadata summary disagrees with live collection",
			"field", snap.Inconsistency.Field,
			"claimed_total", snap.Inconsistency.ClaimedTotal,
			"actual_total", snap.Inconsistency.ActualTotal,
			"claimed_active", snap.Inconsistency.ClaimedActive,
			"actual_active", snap.Inconsistency.ActualActive)
	}

	if s.store != nil {
		if err := s.store.SaveSnapshot(ctx, snap); err != nil {
			slog.Error("Failed to persist snapshot", "error", err)
		}
		for _, m := range bundle.Missing {
			if err := s.store.LogFetch(ctx, m.Name, false, m.Reason); err != nil {
				slog.Error("Failed to log fetch outcome", "error", err)
			}
		}
	}

	for _, n := range s.notifiers {
		n.NotifySnapshot(snap)
	}
}
