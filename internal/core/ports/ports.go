package ports

import (
	"context"
	"time"

	"github.com/dmriera/fleetdash/internal/core/domain"
)

// DocumentSource retrieves one immutable bundle of feed documents. A source
// never fails the whole fetch: documents that cannot be loaded are nil slots
// recorded in the bundle's Missing list.
type DocumentSource interface {
	FetchBundle(ctx context.Context) domain.DocumentBundle
}

// SnapshotStore persists reconciled snapshots so the dashboard can chart
// trends across refresh cycles.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap domain.Snapshot) error
	History(ctx context.Context, limit int) ([]domain.Snapshot, error)
	PruneSnapshots(ctx context.Context, olderThan time.Duration) (int64, error)
	LogFetch(ctx context.Context, document string, ok bool, reason string) error
	Close() error
}

// DashboardService is the read-side contract consumed by the web adapter.
type DashboardService interface {
	Current() domain.Snapshot
	Refresh(ctx context.Context) domain.Snapshot
	Devices() []domain.Device
	BlockedDevices() []domain.BlockedEntry
	Incidents() []domain.Incident
	Analytics() *domain.AnalyticsDocument
	License() *domain.LicenseConfig
	History(ctx context.Context, limit int) ([]domain.Snapshot, error)
}

// SnapshotNotifier receives every freshly reconciled snapshot, typically to
// push it to connected dashboard clients.
type SnapshotNotifier interface {
	NotifySnapshot(snap domain.Snapshot)
}
