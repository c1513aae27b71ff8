package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmriera/fleetdash/internal/core/domain"
)

func newTestAdapter(t *testing.T) *SQLiteAdapter {
	t.Helper()
	a, err := NewSQLiteAdapter(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func testSnapshot(generatedAt time.Time) domain.Snapshot {
	metrics := domain.NewIncidentMetrics()
	metrics.Total = 2
	metrics.SeverityCounts[domain.SeverityCritical] = 1
	metrics.SeverityCounts[domain.SeverityLow] = 1

	return domain.Snapshot{
		ID:              uuid.NewString(),
		DeviceMetrics:   domain.DeviceMetrics{Total: 10, Active: 7, Blocked: 2, Suspended: 1},
		IncidentMetrics: metrics,
		Inconsistency:   &domain.Inconsistency{Field: "total_devices", ClaimedTotal: 12, ActualTotal: 10},
		Freshness:       domain.Freshness{Tier: domain.FreshnessAging, Minutes: 5, Label: "5m ago"},
		LicenseActive:   true,
		Expiry:          domain.ExpiryStatus{Tier: domain.ExpiryWarning, DaysLeft: 14},
		GeneratedAt:     generatedAt,
	}
}

func TestSQLiteAdapter_SaveAndHistory(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()
	now := time.Now()

	older := testSnapshot(now.Add(-time.Hour))
	newer := testSnapshot(now)

	require.NoError(t, a.SaveSnapshot(ctx, older))
	require.NoError(t, a.SaveSnapshot(ctx, newer))

	history, err := a.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Newest first
	assert.Equal(t, newer.ID, history[0].ID)
	assert.Equal(t, older.ID, history[1].ID)

	got := history[0]
	assert.Equal(t, domain.DeviceMetrics{Total: 10, Active: 7, Blocked: 2, Suspended: 1}, got.DeviceMetrics)
	assert.Equal(t, 2, got.IncidentMetrics.Total)
	assert.Equal(t, 1, got.IncidentMetrics.SeverityCounts[domain.SeverityCritical])
	assert.Equal(t, domain.FreshnessAging, got.Freshness.Tier)
	assert.True(t, got.LicenseActive)
	assert.Equal(t, 14, got.Expiry.DaysLeft)
}

func TestSQLiteAdapter_HistoryLimit(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, a.SaveSnapshot(ctx, testSnapshot(time.Now().Add(time.Duration(-i)*time.Minute))))
	}

	history, err := a.History(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestSQLiteAdapter_PruneSnapshots(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, a.SaveSnapshot(ctx, testSnapshot(time.Now().Add(-48*time.Hour))))
	require.NoError(t, a.SaveSnapshot(ctx, testSnapshot(time.Now())))

	pruned, err := a.PruneSnapshots(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pruned)

	history, err := a.History(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSQLiteAdapter_LogFetch(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, a.LogFetch(ctx, "devices", false, "connection refused"))
	require.NoError(t, a.LogFetch(ctx, "config", true, ""))

	var logs []FetchLogModel
	require.NoError(t, a.db.Find(&logs).Error)
	assert.Len(t, logs, 2)
}
