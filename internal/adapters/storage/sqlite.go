package storage

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/dmriera/fleetdash/internal/core/domain"
	"github.com/dmriera/fleetdash/internal/core/ports"
)

// SQLiteAdapter implements ports.SnapshotStore using GORM and SQLite.
type SQLiteAdapter struct {
	db *gorm.DB
}

// SnapshotModel is the GORM model for one reconciled refresh cycle.
type SnapshotModel struct {
	ID          string `gorm:"primaryKey"`
	GeneratedAt time.Time

	TotalDevices     int
	ActiveDevices    int
	BlockedDevices   int
	SuspendedDevices int

	TotalIncidents    int
	CriticalIncidents int
	HighIncidents     int
	MediumIncidents   int
	LowIncidents      int

	FreshnessTier    string
	DataAgeMinutes   int
	LicenseActive    bool
	ExpiryTier       string
	ExpiryDaysLeft   int
	Inconsistent     bool
	MissingDocuments int
}

// FetchLogModel records per-document fetch outcomes for diagnostics.
type FetchLogModel struct {
	ID       uint   `gorm:"primaryKey"`
	Document string `gorm:"index"`
	OK       bool
	Reason   string
	At       time.Time `gorm:"index"`
}

// NewSQLiteAdapter initializes the database and migrates schema.
func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	// Auto Migrate
	if err := db.AutoMigrate(&SnapshotModel{}, &FetchLogModel{}); err != nil {
		return nil, err
	}

	db.Exec("CREATE INDEX IF NOT EXISTS idx_snapshots_generated_at ON snapshot_models(generated_at)")

	return &SQLiteAdapter{db: db}, nil
}

// SaveSnapshot persists one reconciled snapshot.
func (a *SQLiteAdapter) SaveSnapshot(ctx context.Context, snap domain.Snapshot) error {
	model := toModel(snap)
	return a.db.WithContext(ctx).Create(&model).Error
}

// History returns the most recent snapshots, newest first.
func (a *SQLiteAdapter) History(ctx context.Context, limit int) ([]domain.Snapshot, error) {
	if limit <= 0 {
		limit = 100
	}

	var models []SnapshotModel
	if err := a.db.WithContext(ctx).
		Order("generated_at DESC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}

	snaps := make([]domain.Snapshot, len(models))
	for i, m := range models {
		snaps[i] = toDomain(m)
	}
	return snaps, nil
}

// PruneSnapshots deletes snapshots older than the retention window and
// returns the number of rows removed.
func (a *SQLiteAdapter) PruneSnapshots(ctx context.Context, olderThan time.Duration) (int64, error) {
	threshold := time.Now().Add(-olderThan)

	res := a.db.WithContext(ctx).
		Where("generated_at < ?", threshold).
		Delete(&SnapshotModel{})
	if res.Error != nil {
		return 0, res.Error
	}

	a.db.WithContext(ctx).
		Where("at < ?", threshold).
		Delete(&FetchLogModel{})

	return res.RowsAffected, nil
}

// LogFetch records the outcome of one document fetch.
func (a *SQLiteAdapter) LogFetch(ctx context.Context, document string, ok bool, reason string) error {
	return a.db.WithContext(ctx).Create(&FetchLogModel{
		Document: document,
		OK:       ok,
		Reason:   reason,
		At:       time.Now(),
	}).Error
}

func (a *SQLiteAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure interface compliance
var _ ports.SnapshotStore = (*SQLiteAdapter)(nil)
