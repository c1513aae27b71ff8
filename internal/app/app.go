package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dmriera/fleetdash/internal/adapters/feed"
	"github.com/dmriera/fleetdash/internal/adapters/storage"
	webserver "github.com/dmriera/fleetdash/internal/adapters/web/server"
	"github.com/dmriera/fleetdash/internal/config"
	"github.com/dmriera/fleetdash/internal/core/ports"
	"github.com/dmriera/fleetdash/internal/core/services/dashboard"
	"github.com/dmriera/fleetdash/internal/telemetry"
)

// Snapshot history retention
const historyRetention = 7 * 24 * time.Hour

// Application holds the core components of the application.
// It acts as the Facade for the entire system, orchestrating services and infrastructure.
type Application struct {
	Config    *config.Config
	Dashboard *dashboard.Service
	WebServer *webserver.Server
	Store     ports.SnapshotStore
	Source    ports.DocumentSource
}

// New creates a new Application instance and bootstraps its components.
func New(cfg *config.Config) (*Application, error) {
	app := &Application{
		Config: cfg,
	}

	if err := app.bootstrap(); err != nil {
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}

	return app, nil
}

// bootstrap orchestrates the initialization sequence.
func (app *Application) bootstrap() error {
	telemetry.InitMetrics()

	store, err := app.initStorage()
	if err != nil {
		return err
	}
	app.Store = store

	app.Source = app.initSource()

	app.Dashboard = dashboard.New(app.Source, app.Store)

	app.WebServer = webserver.NewServer(app.Config.Addr, app.Dashboard, app.Config.HistoryLimit)
	app.Dashboard.AddNotifier(app.WebServer.WSManager)

	return nil
}

func (app *Application) initStorage() (*storage.SQLiteAdapter, error) {
	if err := os.MkdirAll(filepath.Dir(app.Config.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	store, err := storage.NewSQLiteAdapter(app.Config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init snapshot storage: %w", err)
	}
	return store, nil
}

// initSource picks the document source: mock mode wins, then a feed URL, then
// the local feed directory.
func (app *Application) initSource() ports.DocumentSource {
	switch {
	case app.Config.MockMode:
		log.Println("Mock Mode Active: generating fleet data")
		return feed.NewMockSource(time.Now().UnixNano())
	case app.Config.FeedURL != "":
		log.Printf("Polling feed documents from %s", app.Config.FeedURL)
		return feed.NewHTTPSource(app.Config.FeedURL)
	default:
		log.Printf("Reading feed documents from %s", app.Config.FeedDir)
		return feed.NewFileSource(app.Config.FeedDir)
	}
}

// Run starts the application components and manages their execution lifecycle.
func (app *Application) Run(ctx context.Context) error {
	slog.Info("Starting fleetdash components...")

	// 1. Refresh & retention loops
	app.Dashboard.StartRefreshLoop(ctx, app.Config.RefreshInterval)
	go app.runRetentionLoop(ctx)

	// 2. Web server
	errChan := make(chan error, 1)
	go func() {
		if err := app.WebServer.Run(ctx); err != nil {
			errChan <- fmt.Errorf("web server error: %w", err)
		}
	}()

	slog.Info("fleetdash ready", "addr", app.Config.Addr, "refresh", app.Config.RefreshInterval.String())

	select {
	case <-ctx.Done():
		slog.Info("Termination signal received")
	case err := <-errChan:
		return err
	}

	return app.cleanup()
}

// runRetentionLoop prunes old snapshot history once an hour.
func (app *Application) runRetentionLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pruned, err := app.Store.PruneSnapshots(ctx, historyRetention)
			if err != nil {
				slog.Error("Snapshot pruning failed", "error", err)
				continue
			}
			if pruned > 0 {
				slog.Info("Pruned old snapshots", "count", pruned)
			}
		}
	}
}

func (app *Application) cleanup() error {
	slog.Info("Cleaning up resources...")

	if app.Store != nil {
		return app.Store.Close()
	}
	return nil
}
