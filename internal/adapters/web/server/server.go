package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dmriera/fleetdash/internal/adapters/web"
	"github.com/dmriera/fleetdash/internal/adapters/web/handlers"
	"github.com/dmriera/fleetdash/internal/core/ports"
)

// Server handles HTTP and WebSocket connections.
type Server struct {
	Addr      string
	StaticDir string
	Service   ports.DashboardService
	WSManager *web.WSManager

	SummaryHandler   *handlers.SummaryHandler
	DeviceHandler    *handlers.DeviceHandler
	SecurityHandler  *handlers.SecurityHandler
	AnalyticsHandler *handlers.AnalyticsHandler
	HistoryHandler   *handlers.HistoryHandler
	ReportHandler    *handlers.ReportHandler

	srv *http.Server
}

// NewServer creates a new web server.
func NewServer(addr string, service ports.DashboardService, historyLimit int) *Server {
	return &Server{
		Addr:      addr,
		StaticDir: "./internal/adapters/web/static",
		Service:   service,
		WSManager: web.NewWSManager(),

		SummaryHandler:   handlers.NewSummaryHandler(service),
		DeviceHandler:    handlers.NewDeviceHandler(service),
		SecurityHandler:  handlers.NewSecurityHandler(service),
		AnalyticsHandler: handlers.NewAnalyticsHandler(service),
		HistoryHandler:   handlers.NewHistoryHandler(service, historyLimit),
		ReportHandler:    handlers.NewReportHandler(service),
	}
}

// Run starts the server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	handler := SetupRoutes(s)

	// Instrument with OpenTelemetry
	instrumentedHandler := otelhttp.NewHandler(handler, "fleetdash-server")

	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           instrumentedHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown implementation
	go func() {
		<-ctx.Done()
		log.Println("Web Server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Web Server shutdown error: %v", err)
		}
	}()

	log.Printf("Web server listening on %s", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
