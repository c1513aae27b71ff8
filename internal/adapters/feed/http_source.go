package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dmriera/fleetdash/internal/core/domain"
)

// HTTPSource polls the feed documents from a base URL, e.g. a static file
// server publishing devices.json, blocked_devices.json and friends.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource creates a source polling baseURL. The client is instrumented
// with OpenTelemetry so each document fetch shows up as a span.
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		baseURL: baseURL,
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// FetchBundle retrieves all feed documents. Individual failures degrade to
// nil slots; the bundle itself is always returned.
func (s *HTTPSource) FetchBundle(ctx context.Context) domain.DocumentBundle {
	bundle := domain.DocumentBundle{FetchedAt: time.Now()}

	if doc, err := fetchJSON[domain.DeviceDocument](ctx, s, DocDevices); err != nil {
		bundle.Missing = append(bundle.Missing, missing(DocDevices, err))
	} else {
		bundle.Devices = doc
	}

	if doc, err := fetchJSON[domain.BlockedDocument](ctx, s, DocBlocked); err != nil {
		bundle.Missing = append(bundle.Missing, missing(DocBlocked, err))
	} else {
		bundle.Blocked = doc
	}

	if doc, err := fetchJSON[domain.IncidentDocument](ctx, s, DocIncidents); err != nil {
		bundle.Missing = append(bundle.Missing, missing(DocIncidents, err))
	} else {
		bundle.Incidents = doc
	}

	if doc, err := fetchJSON[domain.LicenseConfig](ctx, s, DocConfig); err != nil {
		bundle.Missing = append(bundle.Missing, missing(DocConfig, err))
	} else {
		bundle.License = doc
	}

	bundle.Analytics = s.fetchAnalytics(ctx, &bundle)

	return bundle
}

// fetchAnalytics retrieves the pass-through analytics documents. They are
// never interpreted here, so the raw bytes are kept.
func (s *HTTPSource) fetchAnalytics(ctx context.Context, bundle *domain.DocumentBundle) *domain.AnalyticsDocument {
	analytics := &domain.AnalyticsDocument{}

	daily, err := s.fetchRaw(ctx, DocDaily)
	if err != nil {
		bundle.Missing = append(bundle.Missing, missing(DocDaily, err))
	} else {
		analytics.Daily = daily
	}

	geo, err := s.fetchRaw(ctx, DocGeo)
	if err != nil {
		bundle.Missing = append(bundle.Missing, missing(DocGeo, err))
	} else {
		analytics.Geographic = geo
	}

	if analytics.Daily == nil && analytics.Geographic == nil {
		return nil
	}
	return analytics
}

func fetchJSON[T any](ctx context.Context, s *HTTPSource, name string) (*T, error) {
	data, err := s.fetchRaw(ctx, name)
	if err != nil {
		return nil, err
	}

	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Debug("Feed document parse failed", "document", name, "error", err)
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return &doc, nil
}

func (s *HTTPSource) fetchRaw(ctx context.Context, name string) ([]byte, error) {
	u, err := url.JoinPath(s.baseURL, name+".json")
	if err != nil {
		return nil, fmt.Errorf("build url for %s: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", name, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", name, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
