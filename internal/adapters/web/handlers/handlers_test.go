package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmriera/fleetdash/internal/core/domain"
)

// fakeDashboard implements ports.DashboardService with canned data.
type fakeDashboard struct {
	snapshot  domain.Snapshot
	devices   []domain.Device
	blocked   []domain.BlockedEntry
	incidents []domain.Incident
	analytics *domain.AnalyticsDocument
	license   *domain.LicenseConfig
	history   []domain.Snapshot
	refreshes int
}

func (f *fakeDashboard) Current() domain.Snapshot { return f.snapshot }
func (f *fakeDashboard) Refresh(ctx context.Context) domain.Snapshot {
	f.refreshes++
	return f.snapshot
}
func (f *fakeDashboard) Devices() []domain.Device               { return f.devices }
func (f *fakeDashboard) BlockedDevices() []domain.BlockedEntry  { return f.blocked }
func (f *fakeDashboard) Incidents() []domain.Incident           { return f.incidents }
func (f *fakeDashboard) Analytics() *domain.AnalyticsDocument   { return f.analytics }
func (f *fakeDashboard) License() *domain.LicenseConfig         { return f.license }
func (f *fakeDashboard) History(ctx context.Context, limit int) ([]domain.Snapshot, error) {
	if limit < len(f.history) {
		return f.history[:limit], nil
	}
	return f.history, nil
}

func newFakeDashboard() *fakeDashboard {
	metrics := domain.NewIncidentMetrics()
	metrics.Total = 2
	metrics.SeverityCounts[domain.SeverityCritical] = 1
	metrics.SeverityCounts[domain.SeverityMedium] = 1

	return &fakeDashboard{
		snapshot: domain.Snapshot{
			ID:              "snap-1",
			DeviceMetrics:   domain.DeviceMetrics{Total: 3, Active: 2, Blocked: 1},
			IncidentMetrics: metrics,
			Freshness:       domain.Freshness{Tier: domain.FreshnessFresh, Label: "just updated"},
			LicenseActive:   true,
			Expiry:          domain.ExpiryStatus{Tier: domain.ExpiryNormal, DaysLeft: 60},
			GeneratedAt:     time.Now(),
		},
		devices: []domain.Device{
			{ID: "dev-1", Status: domain.StatusActive},
			{ID: "dev-2", Status: domain.StatusActive},
			{ID: "dev-3", Status: domain.StatusBlocked},
		},
		blocked: []domain.BlockedEntry{{ID: "dev-3", Reason: "strike_limit_exceeded"}},
		incidents: []domain.Incident{
			{ID: "inc-1", Severity: domain.SeverityCritical},
			{ID: "inc-2", Severity: domain.SeverityMedium},
		},
		license: &domain.LicenseConfig{IsActive: true},
		history: []domain.Snapshot{{ID: "snap-1"}, {ID: "snap-0"}},
	}
}

func TestSummaryHandler_HandleGetSummary(t *testing.T) {
	h := NewSummaryHandler(newFakeDashboard())

	rec := httptest.NewRecorder()
	h.HandleGetSummary(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "snap-1", snap.ID)
	assert.Equal(t, 3, snap.DeviceMetrics.Total)
}

func TestSummaryHandler_HandleRefresh(t *testing.T) {
	fake := newFakeDashboard()
	h := NewSummaryHandler(fake)

	rec := httptest.NewRecorder()
	h.HandleRefresh(rec, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, fake.refreshes)

	rec = httptest.NewRecorder()
	h.HandleRefresh(rec, httptest.NewRequest(http.MethodGet, "/api/refresh", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDeviceHandler_HandleListDevices(t *testing.T) {
	h := NewDeviceHandler(newFakeDashboard())

	rec := httptest.NewRecorder()
	h.HandleListDevices(rec, httptest.NewRequest(http.MethodGet, "/api/devices", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Devices []domain.Device `json:"devices"`
		Count   int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
}

func TestDeviceHandler_HandleListDevices_StatusFilter(t *testing.T) {
	h := NewDeviceHandler(newFakeDashboard())

	rec := httptest.NewRecorder()
	h.HandleListDevices(rec, httptest.NewRequest(http.MethodGet, "/api/devices?status=blocked", nil))

	var resp struct {
		Devices []domain.Device `json:"devices"`
		Count   int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "dev-3", resp.Devices[0].ID)
}

func TestDeviceHandler_EmptyFleetReturnsEmptyArray(t *testing.T) {
	h := NewDeviceHandler(&fakeDashboard{})

	rec := httptest.NewRecorder()
	h.HandleListDevices(rec, httptest.NewRequest(http.MethodGet, "/api/devices", nil))

	assert.JSONEq(t, `{"devices": [], "count": 0}`, rec.Body.String())
}

func TestSecurityHandler_HandleGetIncidents(t *testing.T) {
	h := NewSecurityHandler(newFakeDashboard())

	rec := httptest.NewRecorder()
	h.HandleGetIncidents(rec, httptest.NewRequest(http.MethodGet, "/api/security", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Incidents []domain.Incident      `json:"incidents"`
		Metrics   domain.IncidentMetrics `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Incidents, 2)
	assert.Equal(t, 1, resp.Metrics.SeverityCounts[domain.SeverityCritical])
}

func TestSecurityHandler_SeverityFilter(t *testing.T) {
	h := NewSecurityHandler(newFakeDashboard())

	rec := httptest.NewRecorder()
	h.HandleGetIncidents(rec, httptest.NewRequest(http.MethodGet, "/api/security?severity=critical", nil))

	var resp struct {
		Incidents []domain.Incident `json:"incidents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Incidents, 1)
	assert.Equal(t, "inc-1", resp.Incidents[0].ID)
}

func TestAnalyticsHandler_HandleGetAnalytics(t *testing.T) {
	fake := newFakeDashboard()
	fake.analytics = &domain.AnalyticsDocument{Daily: json.RawMessage(`[{"date":"2026-03-15"}]`)}
	h := NewAnalyticsHandler(fake)

	rec := httptest.NewRecorder()
	h.HandleGetAnalytics(rec, httptest.NewRequest(http.MethodGet, "/api/analytics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2026-03-15")
}

func TestAnalyticsHandler_NoAnalyticsReturnsEmptyObject(t *testing.T) {
	h := NewAnalyticsHandler(&fakeDashboard{})

	rec := httptest.NewRecorder()
	h.HandleGetAnalytics(rec, httptest.NewRequest(http.MethodGet, "/api/analytics", nil))

	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestAnalyticsHandler_HandleGetLicense(t *testing.T) {
	h := NewAnalyticsHandler(newFakeDashboard())

	rec := httptest.NewRecorder()
	h.HandleGetLicense(rec, httptest.NewRequest(http.MethodGet, "/api/license", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Active bool                `json:"active"`
		Expiry domain.ExpiryStatus `json:"expiry"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Active)
	assert.Equal(t, domain.ExpiryNormal, resp.Expiry.Tier)
}

func TestHistoryHandler_HandleGetHistory(t *testing.T) {
	h := NewHistoryHandler(newFakeDashboard(), 100)

	rec := httptest.NewRecorder()
	h.HandleGetHistory(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestHistoryHandler_InvalidLimit(t *testing.T) {
	h := NewHistoryHandler(newFakeDashboard(), 100)

	rec := httptest.NewRecorder()
	h.HandleGetHistory(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit=abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportHandler_HandleDownloadReport(t *testing.T) {
	h := NewReportHandler(newFakeDashboard())

	rec := httptest.NewRecorder()
	h.HandleDownloadReport(rec, httptest.NewRequest(http.MethodGet, "/api/report", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, rec.Body.Len() > 0)
	assert.Equal(t, "%PDF", rec.Body.String()[:4])
}
