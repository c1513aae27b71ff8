package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmriera/fleetdash/internal/core/domain"
)

// FileSource reads the feed documents from a local directory. This mirrors
// the original deployment where the documents were pre-generated static JSON
// files served next to the page.
type FileSource struct {
	dir string
}

// NewFileSource creates a source reading from dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// FetchBundle reads all feed documents from disk. Missing or malformed files
// degrade to nil slots.
func (s *FileSource) FetchBundle(ctx context.Context) domain.DocumentBundle {
	bundle := domain.DocumentBundle{FetchedAt: time.Now()}

	if doc, err := readJSON[domain.DeviceDocument](s.dir, DocDevices); err != nil {
		bundle.Missing = append(bundle.Missing, missing(DocDevices, err))
	} else {
		bundle.Devices = doc
	}

	if doc, err := readJSON[domain.BlockedDocument](s.dir, DocBlocked); err != nil {
		bundle.Missing = append(bundle.Missing, missing(DocBlocked, err))
	} else {
		bundle.Blocked = doc
	}

	if doc, err := readJSON[domain.IncidentDocument](s.dir, DocIncidents); err != nil {
		bundle.Missing = append(bundle.Missing, missing(DocIncidents, err))
	} else {
		bundle.Incidents = doc
	}

	if doc, err := readJSON[domain.LicenseConfig](s.dir, DocConfig); err != nil {
		bundle.Missing = append(bundle.Missing, missing(DocConfig, err))
	} else {
		bundle.License = doc
	}

	analytics := &domain.AnalyticsDocument{}
	if raw, err := os.ReadFile(filepath.Join(s.dir, DocDaily+".json")); err != nil {
		bundle.Missing = append(bundle.Missing, missing(DocDaily, err))
	} else {
		analytics.Daily = raw
	}
	if raw, err := os.ReadFile(filepath.Join(s.dir, DocGeo+".json")); err != nil {
		bundle.Missing = append(bundle.Missing, missing(DocGeo, err))
	} else {
		analytics.Geographic = raw
	}
	if analytics.Daily != nil || analytics.Geographic != nil {
		bundle.Analytics = analytics
	}

	return bundle
}

func readJSON[T any](dir, name string) (*T, error) {
	data, err := os.ReadFile(filepath.Join(dir, name+".json"))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return &doc, nil
}
