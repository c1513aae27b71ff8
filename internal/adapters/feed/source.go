// Package feed loads the JSON documents the dashboard renders. Sources never
// fail a fetch as a whole: a document that cannot be retrieved or parsed
// becomes a nil slot plus a MissingDocument notice in the returned bundle.
package feed

import (
	"time"

	"github.com/dmriera/fleetdash/internal/core/domain"
)

// Feed document names, matching the file/endpoint names of the producer.
const (
	DocDevices   = "devices"
	DocBlocked   = "blocked_devices"
	DocIncidents = "security_incidents"
	DocConfig    = "config"
	DocDaily     = "analytics_daily"
	DocGeo       = "analytics_geo"
)

func missing(name string, err error) domain.MissingDocument {
	return domain.MissingDocument{
		Name:   name,
		Reason: err.Error(),
		At:     time.Now(),
	}
}
