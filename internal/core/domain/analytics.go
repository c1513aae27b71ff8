package domain

import "encoding/json"

// AnalyticsDocument holds the daily and geographic stats feeds. The reconciler
// never interprets these; they are forwarded to the renderer as-is, so they are
// kept as raw JSON.
type AnalyticsDocument struct {
	Daily      json.RawMessage `json:"daily,omitempty"`
	Geographic json.RawMessage `json:"geographic,omitempty"`
}
