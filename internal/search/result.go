package search

import (
	"github.com/gerfru/holiday-engine/internal/combine"
	"github.com/gerfru/holiday-engine/internal/listing"
	"github.com/gerfru/holiday-engine/internal/resolver"
)

// SourceStatus reports how one listing source fared during a search, so
// partial failures stay visible in the response instead of silently
// shrinking the result.
type SourceStatus struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Elapsed string `json:"elapsed"`
	Error   string `json:"error,omitempty"`
}

// Result is the full outcome of one trip search.
type Result struct {
	Origin         resolver.Resolution     `json:"origin"`
	Destination    resolver.Resolution     `json:"destination"`
	Outbound       []listing.Flight        `json:"outbound_flights"`
	Return         []listing.Flight        `json:"return_flights"`
	Accommodations []listing.Accommodation `json:"accommodations"`
	Combinations   []combine.Combination   `json:"combinations"`
	Stats          combine.Stats           `json:"stats"`
	Sources        []SourceStatus          `json:"sources"`
	DurationMs     int64                   `json:"duration_ms"`
}
