package search

import (
	"errors"
	"fmt"

	"github.com/gerfru/holiday-engine/internal/resolver"
)

// ErrFlightsUnavailable means neither flight direction could be fetched.
// Accommodation-only results are useless for trip planning, so this aborts
// the search.
var ErrFlightsUnavailable = errors.New("no flight data available for either direction")

// ResolutionError carries the failed resolution so handlers can surface
// the suggestion list to the user.
type ResolutionError struct {
	Field      string
	Resolution resolver.Resolution
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve %s %q to an airport", e.Field, e.Resolution.Input)
}
