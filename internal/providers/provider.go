package providers

import (
	"context"

	"github.com/gerfru/holiday-engine/internal/listing"
)

// Flights fetches priced one-way flight listings for a single date.
type Flights interface {
	Search(ctx context.Context, origin, destination, date string) ([]listing.Flight, error)
	Name() string
}

// Accommodations fetches stay options for a city and date range. One
// implementation per accommodation kind.
type Accommodations interface {
	Search(ctx context.Context, city, checkin, checkout string, guests int) ([]listing.Accommodation, error)
	Name() string
	Kind() listing.AccommodationKind
}
