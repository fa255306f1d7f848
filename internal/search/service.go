package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gerfru/holiday-engine/internal/combine"
	"github.com/gerfru/holiday-engine/internal/listing"
	"github.com/gerfru/holiday-engine/internal/models"
	"github.com/gerfru/holiday-engine/internal/obs"
	"github.com/gerfru/holiday-engine/internal/providers"
	"github.com/gerfru/holiday-engine/internal/resolver"
)

// Caps bound the size of each listing pool before combination building.
// The cross product grows as flights² × accommodations, so unbounded pools
// would make pathological searches arbitrarily slow.
type Caps struct {
	Flights int
	Hotels  int
	Rentals int
}

// Exporter persists a finished search for offline use. Export failures are
// logged and never fail the search itself.
type Exporter interface {
	Export(params *models.SearchParams, outbound, returning []listing.Flight, accommodations []listing.Accommodation, combos []combine.Combination) error
}

// Service orchestrates one search end to end: resolve both locations, fan
// out to all listing sources in parallel, then build ranked combinations.
type Service struct {
	resolver      *resolver.Resolver
	flights       providers.Flights
	accommodation []providers.Accommodations
	engine        *combine.Engine
	caps          Caps
	sourceTimeout time.Duration
	exporter      Exporter
	logger        *slog.Logger
	metrics       *obs.Metrics
}

func NewService(res *resolver.Resolver, flights providers.Flights, accommodation []providers.Accommodations, engine *combine.Engine, caps Caps, sourceTimeout time.Duration, exporter Exporter, logger *slog.Logger, m *obs.Metrics) *Service {
	return &Service{
		resolver:      res,
		flights:       flights,
		accommodation: accommodation,
		engine:        engine,
		caps:          caps,
		sourceTimeout: sourceTimeout,
		exporter:      exporter,
		logger:        logger,
		metrics:       m,
	}
}

// Search validates the params, resolves origin and destination, fetches
// flights and accommodations concurrently and returns ranked combinations.
// Individual source failures degrade the result; only unresolvable
// locations and a total flight outage are fatal.
func (s *Service) Search(ctx context.Context, params *models.SearchParams) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncSearches()
	}
	start := time.Now()

	origin := s.resolver.Resolve(ctx, params.Origin)
	if !origin.Resolved() {
		return nil, &ResolutionError{Field: "origin", Resolution: origin}
	}
	destination := s.resolver.Resolve(ctx, params.Destination)
	if !destination.Resolved() {
		return nil, &ResolutionError{Field: "destination", Resolution: destination}
	}
	params.OriginCode = origin.Code
	params.DestinationCode = destination.Code

	s.logger.Info("search started",
		"origin", origin.Code, "destination", destination.Code,
		"departure", params.Departure.Format("2006-01-02"),
		"return", params.Return.Format("2006-01-02"),
		"persons", params.Persons, "budget", params.Budget)

	pools := s.fetchAll(ctx, params, destination)

	if pools.outboundErr != nil && pools.returnErr != nil {
		return nil, fmt.Errorf("%w: outbound: %v, return: %v", ErrFlightsUnavailable, pools.outboundErr, pools.returnErr)
	}

	outbound := capFlights(pools.outbound, s.caps.Flights)
	returning := capFlights(pools.returning, s.caps.Flights)
	accommodations := capStays(pools.hotels, s.caps.Hotels)
	accommodations = append(accommodations, capStays(pools.rentals, s.caps.Rentals)...)

	combos := s.engine.CreateCombinations(outbound, returning, accommodations, params)
	if s.metrics != nil {
		s.metrics.ObserveCombinations(len(combos))
	}

	result := &Result{
		Origin:         origin,
		Destination:    destination,
		Outbound:       outbound,
		Return:         returning,
		Accommodations: accommodations,
		Combinations:   combos,
		Stats:          combine.Summarize(combos),
		Sources:        pools.statuses,
		DurationMs:     time.Since(start).Milliseconds(),
	}

	s.logger.Info("search finished",
		"outbound", len(outbound), "return", len(returning),
		"accommodations", len(accommodations), "combinations", len(combos),
		"duration_ms", result.DurationMs)

	if s.exporter != nil {
		if err := s.exporter.Export(params, outbound, returning, accommodations, combos); err != nil {
			s.logger.Warn("export failed", "error", err)
		}
	}
	return result, nil
}

func capFlights(flights []listing.Flight, max int) []listing.Flight {
	if max > 0 && len(flights) > max {
		return flights[:max]
	}
	return flights
}

func capStays(stays []listing.Accommodation, max int) []listing.Accommodation {
	if max > 0 && len(stays) > max {
		return stays[:max]
	}
	return stays
}
