package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gerfru/holiday-engine/internal/listing"
	"github.com/gerfru/holiday-engine/internal/models"
	"github.com/gerfru/holiday-engine/internal/resolver"
)

type fetchKind int

const (
	fetchOutbound fetchKind = iota
	fetchReturn
	fetchStay
)

type fetchOutcome struct {
	name    string
	kind    fetchKind
	flights []listing.Flight
	stays   []listing.Accommodation
	elapsed time.Duration
	err     error
}

type fetchedPools struct {
	outbound    []listing.Flight
	returning   []listing.Flight
	hotels      []listing.Accommodation
	rentals     []listing.Accommodation
	outboundErr error
	returnErr   error
	statuses    []SourceStatus
}

// fetchAll queries both flight directions and every accommodation source in
// parallel, bounded by the source timeout. Each fetch runs in its own
// goroutine with panics recovered into errors, so one misbehaving source
// never takes the search down.
func (s *Service) fetchAll(ctx context.Context, params *models.SearchParams, destination resolver.Resolution) fetchedPools {
	ctx, cancel := context.WithTimeout(ctx, s.sourceTimeout)
	defer cancel()

	depDate := params.Departure.Format("2006-01-02")
	retDate := params.Return.Format("2006-01-02")
	city := destination.DisplayName
	if city == "" {
		city = params.Destination
	}

	tasks := 2 + len(s.accommodation)
	resCh := make(chan fetchOutcome, tasks)
	var wg sync.WaitGroup

	run := func(name string, kind fetchKind, fn func(ctx context.Context) ([]listing.Flight, []listing.Accommodation, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("source panic recovered", "source", name, "panic", r)
					resCh <- fetchOutcome{name: name, kind: kind, err: fmt.Errorf("source %s panicked: %v", name, r)}
				}
			}()
			start := time.Now()
			flights, stays, err := fn(ctx)
			resCh <- fetchOutcome{name: name, kind: kind, flights: flights, stays: stays, elapsed: time.Since(start), err: err}
		}()
	}

	run(s.flights.Name()+"-outbound", fetchOutbound, func(ctx context.Context) ([]listing.Flight, []listing.Accommodation, error) {
		fs, err := s.flights.Search(ctx, params.OriginCode, params.DestinationCode, depDate)
		return fs, nil, err
	})
	run(s.flights.Name()+"-return", fetchReturn, func(ctx context.Context) ([]listing.Flight, []listing.Accommodation, error) {
		fs, err := s.flights.Search(ctx, params.DestinationCode, params.OriginCode, retDate)
		return fs, nil, err
	})
	for _, src := range s.accommodation {
		src := src
		run(src.Name(), fetchStay, func(ctx context.Context) ([]listing.Flight, []listing.Accommodation, error) {
			as, err := src.Search(ctx, city, depDate, retDate, params.Persons)
			return nil, as, err
		})
	}

	go func() {
		wg.Wait()
		close(resCh)
	}()

	var pools fetchedPools
	for outcome := range resCh {
		if s.metrics != nil {
			s.metrics.ObserveSourceLatency(outcome.name, outcome.elapsed.Seconds())
			if outcome.err != nil {
				s.metrics.IncSourceFailure(outcome.name)
			}
		}

		status := SourceStatus{Name: outcome.name, Elapsed: outcome.elapsed.Round(time.Millisecond).String()}
		if outcome.err != nil {
			status.Error = outcome.err.Error()
			s.logger.Warn("source failed", "source", outcome.name, "error", outcome.err)
		}

		switch outcome.kind {
		case fetchOutbound:
			pools.outbound = outcome.flights
			pools.outboundErr = outcome.err
			status.Count = len(outcome.flights)
		case fetchReturn:
			pools.returning = outcome.flights
			pools.returnErr = outcome.err
			status.Count = len(outcome.flights)
		case fetchStay:
			status.Count = len(outcome.stays)
			for _, a := range outcome.stays {
				if a.Kind == listing.KindRental {
					pools.rentals = append(pools.rentals, a)
				} else {
					pools.hotels = append(pools.hotels, a)
				}
			}
		}
		pools.statuses = append(pools.statuses, status)

		// No flights in either direction means no search result; cancel the
		// remaining fetches instead of waiting them out.
		if pools.outboundErr != nil && pools.returnErr != nil {
			cancel()
		}
	}
	return pools
}
