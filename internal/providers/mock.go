package providers

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/gerfru/holiday-engine/internal/listing"
)

// Mock sources produce plausible listings without API credentials. They are
// wired when no Apify token is configured and double as deterministic test
// doubles when latency and failure rate are zero.

type MockFlights struct {
	name       string
	avgLatency float64
	failRate   float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewMockFlights(name string, avgLatency, failRate float64, seed int64) *MockFlights {
	return &MockFlights{name: name, avgLatency: avgLatency, failRate: failRate, rng: rand.New(rand.NewSource(seed))}
}

func (m *MockFlights) Name() string { return m.name }

func (m *MockFlights) Search(ctx context.Context, origin, destination, date string) ([]listing.Flight, error) {
	if err := m.simulate(ctx); err != nil {
		return nil, err
	}

	options := []struct {
		airline  string
		priceMod float64
		stops    int
	}{
		{"Turkish Airlines", 1.00, 0},
		{"Lufthansa", 1.15, 0},
		{"Emirates", 1.30, 0},
		{"Wizz Air", 0.65, 1},
		{"FlyDubai", 0.80, 1},
	}

	base := 120 + float64(len(origin+destination)*17%280)
	flights := make([]listing.Flight, 0, len(options))
	for i, opt := range options {
		durMin := 150 + opt.stops*90
		flights = append(flights, listing.Flight{
			Origin:        origin,
			Destination:   destination,
			Date:          date,
			Airline:       opt.airline,
			DepartureTime: fmt.Sprintf("%02d:00", 6+i*3),
			Duration:      formatMinutes(durMin),
			Stops:         opt.stops,
			Price:         float64(int(base*opt.priceMod/5) * 5),
			Currency:      "EUR",
			PerPerson:     true,
			Source:        m.name,
		})
	}
	return flights, nil
}

// simulate draws latency and failure outcomes. The rng is shared by the
// outbound and return legs, which run concurrently, so draws are
// mutex-guarded and the sleep happens outside the lock.
func (m *MockFlights) simulate(ctx context.Context) error {
	m.mu.Lock()
	var delay time.Duration
	if m.avgLatency > 0 {
		delay = sampleLatencyFromRng(m.rng, m.avgLatency)
	}
	fail := shouldFailFromRng(m.rng, m.failRate)
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if fail {
		return errors.New("source error (simulated)")
	}
	return nil
}

type MockAccommodations struct {
	name       string
	kind       listing.AccommodationKind
	avgLatency float64
	failRate   float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewMockAccommodations(name string, kind listing.AccommodationKind, avgLatency, failRate float64, seed int64) *MockAccommodations {
	return &MockAccommodations{name: name, kind: kind, avgLatency: avgLatency, failRate: failRate, rng: rand.New(rand.NewSource(seed))}
}

func (m *MockAccommodations) Name() string                    { return m.name }
func (m *MockAccommodations) Kind() listing.AccommodationKind { return m.kind }

func (m *MockAccommodations) Search(ctx context.Context, city, checkin, checkout string, guests int) ([]listing.Accommodation, error) {
	if err := m.simulate(ctx); err != nil {
		return nil, err
	}

	if m.kind == listing.KindRental {
		return []listing.Accommodation{
			{Kind: m.kind, Name: "Old Town Apartment", PricePerNight: 85, Currency: "EUR", Rating: 4.6, Capacity: 4, Location: "Old Town, " + city, Source: m.name},
			{Kind: m.kind, Name: "Seaside Studio", PricePerNight: 65, Currency: "EUR", Rating: 4.3, Capacity: 2, Location: "Waterfront, " + city, Source: m.name},
			{Kind: m.kind, Name: "Garden Loft", PricePerNight: 110, Currency: "EUR", Rating: 4.8, Capacity: 6, Location: "Suburbs, " + city, Source: m.name},
		}, nil
	}
	return []listing.Accommodation{
		{Kind: m.kind, Name: "Grand City Hotel", PricePerNight: 150, Currency: "EUR", Rating: 4.5, Capacity: guests, Location: "City Center, " + city, Source: m.name},
		{Kind: m.kind, Name: "Business Inn", PricePerNight: 95, Currency: "EUR", Rating: 4.2, Capacity: guests, Location: "Business District, " + city, Source: m.name},
		{Kind: m.kind, Name: "Boutique Residence", PricePerNight: 120, Currency: "EUR", Rating: 4.4, Capacity: guests, Location: "Arts District, " + city, Source: m.name},
		{Kind: m.kind, Name: "Economy Suites", PricePerNight: 65, Currency: "EUR", Rating: 3.9, Capacity: guests, Location: "Near Airport, " + city, Source: m.name},
	}, nil
}

// simulate mirrors the flight mock: rng draws under the lock, since one
// accommodation mock can serve concurrent searches.
func (m *MockAccommodations) simulate(ctx context.Context) error {
	m.mu.Lock()
	var delay time.Duration
	if m.avgLatency > 0 {
		delay = sampleLatencyFromRng(m.rng, m.avgLatency)
	}
	fail := shouldFailFromRng(m.rng, m.failRate)
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if fail {
		return errors.New("source error (simulated)")
	}
	return nil
}

func sampleLatencyFromRng(rng *rand.Rand, avg float64) time.Duration {
	ms := float64(50) + rng.ExpFloat64()*avg*200.0
	return time.Duration(ms) * time.Millisecond
}

func shouldFailFromRng(rng *rand.Rand, rate float64) bool {
	if rate <= 0 {
		return false
	}
	return rng.Float64() < rate
}
