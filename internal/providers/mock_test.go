package providers

import (
	"context"
	"sync"
	"testing"

	"github.com/gerfru/holiday-engine/internal/listing"
)

func TestMockFlightsDeterministic(t *testing.T) {
	m := NewMockFlights("mock-flights", 0, 0, 42)

	flights, err := m.Search(context.Background(), "VIE", "PMI", "2026-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(flights) != 5 {
		t.Fatalf("expected 5 flight options, got %d", len(flights))
	}
	for _, f := range flights {
		if !f.Valid() {
			t.Fatalf("invalid mock flight: %+v", f)
		}
		if f.Origin != "VIE" || f.Destination != "PMI" || f.Date != "2026-06-01" {
			t.Fatalf("route fields not propagated: %+v", f)
		}
		if !f.PerPerson || f.Currency != "EUR" {
			t.Fatalf("unexpected fare fields: %+v", f)
		}
	}

	again, _ := m.Search(context.Background(), "VIE", "PMI", "2026-06-01")
	for i := range flights {
		if flights[i].Price != again[i].Price {
			t.Fatal("mock prices must be deterministic for the same route")
		}
	}
}

func TestMockAccommodationsKinds(t *testing.T) {
	hotels := NewMockAccommodations("mock-hotels", listing.KindHotel, 0, 0, 1)
	rentals := NewMockAccommodations("mock-rentals", listing.KindRental, 0, 0, 2)

	hs, err := hotels.Search(context.Background(), "Palma", "2026-06-01", "2026-06-05", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rs, err := rentals.Search(context.Background(), "Palma", "2026-06-01", "2026-06-05", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(hs) == 0 || len(rs) == 0 {
		t.Fatalf("expected listings from both kinds, got %d/%d", len(hs), len(rs))
	}
	for _, h := range hs {
		if h.Kind != listing.KindHotel || !h.Valid() {
			t.Fatalf("bad hotel listing: %+v", h)
		}
	}
	for _, r := range rs {
		if r.Kind != listing.KindRental || !r.Valid() {
			t.Fatalf("bad rental listing: %+v", r)
		}
	}
}

func TestMockFailureRate(t *testing.T) {
	m := NewMockFlights("mock-flights", 0, 1.0, 7)
	if _, err := m.Search(context.Background(), "VIE", "PMI", "2026-06-01"); err == nil {
		t.Fatal("expected simulated failure with rate 1.0")
	}
}

// One flight mock serves the outbound and return legs at the same time, and
// one accommodation mock serves overlapping requests. Both must be safe to
// query concurrently while drawing from their rng (run with -race).
func TestMockSourcesConcurrentSearch(t *testing.T) {
	flights := NewMockFlights("mock-flights", 0, 0.5, 3)
	stays := NewMockAccommodations("mock-hotels", listing.KindHotel, 0, 0.5, 4)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				flights.Search(context.Background(), "VIE", "PMI", "2026-06-01")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				stays.Search(context.Background(), "Palma", "2026-06-01", "2026-06-05", 2)
			}
		}()
	}
	wg.Wait()
}
