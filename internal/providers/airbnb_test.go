package providers

import (
	"encoding/json"
	"testing"

	"github.com/gerfru/holiday-engine/internal/listing"
)

func TestParseAirbnbItems(t *testing.T) {
	items := []json.RawMessage{
		json.RawMessage(`{
			"title": "Old Town Apartment",
			"pricing": {"price": "€ 1,240"},
			"rating": {"average": 4.82, "reviewsCount": 120},
			"url": "https://airbnb.example/rooms/1",
			"coordinates": {"latitude": 39.571, "longitude": 2.648},
			"subtitles": ["3 beds", "Beach view"]
		}`),
		json.RawMessage(`{"name": "No Price Loft", "pricing": {"price": ""}}`),
		json.RawMessage(`{"name": "Unrated Studio", "pricing": {"price": "$80"}}`),
	}

	rentals := parseAirbnbItems(items, 10)
	if len(rentals) != 2 {
		t.Fatalf("expected 2 rentals, got %d", len(rentals))
	}

	var apt listing.Accommodation
	for _, r := range rentals {
		if r.Kind != listing.KindRental {
			t.Fatalf("expected rental kind, got %q", r.Kind)
		}
		if r.Source != "Airbnb" {
			t.Fatalf("unexpected source %q", r.Source)
		}
		if r.Name == "Old Town Apartment" {
			apt = r
		}
	}

	if apt.PricePerNight != 1240 {
		t.Fatalf("price text not parsed: %v", apt.PricePerNight)
	}
	if apt.Rating != 4.82 {
		t.Fatalf("unexpected rating %v", apt.Rating)
	}
	if apt.Capacity != 6 {
		t.Fatalf("expected capacity 6 from 3 beds, got %d", apt.Capacity)
	}
	if apt.Location != "Lat: 39.571, Lon: 2.648" {
		t.Fatalf("unexpected location %q", apt.Location)
	}
}

func TestParsePriceText(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"€ 1,240", 1240},
		{"$80", 80},
		{"95.50", 95.5},
		{"", 0},
		{"free", 0},
	}
	for _, tt := range tests {
		if got := parsePriceText(tt.in); got != tt.want {
			t.Fatalf("parsePriceText(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCapacityFromSubtitles(t *testing.T) {
	tests := []struct {
		name      string
		subtitles []string
		want      int
	}{
		{"NoBedInfo", []string{"Beach view", "Fast wifi"}, 2},
		{"TwoBeds", []string{"2 beds"}, 4},
		{"Capped", []string{"9 beds"}, 12},
		{"SingleBed", []string{"1 bed"}, 2},
		{"Empty", nil, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := capacityFromSubtitles(tt.subtitles); got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}
