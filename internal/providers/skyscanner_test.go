package providers

import (
	"encoding/json"
	"testing"
)

const skyscannerSample = `{
	"_carriers": {"1429": {"name": "Lufthansa"}},
	"legs": [{
		"departure": "2026-06-01T08:35:00",
		"duration": 150,
		"stop_count": 0,
		"marketing_carrier_ids": [1429]
	}],
	"pricing_options": [
		{"price": {"amount": 189.5}, "items": [{"url": "/transport_deeplink/4.0/abc"}]},
		{"price": {"amount": 0}},
		{"price": {"amount": 205}, "items": [{"url": "https://partner.example/deal"}]}
	]
}`

func TestParseSkyscannerItems(t *testing.T) {
	items := []json.RawMessage{
		json.RawMessage(skyscannerSample),
		json.RawMessage(`{"legs": [], "pricing_options": []}`),
		json.RawMessage(`not json`),
	}

	flights := parseSkyscannerItems(items, "vie", "pmi", "2026-06-01", 10)
	if len(flights) != 2 {
		t.Fatalf("expected 2 flights, got %d", len(flights))
	}

	f := flights[0]
	if f.Origin != "VIE" || f.Destination != "PMI" {
		t.Fatalf("codes not uppercased: %q %q", f.Origin, f.Destination)
	}
	if f.Airline != "Lufthansa" {
		t.Fatalf("carrier not resolved: %q", f.Airline)
	}
	if f.DepartureTime != "08:35" {
		t.Fatalf("unexpected departure time %q", f.DepartureTime)
	}
	if f.Duration != "2h 30m" {
		t.Fatalf("unexpected duration %q", f.Duration)
	}
	if f.Price != 189.5 || !f.PerPerson {
		t.Fatalf("unexpected pricing: %+v", f)
	}
	if f.BookingURL != "https://www.skyscanner.com/transport_deeplink/4.0/abc" {
		t.Fatalf("deeplink not expanded: %q", f.BookingURL)
	}
	if flights[1].BookingURL != "https://partner.example/deal" {
		t.Fatalf("absolute url mangled: %q", flights[1].BookingURL)
	}
}

func TestParseSkyscannerItemsUnknownCarrier(t *testing.T) {
	item := `{
		"legs": [{"departure": "2026-06-01T08:35:00", "duration": 60, "stop_count": 1, "marketing_carrier_ids": []}],
		"pricing_options": [{"price": {"amount": 99}}]
	}`
	flights := parseSkyscannerItems([]json.RawMessage{json.RawMessage(item)}, "VIE", "PMI", "2026-06-01", 10)
	if len(flights) != 1 {
		t.Fatalf("expected 1 flight, got %d", len(flights))
	}
	if flights[0].Airline != "Unknown" {
		t.Fatalf("expected Unknown airline, got %q", flights[0].Airline)
	}
	if flights[0].Stops != 1 {
		t.Fatalf("expected 1 stop, got %d", flights[0].Stops)
	}
}

func TestParseSkyscannerItemsHonorsMax(t *testing.T) {
	items := []json.RawMessage{json.RawMessage(skyscannerSample), json.RawMessage(skyscannerSample)}
	flights := parseSkyscannerItems(items, "VIE", "PMI", "2026-06-01", 3)
	if len(flights) != 3 {
		t.Fatalf("expected max of 3 flights, got %d", len(flights))
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, ""},
		{45, "0h 45m"},
		{60, "1h"},
		{150, "2h 30m"},
		{330, "5h 30m"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.minutes); got != tt.want {
			t.Fatalf("formatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
