package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gerfru/holiday-engine/internal/listing"
)

const skyscannerActor = "jupri~skyscanner-flight"

// SkyscannerFlights adapts the Skyscanner scraping actor to the Flights
// interface. Fares from this source are per person.
type SkyscannerFlights struct {
	client     *ApifyClient
	maxResults int
}

func NewSkyscannerFlights(client *ApifyClient, maxResults int) *SkyscannerFlights {
	return &SkyscannerFlights{client: client, maxResults: maxResults}
}

func (s *SkyscannerFlights) Name() string { return "skyscanner" }

func (s *SkyscannerFlights) Search(ctx context.Context, origin, destination, date string) ([]listing.Flight, error) {
	input := map[string]any{
		"origin.0": strings.ToUpper(origin),
		"target.0": strings.ToUpper(destination),
		"depart.0": date,
		"market":   "DE",
		"currency": "EUR",
	}

	items, err := s.client.CallActor(ctx, skyscannerActor, input)
	if err != nil {
		return nil, fmt.Errorf("skyscanner search %s-%s: %w", origin, destination, err)
	}

	flights := parseSkyscannerItems(items, origin, destination, date, s.maxResults)
	return flights, nil
}

type skyscannerItem struct {
	Carriers map[string]struct {
		Name string `json:"name"`
	} `json:"_carriers"`
	Legs []struct {
		Departure           string        `json:"departure"`
		Duration            int           `json:"duration"`
		StopCount           int           `json:"stop_count"`
		MarketingCarrierIDs []json.Number `json:"marketing_carrier_ids"`
	} `json:"legs"`
	PricingOptions []struct {
		Price struct {
			Amount float64 `json:"amount"`
		} `json:"price"`
		Items []struct {
			URL string `json:"url"`
		} `json:"items"`
	} `json:"pricing_options"`
}

// parseSkyscannerItems tolerantly extracts flights from raw actor output.
// Malformed items are skipped, at most 5 pricing options are taken per
// item, and unpriced options are dropped.
func parseSkyscannerItems(items []json.RawMessage, origin, destination, date string, max int) []listing.Flight {
	var flights []listing.Flight
	for _, raw := range items {
		var item skyscannerItem
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		if len(item.Legs) == 0 || len(item.PricingOptions) == 0 {
			continue
		}

		leg := item.Legs[0]
		airline := "Unknown"
		if len(leg.MarketingCarrierIDs) > 0 {
			if carrier, ok := item.Carriers[leg.MarketingCarrierIDs[0].String()]; ok && carrier.Name != "" {
				airline = carrier.Name
			}
		}

		options := item.PricingOptions
		if len(options) > 5 {
			options = options[:5]
		}
		for _, opt := range options {
			if opt.Price.Amount <= 0 {
				continue
			}
			f := listing.Flight{
				Origin:        strings.ToUpper(origin),
				Destination:   strings.ToUpper(destination),
				Date:          date,
				Airline:       airline,
				DepartureTime: clockTime(leg.Departure),
				Duration:      formatMinutes(leg.Duration),
				Stops:         leg.StopCount,
				Price:         opt.Price.Amount,
				Currency:      "EUR",
				PerPerson:     true,
				Source:        "Skyscanner",
			}
			if len(opt.Items) > 0 {
				f.BookingURL = bookingURL(opt.Items[0].URL)
			}
			flights = append(flights, f)
			if max > 0 && len(flights) >= max {
				return flights
			}
		}
	}
	return flights
}

// clockTime reduces an ISO timestamp to HH:MM for display.
func clockTime(iso string) string {
	if idx := strings.Index(iso, "T"); idx >= 0 && len(iso) >= idx+6 {
		return iso[idx+1 : idx+6]
	}
	return iso
}

func formatMinutes(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	h := minutes / 60
	m := minutes % 60
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}

func bookingURL(raw string) string {
	if strings.HasPrefix(raw, "/transport_deeplink/") {
		return "https://www.skyscanner.com" + raw
	}
	return truncate(raw, 200)
}
