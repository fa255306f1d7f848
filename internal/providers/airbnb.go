package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gerfru/holiday-engine/internal/listing"
)

const airbnbActor = "tri_angle~airbnb-scraper"

// AirbnbRentals adapts the Airbnb scraping actor to the Accommodations
// interface for short-term rentals.
type AirbnbRentals struct {
	client     *ApifyClient
	maxResults int
}

func NewAirbnbRentals(client *ApifyClient, maxResults int) *AirbnbRentals {
	return &AirbnbRentals{client: client, maxResults: maxResults}
}

func (a *AirbnbRentals) Name() string                    { return "airbnb" }
func (a *AirbnbRentals) Kind() listing.AccommodationKind { return listing.KindRental }

func (a *AirbnbRentals) Search(ctx context.Context, city, checkin, checkout string, guests int) ([]listing.Accommodation, error) {
	input := map[string]any{
		"locationQueries": []string{city},
		"locale":          "en-US",
		"currency":        "EUR",
		"checkIn":         checkin,
		"checkOut":        checkout,
		"adults":          guests,
		"children":        0,
		"infants":         0,
		"pets":            0,
	}

	items, err := a.client.CallActor(ctx, airbnbActor, input)
	if err != nil {
		return nil, fmt.Errorf("airbnb search %s: %w", city, err)
	}
	return parseAirbnbItems(items, a.maxResults), nil
}

type airbnbItem struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Pricing struct {
		Price string `json:"price"`
	} `json:"pricing"`
	Rating struct {
		Average      float64 `json:"average"`
		ReviewsCount int     `json:"reviewsCount"`
	} `json:"rating"`
	RoomType    string `json:"roomType"`
	URL         string `json:"url"`
	Coordinates struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"coordinates"`
	Subtitles []string `json:"subtitles"`
}

var digitsRe = regexp.MustCompile(`\d+`)

func parseAirbnbItems(items []json.RawMessage, max int) []listing.Accommodation {
	var rentals []listing.Accommodation
	for _, raw := range items {
		var item airbnbItem
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}

		price := parsePriceText(item.Pricing.Price)
		if price <= 0 {
			continue
		}

		name := item.Name
		if name == "" {
			name = item.Title
		}
		if name == "" {
			continue
		}

		rating := item.Rating.Average
		if rating <= 0 {
			rating = 4.0
		}

		location := "City Center"
		if item.Coordinates.Latitude != 0 && item.Coordinates.Longitude != 0 {
			location = fmt.Sprintf("Lat: %.3f, Lon: %.3f", item.Coordinates.Latitude, item.Coordinates.Longitude)
		}

		rentals = append(rentals, listing.Accommodation{
			Kind:          listing.KindRental,
			Name:          truncate(name, 60),
			PricePerNight: price,
			Currency:      "EUR",
			Rating:        rating,
			Capacity:      capacityFromSubtitles(item.Subtitles),
			Location:      truncate(location, 50),
			Source:        "Airbnb",
			BookingURL:    truncate(item.URL, 300),
		})
	}

	sort.SliceStable(rentals, func(i, j int) bool {
		return valueRatio(rentals[i]) < valueRatio(rentals[j])
	})

	if max > 0 && len(rentals) > max {
		rentals = rentals[:max]
	}
	return rentals
}

// parsePriceText strips currency symbols and separators from a display
// price like "€ 1,234" and parses the remainder.
func parsePriceText(s string) float64 {
	clean := strings.NewReplacer("€", "", "$", "", ",", "", " ", "", " ", "").Replace(s)
	if clean == "" {
		return 0
	}
	price, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return price
}

// capacityFromSubtitles guesses sleeping capacity from listing subtitles
// such as "2 beds", assuming two people per bed, capped at 12.
func capacityFromSubtitles(subtitles []string) int {
	for _, s := range subtitles {
		if !strings.Contains(strings.ToLower(s), "bed") {
			continue
		}
		if num := digitsRe.FindString(s); num != "" {
			if beds, err := strconv.Atoi(num); err == nil && beds > 0 {
				capacity := beds * 2
				if capacity > 12 {
					capacity = 12
				}
				return capacity
			}
		}
	}
	return 2
}
