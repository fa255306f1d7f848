package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/gerfru/holiday-engine/internal/listing"
)

const bookingActor = "voyager~fast-booking-scraper"

// BookingHotels adapts the Booking.com scraping actor to the
// Accommodations interface.
type BookingHotels struct {
	client     *ApifyClient
	maxResults int
}

func NewBookingHotels(client *ApifyClient, maxResults int) *BookingHotels {
	return &BookingHotels{client: client, maxResults: maxResults}
}

func (b *BookingHotels) Name() string                   { return "booking" }
func (b *BookingHotels) Kind() listing.AccommodationKind { return listing.KindHotel }

func (b *BookingHotels) Search(ctx context.Context, city, checkin, checkout string, guests int) ([]listing.Accommodation, error) {
	input := map[string]any{
		"currency":                         "EUR",
		"language":                         "en-us",
		"search":                           city,
		"sortBy":                           "review_score_and_price",
		"starsCountFilter":                 "any",
		"checkIn":                          checkin,
		"checkOut":                         checkout,
		"rooms":                            1,
		"adults":                           guests,
		"children":                         0,
		"includeAlternativeAccommodations": true,
		"destType":                         "city",
	}

	items, err := b.client.CallActor(ctx, bookingActor, input)
	if err != nil {
		return nil, fmt.Errorf("booking search %s: %w", city, err)
	}
	return parseBookingItems(items, b.maxResults), nil
}

type bookingItem struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Rating  float64 `json:"rating"`
	Stars   float64 `json:"stars"`
	Type    string  `json:"type"`
	URL     string  `json:"url"`
	Address struct {
		Full string `json:"full"`
		City string `json:"city"`
	} `json:"address"`
	Location string `json:"location"`
	Rooms    []struct {
		Options []struct {
			Price float64 `json:"price"`
		} `json:"options"`
	} `json:"rooms"`
}

func parseBookingItems(items []json.RawMessage, max int) []listing.Accommodation {
	var hotels []listing.Accommodation
	for _, raw := range items {
		var item bookingItem
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}

		price := item.Price
		if price <= 0 {
			price = cheapestRoomPrice(item)
		}
		if price <= 0 {
			continue
		}

		rating := item.Rating
		if rating <= 0 {
			rating = item.Stars
		}
		if rating <= 0 {
			rating = 4.0 // unrated listings get a neutral default
		}

		location := item.Address.Full
		if location == "" {
			location = item.Address.City
		}
		if location == "" {
			location = item.Location
		}
		if location == "" {
			location = "City Center"
		}

		hotels = append(hotels, listing.Accommodation{
			Kind:          listing.KindHotel,
			Name:          truncate(item.Name, 60),
			PricePerNight: price,
			Currency:      "EUR",
			Rating:        rating,
			Location:      truncate(location, 50),
			Source:        "Booking.com",
			BookingURL:    truncate(item.URL, 200),
		})
	}

	// Best value first: price-to-rating ratio ascending
	sort.SliceStable(hotels, func(i, j int) bool {
		return valueRatio(hotels[i]) < valueRatio(hotels[j])
	})

	if max > 0 && len(hotels) > max {
		hotels = hotels[:max]
	}
	return hotels
}

func cheapestRoomPrice(item bookingItem) float64 {
	best := 0.0
	for _, room := range item.Rooms {
		for _, opt := range room.Options {
			if opt.Price > 0 && (best == 0 || opt.Price < best) {
				best = opt.Price
			}
		}
	}
	return best
}

func valueRatio(a listing.Accommodation) float64 {
	rating := a.Rating
	if rating < 1 {
		rating = 1
	}
	return a.PricePerNight / rating
}
