package listing

// AccommodationKind tags the two accommodation variants the engine treats
// uniformly. Dispatch on the tag, never on the concrete source.
type AccommodationKind string

const (
	KindHotel  AccommodationKind = "hotel"
	KindRental AccommodationKind = "rental"
)

// Flight is one priced leg as returned by a flight source. Immutable once
// parsed.
type Flight struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	Date          string  `json:"date"`
	Airline       string  `json:"airline"`
	DepartureTime string  `json:"departure_time"`
	Duration      string  `json:"duration"`
	Stops         int     `json:"stops"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	PerPerson     bool    `json:"per_person"`
	Source        string  `json:"source"`
	BookingURL    string  `json:"booking_url,omitempty"`
}

// Valid reports whether the flight carries a usable price. Listings failing
// this never reach combination construction.
func (f Flight) Valid() bool {
	return f.Price > 0
}

// Accommodation is one hotel or short-term rental option. PricePerNight is
// the nightly rate; total stay cost is derived from the search dates, never
// from the record itself.
type Accommodation struct {
	Kind          AccommodationKind `json:"kind"`
	Name          string            `json:"name"`
	PricePerNight float64           `json:"price_per_night"`
	Currency      string            `json:"currency"`
	Rating        float64           `json:"rating"`
	Capacity      int               `json:"capacity"`
	Location      string            `json:"location"`
	Source        string            `json:"source"`
	BookingURL    string            `json:"booking_url,omitempty"`
}

func (a Accommodation) Valid() bool {
	return a.PricePerNight > 0 && a.Name != ""
}
