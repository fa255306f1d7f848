package export

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gerfru/holiday-engine/internal/combine"
	"github.com/gerfru/holiday-engine/internal/listing"
	"github.com/gerfru/holiday-engine/internal/models"
)

// CSVExporter writes each finished search to a set of CSV files for
// offline analysis: one for flights, one per accommodation kind and one
// for the ranked combinations. Files are named after the route and a
// timestamp so repeated searches never overwrite each other.
type CSVExporter struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

func NewCSVExporter(dir string, logger *slog.Logger) *CSVExporter {
	return &CSVExporter{dir: dir, logger: logger, now: time.Now}
}

func (e *CSVExporter) Export(params *models.SearchParams, outbound, returning []listing.Flight, accommodations []listing.Accommodation, combos []combine.Combination) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	timestamp := e.now().Format("20060102_150405")
	searchID := fmt.Sprintf("%s_%s_%s", params.OriginCode, params.DestinationCode, timestamp)

	if len(outbound) > 0 || len(returning) > 0 {
		if err := e.writeFlights(searchID, timestamp, params, outbound, returning); err != nil {
			return err
		}
	}
	var hotels, rentals []listing.Accommodation
	for _, a := range accommodations {
		if a.Kind == listing.KindRental {
			rentals = append(rentals, a)
		} else {
			hotels = append(hotels, a)
		}
	}
	if len(hotels) > 0 {
		if err := e.writeStays(searchID, timestamp, "hotels", params, hotels); err != nil {
			return err
		}
	}
	if len(rentals) > 0 {
		if err := e.writeStays(searchID, timestamp, "rentals", params, rentals); err != nil {
			return err
		}
	}
	if len(combos) > 0 {
		if err := e.writeCombinations(searchID, timestamp, params, combos); err != nil {
			return err
		}
	}

	e.logger.Info("search results exported", "search_id", searchID, "dir", e.dir)
	return nil
}

func (e *CSVExporter) writeFile(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(e.dir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	w.Flush()
	return w.Error()
}

func (e *CSVExporter) writeFlights(searchID, timestamp string, params *models.SearchParams, outbound, returning []listing.Flight) error {
	header := []string{
		"search_timestamp", "search_origin", "search_destination",
		"search_departure", "search_return", "search_persons", "search_budget",
		"flight_type", "airline", "departure_time", "duration", "stops",
		"price_eur", "source", "booking_url", "date",
	}

	ctx := e.searchColumns(timestamp, params)
	var rows [][]string
	appendLeg := func(flightType string, flights []listing.Flight) {
		for _, f := range flights {
			rows = append(rows, append(append([]string{}, ctx...),
				flightType, f.Airline, f.DepartureTime, f.Duration,
				strconv.Itoa(f.Stops), money(f.Price), f.Source, f.BookingURL, f.Date))
		}
	}
	appendLeg("outbound", outbound)
	appendLeg("return", returning)

	return e.writeFile("flights_"+searchID+".csv", header, rows)
}

func (e *CSVExporter) writeStays(searchID, timestamp, kind string, params *models.SearchParams, stays []listing.Accommodation) error {
	header := []string{
		"search_timestamp", "search_origin", "search_destination",
		"search_departure", "search_return", "search_persons", "search_budget", "nights",
		"name", "rating", "location", "type", "capacity",
		"price_total_eur", "price_per_night_eur", "source", "booking_url",
		"checkin", "checkout",
	}

	nights := params.Nights()
	ctx := e.searchColumns(timestamp, params)
	checkin := params.Departure.Format("2006-01-02")
	checkout := params.Return.Format("2006-01-02")

	var rows [][]string
	for _, a := range stays {
		rows = append(rows, append(append([]string{}, ctx...),
			strconv.Itoa(nights), a.Name, money(a.Rating), a.Location, string(a.Kind),
			strconv.Itoa(a.Capacity), money(a.PricePerNight*float64(nights)),
			money(a.PricePerNight), a.Source, a.BookingURL, checkin, checkout))
	}
	return e.writeFile(kind+"_"+searchID+".csv", header, rows)
}

func (e *CSVExporter) writeCombinations(searchID, timestamp string, params *models.SearchParams, combos []combine.Combination) error {
	header := []string{
		"search_timestamp", "search_origin", "search_destination",
		"search_departure", "search_return", "search_persons", "search_budget",
		"rank", "score", "outbound_airline", "return_airline",
		"accommodation", "accommodation_type", "rating",
		"flight_cost_eur", "accommodation_cost_eur", "total_cost_eur",
		"cost_per_person_eur", "cost_per_night_eur", "nights",
	}

	ctx := e.searchColumns(timestamp, params)
	var rows [][]string
	for i, c := range combos {
		rows = append(rows, append(append([]string{}, ctx...),
			strconv.Itoa(i+1), money(c.Score), c.Outbound.Airline, c.Return.Airline,
			c.Accommodation.Name, string(c.Accommodation.Kind), money(c.Accommodation.Rating),
			money(c.FlightCost), money(c.StayCost), money(c.TotalCost),
			money(c.CostPerPerson), money(c.CostPerNight), strconv.Itoa(c.Nights)))
	}
	return e.writeFile("combinations_"+searchID+".csv", header, rows)
}

func (e *CSVExporter) searchColumns(timestamp string, params *models.SearchParams) []string {
	budget := ""
	if params.HasBudget() {
		budget = money(params.Budget)
	}
	return []string{
		timestamp,
		params.Origin,
		params.Destination,
		params.Departure.Format("2006-01-02"),
		params.Return.Format("2006-01-02"),
		strconv.Itoa(params.Persons),
		budget,
	}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
