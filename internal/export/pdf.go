package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/gerfru/holiday-engine/internal/combine"
	"github.com/gerfru/holiday-engine/internal/models"
)

// ItineraryPDF renders the ranked combinations of one search as a printable
// itinerary and returns the raw bytes so handlers can stream it directly.
func ItineraryPDF(params *models.SearchParams, combos []combine.Combination) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Header bar
	pdf.SetFillColor(20, 42, 70)
	pdf.Rect(0, 0, 210, 26, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 7)
	pdf.CellFormat(120, 10, "Holiday Engine", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(20, 16)
	pdf.CellFormat(170, 6, "Trip options for your search", "", 1, "L", false, 0, "")

	pdf.SetY(34)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		pdf.SetFillColor(20, 42, 70)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 6, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 6, value, "", 1, "L", false, 0, "")
	}

	sectionHeader("Search")
	row("Route", fmt.Sprintf("%s (%s) - %s (%s)", params.Origin, params.OriginCode, params.Destination, params.DestinationCode))
	row("Departure", params.Departure.Format("02 Jan 2006 (Mon)"))
	row("Return", params.Return.Format("02 Jan 2006 (Mon)"))
	row("Travellers", fmt.Sprintf("%d", params.Persons))
	if params.HasBudget() {
		row("Budget", fmt.Sprintf("EUR %.0f", params.Budget))
	}
	row("Generated", time.Now().Format("02 Jan 2006, 15:04"))
	pdf.Ln(4)

	if len(combos) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(170, 6, "No combinations matched this search.", "", "L", false)
	}

	for i, c := range combos {
		sectionHeader(fmt.Sprintf("Option %d  -  Score %.1f / 100", i+1, c.Score))
		row("Outbound", flightLine(c.Outbound.Airline, c.Outbound.DepartureTime, c.Outbound.Duration, c.Outbound.Stops))
		row("Return", flightLine(c.Return.Airline, c.Return.DepartureTime, c.Return.Duration, c.Return.Stops))
		row("Stay", fmt.Sprintf("%s (%s, %.1f/5)", c.Accommodation.Name, c.Accommodation.Kind, c.Accommodation.Rating))
		row("Location", c.Accommodation.Location)
		row("Flights", fmt.Sprintf("EUR %.2f", c.FlightCost))
		row("Accommodation", fmt.Sprintf("EUR %.2f (%d nights)", c.StayCost, c.Nights))

		pdf.SetFillColor(234, 240, 248)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(55, 8, "TOTAL", "", 0, "L", true, 0, "")
		pdf.CellFormat(115, 8, fmt.Sprintf("EUR %.2f  (EUR %.2f per person)", c.TotalCost, c.CostPerPerson), "", 1, "L", true, 0, "")
		pdf.Ln(4)
	}

	// Footer
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8, "Not a booking confirmation. Prices are estimates and subject to change.", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render itinerary pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func flightLine(airline, depart, duration string, stops int) string {
	stopText := "direct"
	if stops == 1 {
		stopText = "1 stop"
	} else if stops > 1 {
		stopText = fmt.Sprintf("%d stops", stops)
	}
	line := airline
	if depart != "" {
		line += " " + depart
	}
	if duration != "" {
		line += ", " + duration
	}
	return line + ", " + stopText
}
