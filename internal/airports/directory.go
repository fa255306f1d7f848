package airports

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/umahmood/haversine"
)

//go:embed airports.csv
var dataFS embed.FS

// maxNearestKm caps how far away a "nearest" airport may be before the
// lookup is treated as failed. Beyond this the geocoded point is probably
// not a place people fly to.
const maxNearestKm = 300.0

type Airport struct {
	Code         string
	Name         string
	Municipality string
	Country      string
	Lat          float64
	Lon          float64
	Size         string
}

// Directory is the read-only airport reference dataset, loaded once at
// process start. Safe for concurrent use.
type Directory struct {
	byCode map[string]Airport
	all    []Airport
}

// Load parses the embedded airport dataset. Rows without a scheduled-service
// flag or IATA code are skipped, mirroring the upstream data filter.
func Load() (*Directory, error) {
	f, err := dataFS.Open("airports.csv")
	if err != nil {
		return nil, fmt.Errorf("open airports data: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if _, err := r.Read(); err != nil { // header
		return nil, fmt.Errorf("read airports header: %w", err)
	}

	d := &Directory{byCode: make(map[string]Airport)}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read airports row: %w", err)
		}
		if len(rec) < 8 {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(rec[0]))
		if code == "" || rec[7] != "yes" {
			continue
		}
		lat, err1 := strconv.ParseFloat(rec[4], 64)
		lon, err2 := strconv.ParseFloat(rec[5], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		a := Airport{
			Code:         code,
			Name:         rec[1],
			Municipality: rec[2],
			Country:      rec[3],
			Lat:          lat,
			Lon:          lon,
			Size:         rec[6],
		}
		d.byCode[code] = a
		d.all = append(d.all, a)
	}

	if len(d.all) == 0 {
		return nil, fmt.Errorf("airports dataset is empty")
	}
	return d, nil
}

func (d *Directory) Get(code string) (Airport, bool) {
	a, ok := d.byCode[strings.ToUpper(code)]
	return a, ok
}

func (d *Directory) Valid(code string) bool {
	_, ok := d.Get(code)
	return ok
}

func (d *Directory) Len() int {
	return len(d.all)
}

// Nearest scans every airport with scheduled service and returns the one
// closest to the given point, with its distance in kilometers. Exact
// distance ties go to the airport with the larger size class. Returns false
// when the closest match is further than the acceptance bound.
func (d *Directory) Nearest(lat, lon float64) (Airport, float64, bool) {
	var (
		best     Airport
		bestKm   = -1.0
		bestRank = -1
	)
	from := haversine.Coord{Lat: lat, Lon: lon}
	for _, a := range d.all {
		_, km := haversine.Distance(from, haversine.Coord{Lat: a.Lat, Lon: a.Lon})
		rank := sizeRank(a.Size)
		switch {
		case bestKm < 0 || km < bestKm:
			best, bestKm, bestRank = a, km, rank
		case km == bestKm && rank > bestRank:
			best, bestRank = a, rank
		}
	}
	if bestKm < 0 || bestKm > maxNearestKm {
		return Airport{}, bestKm, false
	}
	return best, bestKm, true
}

// Municipalities returns up to limit distinct municipality names for
// airports of the given size class, in dataset order.
func (d *Directory) Municipalities(size string, limit int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, a := range d.all {
		if a.Size != size || a.Municipality == "" {
			continue
		}
		if _, dup := seen[a.Municipality]; dup {
			continue
		}
		seen[a.Municipality] = struct{}{}
		out = append(out, a.Municipality)
		if len(out) == limit {
			break
		}
	}
	return out
}

func sizeRank(size string) int {
	switch size {
	case "large_airport":
		return 3
	case "medium_airport":
		return 2
	case "small_airport":
		return 1
	default:
		return 0
	}
}
