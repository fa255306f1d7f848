package combine

import (
	"math"
	"sort"

	"github.com/gerfru/holiday-engine/internal/listing"
	"github.com/gerfru/holiday-engine/internal/models"
)

// Options holds the engine's business knobs. The flexibility margin is how
// far over a stated budget a candidate may land and still be considered;
// such candidates score in the lowest tiers instead of being dropped
// outright.
type Options struct {
	MaxCombinations   int
	FlexibilityMargin float64
}

func DefaultOptions() Options {
	return Options{MaxCombinations: 5, FlexibilityMargin: 0.20}
}

// Combination is one outbound flight + return flight + accommodation with
// derived costs and a score in [0,100]. Never mutated after scoring.
type Combination struct {
	Outbound      listing.Flight        `json:"outbound_flight"`
	Return        listing.Flight        `json:"return_flight"`
	Accommodation listing.Accommodation `json:"accommodation"`
	FlightCost    float64               `json:"flight_cost"`
	StayCost      float64               `json:"accommodation_cost"`
	TotalCost     float64               `json:"total_cost"`
	CostPerPerson float64               `json:"cost_per_person"`
	CostPerNight  float64               `json:"cost_per_night"`
	Nights        int                   `json:"nights"`
	Persons       int                   `json:"persons"`
	Score         float64               `json:"score"`
}

// Engine builds, filters, scores and ranks travel packages. Pure and
// stateless: identical inputs always yield identical ordered output.
type Engine struct {
	opts Options
}

func NewEngine(opts Options) *Engine {
	if opts.MaxCombinations <= 0 {
		opts.MaxCombinations = DefaultOptions().MaxCombinations
	}
	if opts.FlexibilityMargin < 0 {
		opts.FlexibilityMargin = DefaultOptions().FlexibilityMargin
	}
	return &Engine{opts: opts}
}

// CreateCombinations cross-products the flight and accommodation pools,
// drops candidates with invalid prices or totals beyond the flexible budget
// bound, scores the rest, and returns the top options ordered by score
// descending with total cost as the tie-break. Empty pools yield an empty
// result, not an error; callers are expected to cap pool sizes upstream.
func (e *Engine) CreateCombinations(outbound, returning []listing.Flight, accommodations []listing.Accommodation, params *models.SearchParams) []Combination {
	// Always a non-nil slice so empty results serialize as [] rather
	// than null.
	combos := []Combination{}
	if len(outbound) == 0 || len(returning) == 0 || len(accommodations) == 0 {
		return combos
	}

	nights := params.Nights()
	persons := params.Persons
	budget := params.Budget

	for _, out := range outbound {
		if !out.Valid() {
			continue
		}
		for _, ret := range returning {
			if !ret.Valid() {
				continue
			}
			for _, acc := range accommodations {
				if !acc.Valid() {
					continue
				}

				flightCost := legCost(out, persons) + legCost(ret, persons)
				stayCost := acc.PricePerNight * float64(nights)
				total := flightCost + stayCost

				if budget > 0 && total > budget*(1+e.opts.FlexibilityMargin) {
					continue
				}

				combos = append(combos, Combination{
					Outbound:      out,
					Return:        ret,
					Accommodation: acc,
					FlightCost:    flightCost,
					StayCost:      stayCost,
					TotalCost:     total,
					CostPerPerson: total / float64(persons),
					CostPerNight:  total / float64(nights),
					Nights:        nights,
					Persons:       persons,
					Score:         Score(total, acc.Rating, budget),
				})
			}
		}
	}

	sort.SliceStable(combos, func(i, j int) bool {
		if combos[i].Score != combos[j].Score {
			return combos[i].Score > combos[j].Score
		}
		return combos[i].TotalCost < combos[j].TotalCost
	})

	if len(combos) > e.opts.MaxCombinations {
		combos = combos[:e.opts.MaxCombinations]
	}
	return combos
}

// legCost prices a single flight leg for the whole party. Per-person fares
// scale with party size, package fares do not.
func legCost(f listing.Flight, persons int) float64 {
	if f.PerPerson {
		return f.Price * float64(persons)
	}
	return f.Price
}

// Score rates a candidate in [0,100] from its total cost, the
// accommodation rating and the budget. Two additive halves: quality
// (rating on a 0-5 scale, 10 points per star, capped at 50) and budget fit.
// Without a budget the budget half is a fixed neutral 30 so candidates stay
// comparable on quality alone.
func Score(totalCost, rating float64, budget float64) float64 {
	score := math.Min(rating*10, 50)

	switch {
	case budget <= 0:
		score += 30
	case totalCost <= budget*0.8:
		score += 50
	case totalCost <= budget:
		score += 30
	case totalCost <= budget*1.1:
		score += 15
	}

	return math.Round(score*10) / 10
}
