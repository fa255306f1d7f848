package combine

// Stats summarizes a ranked combination set for presentation.
type Stats struct {
	Total        int     `json:"total"`
	MinTotalCost float64 `json:"min_total_cost"`
	MaxTotalCost float64 `json:"max_total_cost"`
	AvgTotalCost float64 `json:"avg_total_cost"`
	BestScore    float64 `json:"best_score"`
	Hotels       int     `json:"hotels"`
	Rentals      int     `json:"rentals"`
}

func Summarize(combos []Combination) Stats {
	s := Stats{Total: len(combos)}
	if len(combos) == 0 {
		return s
	}

	s.MinTotalCost = combos[0].TotalCost
	var sum float64
	for _, c := range combos {
		sum += c.TotalCost
		if c.TotalCost < s.MinTotalCost {
			s.MinTotalCost = c.TotalCost
		}
		if c.TotalCost > s.MaxTotalCost {
			s.MaxTotalCost = c.TotalCost
		}
		if c.Score > s.BestScore {
			s.BestScore = c.Score
		}
		switch c.Accommodation.Kind {
		case "rental":
			s.Rentals++
		default:
			s.Hotels++
		}
	}
	s.AvgTotalCost = sum / float64(len(combos))
	return s
}
