package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gerfru/holiday-engine/internal/validator"
)

// SearchParams describes one trip search. Origin and Destination hold the
// user's free-text input; the resolved airport codes are filled in by the
// search service before any source is queried.
type SearchParams struct {
	Origin          string
	Destination     string
	OriginCode      string
	DestinationCode string
	Departure       time.Time
	Return          time.Time
	Persons         int
	Budget          float64 // 0 means no budget ceiling
}

func NewSearchParams(origin, destination, departure, returnDate, persons, budget string) (*SearchParams, error) {
	if origin == "" || destination == "" || departure == "" || returnDate == "" {
		return nil, fmt.Errorf("missing required params")
	}

	dep, err := validator.ValidateDate(departure)
	if err != nil {
		return nil, fmt.Errorf("departure: %w", err)
	}
	ret, err := validator.ValidateDate(returnDate)
	if err != nil {
		return nil, fmt.Errorf("return: %w", err)
	}

	personsInt := 2
	if persons != "" {
		personsInt, err = strconv.Atoi(persons)
		if err != nil {
			return nil, fmt.Errorf("invalid persons")
		}
	}

	var budgetFloat float64
	if budget != "" {
		budgetFloat, err = strconv.ParseFloat(budget, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid budget")
		}
	}

	return &SearchParams{
		Origin:      strings.TrimSpace(origin),
		Destination: strings.TrimSpace(destination),
		Departure:   dep,
		Return:      ret,
		Persons:     personsInt,
		Budget:      budgetFloat,
	}, nil
}

func (p *SearchParams) Validate() error {
	var errs []string

	if _, err := validator.ValidateLocation(p.Origin); err != nil {
		errs = append(errs, "origin: "+err.Error())
	}
	if _, err := validator.ValidateLocation(p.Destination); err != nil {
		errs = append(errs, "destination: "+err.Error())
	}
	if !p.Return.After(p.Departure) {
		errs = append(errs, "return date must be after departure date")
	}
	if p.Persons <= 0 || p.Persons > 100 {
		errs = append(errs, "invalid or excessive persons")
	}
	if p.Budget < 0 {
		errs = append(errs, "budget must not be negative")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, ", "))
	}
	return nil
}

// Nights derives the stay length from the travel dates. Valid params always
// yield at least 1.
func (p *SearchParams) Nights() int {
	return int(p.Return.Sub(p.Departure).Hours() / 24)
}

// HasBudget reports whether the user set a budget ceiling.
func (p *SearchParams) HasBudget() bool {
	return p.Budget > 0
}
