package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries every knob the engine consumes, loaded from the
// environment. Defaults match sensible production values; a .env file is
// honored when present (loaded in main).
type Config struct {
	Port string

	ApifyToken string

	MaxRetries     int
	BaseRetryDelay time.Duration
	MaxRetryDelay  time.Duration
	SourceTimeout  time.Duration
	GeocodeTimeout time.Duration

	MaxFlightsPerSearch int
	MaxHotelsPerSearch  int
	MaxRentalsPerSearch int

	MaxCombinations         int
	BudgetFlexibilityMargin float64

	OutputDirectory string
	ExportCSV       bool

	RateLimitPerMinute int
}

func Load() Config {
	return Config{
		Port:       envString("PORT", "8080"),
		ApifyToken: os.Getenv("APIFY_TOKEN"),

		MaxRetries:     envInt("MAX_RETRIES", 3),
		BaseRetryDelay: envDuration("BASE_RETRY_DELAY", 2*time.Second),
		MaxRetryDelay:  envDuration("MAX_RETRY_DELAY", 60*time.Second),
		SourceTimeout:  envDuration("SOURCE_TIMEOUT", 300*time.Second),
		GeocodeTimeout: envDuration("GEOCODE_TIMEOUT", 10*time.Second),

		MaxFlightsPerSearch: envInt("MAX_FLIGHTS_PER_SEARCH", 50),
		MaxHotelsPerSearch:  envInt("MAX_HOTELS_PER_SEARCH", 200),
		MaxRentalsPerSearch: envInt("MAX_RENTALS_PER_SEARCH", 100),

		MaxCombinations:         envInt("MAX_COMBINATIONS", 5),
		BudgetFlexibilityMargin: envFloat("BUDGET_FLEXIBILITY_MARGIN", 0.20),

		OutputDirectory: envString("OUTPUT_DIRECTORY", "output"),
		ExportCSV:       envBool("EXPORT_CSV", true),

		RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 10),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
