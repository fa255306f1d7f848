package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gerfru/holiday-engine/internal/airports"
	"github.com/gerfru/holiday-engine/internal/combine"
	"github.com/gerfru/holiday-engine/internal/config"
	"github.com/gerfru/holiday-engine/internal/export"
	"github.com/gerfru/holiday-engine/internal/geocode"
	handlers "github.com/gerfru/holiday-engine/internal/http"
	"github.com/gerfru/holiday-engine/internal/listing"
	mid "github.com/gerfru/holiday-engine/internal/middleware"
	"github.com/gerfru/holiday-engine/internal/obs"
	"github.com/gerfru/holiday-engine/internal/providers"
	"github.com/gerfru/holiday-engine/internal/resolver"
	"github.com/gerfru/holiday-engine/internal/routes"
	"github.com/gerfru/holiday-engine/internal/search"
)

type App struct {
	Router   http.Handler
	Service  *search.Service
	Resolver *resolver.Resolver
	Metrics  *obs.Metrics
	Logger   *slog.Logger
}

// SetAppConfig wires the whole engine from configuration: directory,
// resolver, listing sources, combination engine, search service, handlers
// and router. With no Apify token the mock sources are used so the server
// stays fully functional for local development.
func SetAppConfig(cfg config.Config) (*App, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	customRegistry := prometheus.NewRegistry()
	metrics := obs.NewMetrics(customRegistry)

	dir, err := airports.Load()
	if err != nil {
		return nil, fmt.Errorf("load airport directory: %w", err)
	}
	logger.Info("airport directory loaded", "airports", dir.Len())

	geocoder := geocode.NewClient(cfg.GeocodeTimeout)
	res := resolver.New(dir, geocoder, cfg.GeocodeTimeout, logger, metrics)

	flights, stays := buildSources(cfg, logger)

	engine := combine.NewEngine(combine.Options{
		MaxCombinations:   cfg.MaxCombinations,
		FlexibilityMargin: cfg.BudgetFlexibilityMargin,
	})

	var exporter search.Exporter
	if cfg.ExportCSV {
		exporter = export.NewCSVExporter(cfg.OutputDirectory, logger)
	}

	caps := search.Caps{
		Flights: cfg.MaxFlightsPerSearch,
		Hotels:  cfg.MaxHotelsPerSearch,
		Rentals: cfg.MaxRentalsPerSearch,
	}
	service := search.NewService(res, flights, stays, engine, caps, cfg.SourceTimeout, exporter, logger, metrics)

	rl := mid.NewIPRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	h := handlers.NewHandler(service, res)

	// Request timeout must outlive the slowest source fetch.
	router := routes.GetRoutes(h, rl, metrics, logger, cfg.SourceTimeout+30*time.Second)

	return &App{
		Router:   router,
		Service:  service,
		Resolver: res,
		Metrics:  metrics,
		Logger:   logger,
	}, nil
}

func buildSources(cfg config.Config, logger *slog.Logger) (providers.Flights, []providers.Accommodations) {
	if cfg.ApifyToken == "" {
		logger.Warn("no apify token configured, using mock sources")
		return providers.NewMockFlights("mock-flights", 0.2, 0.05, 0),
			[]providers.Accommodations{
				providers.NewMockAccommodations("mock-hotels", listing.KindHotel, 0.25, 0.05, 1),
				providers.NewMockAccommodations("mock-rentals", listing.KindRental, 0.15, 0.05, 2),
			}
	}

	retry := providers.RetryPolicy{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   cfg.BaseRetryDelay,
		MaxDelay:    cfg.MaxRetryDelay,
	}
	client := providers.NewApifyClient(cfg.ApifyToken, cfg.SourceTimeout, retry, logger)
	return providers.NewSkyscannerFlights(client, cfg.MaxFlightsPerSearch),
		[]providers.Accommodations{
			providers.NewBookingHotels(client, cfg.MaxHotelsPerSearch),
			providers.NewAirbnbRentals(client, cfg.MaxRentalsPerSearch),
		}
}
