package routes

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	handlers "github.com/gerfru/holiday-engine/internal/http"
	mid "github.com/gerfru/holiday-engine/internal/middleware"
	"github.com/gerfru/holiday-engine/internal/obs"
)

func GetRoutes(h *handlers.Handler, rl *mid.IPRateLimiter, metrics *obs.Metrics, logger *slog.Logger, requestTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()
	// Useful built-in middlewares
	r.Use(middleware.RealIP)    // proper client IP extraction
	r.Use(middleware.RequestID) // sets request ID header
	r.Use(middleware.Recoverer) // built-in recoverer to avoid panics taking server down

	r.Use(mid.MetricsMiddleware(metrics))
	r.Use(mid.LoggingMiddleware(logger))

	// Searches fan out to external sources, so the expensive routes get the
	// rate limiter and the long request timeout.
	r.Group(func(r chi.Router) {
		r.Use(mid.RateLimitMiddleware(rl, metrics))
		r.Use(mid.TimeoutMiddleware(requestTimeout))
		r.Get("/search", h.Search)
		r.Get("/export/pdf", h.ExportPDF)
	})

	r.Get("/resolve", h.Resolve)
	r.Get("/healthz", h.Healthz)
	r.Get("/metrics", metrics.Handler().ServeHTTP)

	return r
}
