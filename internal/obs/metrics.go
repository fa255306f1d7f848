package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	SearchesTotal      prometheus.Counter
	CacheHitsTotal     prometheus.Counter
	RateLimitDropsTotal prometheus.Counter

	SourceErrors        *prometheus.CounterVec
	SourceLatency       *prometheus.HistogramVec
	GeocodeLatency      prometheus.Histogram
	CombinationsBuilt   prometheus.Histogram
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec
	Registry            *prometheus.Registry
}

// Create Prometheus collectors and register them
func NewMetrics(p *prometheus.Registry) *Metrics {
	m := &Metrics{
		SearchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "travel_searches_total",
			Help: "Total number of incoming travel searches",
		}),
		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "travel_resolver_cache_hits_total",
			Help: "Number of city resolutions served from the resolver cache",
		}),
		RateLimitDropsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "travel_ratelimit_drops_total",
			Help: "Requests dropped due to rate limiting",
		}),
		SourceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "source_errors_total",
			Help: "Failures per listing source after retries",
		}, []string{"source"},
		),
		SourceLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "source_latency_seconds",
				Help:    "Latency of listing source fetches",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
			},
			[]string{"source"},
		),
		GeocodeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "geocode_latency_seconds",
			Help:    "Latency of geocoding lookups",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
		CombinationsBuilt: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "combinations_built",
			Help:    "Number of ranked combinations returned per search",
			Buckets: prometheus.LinearBuckets(0, 1, 6),
		}),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		Registry: p,
	}

	// Register metrics with Prometheus
	p.MustRegister(
		m.SearchesTotal,
		m.CacheHitsTotal,
		m.RateLimitDropsTotal,
		m.SourceErrors,
		m.SourceLatency,
		m.GeocodeLatency,
		m.CombinationsBuilt,
		m.HTTPRequestDuration,
		m.HTTPRequestsTotal,
	)

	return m
}

func (m *Metrics) IncSearches()  { m.SearchesTotal.Inc() }
func (m *Metrics) IncCacheHits() { m.CacheHitsTotal.Inc() }

func (m *Metrics) IncRateLimitDrops() { m.RateLimitDropsTotal.Inc() }

func (m *Metrics) ObserveSourceLatency(source string, seconds float64) {
	m.SourceLatency.WithLabelValues(source).Observe(seconds)
}

func (m *Metrics) IncSourceFailure(source string) {
	m.SourceErrors.WithLabelValues(source).Inc()
}

func (m *Metrics) ObserveGeocodeLatency(seconds float64) {
	m.GeocodeLatency.Observe(seconds)
}

func (m *Metrics) ObserveCombinations(count int) {
	m.CombinationsBuilt.Observe(float64(count))
}

func (m *Metrics) ObserveHTTPRequestDuration(method string, path string, status string, seconds float64) {
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}

func (m *Metrics) IncHTTPRequestsTotal(method string, path string, status string) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
