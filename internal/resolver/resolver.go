package resolver

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/agnivade/levenshtein"
	"github.com/gerfru/holiday-engine/internal/airports"
	"github.com/gerfru/holiday-engine/internal/obs"
	"github.com/gerfru/holiday-engine/internal/validator"
)

// Method records which resolution step produced a code.
type Method string

const (
	MethodCache      Method = "cache"
	MethodCurated    Method = "curated"
	MethodDirectCode Method = "direct-code"
	MethodGeocoded   Method = "geocoded"
	MethodNone       Method = ""
)

// Resolution is the outcome of resolving one free-text location. When Code
// is empty the input could not be mapped and Suggestions carries
// closest-known alternatives for user display.
type Resolution struct {
	Input       string   `json:"input"`
	Code        string   `json:"code,omitempty"`
	DisplayName string   `json:"display_name"`
	Method      Method   `json:"method,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func (r Resolution) Resolved() bool { return r.Code != "" }

// Geocoder turns free text into coordinates. Implementations must honor the
// context deadline; any error is treated as a lookup miss, never surfaced.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (lat, lon float64, err error)
}

const (
	minSuggestionRatio = 0.5
	maxSuggestions     = 5
)

// Resolver maps user-typed locations to airport codes via layered
// strategies: cache, curated table, direct code, geocoding. The cache is
// append-only for the process lifetime (airports do not move mid-session)
// and safe for concurrent use.
type Resolver struct {
	mu      sync.RWMutex
	cache   map[string]string
	curated map[string]string

	dir            *airports.Directory
	geocoder       Geocoder
	geocodeTimeout time.Duration
	logger         *slog.Logger
	metrics        *obs.Metrics
}

func New(dir *airports.Directory, geocoder Geocoder, geocodeTimeout time.Duration, logger *slog.Logger, m *obs.Metrics) *Resolver {
	return &Resolver{
		cache:          make(map[string]string),
		curated:        curatedCities(),
		dir:            dir,
		geocoder:       geocoder,
		geocodeTimeout: geocodeTimeout,
		logger:         logger,
		metrics:        m,
	}
}

// Resolve runs the strategy chain in strict order, stopping at the first
// hit. It never returns an error: an unresolvable input yields an empty
// code and a ranked suggestion list.
func (r *Resolver) Resolve(ctx context.Context, location string) Resolution {
	res := Resolution{Input: location, DisplayName: titleCase(location)}
	normalized := normalize(location)
	if normalized == "" {
		return res
	}

	// 1. Cache hit (fast path)
	r.mu.RLock()
	code, hit := r.cache[normalized]
	r.mu.RUnlock()
	if hit {
		if r.metrics != nil {
			r.metrics.IncCacheHits()
		}
		res.Code = code
		res.Method = MethodCache
		return res
	}

	// 2. Curated table (quality-controlled path)
	if code, ok := r.curated[normalized]; ok {
		r.remember(normalized, code)
		r.logger.Debug("curated city match", "input", location, "code", code)
		res.Code = code
		res.Method = MethodCurated
		return res
	}

	// 3. Input already looks like an airport code
	if validator.LooksLikeIATA(normalized) && r.dir.Valid(normalized) {
		code := strings.ToUpper(normalized)
		r.remember(normalized, code)
		res.Code = code
		res.Method = MethodDirectCode
		return res
	}

	// 4. Geocode + nearest airport
	if code, name, ok := r.resolveByGeocoding(ctx, location); ok {
		r.remember(normalized, code)
		res.Code = code
		res.Method = MethodGeocoded
		if name != "" {
			res.DisplayName = name
		}
		return res
	}

	// 5. Nothing matched; offer the closest known places instead
	res.Suggestions = r.Suggestions(location)
	r.logger.Warn("could not resolve location", "input", location, "suggestions", res.Suggestions)
	return res
}

func (r *Resolver) resolveByGeocoding(ctx context.Context, location string) (code, displayName string, ok bool) {
	if r.geocoder == nil {
		return "", "", false
	}
	gctx, cancel := context.WithTimeout(ctx, r.geocodeTimeout)
	defer cancel()

	start := time.Now()
	lat, lon, err := r.geocoder.Geocode(gctx, location)
	if r.metrics != nil {
		r.metrics.ObserveGeocodeLatency(time.Since(start).Seconds())
	}
	if err != nil {
		// Unreachable, slow or unknown place: all the same, fall through.
		r.logger.Debug("geocoding failed", "input", location, "error", err)
		return "", "", false
	}

	airport, km, found := r.dir.Nearest(lat, lon)
	if !found {
		r.logger.Debug("no airport near geocoded point", "input", location, "distance_km", km)
		return "", "", false
	}
	r.logger.Info("nearest airport", "input", location, "code", airport.Code, "distance_km", km)
	return airport.Code, airport.Municipality, true
}

// Suggestions ranks known place names by similarity to the input and
// returns the best few above the similarity floor. Candidates are the
// curated display names plus large-airport municipalities.
func (r *Resolver) Suggestions(input string) []string {
	inputNorm := normalize(input)
	if inputNorm == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var candidates []string
	for alias := range r.curated {
		// Code-shaped aliases ("vie", "muc") exist for direct entry, not
		// for display.
		if validator.LooksLikeIATA(alias) {
			continue
		}
		name := titleCase(alias)
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			candidates = append(candidates, name)
		}
	}
	for _, city := range r.dir.Municipalities("large_airport", 20) {
		if _, dup := seen[city]; !dup {
			seen[city] = struct{}{}
			candidates = append(candidates, city)
		}
	}

	type scored struct {
		name  string
		ratio float64
	}
	var matches []scored
	for _, name := range candidates {
		ratio := similarity(inputNorm, normalize(name))
		if ratio > minSuggestionRatio {
			matches = append(matches, scored{name: name, ratio: ratio})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].ratio != matches[j].ratio {
			return matches[i].ratio > matches[j].ratio
		}
		return matches[i].name < matches[j].name
	})

	out := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		out = append(out, m.name)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// CacheSize reports how many resolutions have been memoized.
func (r *Resolver) CacheSize() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}

func (r *Resolver) remember(normalized, code string) {
	r.mu.Lock()
	r.cache[normalized] = code
	r.mu.Unlock()
}

// similarity is an edit-distance ratio in [0,1], with containment between
// the two strings boosted to at least 0.7.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	ratio := 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
	if strings.Contains(a, b) || strings.Contains(b, a) {
		if ratio < 0.7 {
			ratio = 0.7
		}
	}
	return ratio
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
