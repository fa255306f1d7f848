package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/gerfru/holiday-engine/internal/export"
	"github.com/gerfru/holiday-engine/internal/models"
	"github.com/gerfru/holiday-engine/internal/resolver"
	"github.com/gerfru/holiday-engine/internal/search"
)

// SearchService is the slice of the search layer the handlers need; tests
// substitute a fake.
type SearchService interface {
	Search(ctx context.Context, params *models.SearchParams) (*search.Result, error)
}

// LocationResolver resolves free text for the standalone resolve endpoint.
type LocationResolver interface {
	Resolve(ctx context.Context, location string) resolver.Resolution
}

type Handler struct {
	service  SearchService
	resolver LocationResolver
}

func NewHandler(service SearchService, res LocationResolver) *Handler {
	return &Handler{service: service, resolver: res}
}

func requestID(r *http.Request) string {
	// chi's middleware.RequestID sets X-Request-Id header
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		return rid
	}
	return uuid.New().String()
}

func (h *Handler) searchParams(r *http.Request) (*models.SearchParams, error) {
	q := r.URL.Query()
	return models.NewSearchParams(
		q.Get("origin"),
		q.Get("destination"),
		q.Get("departure"),
		q.Get("return"),
		q.Get("persons"),
		q.Get("budget"),
	)
}

// Search runs a full trip search and returns ranked combinations.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	reqID := requestID(r)
	meta := map[string]string{"request_id": reqID}

	params, err := h.searchParams(r)
	if err != nil {
		BadRequest(w, err.Error(), meta)
		return
	}
	if err := params.Validate(); err != nil {
		BadRequest(w, err.Error(), meta)
		return
	}

	result, err := h.service.Search(r.Context(), params)
	if err != nil {
		h.writeSearchError(w, err, meta)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"search": map[string]any{
			"origin":      params.Origin,
			"destination": params.Destination,
			"departure":   params.Departure.Format("2006-01-02"),
			"return":      params.Return.Format("2006-01-02"),
			"persons":     params.Persons,
			"budget":      params.Budget,
			"nights":      params.Nights(),
		},
		"result": result,
	})
}

// Resolve maps a single free-text location to an airport code. Unresolvable
// input is a 404 carrying the suggestion list.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		BadRequest(w, "missing location parameter", map[string]string{"request_id": requestID(r)})
		return
	}

	res := h.resolver.Resolve(r.Context(), location)
	status := http.StatusOK
	if !res.Resolved() {
		status = http.StatusNotFound
	}
	WriteJSON(w, status, res)
}

// ExportPDF runs the search and streams the itinerary as a PDF download.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	reqID := requestID(r)
	meta := map[string]string{"request_id": reqID}

	params, err := h.searchParams(r)
	if err != nil {
		BadRequest(w, err.Error(), meta)
		return
	}
	if err := params.Validate(); err != nil {
		BadRequest(w, err.Error(), meta)
		return
	}

	result, err := h.service.Search(r.Context(), params)
	if err != nil {
		h.writeSearchError(w, err, meta)
		return
	}

	pdfBytes, err := export.ItineraryPDF(params, result.Combinations)
	if err != nil {
		InternalError(w, err.Error(), meta)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary_`+params.OriginCode+`_`+params.DestinationCode+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

func (h *Handler) writeSearchError(w http.ResponseWriter, err error, meta map[string]string) {
	var resErr *search.ResolutionError
	switch {
	case errors.As(err, &resErr):
		WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":       resErr.Error(),
			"field":       resErr.Field,
			"suggestions": resErr.Resolution.Suggestions,
			"meta":        meta,
		})
	case errors.Is(err, search.ErrFlightsUnavailable):
		WriteError(w, http.StatusBadGateway, err.Error(), meta)
	default:
		InternalError(w, err.Error(), meta)
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
