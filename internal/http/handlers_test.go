package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	ht "github.com/gerfru/holiday-engine/internal/http"
	"github.com/gerfru/holiday-engine/internal/models"
	"github.com/gerfru/holiday-engine/internal/resolver"
	"github.com/gerfru/holiday-engine/internal/search"
)

// ------------------------ mocks ------------------------

type mockService struct {
	searchFunc func(ctx context.Context, params *models.SearchParams) (*search.Result, error)
}

func (m *mockService) Search(ctx context.Context, params *models.SearchParams) (*search.Result, error) {
	return m.searchFunc(ctx, params)
}

type mockResolver struct {
	resolveFunc func(ctx context.Context, location string) resolver.Resolution
}

func (m *mockResolver) Resolve(ctx context.Context, location string) resolver.Resolution {
	return m.resolveFunc(ctx, location)
}

// -------------------------------------------------------

const validQuery = "?origin=Vienna&destination=Palma&departure=2026-06-01&return=2026-06-05&persons=2&budget=1500"

func TestHandlerSearchOK(t *testing.T) {
	svc := &mockService{
		searchFunc: func(ctx context.Context, params *models.SearchParams) (*search.Result, error) {
			return &search.Result{
				Origin:      resolver.Resolution{Input: "Vienna", Code: "VIE"},
				Destination: resolver.Resolution{Input: "Palma", Code: "PMI"},
			}, nil
		},
	}
	h := ht.NewHandler(svc, &mockResolver{})

	req := httptest.NewRequest("GET", "/search"+validQuery, nil)
	w := httptest.NewRecorder()
	h.Search(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := body["search"]; !ok {
		t.Fatal("expected search echo in response")
	}
	if _, ok := body["result"]; !ok {
		t.Fatal("expected result in response")
	}
}

func TestHandlerSearchValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"MissingOrigin", "?destination=Palma&departure=2026-06-01&return=2026-06-05"},
		{"BadDate", "?origin=Vienna&destination=Palma&departure=01.06.2026&return=2026-06-05"},
		{"ReturnNotAfterDeparture", "?origin=Vienna&destination=Palma&departure=2026-06-05&return=2026-06-05"},
		{"BadPersons", "?origin=Vienna&destination=Palma&departure=2026-06-01&return=2026-06-05&persons=zero"},
		{"NegativeBudget", "?origin=Vienna&destination=Palma&departure=2026-06-01&return=2026-06-05&budget=-5"},
	}

	svc := &mockService{
		searchFunc: func(ctx context.Context, params *models.SearchParams) (*search.Result, error) {
			t.Fatal("service must not be called for invalid params")
			return nil, nil
		},
	}
	h := ht.NewHandler(svc, &mockResolver{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/search"+tt.query, nil)
			w := httptest.NewRecorder()
			h.Search(w, req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestHandlerSearchResolutionError(t *testing.T) {
	svc := &mockService{
		searchFunc: func(ctx context.Context, params *models.SearchParams) (*search.Result, error) {
			return nil, &search.ResolutionError{
				Field: "destination",
				Resolution: resolver.Resolution{
					Input:       "Palmma",
					Suggestions: []string{"Palma", "Paris"},
				},
			}
		},
	}
	h := ht.NewHandler(svc, &mockResolver{})

	req := httptest.NewRequest("GET", "/search"+validQuery, nil)
	w := httptest.NewRecorder()
	h.Search(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	var body struct {
		Field       string   `json:"field"`
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Field != "destination" || len(body.Suggestions) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestHandlerSearchFlightsUnavailable(t *testing.T) {
	svc := &mockService{
		searchFunc: func(ctx context.Context, params *models.SearchParams) (*search.Result, error) {
			return nil, search.ErrFlightsUnavailable
		},
	}
	h := ht.NewHandler(svc, &mockResolver{})

	req := httptest.NewRequest("GET", "/search"+validQuery, nil)
	w := httptest.NewRecorder()
	h.Search(w, req)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestHandlerSearchInternalError(t *testing.T) {
	svc := &mockService{
		searchFunc: func(ctx context.Context, params *models.SearchParams) (*search.Result, error) {
			return nil, errors.New("boom")
		},
	}
	h := ht.NewHandler(svc, &mockResolver{})

	req := httptest.NewRequest("GET", "/search"+validQuery, nil)
	w := httptest.NewRecorder()
	h.Search(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestHandlerResolve(t *testing.T) {
	res := &mockResolver{
		resolveFunc: func(ctx context.Context, location string) resolver.Resolution {
			if location == "vienna" {
				return resolver.Resolution{Input: location, Code: "VIE", DisplayName: "Vienna"}
			}
			return resolver.Resolution{Input: location, Suggestions: []string{"Vienna"}}
		},
	}
	h := ht.NewHandler(&mockService{}, res)

	req := httptest.NewRequest("GET", "/resolve?location=vienna", nil)
	w := httptest.NewRecorder()
	h.Resolve(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/resolve?location=viennna", nil)
	w = httptest.NewRecorder()
	h.Resolve(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body resolver.Resolution
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.Suggestions) != 1 {
		t.Fatalf("expected suggestions in 404 body: %+v", body)
	}

	req = httptest.NewRequest("GET", "/resolve", nil)
	w = httptest.NewRecorder()
	h.Resolve(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing location, got %d", w.Code)
	}
}

func TestHandlerExportPDF(t *testing.T) {
	svc := &mockService{
		searchFunc: func(ctx context.Context, params *models.SearchParams) (*search.Result, error) {
			return &search.Result{}, nil
		},
	}
	h := ht.NewHandler(svc, &mockResolver{})

	req := httptest.NewRequest("GET", "/export/pdf"+validQuery, nil)
	w := httptest.NewRecorder()
	h.ExportPDF(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected pdf content type, got %q", ct)
	}
	if body := w.Body.Bytes(); len(body) < 5 || string(body[:5]) != "%PDF-" {
		t.Fatal("expected pdf payload")
	}
}

func TestHandlerHealthz(t *testing.T) {
	h := ht.NewHandler(&mockService{}, &mockResolver{})
	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	h.Healthz(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
