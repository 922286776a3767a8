package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heartmarshall/wordlens/internal/domain"
)

type fakeLookupService struct {
	lookupFunc func(ctx context.Context, req domain.LookupRequest) (*domain.LookupResult, error)
}

func (f *fakeLookupService) Lookup(ctx context.Context, req domain.LookupRequest) (*domain.LookupResult, error) {
	return f.lookupFunc(ctx, req)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLookupHandler_Success(t *testing.T) {
	t.Parallel()

	svc := &fakeLookupService{
		lookupFunc: func(ctx context.Context, req domain.LookupRequest) (*domain.LookupResult, error) {
			return &domain.LookupResult{
				Lemma:        "aufstehen",
				Definition:   "to get up",
				RelatedWords: []string{"steht", "auf"},
				Source:       domain.LookupSourceHybrid,
			}, nil
		},
	}
	h := NewLookupHandler(svc, testLogger())

	body := `{"word": "steht", "sentence": "Er steht früh auf", "language": "de"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/lookup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Lookup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var result domain.LookupResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Lemma != "aufstehen" {
		t.Errorf("unexpected lemma %q", result.Lemma)
	}
	if result.Source != domain.LookupSourceHybrid {
		t.Errorf("unexpected source %q", result.Source)
	}
}

func TestLookupHandler_InvalidJSON(t *testing.T) {
	t.Parallel()

	svc := &fakeLookupService{
		lookupFunc: func(ctx context.Context, req domain.LookupRequest) (*domain.LookupResult, error) {
			t.Fatal("service must not be called for invalid JSON")
			return nil, nil
		},
	}
	h := NewLookupHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/v1/lookup", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Lookup(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLookupHandler_ValidationError(t *testing.T) {
	t.Parallel()

	svc := &fakeLookupService{
		lookupFunc: func(ctx context.Context, req domain.LookupRequest) (*domain.LookupResult, error) {
			return nil, domain.NewValidationError("word", "required")
		},
	}
	h := NewLookupHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/v1/lookup", strings.NewReader(`{"sentence": "hi"}`))
	rec := httptest.NewRecorder()

	h.Lookup(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLookupHandler_InternalError(t *testing.T) {
	t.Parallel()

	svc := &fakeLookupService{
		lookupFunc: func(ctx context.Context, req domain.LookupRequest) (*domain.LookupResult, error) {
			return nil, context.DeadlineExceeded
		},
	}
	h := NewLookupHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/v1/lookup", strings.NewReader(`{"word": "a", "sentence": "b"}`))
	rec := httptest.NewRecorder()

	h.Lookup(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
