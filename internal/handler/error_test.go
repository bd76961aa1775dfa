package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/DukeRupert/skipwizard/internal/domain"
	"github.com/stretchr/testify/assert"
)

// =============================================================================
// Error Response Tests - Security Focus
// =============================================================================

func TestValidationErrorResponse_DoesNotExposeOperationName(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ve := domain.NewValidationError("SkipHandler.Continue", "skip_id", "Select a skip to continue")

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ValidationErrorResponse(w, r, logger, ve)
	})

	req := httptest.NewRequest("POST", "/booking/skip", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	body := rec.Body.String()

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if strings.Contains(body, "SkipHandler") {
		t.Errorf("response exposes internal operation name: %s", body)
	}
	if !strings.Contains(body, "Validation failed") {
		t.Errorf("response should contain user-friendly message, got: %s", body)
	}
}

func TestValidationErrorResponse_JSON_IncludesFields(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ve := domain.NewValidationError("SkipHandler.Continue", "skip_id", "Select a skip to continue")

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ValidationErrorResponse(w, r, logger, ve)
	})

	req := httptest.NewRequest("POST", "/booking/skip", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	body := rec.Body.String()

	if strings.Contains(body, "SkipHandler") {
		t.Errorf("JSON response exposes internal operation name: %s", body)
	}
	if !strings.Contains(body, "skip_id") {
		t.Errorf("JSON response should contain field name: %s", body)
	}
	if !strings.Contains(body, "Select a skip to continue") {
		t.Errorf("JSON response should contain field message: %s", body)
	}
}

func TestErrorResponse_UpstreamFailureHidesCause(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cause := errors.New("dial tcp 10.1.2.3:443: connect: connection refused")
	upstreamErr := domain.Unavailable(cause, "skipapi.ListSkips", "Failed to fetch skips")

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ErrorResponse(w, r, logger, upstreamErr)
	})

	req := httptest.NewRequest("GET", "/booking/skip/options", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	body := rec.Body.String()

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
	if strings.Contains(body, "10.1.2.3") || strings.Contains(body, "refused") {
		t.Errorf("response exposes upstream cause: %s", body)
	}
	if strings.Contains(body, "skipapi") {
		t.Errorf("response exposes internal operation: %s", body)
	}
}

func TestErrorResponse_UnwrappedErrorReturnsGeneric(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	rawErr := errors.New("template: skips: unexpected EOF in card")

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ErrorResponse(w, r, logger, rawErr)
	})

	req := httptest.NewRequest("GET", "/booking/skip", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	body := rec.Body.String()

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(body, "template") {
		t.Errorf("response exposes raw error: %s", body)
	}
	if !strings.Contains(body, "internal error") {
		t.Errorf("response should contain generic message, got: %s", body)
	}
}

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{domain.EINVALID, http.StatusBadRequest},
		{domain.EFORBIDDEN, http.StatusForbidden},
		{domain.ENOTFOUND, http.StatusNotFound},
		{domain.ERATELIMIT, http.StatusTooManyRequests},
		{domain.EINTERNAL, http.StatusInternalServerError},
		{domain.ENOTIMPL, http.StatusNotImplemented},
		{domain.EUNAVAILABLE, http.StatusBadGateway},
		{"unknown", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := ErrorCodeToHTTPStatus(tt.code); got != tt.want {
				t.Errorf("ErrorCodeToHTTPStatus(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestAcceptsJSON(t *testing.T) {
	req := httptest.NewRequest("GET", "/booking/skip/options", nil)
	req.Header.Set("HX-Request", "true")
	if acceptsJSON(req) {
		t.Error("htmx requests should get HTML")
	}

	req = httptest.NewRequest("GET", "/booking/skip/options", nil)
	req.Header.Set("Accept", "application/json")
	if !acceptsJSON(req) {
		t.Error("Accept: application/json should get JSON")
	}
}

func TestNotFoundResponse_JSON(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	req := httptest.NewRequest("GET", "/booking/teleport", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	NotFoundResponse(rec, req, logger, "step", "teleport")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":{"code":"not_found","message":"No step named \"teleport\"."}}`, rec.Body.String())
}

func TestForbiddenResponse(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	req := httptest.NewRequest("POST", "/booking/skip", nil)
	rec := httptest.NewRecorder()

	ForbiddenResponse(rec, req, logger)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "session has expired")
	assert.NotContains(t, rec.Body.String(), "csrf")
}

func TestErrorWriter_RateLimit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	write := ErrorWriter(logger)

	req := httptest.NewRequest("GET", "/booking/skip/options", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	write(rec, req, domain.RateLimit("middleware.RateLimiter"))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"rate_limit","message":"Too many requests. Please try again later."}}`, rec.Body.String())
}

func TestErrorResponse_HTMXGetsText(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	req := httptest.NewRequest("GET", "/booking/skip/options", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	ErrorResponse(rec, req, logger, domain.Invalid("SkipHandler.Options", "Bad selection"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "Bad selection\n", rec.Body.String())
}
