package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/DukeRupert/skipwizard/internal/domain"
	"github.com/getsentry/sentry-go"
)

var statusByCode = map[string]int{
	domain.EINVALID:     http.StatusBadRequest,
	domain.EFORBIDDEN:   http.StatusForbidden,
	domain.ENOTFOUND:    http.StatusNotFound,
	domain.ERATELIMIT:   http.StatusTooManyRequests,
	domain.EINTERNAL:    http.StatusInternalServerError,
	domain.ENOTIMPL:     http.StatusNotImplemented,
	domain.EUNAVAILABLE: http.StatusBadGateway,
}

// ErrorCodeToHTTPStatus maps a domain error code to its HTTP status. Unknown
// codes are 500.
func ErrorCodeToHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse logs err and answers with its status and public message,
// as JSON when the client asks for it and plain text otherwise. The
// operation and cause are never sent.
func ErrorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	e := domain.AsError(err)
	status := ErrorCodeToHTTPStatus(e.Code)

	logError(logger, r, err, e, status)
	writeError(w, r, status, errorDetail{Code: e.Code, Message: e.PublicMessage()})
}

// ErrorWriter binds ErrorResponse to logger for middleware that rejects
// requests before they reach a handler.
func ErrorWriter(logger *slog.Logger) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		ErrorResponse(w, r, logger, err)
	}
}

// ValidationErrorResponse answers 400 for a rejected form. JSON clients get
// the per-field messages; browsers get a generic message.
func ValidationErrorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		ErrorResponse(w, r, logger, err)
		return
	}

	logger.Info("validation error",
		"op", ve.Op,
		"field_count", len(ve.Fields),
		"path", r.URL.Path,
	)

	if acceptsJSON(r) {
		writeError(w, r, http.StatusBadRequest, errorDetail{
			Code:    domain.EINVALID,
			Message: "Validation failed",
			Fields:  ve.Fields,
		})
		return
	}
	http.Error(w, "Validation failed. Please check your input and try again.", http.StatusBadRequest)
}

// NotFoundResponse answers 404 for an unknown resource.
func NotFoundResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, resource, id string) {
	ErrorResponse(w, r, logger, domain.NotFound(r.Method+" "+r.URL.Path, resource, id))
}

// ForbiddenResponse answers 403. Form posts with a missing or stale CSRF
// token end up here.
func ForbiddenResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger) {
	ErrorResponse(w, r, logger, domain.Forbidden("csrf", "Your session has expired. Please reload the page and try again."))
}

// InternalErrorResponse answers 500 without exposing err.
func InternalErrorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	ErrorResponse(w, r, logger, domain.Internal(err, "", "An unexpected error occurred"))
}

// logError logs client errors at INFO and server errors at ERROR. Server
// errors are also reported to Sentry.
func logError(logger *slog.Logger, r *http.Request, err error, e *domain.Error, status int) {
	attrs := []any{
		"error", err.Error(),
		"code", e.Code,
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
	}
	if e.Op != "" {
		attrs = append(attrs, "op", e.Op)
	}

	if status >= 500 {
		logger.Error("server error", attrs...)
		reportError(r.Context(), err)
		return
	}
	logger.Info("client error", attrs...)
}

// reportError sends err to Sentry using the request's hub when the logging
// middleware attached one. Without a configured client this is a no-op.
func reportError(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}

// acceptsJSON reports whether the client wants a JSON error. htmx requests
// always get text so the message can be swapped into the page.
func acceptsJSON(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return false
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.Contains(r.Header.Get("Content-Type"), "application/json")
}

func writeError(w http.ResponseWriter, r *http.Request, status int, detail errorDetail) {
	if !acceptsJSON(r) {
		http.Error(w, detail.Message, status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: detail})
}
