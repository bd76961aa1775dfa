package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
)

// quietPrefixes are not logged per request.
var quietPrefixes = []string{"/health", "/metrics", "/static/"}

// redactedParams are replaced with [REDACTED] in logged query strings.
var redactedParams = map[string]bool{
	"csrf_token": true,
	"token":      true,
	"key":        true,
	"secret":     true,
	"password":   true,
}

// Logging returns middleware that logs each request with its status,
// duration and request ID. It also binds a Sentry hub to the request
// context and turns panics into a 500 response.
func Logging(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			hub := sentry.CurrentHub().Clone()
			hub.Scope().SetRequest(r)
			if id := GetRequestID(r.Context()); id != "" {
				hub.Scope().SetTag("request_id", id)
			}
			r = r.WithContext(sentry.SetHubOnContext(r.Context(), hub))

			defer func() {
				if p := recover(); p != nil {
					hub.RecoverWithContext(r.Context(), p)
					logger.Error("panic serving request",
						"method", r.Method,
						"path", r.URL.Path,
						"panic", fmt.Sprint(p),
						"request_id", GetRequestID(r.Context()),
					)
					if !rec.wroteHeader {
						http.Error(rec, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					}
				}

				if quiet(r.URL.Path) {
					return
				}

				attrs := []any{
					"method", r.Method,
					"path", sanitizePath(r.URL.Path, r.URL.RawQuery),
					"status", rec.status,
					"duration_ms", time.Since(start).Milliseconds(),
					"ip", getClientIP(r),
					"user_agent", r.UserAgent(),
					"request_id", GetRequestID(r.Context()),
				}
				if r.Header.Get("HX-Request") == "true" {
					attrs = append(attrs, "htmx", true)
				}

				if rec.status >= 500 {
					logger.Warn("request", attrs...)
				} else {
					logger.Info("request", attrs...)
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}

func quiet(path string) bool {
	for _, prefix := range quietPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// statusRecorder remembers the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.status = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// sanitizePath returns the path with its query, redacting sensitive values.
// Malformed query strings are dropped entirely.
func sanitizePath(path, rawQuery string) string {
	if rawQuery == "" {
		return path
	}

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return path
	}
	for name := range values {
		if redactedParams[strings.ToLower(name)] {
			values[name] = []string{"[REDACTED]"}
		}
	}

	// Encode sorts by key, which keeps log lines stable.
	return path + "?" + strings.ReplaceAll(values.Encode(), "%5BREDACTED%5D", "[REDACTED]")
}
