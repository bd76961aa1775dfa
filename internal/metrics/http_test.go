package metrics

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /skips/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	return Middleware(mux)
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	handler := newTestMux()
	labels := []string{"GET", "GET /skips/{id}", "418"}

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(labels...))

	for _, path := range []string{"/skips/1", "/skips/17933", "/skips/abc"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", path, nil))
	}

	assert.Equal(t, before+3, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(labels...)))
}

func TestMiddleware_UnknownPathsShareOneSeries(t *testing.T) {
	handler := newTestMux()
	labels := []string{"GET", unmatchedRoute, "404"}

	// Make sure the unmatched series exists before counting.
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/warmup", nil))
	seriesBefore := testutil.CollectAndCount(HTTPRequestsTotal)
	hitsBefore := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(labels...))

	for i := 0; i < 100; i++ {
		path := fmt.Sprintf("/random/%d/%d", rand.Int(), i)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, seriesBefore, testutil.CollectAndCount(HTTPRequestsTotal))
	assert.Equal(t, hitsBefore+100, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(labels...)))
}

func TestMiddleware_RecordsStatus(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", unmatchedRoute, "418"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/teapot", nil))

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", unmatchedRoute, "418"))
	assert.Equal(t, before+1, after)
}

func TestMiddleware_SkipsMetricsEndpoint(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/metrics", "200"))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/metrics", nil))

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/metrics", "200"))
	assert.Equal(t, before, after)
}

func TestSelectionToggled(t *testing.T) {
	before := testutil.ToFloat64(SelectionToggles.WithLabelValues("deselect"))
	SelectionToggled(false)
	assert.Equal(t, before+1, testutil.ToFloat64(SelectionToggles.WithLabelValues("deselect")))
}
