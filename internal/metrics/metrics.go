package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "skipwizard"

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)
)

// Skip listing API metrics
var (
	SkipAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipapi_requests_total",
			Help:      "Total number of skip listing API requests",
		},
		[]string{"status"}, // "ok", "transport", "status", "decode"
	)

	SkipAPIRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "skipapi_request_duration_seconds",
			Help:      "Skip listing API latency distribution",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	SkipsListed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "skips_listed",
			Help:      "Number of skip records returned per listing",
			Buckets:   []float64{0, 1, 2, 4, 8, 12, 16, 24, 32},
		},
	)
)

// Business metrics
var (
	SelectionToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skip_selection_toggles_total",
			Help:      "Total number of skip card clicks",
		},
		[]string{"action"}, // "select" or "deselect"
	)

	ContinuesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wizard_continues_total",
			Help:      "Total number of Continue submissions from a wizard step",
		},
		[]string{"step"},
	)
)
