package metrics

import "time"

// SkipAPISucceeded records a successful skip listing request
func SkipAPISucceeded(duration time.Duration, count int) {
	SkipAPIRequestsTotal.WithLabelValues("ok").Inc()
	SkipAPIRequestDuration.Observe(duration.Seconds())
	SkipsListed.Observe(float64(count))
}

// SkipAPIFailed records a failed skip listing request. reason is one of
// "transport", "status" or "decode".
func SkipAPIFailed(reason string, duration time.Duration) {
	SkipAPIRequestsTotal.WithLabelValues(reason).Inc()
	SkipAPIRequestDuration.Observe(duration.Seconds())
}

// SelectionToggled records a card click
func SelectionToggled(selected bool) {
	action := "deselect"
	if selected {
		action = "select"
	}
	SelectionToggles.WithLabelValues(action).Inc()
}
