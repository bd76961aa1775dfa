package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/DukeRupert/skipwizard/internal/domain"
	"golang.org/x/time/rate"
)

const (
	visitorTTL      = 5 * time.Minute
	cleanupInterval = 30 * time.Second
)

// RateLimitConfig configures the per-client token bucket.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int

	// OnLimit writes the response for a rejected request. When nil the
	// error's public message is sent as plain text.
	OnLimit func(http.ResponseWriter, *http.Request, error)
}

// Enabled reports whether rate limiting should be enforced.
func (c RateLimitConfig) Enabled() bool {
	return c.RequestsPerSecond > 0 && c.Burst > 0
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	cfg    RateLimitConfig
	logger *slog.Logger
	now    func() time.Time

	mu          sync.Mutex
	visitors    map[string]*visitor
	lastCleanup time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a new rate limiter. Idle clients are forgotten
// after five minutes.
func NewRateLimiter(cfg RateLimitConfig, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}
}

// Allow reports whether a request from key may proceed now.
func (rl *RateLimiter) Allow(key string) bool {
	now := rl.now()

	rl.mu.Lock()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(rl.cfg.RequestsPerSecond), rl.cfg.Burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	if now.Sub(rl.lastCleanup) > cleanupInterval {
		for k, other := range rl.visitors {
			if now.Sub(other.lastSeen) > visitorTTL {
				delete(rl.visitors, k)
			}
		}
		rl.lastCleanup = now
	}
	rl.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// Limit returns middleware that answers 429 once a client exhausts its bucket.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	if !rl.cfg.Enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := getClientIP(r)

		if !rl.Allow(clientIP) {
			rl.logger.Warn("rate limit exceeded",
				"ip", clientIP,
				"path", r.URL.Path,
				"method", r.Method,
				"request_id", GetRequestID(r.Context()),
			)

			w.Header().Set("Retry-After", "1")
			rl.reject(w, r, domain.RateLimit("middleware.RateLimiter"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) reject(w http.ResponseWriter, r *http.Request, err *domain.Error) {
	if rl.cfg.OnLimit != nil {
		rl.cfg.OnLimit(w, r, err)
		return
	}
	http.Error(w, err.PublicMessage(), http.StatusTooManyRequests)
}
