package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrustedProxies(t *testing.T) {
	proxies, err := ParseTrustedProxies(" 10.0.0.0/8 , 192.168.1.7,, 2001:db8::/32,172.16.5.9/12")
	require.NoError(t, err)

	var got []string
	for _, p := range proxies {
		got = append(got, p.String())
	}
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.7/32", "2001:db8::/32", "172.16.0.0/12"}, got)

	empty, err := ParseTrustedProxies("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, bad := range []string{"10.0.0.0/33", "proxy.internal", "10.0.0"} {
		_, err := ParseTrustedProxies(bad)
		assert.Error(t, err, bad)
	}
}

func TestTrustedProxies_ClientIP(t *testing.T) {
	proxies, err := ParseTrustedProxies("10.0.0.0/8")
	require.NoError(t, err)

	tests := []struct {
		name       string
		proxies    TrustedProxies
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr with port", nil, "192.0.2.1:1234", nil, "192.0.2.1"},
		{"remote addr without port", nil, "192.0.2.1", nil, "192.0.2.1"},
		{"untrusted peer ignores forwarded for", nil, "192.0.2.1:1234", map[string]string{"X-Forwarded-For": "203.0.113.5"}, "192.0.2.1"},
		{"untrusted peer ignores real ip", nil, "192.0.2.1:1234", map[string]string{"X-Real-IP": "203.0.113.5"}, "192.0.2.1"},
		{"trusted peer uses forwarded for", proxies, "10.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.5"}, "203.0.113.5"},
		{"rightmost untrusted hop wins", proxies, "10.0.0.1:80", map[string]string{"X-Forwarded-For": "1.2.3.4, 203.0.113.5, 10.0.0.2"}, "203.0.113.5"},
		{"all hops trusted", proxies, "10.0.0.1:80", map[string]string{"X-Forwarded-For": "10.0.0.3, 10.0.0.2"}, "10.0.0.3"},
		{"garbage hop falls back to peer", proxies, "10.0.0.1:80", map[string]string{"X-Forwarded-For": "nonsense, 10.0.0.2"}, "10.0.0.1"},
		{"trusted peer uses real ip", proxies, "10.0.0.1:80", map[string]string{"X-Real-IP": " 198.51.100.7 "}, "198.51.100.7"},
		{"trusted peer without headers", proxies, "10.0.0.1:80", nil, "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, tt.proxies.ClientIP(req))
		})
	}
}

func TestGetClientIP_WithoutRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.5")

	assert.Equal(t, "192.0.2.1", getClientIP(req))
}

func TestRateLimiter_RotatingForwardedForDoesNotEvade(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := Stack(RealIP(nil), rl.Limit)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	limited := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/booking/skip", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("198.51.100.%d", i))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			limited++
		}
	}

	assert.Equal(t, 49, limited)
	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "192.0.2.1")
}

func TestRateLimiter_TrustedProxyKeysByForwardedClient(t *testing.T) {
	proxies, err := ParseTrustedProxies("10.0.0.0/8")
	require.NoError(t, err)

	rl := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := Stack(RealIP(proxies), rl.Limit)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/booking/skip", nil)
		req.RemoteAddr = "10.0.0.1:443"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Len(t, rl.visitors, 5)
	assert.NotContains(t, rl.visitors, "10.0.0.1")
}
