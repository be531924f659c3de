package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpcenter/internal/observability/metrics"
	"helpcenter/pkg/config"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

/* ───────── 1. CORS ───────── */

func TestCORS(t *testing.T) {
	cfg := CORSConfig{
		AllowedOrigins: []string{"https://ajuda.example.com"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         600,
	}
	h := CORS(cfg)(okHandler)

	tests := []struct {
		name       string
		method     string
		origin     string
		preflight  bool
		wantCode   int
		wantOrigin string
	}{
		{name: "same origin", method: http.MethodGet, wantCode: http.StatusOK},
		{name: "allowed origin", method: http.MethodGet, origin: "https://ajuda.example.com",
			wantCode: http.StatusOK, wantOrigin: "https://ajuda.example.com"},
		{name: "disallowed origin", method: http.MethodGet, origin: "https://evil.example.com",
			wantCode: http.StatusOK},
		{name: "preflight", method: http.MethodOptions, origin: "https://ajuda.example.com", preflight: true,
			wantCode: http.StatusNoContent, wantOrigin: "https://ajuda.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/categories", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", "POST")
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
			if tt.preflight {
				assert.Equal(t, "GET, POST", rr.Header().Get("Access-Control-Allow-Methods"))
				assert.Equal(t, "600", rr.Header().Get("Access-Control-Max-Age"))
			}
		})
	}
}

func TestLoadCORSConfig(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://ajuda.example.com, http://localhost:3000")
	cfg, err := LoadCORSConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://ajuda.example.com", "http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, defaultCORSMethods, cfg.AllowedMethods)
	assert.Equal(t, 86400, cfg.MaxAge)

	for _, bad := range []string{"*", "ajuda.example.com", "https://ajuda.example.com/admin"} {
		t.Setenv("CORS_ALLOWED_ORIGINS", bad)
		_, err := LoadCORSConfig()
		assert.Error(t, err, bad)
	}
}

/* ───────── 2. rate limiting ───────── */

func newTestLimiter(burst int) (*RateLimiter, *time.Time) {
	now := time.Date(2025, 5, 2, 12, 0, 0, 0, time.UTC)
	l := NewRateLimiter("test", config.RateLimitConfig{
		Rate:    1,
		Per:     time.Minute,
		Burst:   burst,
		IdleTTL: 10 * time.Minute,
	})
	l.now = func() time.Time { return now }
	return l, &now
}

func TestRateLimiter_Allow(t *testing.T) {
	l, now := newTestLimiter(2)

	ok, _ := l.Allow("10.0.0.1")
	assert.True(t, ok)
	ok, _ = l.Allow("10.0.0.1")
	assert.True(t, ok)

	ok, wait := l.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.InDelta(t, time.Minute.Seconds(), wait.Seconds(), 1)

	// another client has its own bucket
	ok, _ = l.Allow("10.0.0.2")
	assert.True(t, ok)

	*now = now.Add(time.Minute)
	ok, _ = l.Allow("10.0.0.1")
	assert.True(t, ok)
}

func TestRateLimiter_Middleware(t *testing.T) {
	l, _ := newTestLimiter(1)
	h := l.Middleware(okHandler)
	before := testutil.ToFloat64(metrics.RateLimitRejectedTotal.WithLabelValues("test"))

	req := httptest.NewRequest(http.MethodPost, "/feedback", nil)
	req.RemoteAddr = "192.0.2.10:5555"

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	retryAfter, err := strconv.Atoi(rr.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.InDelta(t, 60, retryAfter, 1)
	assert.Contains(t, rr.Body.String(), "too many requests")
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RateLimitRejectedTotal.WithLabelValues("test")))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	l, now := newTestLimiter(1)
	l.Allow("a")
	*now = now.Add(5 * time.Minute)
	l.Allow("b")
	*now = now.Add(6 * time.Minute)

	assert.Equal(t, 1, l.Cleanup())
	assert.Equal(t, 1, l.Len())
}

/* ───────── 3. client IP ───────── */

func TestClientIP(t *testing.T) {
	_, proxy, err := net.ParseCIDR("10.0.0.0/8")
	require.NoError(t, err)
	trusted := []*net.IPNet{proxy}

	tests := []struct {
		name    string
		remote  string
		xff     string
		trusted []*net.IPNet
		want    string
	}{
		{name: "no proxies configured", remote: "203.0.113.5:1234", xff: "198.51.100.1", want: "203.0.113.5"},
		{name: "untrusted peer ignores header", remote: "203.0.113.5:1234", xff: "198.51.100.1", trusted: trusted, want: "203.0.113.5"},
		{name: "trusted peer", remote: "10.1.2.3:1234", xff: "198.51.100.1", trusted: trusted, want: "198.51.100.1"},
		{name: "chain of proxies", remote: "10.1.2.3:1234", xff: "198.51.100.1, 10.9.9.9", trusted: trusted, want: "198.51.100.1"},
		{name: "spoofed left-most hop", remote: "10.1.2.3:1234", xff: "1.1.1.1, 198.51.100.1", trusted: trusted, want: "198.51.100.1"},
		{name: "garbage header", remote: "10.1.2.3:1234", xff: "not-an-ip", trusted: trusted, want: "10.1.2.3"},
		{name: "ipv6 peer", remote: "[2001:db8::1]:443", want: "2001:db8::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			assert.Equal(t, tt.want, ClientIP(req, tt.trusted))
		})
	}
}
