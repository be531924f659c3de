// Package middleware holds the cross-cutting HTTP middleware shared by the
// public site API and the admin API: CORS and per-client rate limiting.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"helpcenter/pkg/config"
)

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is the exact-match whitelist, e.g. "https://ajuda.example.com".
	// An empty list disables CORS headers entirely.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	// MaxAge is how long preflight results may be cached, in seconds.
	MaxAge int
	Logger *slog.Logger
}

var (
	defaultCORSMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	defaultCORSHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
)

// LoadCORSConfig reads CORS_ALLOWED_ORIGINS, CORS_ALLOWED_METHODS,
// CORS_ALLOWED_HEADERS and CORS_MAX_AGE. Origins must be absolute http(s) URLs
// without a path; "*" is rejected because the admin API sends credentials.
func LoadCORSConfig() (*CORSConfig, error) {
	cfg := &CORSConfig{
		AllowedOrigins: config.GetEnvStringList("CORS_ALLOWED_ORIGINS", nil),
		AllowedMethods: config.GetEnvStringList("CORS_ALLOWED_METHODS", defaultCORSMethods),
		AllowedHeaders: config.GetEnvStringList("CORS_ALLOWED_HEADERS", defaultCORSHeaders),
		MaxAge:         config.GetEnvInt("CORS_MAX_AGE", 86400),
	}
	for _, origin := range cfg.AllowedOrigins {
		if err := validateOrigin(origin); err != nil {
			return nil, err
		}
	}
	if cfg.MaxAge < 0 {
		return nil, fmt.Errorf("CORS_MAX_AGE must be non-negative, got %d", cfg.MaxAge)
	}
	return cfg, nil
}

func validateOrigin(origin string) error {
	if origin == "*" {
		return fmt.Errorf("invalid CORS origin %q: wildcard cannot be used with credentials", origin)
	}
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid CORS origin %q: must be an http(s) URL", origin)
	}
	if u.Path != "" && u.Path != "/" {
		return fmt.Errorf("invalid CORS origin %q: must not contain a path", origin)
	}
	return nil
}

func (c CORSConfig) allowed(origin string) bool {
	for _, o := range c.AllowedOrigins {
		if strings.EqualFold(strings.TrimSuffix(o, "/"), origin) {
			return true
		}
	}
	return false
}

// CORS echoes allowed origins back and answers their preflight requests with 204.
// Requests from other origins pass through without CORS headers, so the browser blocks them.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")
			if !cfg.allowed(origin) {
				logger.Warn("CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
