package config

import (
	"fmt"
	"log/slog"
	"net"
	"time"
)

// RateLimitConfig configures the per-client token buckets guarding the public write endpoints.
type RateLimitConfig struct {
	Enabled bool
	// Rate is the sustained number of requests allowed per Per.
	Rate int
	Per  time.Duration
	// Burst is the bucket size.
	Burst int
	// IdleTTL evicts buckets of clients that went quiet.
	IdleTTL time.Duration
	// TrustedProxies lists CIDRs whose X-Forwarded-For header is honoured.
	TrustedProxies []*net.IPNet
}

// LoadRateLimitConfig reads the RATELIMIT_* variables.
//
// Environment variables:
//   - RATELIMIT_ENABLED (default true)
//   - RATELIMIT_RATE (default 10)
//   - RATELIMIT_PER (default 1m)
//   - RATELIMIT_BURST (default 5)
//   - RATELIMIT_IDLE_TTL (default 10m)
//   - TRUSTED_PROXIES (comma-separated CIDRs, default none)
//
// Invalid numeric values fall back to defaults with a warning. An invalid CIDR is an error.
func LoadRateLimitConfig() (*RateLimitConfig, error) {
	cfg := &RateLimitConfig{
		Enabled: GetEnvBool("RATELIMIT_ENABLED", true),
		Rate:    GetEnvInt("RATELIMIT_RATE", 10),
		Per:     GetEnvDurationWithin("RATELIMIT_PER", time.Minute, time.Second, 24*time.Hour),
		Burst:   GetEnvInt("RATELIMIT_BURST", 5),
		IdleTTL: GetEnvDurationWithin("RATELIMIT_IDLE_TTL", 10*time.Minute, time.Minute, 24*time.Hour),
	}

	if cfg.Rate <= 0 {
		slog.Warn("invalid RATELIMIT_RATE, using default", slog.Int("value", cfg.Rate), slog.Int("default", 10))
		cfg.Rate = 10
	}
	if cfg.Burst <= 0 {
		slog.Warn("invalid RATELIMIT_BURST, using default", slog.Int("value", cfg.Burst), slog.Int("default", 5))
		cfg.Burst = 5
	}

	proxies, err := ParseTrustedProxies(GetEnvStringList("TRUSTED_PROXIES", nil))
	if err != nil {
		return nil, err
	}
	cfg.TrustedProxies = proxies
	return cfg, nil
}

// ParseTrustedProxies parses each CIDR of the list.
func ParseTrustedProxies(cidrs []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", cidr, err)
		}
		nets = append(nets, ipNet)
	}
	return nets, nil
}
