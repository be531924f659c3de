package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("HC_STR", "abc")
	t.Setenv("HC_INT", "42")
	t.Setenv("HC_BAD_INT", "4x")
	t.Setenv("HC_BOOL", "false")
	t.Setenv("HC_DUR", "90s")
	t.Setenv("HC_LIST", " a, ,b ,")

	assert.Equal(t, "abc", GetEnvString("HC_STR", "d"))
	assert.Equal(t, "d", GetEnvString("HC_UNSET", "d"))
	assert.Equal(t, 42, GetEnvInt("HC_INT", 1))
	assert.Equal(t, 1, GetEnvInt("HC_BAD_INT", 1))
	assert.False(t, GetEnvBool("HC_BOOL", true))
	assert.Equal(t, 90*time.Second, GetEnvDuration("HC_DUR", time.Second))
	assert.Equal(t, []string{"a", "b"}, GetEnvStringList("HC_LIST", nil))
	assert.Equal(t, []string{"x"}, GetEnvStringList("HC_UNSET", []string{"x"}))
}

func TestDurationWithin(t *testing.T) {
	assert.NoError(t, DurationWithin(time.Minute, time.Second, time.Hour))
	assert.NoError(t, DurationWithin(time.Hour, time.Second, time.Hour))
	assert.Error(t, DurationWithin(time.Millisecond, time.Second, time.Hour))
	assert.Error(t, DurationWithin(2*time.Hour, time.Second, time.Hour))
	assert.Error(t, DurationWithin(time.Minute, time.Hour, time.Second))
}

func TestGetEnvDurationWithin(t *testing.T) {
	t.Setenv("HC_WINDOW", "2h")
	assert.Equal(t, 2*time.Hour, GetEnvDurationWithin("HC_WINDOW", time.Minute, time.Second, 24*time.Hour))

	t.Setenv("HC_WINDOW", "10ms")
	assert.Equal(t, time.Minute, GetEnvDurationWithin("HC_WINDOW", time.Minute, time.Second, 24*time.Hour))

	t.Setenv("HC_WINDOW", "forever")
	assert.Equal(t, time.Minute, GetEnvDurationWithin("HC_WINDOW", time.Minute, time.Second, 24*time.Hour))
}

func TestLoadRateLimitConfig_Defaults(t *testing.T) {
	cfg, err := LoadRateLimitConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 10, cfg.Rate)
	assert.Equal(t, time.Minute, cfg.Per)
	assert.Equal(t, 5, cfg.Burst)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoadRateLimitConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("RATELIMIT_RATE", "-1")
	t.Setenv("RATELIMIT_PER", "1ms")
	t.Setenv("RATELIMIT_BURST", "0")

	cfg, err := LoadRateLimitConfig()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Rate)
	assert.Equal(t, time.Minute, cfg.Per)
	assert.Equal(t, 5, cfg.Burst)
}

func TestLoadRateLimitConfig_TrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.0.0/16")
	cfg, err := LoadRateLimitConfig()
	require.NoError(t, err)
	assert.Len(t, cfg.TrustedProxies, 2)

	t.Setenv("TRUSTED_PROXIES", "not-a-cidr")
	_, err = LoadRateLimitConfig()
	assert.Error(t, err)
}
