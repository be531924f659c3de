// Package worker holds the configuration, probes and job bookkeeping of the
// background worker that keeps the published SEO documents fresh.
package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"helpcenter/pkg/config"
)

// Config controls the worker schedules and its HTTP probes.
type Config struct {
	// SEOSchedule regenerates sitemap.xml and feed.xml. Five-field cron syntax.
	SEOSchedule string
	// StatsSchedule refreshes the catalogue gauges.
	StatsSchedule string
	Timezone      string
	// JobTimeout bounds a single job run.
	JobTimeout  time.Duration
	HealthPort  int
	MetricsPort int
}

func DefaultConfig() Config {
	return Config{
		SEOSchedule:   "*/30 * * * *",
		StatsSchedule: "*/5 * * * *",
		Timezone:      "America/Sao_Paulo",
		JobTimeout:    2 * time.Minute,
		HealthPort:    9091,
		MetricsPort:   9090,
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if err := ValidateCronSchedule(c.SEOSchedule); err != nil {
		errs = append(errs, fmt.Errorf("seo schedule: %w", err))
	}
	if err := ValidateCronSchedule(c.StatsSchedule); err != nil {
		errs = append(errs, fmt.Errorf("stats schedule: %w", err))
	}
	if err := ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := validateJobTimeout(c.JobTimeout); err != nil {
		errs = append(errs, fmt.Errorf("job timeout: %w", err))
	}
	if err := validatePort(c.HealthPort); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	if err := validatePort(c.MetricsPort); err != nil {
		errs = append(errs, fmt.Errorf("metrics port: %w", err))
	}
	if c.HealthPort == c.MetricsPort {
		errs = append(errs, fmt.Errorf("health port and metrics port must differ, both are %d", c.HealthPort))
	}
	return errors.Join(errs...)
}

// LoadConfigFromEnv overlays the environment on DefaultConfig. It never fails:
// an invalid value keeps the default, is logged and is counted in m.
//
//	SEO_CRON_SCHEDULE    default "*/30 * * * *"
//	STATS_CRON_SCHEDULE  default "*/5 * * * *"
//	WORKER_TIMEZONE      default "America/Sao_Paulo"
//	WORKER_JOB_TIMEOUT   default 2m, between 10s and 30m
//	WORKER_HEALTH_PORT   default 9091
//	METRICS_PORT         default 9090
func LoadConfigFromEnv(logger *slog.Logger, m *Metrics) *Config {
	cfg := DefaultConfig()
	fellBack := false

	check := func(field, key string, err error) {
		if err == nil {
			return
		}
		fellBack = true
		m.RecordFallback(field)
		logger.Warn("configuration fallback applied",
			slog.String("field", field),
			slog.String("env_key", key),
			slog.String("invalid_value", os.Getenv(key)),
			slog.Any("error", err))
	}

	var err error
	cfg.SEOSchedule, err = envValue("SEO_CRON_SCHEDULE", cfg.SEOSchedule, parseString, ValidateCronSchedule)
	check("seo_schedule", "SEO_CRON_SCHEDULE", err)

	cfg.StatsSchedule, err = envValue("STATS_CRON_SCHEDULE", cfg.StatsSchedule, parseString, ValidateCronSchedule)
	check("stats_schedule", "STATS_CRON_SCHEDULE", err)

	cfg.Timezone, err = envValue("WORKER_TIMEZONE", cfg.Timezone, parseString, ValidateTimezone)
	check("timezone", "WORKER_TIMEZONE", err)

	cfg.JobTimeout, err = envValue("WORKER_JOB_TIMEOUT", cfg.JobTimeout, time.ParseDuration, validateJobTimeout)
	check("job_timeout", "WORKER_JOB_TIMEOUT", err)

	cfg.HealthPort, err = envValue("WORKER_HEALTH_PORT", cfg.HealthPort, strconv.Atoi, validatePort)
	check("health_port", "WORKER_HEALTH_PORT", err)

	cfg.MetricsPort, err = envValue("METRICS_PORT", cfg.MetricsPort, strconv.Atoi, validatePort)
	check("metrics_port", "METRICS_PORT", err)

	m.SetFallbackActive(fellBack)
	m.RecordLoadTimestamp()
	return &cfg
}

// envValue returns def when key is unset, and def plus the reason when the
// value does not parse or validate.
func envValue[T any](key string, def T, parse func(string) (T, error), validate func(T) error) (T, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := parse(raw)
	if err != nil {
		return def, fmt.Errorf("parse %s: %w", key, err)
	}
	if validate != nil {
		if err := validate(v); err != nil {
			return def, err
		}
	}
	return v, nil
}

func parseString(s string) (string, error) { return s, nil }

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule accepts the five-field syntax used by the scheduler.
func ValidateCronSchedule(schedule string) error {
	if strings.TrimSpace(schedule) == "" {
		return errors.New("invalid cron schedule: cannot be empty")
	}
	if _, err := cronParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}

// ValidateTimezone accepts IANA names known to time.LoadLocation.
func ValidateTimezone(tz string) error {
	if tz == "" {
		return errors.New("invalid timezone: cannot be empty")
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return nil
}

func validateJobTimeout(d time.Duration) error {
	return config.DurationWithin(d, 10*time.Second, 30*time.Minute)
}

func validatePort(p int) error {
	if p < 1024 || p > 65535 {
		return fmt.Errorf("port %d out of range [1024, 65535]", p)
	}
	return nil
}
