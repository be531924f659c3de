// Package circuitbreaker pauses an outbound dependency that keeps failing.
// It is a thin layer over github.com/sony/gobreaker that adds the trip policy
// used by the alert channels and keeps the breaker state gauge in sync.
package circuitbreaker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"helpcenter/internal/observability/metrics"
)

// Config describes when a breaker opens and how it recovers.
type Config struct {
	Name string

	// TripAfter opens the breaker after that many failures in a row. Zero disables it.
	TripAfter uint32

	// FailureRatio opens the breaker once at least MinRequests calls were made
	// in the current window and this share of them failed. Zero disables it.
	FailureRatio float64
	MinRequests  uint32

	// Window resets the closed-state counters periodically; zero keeps them until the next trip.
	Window time.Duration

	// Cooldown is how long the breaker stays open before probing.
	Cooldown time.Duration

	// Probes is the number of calls let through while half-open.
	Probes uint32
}

// WebhookConfig is used for the editor alert channels: five failed deliveries in
// a row pause the channel for five minutes, then a single probe is let through.
func WebhookConfig(name string) Config {
	return Config{
		Name:      name,
		TripAfter: 5,
		Cooldown:  5 * time.Minute,
		Probes:    1,
	}
}

func (c Config) shouldTrip(counts gobreaker.Counts) bool {
	if c.TripAfter > 0 && counts.ConsecutiveFailures >= c.TripAfter {
		return true
	}
	if c.FailureRatio <= 0 || counts.Requests == 0 || counts.Requests < c.MinRequests {
		return false
	}
	return float64(counts.TotalFailures)/float64(counts.Requests) >= c.FailureRatio
}

// CircuitBreaker guards one dependency.
type CircuitBreaker struct {
	cb *gobreaker.CircuitBreaker
}

// New builds a closed breaker and publishes its state.
func New(cfg Config) *CircuitBreaker {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.Probes,
		Interval:    cfg.Window,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: cfg.shouldTrip,
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(float64(gobreaker.StateClosed))
	return &CircuitBreaker{cb: cb}
}

// Do runs fn unless the breaker is open. A rejected call returns an error
// for which IsRejected is true and fn is not invoked.
func (b *CircuitBreaker) Do(fn func() error) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, fn()
	})
	return err
}

// State returns the current gobreaker state.
func (b *CircuitBreaker) State() gobreaker.State {
	return b.cb.State()
}

// IsOpen reports whether calls are currently being refused.
func (b *CircuitBreaker) IsOpen() bool {
	return b.cb.State() == gobreaker.StateOpen
}

// IsRejected reports whether err means the breaker refused the call without running it.
func IsRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
