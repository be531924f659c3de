// Package notify dispatches editor alerts to the configured chat channels.
// Delivery is asynchronous and bounded by a worker pool; each channel sits
// behind its own circuit breaker.
package notify

import (
	"context"
	"errors"

	"helpcenter/internal/domain/entity"
)

var (
	ErrChannelDisabled = errors.New("notify: channel not configured")
	// ErrInvalidAlert covers a nil alert, a missing feedback and a helpful vote.
	ErrInvalidAlert = errors.New("notify: alert needs unhelpful feedback")
)

// Channel is one alert destination (Slack today).
//
// Implementations own their pacing and retries, must be safe for concurrent use
// and must respect context cancellation.
type Channel interface {
	// Name is the lowercase identifier used in logs, metric labels and health output.
	Name() string

	// IsEnabled reports whether the channel is configured. Disabled channels are skipped.
	IsEnabled() bool

	// Send delivers one negative-feedback alert.
	Send(ctx context.Context, alert *entity.FeedbackAlert) error
}
