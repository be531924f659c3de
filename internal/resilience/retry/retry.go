// Package retry re-runs operations that failed for a transient reason: the
// startup connection to PostgreSQL and deliveries to the Slack webhook.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// Policy bounds a retry loop. The n-th wait is BaseDelay*2^(n-1), capped at
// MaxDelay, plus up to Jitter times that value at random.
type Policy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
	Jitter    float64
}

// WebhookPolicy is used for editor alerts. They are not urgent, so waits are long.
func WebhookPolicy() Policy {
	return Policy{Attempts: 3, BaseDelay: 2 * time.Second, MaxDelay: 15 * time.Second, Jitter: 0.1}
}

// DBPolicy covers a database container that is still booting: about 15s in total.
func DBPolicy() Policy {
	return Policy{Attempts: 6, BaseDelay: 500 * time.Millisecond, MaxDelay: 5 * time.Second, Jitter: 0.1}
}

// Delay is the wait after the given failed attempt (1-based), before jitter.
func (p Policy) Delay(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 1; i < attempt && d < p.MaxDelay; i++ {
		d *= 2
	}
	return min(d, p.MaxDelay)
}

func (p Policy) jittered(d time.Duration) time.Duration {
	if p.Jitter <= 0 || d <= 0 {
		return d
	}
	// #nosec G404 -- backoff jitter needs no cryptographic randomness
	return d + time.Duration(rand.Float64()*min(p.Jitter, 1)*float64(d))
}

// Do calls fn until it succeeds, returns a permanent error, the attempts run
// out or ctx is done. A StatusError's RetryAfter extends the wait.
func Do(ctx context.Context, p Policy, fn func() error) error {
	var err error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		if err = fn(); err == nil {
			if attempt > 1 {
				slog.Info("operation succeeded after retry", slog.Int("attempt", attempt))
			}
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		if attempt == p.Attempts {
			break
		}

		wait := p.jittered(p.Delay(attempt))
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.RetryAfter > wait {
			wait = statusErr.RetryAfter
		}
		slog.Warn("transient failure, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", p.Attempts),
			slog.Duration("wait", wait),
			slog.Any("error", err))

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}
	}
	return fmt.Errorf("gave up after %d attempts: %w", p.Attempts, err)
}

// IsTransient reports whether err is worth another attempt: network timeouts,
// refused or reset connections, PostgreSQL connect failures, and 408, 429 or 5xx responses.
// Cancellation is never transient.
func IsTransient(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		code := statusErr.StatusCode
		return code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || pgconn.SafeToRetry(err) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ETIMEDOUT, syscall.ENETUNREACH} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}

// StatusError is a non-2xx HTTP response. RetryAfter carries the server's hint.
type StatusError struct {
	StatusCode int
	Message    string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}
