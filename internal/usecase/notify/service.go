package notify

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"helpcenter/internal/domain/entity"
	"helpcenter/internal/handler/http/requestid"
	"helpcenter/internal/resilience/circuitbreaker"
)

const (
	workerPoolTimeout   = 5 * time.Second  // Timeout for acquiring worker slot
	notificationTimeout = 30 * time.Second // Timeout for individual notification
)

// Service dispatches alerts without blocking the caller.
type Service interface {
	// NotifyNegativeFeedback fans the alert out to every enabled channel in
	// background goroutines. Failures are logged and counted, never returned.
	NotifyNegativeFeedback(ctx context.Context, alert *entity.FeedbackAlert) error

	// GetChannelHealth reports per-channel breaker state for the health endpoint.
	GetChannelHealth() []ChannelHealthStatus

	// Shutdown cancels in-flight sends and waits for them until ctx expires.
	Shutdown(ctx context.Context) error
}

// ChannelHealthStatus represents the health status of a notification channel.
type ChannelHealthStatus struct {
	Name               string `json:"name"`
	Enabled            bool   `json:"enabled"`
	CircuitBreakerOpen bool   `json:"circuit_breaker_open"`
	State              string `json:"state"`
}

type service struct {
	channels       []Channel
	breakers       map[string]*circuitbreaker.CircuitBreaker // read-only after construction
	workerPool     chan struct{}                             // Semaphore for limiting concurrent notifications
	wg             sync.WaitGroup                            // Track in-flight notifications
	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

// NewService creates a dispatcher over channels with at most maxConcurrent sends in flight.
func NewService(channels []Channel, maxConcurrent int) Service {
	return newService(channels, maxConcurrent, circuitbreaker.WebhookConfig)
}

func newService(channels []Channel, maxConcurrent int, breakerConfig func(string) circuitbreaker.Config) *service {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	svc := &service{
		channels:       channels,
		breakers:       make(map[string]*circuitbreaker.CircuitBreaker, len(channels)),
		workerPool:     make(chan struct{}, maxConcurrent),
		shutdownCtx:    shutdownCtx,
		shutdownCancel: shutdownCancel,
	}

	enabled := 0
	for _, ch := range channels {
		svc.breakers[ch.Name()] = circuitbreaker.New(breakerConfig("notify-" + ch.Name()))
		if ch.IsEnabled() {
			enabled++
		}
	}
	feedbackAlertChannels.Set(float64(enabled))

	return svc
}

// NotifyNegativeFeedback implements Service.
func (s *service) NotifyNegativeFeedback(ctx context.Context, alert *entity.FeedbackAlert) error {
	if alert == nil || alert.Feedback == nil {
		slog.Warn("invalid notification input", slog.Bool("nil_alert", alert == nil))
		return nil
	}

	// inherit the request id so the alert can be traced back to the vote
	requestID := requestid.FromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	dispatched := 0
	for _, ch := range s.channels {
		if !ch.IsEnabled() {
			continue
		}
		dispatched++
		s.wg.Add(1)
		go s.notifyChannel(requestID, ch, alert)
	}

	if dispatched == 0 {
		slog.Debug("no notification channels enabled",
			slog.String("request_id", requestID),
			slog.Int64("article_id", alert.Feedback.ArticleID))
		return nil
	}

	slog.Info("dispatching feedback alert",
		slog.String("request_id", requestID),
		slog.Int64("article_id", alert.Feedback.ArticleID),
		slog.Int("enabled_channels", dispatched))
	return nil
}

func (s *service) notifyChannel(requestID string, channel Channel, alert *entity.FeedbackAlert) {
	defer s.wg.Done()

	defer trackInFlight()()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in notification channel",
				slog.String("request_id", requestID),
				slog.String("channel", channel.Name()),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	select {
	case s.workerPool <- struct{}{}:
		defer func() { <-s.workerPool }()
	case <-time.After(workerPoolTimeout):
		slog.Warn("notification dropped: worker pool full",
			slog.String("request_id", requestID),
			slog.String("channel", channel.Name()))
		recordDropped(channel.Name(), outcomePoolFull)
		return
	case <-s.shutdownCtx.Done():
		recordDropped(channel.Name(), outcomeShutdown)
		return
	}

	ctx, cancel := context.WithTimeout(s.shutdownCtx, notificationTimeout)
	defer cancel()
	ctx = requestid.WithRequestID(ctx, requestID)

	start := time.Now()

	err := s.breakers[channel.Name()].Do(func() error {
		return channel.Send(ctx, alert)
	})
	duration := time.Since(start)

	switch {
	case circuitbreaker.IsRejected(err):
		slog.Warn("channel temporarily disabled by circuit breaker",
			slog.String("request_id", requestID),
			slog.String("channel", channel.Name()))
		recordDropped(channel.Name(), outcomeCircuitOpen)
	case err != nil:
		recordSend(channel.Name(), err, duration)
		slog.Warn("channel notification failed",
			slog.String("request_id", requestID),
			slog.String("channel", channel.Name()),
			slog.Int64("article_id", alert.Feedback.ArticleID),
			slog.Duration("send_duration", duration),
			slog.Any("error", err))
	default:
		recordSend(channel.Name(), nil, duration)
		slog.Info("channel notification sent",
			slog.String("request_id", requestID),
			slog.String("channel", channel.Name()),
			slog.Int64("article_id", alert.Feedback.ArticleID),
			slog.Duration("send_duration", duration))
	}
}

// GetChannelHealth implements Service.
func (s *service) GetChannelHealth() []ChannelHealthStatus {
	statuses := make([]ChannelHealthStatus, 0, len(s.channels))
	for _, ch := range s.channels {
		cb := s.breakers[ch.Name()]
		statuses = append(statuses, ChannelHealthStatus{
			Name:               ch.Name(),
			Enabled:            ch.IsEnabled(),
			CircuitBreakerOpen: cb.IsOpen(),
			State:              cb.State().String(),
		})
	}
	return statuses
}

// Shutdown implements Service.
func (s *service) Shutdown(ctx context.Context) error {
	slog.Info("shutting down notification service")
	s.shutdownCancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("notification service shutdown complete")
		return nil
	case <-ctx.Done():
		slog.Warn("notification service shutdown timeout")
		return ctx.Err()
	}
}
