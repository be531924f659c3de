package slo

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"slices"
	"sync"
	"time"

	"helpcenter/internal/handler/http/responsewriter"
)

// defaultMaxSamples bounds memory when traffic spikes; the oldest samples go first.
const defaultMaxSamples = 50000

type sample struct {
	at      time.Time
	latency time.Duration
	failed  bool
}

// Report summarises the requests inside the window.
type Report struct {
	Requests     int
	Availability float64
	ErrorRate    float64
	P95          time.Duration
	P99          time.Duration
}

// Meets reports whether every indicator is within its target.
func (r Report) Meets() bool {
	return r.Availability*100 >= AvailabilitySLO &&
		r.ErrorRate <= ErrorRateSLO &&
		r.P95.Seconds() <= LatencyP95SLO &&
		r.P99.Seconds() <= LatencyP99SLO
}

// Tracker keeps the samples of the last window. Safe for concurrent use.
type Tracker struct {
	window     time.Duration
	maxSamples int
	now        func() time.Time

	mu      sync.Mutex
	samples []sample
}

func NewTracker(window time.Duration) *Tracker {
	return &Tracker{
		window:     window,
		maxSamples: defaultMaxSamples,
		now:        time.Now,
	}
}

// Observe records one finished request. Only 5xx responses count as failures.
func (t *Tracker) Observe(status int, latency time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.samples = append(t.samples, sample{at: t.now(), latency: latency, failed: status >= 500})
	if over := len(t.samples) - t.maxSamples; over > 0 {
		t.samples = t.samples[over:]
	}
}

// Snapshot drops expired samples and computes the report.
// An empty window reports full availability.
func (t *Tracker) Snapshot() Report {
	t.mu.Lock()
	cutoff := t.now().Add(-t.window)
	i := 0
	for i < len(t.samples) && t.samples[i].at.Before(cutoff) {
		i++
	}
	t.samples = t.samples[i:]
	latencies := make([]time.Duration, len(t.samples))
	failed := 0
	for j, s := range t.samples {
		latencies[j] = s.latency
		if s.failed {
			failed++
		}
	}
	t.mu.Unlock()

	n := len(latencies)
	if n == 0 {
		return Report{Availability: 1}
	}
	slices.Sort(latencies)
	errRate := float64(failed) / float64(n)
	return Report{
		Requests:     n,
		Availability: 1 - errRate,
		ErrorRate:    errRate,
		P95:          percentile(latencies, 0.95),
		P99:          percentile(latencies, 0.99),
	}
}

// percentile uses the nearest-rank method on sorted values.
func percentile(sorted []time.Duration, p float64) time.Duration {
	rank := int(math.Ceil(p * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

// Run publishes a snapshot every interval until ctx is cancelled and warns
// when the window misses a target.
func (t *Tracker) Run(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r := t.Snapshot()
			publish(r)
			if r.Requests > 0 && !r.Meets() {
				logger.Warn("SLO target missed",
					slog.Int("requests", r.Requests),
					slog.Float64("availability", r.Availability),
					slog.Float64("error_rate", r.ErrorRate),
					slog.Duration("p95", r.P95),
					slog.Duration("p99", r.P99))
			}
		}
	}
}

// Middleware feeds every response into t.
func (t *Tracker) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := responsewriter.Wrap(w)
		next.ServeHTTP(wrapped, r)
		t.Observe(wrapped.StatusCode(), time.Since(start))
	})
}
