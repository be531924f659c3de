package worker

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"helpcenter/internal/handler/http/respond"
	"helpcenter/internal/observability/metrics"
)

// JobStatus is the outcome of the most recent run of one job.
type JobStatus struct {
	Name            string     `json:"name"`
	LastRun         time.Time  `json:"last_run"`
	LastSuccess     *time.Time `json:"last_success,omitempty"`
	LastError       string     `json:"last_error,omitempty"`
	DurationSeconds float64    `json:"duration_seconds"`
}

// Jobs runs scheduled jobs under a timeout and remembers how each one went.
type Jobs struct {
	logger  *slog.Logger
	metrics *Metrics
	timeout time.Duration
	now     func() time.Time

	mu     sync.Mutex
	status map[string]*JobStatus
}

func NewJobs(logger *slog.Logger, m *Metrics, timeout time.Duration) *Jobs {
	return &Jobs{
		logger:  logger,
		metrics: m,
		timeout: timeout,
		now:     time.Now,
		status:  make(map[string]*JobStatus),
	}
}

// Run executes fn with the job timeout applied to ctx. The error is returned
// after it has been logged and counted.
func (j *Jobs) Run(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	start := j.now()
	j.logger.Info("job started", slog.String("job", name))
	err := fn(ctx)
	d := j.now().Sub(start)

	metrics.RecordJobRun(name, err, d)

	j.mu.Lock()
	st, ok := j.status[name]
	if !ok {
		st = &JobStatus{Name: name}
		j.status[name] = st
	}
	st.LastRun = start
	st.DurationSeconds = d.Seconds()
	if err != nil {
		st.LastError = respond.SanitizeError(err)
	} else {
		st.LastError = ""
		finished := start.Add(d)
		st.LastSuccess = &finished
	}
	j.mu.Unlock()

	if err != nil {
		j.logger.Error("job failed",
			slog.String("job", name),
			slog.Duration("duration", d),
			slog.String("error", respond.SanitizeError(err)))
		return err
	}
	j.metrics.RecordLastSuccess(name)
	j.logger.Info("job completed", slog.String("job", name), slog.Duration("duration", d))
	return nil
}

// Snapshot returns the status of every job that has run, ordered by name.
func (j *Jobs) Snapshot() []JobStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]JobStatus, 0, len(j.status))
	for _, st := range j.status {
		cp := *st
		out = append(out, cp)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}
