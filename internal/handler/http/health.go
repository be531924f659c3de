// Package http holds the server-wide HTTP plumbing of the help center: access
// logging, panic recovery, request limits, Prometheus metrics and the health
// probes. Resource handlers live in the sub-packages.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"helpcenter/internal/handler/http/respond"
	"helpcenter/internal/observability/metrics"
	"helpcenter/internal/usecase/notify"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the result of one health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// ChannelHealthReporter exposes notification channel state.
type ChannelHealthReporter interface {
	GetChannelHealth() []notify.ChannelHealthStatus
}

// HealthHandler reports database and notification health.
// Only the database decides the status code; an open notification breaker
// degrades the report without failing it.
type HealthHandler struct {
	DB      *sql.DB
	Version string
	Notify  ChannelHealthReporter
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{"database": h.checkDatabase(ctx)}
	if h.Notify != nil {
		checks["notifications"] = h.checkNotifications()
	}

	status, code := statusHealthy, http.StatusOK
	for name, c := range checks {
		switch {
		case c.Status == statusUnhealthy && name == "database":
			status, code = statusUnhealthy, http.StatusServiceUnavailable
		case c.Status != statusHealthy && status == statusHealthy:
			status = statusDegraded
		}
	}

	w.Header().Set("Cache-Control", "no-store")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if h.DB == nil {
		return CheckStatus{Status: statusUnhealthy, Message: "not configured"}
	}
	if err := h.DB.PingContext(ctx); err != nil {
		slog.Default().WarnContext(ctx, "health: database ping failed", slog.Any("error", err))
		return CheckStatus{Status: statusUnhealthy, Message: "database unreachable"}
	}

	stats := h.DB.Stats()
	metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
	if stats.MaxOpenConnections > 0 {
		utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
		details["utilization_percent"] = utilization
		if utilization >= 80 {
			return CheckStatus{Status: statusDegraded, Message: "connection pool utilization above 80%", Details: details}
		}
	}
	return CheckStatus{Status: statusHealthy, Details: details}
}

func (h *HealthHandler) checkNotifications() CheckStatus {
	channels := h.Notify.GetChannelHealth()
	check := CheckStatus{Status: statusHealthy, Details: map[string]any{"channels": channels}}
	for _, c := range channels {
		if c.Enabled && c.CircuitBreakerOpen {
			check.Status = statusDegraded
			check.Message = c.Name + " circuit breaker is open"
		}
	}
	return check
}

// ReadyHandler answers the readiness probe: 200 once the database answers a ping.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.DB.PingContext(ctx); err != nil {
		http.Error(w, "database not ready", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler answers the liveness probe.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("alive"))
}
