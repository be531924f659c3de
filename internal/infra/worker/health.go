package worker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"helpcenter/internal/handler/http/respond"
)

// HealthServer answers the liveness and readiness probes of the worker.
//
//	GET /health        always 200
//	GET /health/ready  200 once SetReady(true) was called, 503 before
//	GET /health/jobs   last outcome of every job
type HealthServer struct {
	addr    string
	logger  *slog.Logger
	jobs    *Jobs
	isReady atomic.Bool
	server  *http.Server
}

type healthResponse struct {
	Status string `json:"status"`
}

// NewHealthServer builds the server; jobs may be nil.
func NewHealthServer(addr string, logger *slog.Logger, jobs *Jobs) *HealthServer {
	return &HealthServer{addr: addr, logger: logger, jobs: jobs}
}

// Handler exposes the probe routes, mainly for tests.
func (h *HealthServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.handleLiveness)
	mux.HandleFunc("GET /health/ready", h.handleReadiness)
	mux.HandleFunc("GET /health/jobs", h.handleJobs)
	return mux
}

// Start serves until ctx is cancelled, then shuts down within five seconds.
// It returns http.ErrServerClosed after a clean shutdown.
func (h *HealthServer) Start(ctx context.Context) error {
	h.server = &http.Server{
		Addr:         h.addr,
		Handler:      h.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		h.logger.Info("health server starting", slog.String("addr", h.addr))
		errChan <- h.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.server.Shutdown(shutdownCtx); err != nil {
			h.logger.Error("health server shutdown failed", slog.Any("error", err))
			return err
		}
		h.logger.Info("health server stopped")
		return http.ErrServerClosed
	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("health server failed", slog.Any("error", err))
		}
		return err
	}
}

func (h *HealthServer) SetReady(ready bool) {
	h.isReady.Store(ready)
	h.logger.Info("worker readiness changed", slog.Bool("ready", ready))
}

func (h *HealthServer) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (h *HealthServer) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	if !h.isReady.Load() {
		respond.JSON(w, http.StatusServiceUnavailable, healthResponse{Status: "not ready"})
		return
	}
	respond.JSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (h *HealthServer) handleJobs(w http.ResponseWriter, _ *http.Request) {
	if h.jobs == nil {
		respond.JSON(w, http.StatusOK, []JobStatus{})
		return
	}
	respond.JSON(w, http.StatusOK, h.jobs.Snapshot())
}
