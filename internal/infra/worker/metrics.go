package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks configuration fallbacks and the last successful run of each job.
// Run counts and durations live in observability/metrics.
type Metrics struct {
	ConfigLoadTimestamp   prometheus.Gauge
	ConfigFallbacksTotal  *prometheus.CounterVec
	ConfigFallbackActive  prometheus.Gauge
	JobLastSuccessSeconds *prometheus.GaugeVec
}

// NewMetrics registers the worker metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ConfigLoadTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "worker_config_load_timestamp",
			Help: "Unix timestamp of the last worker configuration load",
		}),
		ConfigFallbacksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_config_fallbacks_total",
			Help: "Invalid worker settings replaced by their default, by field",
		}, []string{"field"}),
		ConfigFallbackActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "worker_config_fallback_active",
			Help: "1 if any worker setting uses its default because of an invalid value",
		}),
		JobLastSuccessSeconds: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worker_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful run, by job",
		}, []string{"job"}),
	}
}

func (m *Metrics) RecordLoadTimestamp() { m.ConfigLoadTimestamp.SetToCurrentTime() }

func (m *Metrics) RecordFallback(field string) { m.ConfigFallbacksTotal.WithLabelValues(field).Inc() }

func (m *Metrics) SetFallbackActive(active bool) {
	if active {
		m.ConfigFallbackActive.Set(1)
		return
	}
	m.ConfigFallbackActive.Set(0)
}

func (m *Metrics) RecordLastSuccess(job string) {
	m.JobLastSuccessSeconds.WithLabelValues(job).SetToCurrentTime()
}
