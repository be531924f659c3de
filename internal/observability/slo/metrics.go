// Package slo publishes the API's service level indicators as gauges computed
// over a sliding window of recent requests.
package slo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Targets of the help center API.
const (
	// AvailabilitySLO is the target share of non-5xx responses, in percent.
	AvailabilitySLO = 99.9

	// LatencyP95SLO and LatencyP99SLO are in seconds.
	LatencyP95SLO = 0.200
	LatencyP99SLO = 0.500

	// ErrorRateSLO is the maximum share of 5xx responses.
	ErrorRateSLO = 0.001
)

var (
	SLOAvailability = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_availability_ratio",
		Help: "Share of non-5xx responses over the SLO window (0-1), target: 0.999",
	})

	SLOLatencyP95 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p95_seconds",
		Help: "p95 latency over the SLO window in seconds, target: 0.200",
	})

	SLOLatencyP99 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p99_seconds",
		Help: "p99 latency over the SLO window in seconds, target: 0.500",
	})

	SLOErrorRate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_error_rate_ratio",
		Help: "Share of 5xx responses over the SLO window (0-1), target: 0.001",
	})

	SLOWindowRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_window_requests",
		Help: "Requests inside the SLO window",
	})
)

// publish copies a report into the gauges.
func publish(r Report) {
	SLOAvailability.Set(r.Availability)
	SLOErrorRate.Set(r.ErrorRate)
	SLOLatencyP95.Set(r.P95.Seconds())
	SLOLatencyP99.Set(r.P99.Seconds())
	SLOWindowRequests.Set(float64(r.Requests))
}
