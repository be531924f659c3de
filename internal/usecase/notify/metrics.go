package notify

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Alert outcomes. Breaker state itself is exported by the circuitbreaker package.
const (
	outcomeSent        = "sent"
	outcomeFailed      = "failed"
	outcomePoolFull    = "pool_full"
	outcomeCircuitOpen = "circuit_open"
	outcomeShutdown    = "shutdown"
)

var (
	feedbackAlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpcenter_feedback_alerts_total",
			Help: "Negative-feedback alerts by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)

	feedbackAlertSendSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "helpcenter_feedback_alert_send_seconds",
			Help:    "Time spent delivering one alert, retries included",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"channel"},
	)

	feedbackAlertsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "helpcenter_feedback_alerts_in_flight",
			Help: "Alert goroutines waiting for a slot or sending",
		},
	)

	feedbackAlertChannels = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "helpcenter_feedback_alert_channels_enabled",
			Help: "Alert channels configured and enabled",
		},
	)
)

// recordSend counts an alert that reached the channel.
func recordSend(channel string, err error, d time.Duration) {
	outcome := outcomeSent
	if err != nil {
		outcome = outcomeFailed
	}
	feedbackAlertsTotal.WithLabelValues(channel, outcome).Inc()
	feedbackAlertSendSeconds.WithLabelValues(channel).Observe(d.Seconds())
}

// recordDropped counts an alert that never reached the channel.
func recordDropped(channel, outcome string) {
	feedbackAlertsTotal.WithLabelValues(channel, outcome).Inc()
}

// trackInFlight increments the in-flight gauge and returns its decrement.
func trackInFlight() func() {
	feedbackAlertsInFlight.Inc()
	return feedbackAlertsInFlight.Dec
}
