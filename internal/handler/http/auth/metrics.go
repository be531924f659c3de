package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Denial and failure reasons. Labels never carry claim values, which are client controlled.
const (
	reasonMissingToken = "missing_token"
	reasonInvalidToken = "invalid_token"
	reasonForbidden    = "forbidden_role"

	reasonBadRequest  = "invalid_request"
	reasonBadLogin    = "invalid_credentials"
	reasonSigningFail = "signing_failed"
)

var (
	tokenRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpcenter_auth_token_requests_total",
			Help: "POST /auth/token outcomes",
		},
		[]string{"result", "reason"}, // result: issued | rejected
	)

	tokenRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "helpcenter_auth_token_duration_seconds",
			Help:    "Time spent checking credentials and signing the token",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	adminDenialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpcenter_admin_denials_total",
			Help: "Admin API requests refused by the auth middleware",
		},
		[]string{"reason", "method"},
	)
)

func recordTokenIssued(start time.Time) {
	tokenRequestsTotal.WithLabelValues("issued", "").Inc()
	tokenRequestDuration.Observe(time.Since(start).Seconds())
}

func recordTokenRejected(reason string, start time.Time) {
	tokenRequestsTotal.WithLabelValues("rejected", reason).Inc()
	tokenRequestDuration.Observe(time.Since(start).Seconds())
}

func recordAdminDenied(reason, method string) {
	adminDenialsTotal.WithLabelValues(reason, method).Inc()
}
