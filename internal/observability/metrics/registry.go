// Package metrics declares the Prometheus collectors shared across the application.
// Collectors register on the default registry and are served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics, labelled by route pattern rather than raw path.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// RateLimitRejectedTotal counts requests refused with 429, by limiter name.
	RateLimitRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limit_rejected_total",
			Help: "Requests rejected by a rate limiter",
		},
		[]string{"limiter"},
	)

	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 7),
		},
		[]string{"method", "path"},
	)
)

// Help-center metrics.
var (
	PublishedArticles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "helpcenter_published_articles",
			Help: "Number of published articles",
		},
	)

	// RelatedRequestsTotal counts related-article computations by outcome: ok, empty, failed.
	RelatedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpcenter_related_requests_total",
			Help: "Related-article computations by outcome",
		},
		[]string{"outcome"},
	)

	RelatedResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "helpcenter_related_result_size",
			Help:    "Number of candidates returned by the diversity selector",
			Buckets: []float64{0, 1, 2, 3, 6, 12, 24, 40},
		},
	)

	RelatedDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "helpcenter_related_duration_seconds",
			Help:    "Time spent fetching and scoring related-article candidates",
			Buckets: prometheus.DefBuckets,
		},
	)

	ArticleViewsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "helpcenter_article_views_total",
			Help: "Public article page views recorded",
		},
	)

	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpcenter_searches_total",
			Help: "Public searches by whether they returned results",
		},
		[]string{"result"},
	)

	FeedbackVotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpcenter_feedback_votes_total",
			Help: "Reader feedback votes",
		},
		[]string{"helpful"},
	)

	// RedirectLookupsTotal counts resolve calls by result: hit, miss.
	RedirectLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpcenter_redirect_lookups_total",
			Help: "Legacy URL lookups by result",
		},
		[]string{"result"},
	)

	RedirectImportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpcenter_redirect_import_rows_total",
			Help: "Rows processed by the redirect CSV importer",
		},
		[]string{"result"},
	)

	DBConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database pool connections by state",
		},
		[]string{"state"},
	)

	// CircuitBreakerState mirrors gobreaker.State per breaker: 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	WorkerJobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpcenter_worker_job_runs_total",
			Help: "Scheduled worker job runs by job and status",
		},
		[]string{"job", "status"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "helpcenter_worker_job_duration_seconds",
			Help:    "Scheduled worker job duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"job"},
	)
)
