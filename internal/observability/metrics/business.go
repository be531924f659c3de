package metrics

import (
	"strconv"
	"time"
)

// RecordRelated records one related-article computation.
func RecordRelated(outcome string, size int, d time.Duration) {
	RelatedRequestsTotal.WithLabelValues(outcome).Inc()
	RelatedResultSize.Observe(float64(size))
	RelatedDuration.Observe(d.Seconds())
}

// RecordSearch records a public search and whether it matched anything.
func RecordSearch(matches int) {
	result := "hit"
	if matches == 0 {
		result = "empty"
	}
	SearchesTotal.WithLabelValues(result).Inc()
}

// RecordFeedback records one reader vote.
func RecordFeedback(helpful bool) {
	FeedbackVotesTotal.WithLabelValues(strconv.FormatBool(helpful)).Inc()
}

// RecordRedirectLookup records a resolve call.
func RecordRedirectLookup(found bool) {
	if found {
		RedirectLookupsTotal.WithLabelValues("hit").Inc()
		return
	}
	RedirectLookupsTotal.WithLabelValues("miss").Inc()
}

// RecordRedirectImport records the outcome counts of one CSV import.
func RecordRedirectImport(created, updated, failed int) {
	RedirectImportRowsTotal.WithLabelValues("created").Add(float64(created))
	RedirectImportRowsTotal.WithLabelValues("updated").Add(float64(updated))
	RedirectImportRowsTotal.WithLabelValues("failed").Add(float64(failed))
}

// UpdateDBConnectionStats publishes the pool state reported by sql.DB.Stats.
func UpdateDBConnectionStats(inUse, idle int) {
	DBConnections.WithLabelValues("in_use").Set(float64(inUse))
	DBConnections.WithLabelValues("idle").Set(float64(idle))
}

// RecordJobRun records one scheduled worker job execution.
func RecordJobRun(job string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	WorkerJobRunsTotal.WithLabelValues(job, status).Inc()
	WorkerJobDuration.WithLabelValues(job).Observe(d.Seconds())
}
