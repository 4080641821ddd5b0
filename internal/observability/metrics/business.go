package metrics

import (
	"time"
)

// Search outcomes
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeDegraded = "degraded"
)

// RecordSearch records one usecase call. Operation is "search" or "list_bilingual".
func RecordSearch(operation, outcome string, duration time.Duration) {
	SearchRequestsTotal.WithLabelValues(operation, outcome).Inc()
	SearchDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordPairs counts returned pairs per translation source.
func RecordPairs(countsBySource map[string]int) {
	for source, n := range countsBySource {
		SearchPairsTotal.WithLabelValues(source).Add(float64(n))
	}
}

// RecordQueryTranslation records the result of one query expansion attempt.
func RecordQueryTranslation(result string) {
	QueryTranslationTotal.WithLabelValues(result).Inc()
}

// UpdateCatalogTotals sets the quote and group gauges.
func UpdateCatalogTotals(quotes, groups int64) {
	QuotesTotal.Set(float64(quotes))
	BilingualGroupsTotal.Set(float64(groups))
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(inUse, idle int) {
	DBConnectionsInUse.Set(float64(inUse))
	DBConnectionsIdle.Set(float64(idle))
}

// Worker job statuses
const (
	JobSuccess = "success"
	JobFailure = "failure"
)

// RecordJobRun records one finished worker job run. A successful run also
// moves the last-success timestamp to at.
func RecordJobRun(job, status string, duration time.Duration, at time.Time) {
	WorkerJobRunsTotal.WithLabelValues(job, status).Inc()
	WorkerJobDuration.WithLabelValues(job).Observe(duration.Seconds())
	if status == JobSuccess {
		WorkerLastSuccess.WithLabelValues(job).Set(float64(at.Unix()))
	}
}
