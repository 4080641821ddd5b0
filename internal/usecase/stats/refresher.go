// Package stats refreshes the catalog gauges exported by the worker.
package stats

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"bilingual-quotes/internal/observability/logging"
	"bilingual-quotes/internal/observability/metrics"
	"bilingual-quotes/internal/repository"
)

// JobName labels the refresh in the worker job metrics.
const JobName = "catalog_stats"

// PoolStats reports connection pool statistics. *sql.DB satisfies it.
type PoolStats interface {
	Stats() sql.DBStats
}

// Snapshot is the result of one refresh.
type Snapshot struct {
	Quotes      int64
	Groups      int64
	ConnInUse   int
	ConnIdle    int
	CollectedAt time.Time
}

// Refresher counts the catalog and publishes the totals as gauges.
type Refresher struct {
	Quotes repository.QuoteRepository
	// Pool is optional. A nil pool skips the connection gauges.
	Pool PoolStats

	now func() time.Time
}

// NewRefresher creates a Refresher.
func NewRefresher(quotes repository.QuoteRepository, pool PoolStats) *Refresher {
	return &Refresher{Quotes: quotes, Pool: pool, now: time.Now}
}

// Refresh counts quotes and bilingual groups and updates the gauges. Gauges
// keep their previous values when a count fails.
func (r *Refresher) Refresh(ctx context.Context) (Snapshot, error) {
	now := r.now
	if now == nil {
		now = time.Now
	}
	start := now()

	quotes, err := r.Quotes.CountQuotes(ctx)
	if err != nil {
		metrics.RecordJobRun(JobName, metrics.JobFailure, now().Sub(start), now())
		return Snapshot{}, fmt.Errorf("count quotes: %w", err)
	}
	groups, err := r.Quotes.CountGroups(ctx)
	if err != nil {
		metrics.RecordJobRun(JobName, metrics.JobFailure, now().Sub(start), now())
		return Snapshot{}, fmt.Errorf("count groups: %w", err)
	}

	snap := Snapshot{Quotes: quotes, Groups: groups}
	metrics.UpdateCatalogTotals(quotes, groups)

	if r.Pool != nil {
		st := r.Pool.Stats()
		snap.ConnInUse, snap.ConnIdle = st.InUse, st.Idle
		metrics.UpdateDBConnectionStats(st.InUse, st.Idle)
	}

	snap.CollectedAt = now()
	metrics.RecordJobRun(JobName, metrics.JobSuccess, snap.CollectedAt.Sub(start), snap.CollectedAt)

	logging.FromContext(ctx).Info("catalog stats refreshed",
		slog.Int64("quotes", snap.Quotes),
		slog.Int64("groups", snap.Groups),
		slog.Duration("duration", snap.CollectedAt.Sub(start)))
	return snap, nil
}
