// Package metrics holds every Prometheus collector the service exports.
//
// Collectors are registered with the default registry through promauto and are
// served by the /metrics endpoint of both binaries.
//
// Example usage:
//
//	start := time.Now()
//	pairs, err := svc.Search(ctx, q)
//	metrics.RecordSearch("search", metrics.OutcomeOK, time.Since(start))
package metrics
