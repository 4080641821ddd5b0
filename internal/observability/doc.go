// Package observability groups the service's logging, Prometheus metrics and
// OpenTelemetry tracing.
//
// Subpackages:
//   - logging: slog construction and request-scoped loggers
//   - metrics: Prometheus collectors for HTTP, search, catalog state and worker jobs
//   - tracing: provider setup, tracer access and HTTP span middleware
package observability
