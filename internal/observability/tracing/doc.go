// Package tracing provides OpenTelemetry span helpers and HTTP middleware.
//
// No exporter is configured here; spans go to whatever provider the binary
// installs with otel.SetTracerProvider (a no-op provider by default).
package tracing
