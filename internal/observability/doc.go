// Package observability groups the logging, metrics and tracing subpackages.
//
// Subpackages:
//   - logging: slog constructors and context propagation
//   - metrics: Prometheus collectors for HTTP traffic and help-center activity
//   - tracing: OpenTelemetry provider setup and HTTP middleware
//   - slo: sliding-window availability and latency indicators
package observability
