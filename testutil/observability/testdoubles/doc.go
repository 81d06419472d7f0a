// Package testdoubles provides test doubles (spies) for the observability interfaces.
//
// This package contains spy implementations for the dependency-free observability
// interfaces used by the record store engines and the observable feature wrappers:
//   - MetricsCollectorSpy: captures metrics recording calls for verification
//   - TracingCollectorSpy: captures tracing spans and their attributes
//   - ContextualLoggerSpy: captures structured logging with context
//   - LogHandlerSpy: captures slog handler calls and attributes
//
// These test doubles enable testing of observability instrumentation
// without requiring actual telemetry backends.
package testdoubles
