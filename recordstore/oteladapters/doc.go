// Package oteladapters provides OpenTelemetry implementations of the record store
// observability interfaces (recordstore.ContextualLogger, recordstore.ContextualMetricsCollector
// and recordstore.TracingCollector).
//
// The same adapters are passed to the observable command and query wrappers,
// so store operations and feature handlers report into one telemetry pipeline.
//
//	logger := oteladapters.NewSlogBridgeLogger("library-circulation")
//	metrics := oteladapters.NewMetricsCollector(otel.Meter("library-circulation"))
//	tracing := oteladapters.NewTracingCollector(otel.Tracer("library-circulation"))
package oteladapters
