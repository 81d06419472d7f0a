package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/config"
	"github.com/AntonStoeckl/library-circulation-go/recordstore/oteladapters"
)

const serviceVersion = "1.0.0"

// Observability holds the adapters handed to the store and the handler wrappers.
type Observability struct {
	Logger           shell.Logger
	ContextualLogger shell.ContextualLogger
	MetricsCollector shell.MetricsCollector
	TracingCollector shell.TracingCollector
	shutdown         func()
}

// Shutdown flushes the OpenTelemetry providers, if any were created.
func (o Observability) Shutdown() {
	if o.shutdown != nil {
		o.shutdown()
	}
}

// newObservability always logs JSON to stderr. With observability enabled it also exports
// traces and metrics via OTLP and sends contextual logs through the otel slog bridge.
func newObservability(ctx context.Context, settings config.Settings, verbose bool) Observability {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	obs := Observability{
		Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}

	if !settings.ObservabilityEnabled {
		return obs
	}

	providers, err := config.NewObservabilityConfig(ctx, settings, serviceVersion)
	if err != nil {
		log.Printf("Failed to create observability providers: %v", err)
		return obs
	}

	obs.ContextualLogger = oteladapters.NewSlogBridgeLogger(config.ServiceName)
	obs.MetricsCollector = oteladapters.NewMetricsCollector(otel.Meter(config.ServiceName))
	obs.TracingCollector = oteladapters.NewTracingCollector(otel.Tracer(config.ServiceName))
	obs.shutdown = func() {
		if shutdownErr := providers.Shutdown(); shutdownErr != nil {
			log.Printf("⚠️  Error shutting down observability providers: %v", shutdownErr)
		}
	}

	log.Printf("🔍 Observability enabled - traces: %s, metrics: %s", settings.OTLPTraceEndpoint, settings.OTLPMetricEndpoint)

	return obs
}
