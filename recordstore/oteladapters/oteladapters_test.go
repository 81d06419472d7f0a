package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/log/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AntonStoeckl/library-circulation-go/recordstore/oteladapters"
)

func Test_SlogBridgeLoggerWithHandler_ShouldWriteAllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "sql executed", "duration_ms", 1.5)
	logger.InfoContext(ctx, "book borrowed", "book_id", 7)
	logger.WarnContext(ctx, "rollback failed")
	logger.ErrorContext(ctx, "query failed", "error", "boom")

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG","msg":"sql executed","duration_ms":1.5`)
	assert.Contains(t, output, `"msg":"book borrowed","book_id":7`)
	assert.Contains(t, output, `"level":"WARN"`)
	assert.Contains(t, output, `"error":"boom"`)
}

func Test_NewSlogBridgeLogger_ShouldUseGlobalProvider(t *testing.T) {
	// act
	logger := oteladapters.NewSlogBridgeLogger("library-circulation")

	// assert
	assert.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.InfoContext(context.Background(), "hello") })
}

func Test_OTelLogger_ShouldEmitWithoutPanicking_WithOddArguments(t *testing.T) {
	// arrange
	logger := oteladapters.NewOTelLogger(noop.NewLoggerProvider().Logger("test"))

	// act + assert
	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "payment processed", "amount", 6.5, "approved", true, "dangling")
		logger.ErrorContext(context.Background(), "payment failed", 42, "not a key")
	})
}

func Test_MetricsCollector_ShouldRecordDurationsInSeconds(t *testing.T) {
	// arrange
	reader := sdkmetric.NewManualReader()
	collector := oteladapters.NewMetricsCollector(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))

	// act
	collector.RecordDurationContext(context.Background(), "recordstore_operation_duration_seconds", 250*time.Millisecond, map[string]string{"operation": "list_books"})
	collector.RecordDuration("recordstore_operation_duration_seconds", 250*time.Millisecond, map[string]string{"operation": "list_books"})

	// assert
	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	histogram, ok := findMetric(resourceMetrics, "recordstore_operation_duration_seconds").Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, uint64(2), histogram.DataPoints[0].Count)
	assert.InDelta(t, 0.5, histogram.DataPoints[0].Sum, 0.001)

	expectedAttrs := attribute.NewSet(attribute.String("operation", "list_books"))
	assert.True(t, histogram.DataPoints[0].Attributes.Equals(&expectedAttrs))
}

func Test_MetricsCollector_ShouldCountAndGauge(t *testing.T) {
	// arrange
	reader := sdkmetric.NewManualReader()
	collector := oteladapters.NewMetricsCollector(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))
	labels := map[string]string{"command_type": "BorrowBook"}

	// act
	collector.IncrementCounter("commands_total", labels)
	collector.IncrementCounterContext(context.Background(), "commands_total", labels)
	collector.RecordValue("overdue_loans", 3, nil)
	collector.RecordValueContext(context.Background(), "overdue_loans", 4, nil)

	// assert
	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	counter, ok := findMetric(resourceMetrics, "commands_total").Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, counter.DataPoints, 1)
	assert.Equal(t, int64(2), counter.DataPoints[0].Value)

	gauge, ok := findMetric(resourceMetrics, "overdue_loans").Data.(metricdata.Gauge[float64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.InDelta(t, 4.0, gauge.DataPoints[0].Value, 0.0001)
}

func Test_TracingCollector_ShouldMapStatuses(t *testing.T) {
	testCases := []struct {
		status       string
		expectedCode codes.Code
	}{
		{status: "success", expectedCode: codes.Ok},
		{status: "not_found", expectedCode: codes.Ok},
		{status: "declined", expectedCode: codes.Ok},
		{status: "error", expectedCode: codes.Error},
		{status: "timeout", expectedCode: codes.Error},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			// arrange
			exporter := tracetest.NewInMemoryExporter()
			collector := oteladapters.NewTracingCollector(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)).Tracer("test"))

			// act
			_, span := collector.StartSpan(context.Background(), "recordstore.find_book_by_id", map[string]string{"operation": "find_book_by_id"})
			span.AddAttribute("book_id", "7")
			collector.FinishSpan(span, tc.status, map[string]string{"duration_ms": "1.00"})

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, "recordstore.find_book_by_id", spans[0].Name)
			assert.Equal(t, tc.expectedCode, spans[0].Status.Code)
			assert.Contains(t, spans[0].Attributes, attribute.String("operation", "find_book_by_id"))
			assert.Contains(t, spans[0].Attributes, attribute.String("book_id", "7"))
			assert.Contains(t, spans[0].Attributes, attribute.String("duration_ms", "1.00"))
		})
	}
}

func Test_TracingCollector_ShouldPropagateSpanInContext(t *testing.T) {
	// arrange
	exporter := tracetest.NewInMemoryExporter()
	collector := oteladapters.NewTracingCollector(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)).Tracer("test"))

	// act
	parentCtx, parent := collector.StartSpan(context.Background(), "command.BorrowBook", nil)
	_, child := collector.StartSpan(parentCtx, "recordstore.transaction", nil)
	collector.FinishSpan(child, "success", nil)
	collector.FinishSpan(parent, "success", nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	assert.Equal(t, spans[1].SpanContext.TraceID(), spans[0].SpanContext.TraceID())
}

func findMetric(resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Metrics {
	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name == name {
				return m
			}
		}
	}

	return metricdata.Metrics{}
}
