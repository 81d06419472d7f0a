package postgresengine

import (
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

// Logger interface for SQL query logging, operational metrics, warnings, and error reporting.
type Logger = recordstore.Logger

// ContextualLogger interface for context-aware logging with automatic trace correlation.
type ContextualLogger = recordstore.ContextualLogger

// MetricsCollector interface for collecting RecordStore performance and operational metrics.
type MetricsCollector = recordstore.MetricsCollector

// TracingCollector interface for collecting distributed tracing information from RecordStore operations.
type TracingCollector = recordstore.TracingCollector

// Option defines a functional option for configuring RecordStore.
type Option func(*RecordStore) error

// WithBooksTableName sets the books table name for the RecordStore.
func WithBooksTableName(tableName string) Option {
	return func(rs *RecordStore) error {
		if tableName == "" {
			return recordstore.ErrEmptyTableName
		}

		rs.booksTableName = tableName

		return nil
	}
}

// WithBorrowRecordsTableName sets the borrow records table name for the RecordStore.
func WithBorrowRecordsTableName(tableName string) Option {
	return func(rs *RecordStore) error {
		if tableName == "" {
			return recordstore.ErrEmptyTableName
		}

		rs.borrowRecordsTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the RecordStore.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: Operation outcomes with durations (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(rs *RecordStore) error {
		rs.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the RecordStore.
// It receives the same messages as the Logger, but with the operation's context for trace correlation.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(rs *RecordStore) error {
		rs.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the RecordStore.
// It receives operation durations, operation counts, and database errors.
func WithMetrics(collector MetricsCollector) Option {
	return func(rs *RecordStore) error {
		rs.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the RecordStore.
// A span is created for each store operation and for each transaction.
func WithTracing(collector TracingCollector) Option {
	return func(rs *RecordStore) error {
		rs.tracingCollector = collector
		return nil
	}
}
