package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

const (
	logMsgBuildQueryFailed   = "failed to build sql statement"
	logMsgDBQueryFailed      = "database query execution failed"
	logMsgDBExecFailed       = "database statement execution failed"
	logMsgCloseRowsFailed    = "failed to close database rows"
	logMsgScanRowFailed      = "failed to scan database row"
	logMsgRowsAffectedFailed = "failed to get rows affected count"
	logMsgRollbackFailed     = "failed to roll back transaction"
	logMsgSQLExecuted        = "executed sql"
	logMsgOperation          = "recordstore operation: "
	logAttrError             = "error"
	logAttrQuery             = "query"
	logAttrOperation         = "operation"
	logAttrDurationMS        = "duration_ms"

	metricOperationDuration = "recordstore_operation_duration_seconds"
	metricOperations        = "recordstore_operations_total"
	metricDatabaseErrors    = "recordstore_database_errors_total"

	spanNamePrefix     = "recordstore."
	spanAttrOperation  = "operation"
	spanAttrErrorType  = "error_type"
	spanAttrDurationMS = "duration_ms"

	statusSuccess  = "success"
	statusNotFound = "not_found"
	statusRejected = "rejected"
	statusError    = "error"

	operationFindBookByID       = "find_book_by_id"
	operationFindBookByISBN     = "find_book_by_isbn"
	operationListBooks          = "list_books"
	operationCountOutstanding   = "count_outstanding"
	operationFindOutstanding    = "find_outstanding_record"
	operationListOutstanding    = "list_outstanding"
	operationListHistory        = "list_history"
	operationListAllOutstanding = "list_all_outstanding"
	operationTransaction        = "transaction"
	operationCreateSchema       = "create_schema"
)

// instrument runs fn inside a tracing span and records duration, outcome counters and an info log line.
func (rs *RecordStore) instrument(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	start := time.Now()
	ctx, span := rs.startTraceSpan(ctx, operation)

	err := fn(ctx)

	duration := time.Since(start)
	status := statusOf(err)

	rs.recordOperationMetrics(ctx, operation, status, duration)

	if status == statusError {
		rs.recordErrorMetrics(ctx, operation, errorTypeOf(err))
	}

	rs.finishTraceSpan(span, status, err, duration)
	rs.logOperation(ctx, operation, logAttrDurationMS, toMilliseconds(duration), "status", status)

	return err
}

// statusOf separates expected business outcomes from infrastructure failures.
func statusOf(err error) string {
	switch {
	case err == nil:
		return statusSuccess
	case errors.Is(err, recordstore.ErrBookNotFound), errors.Is(err, recordstore.ErrBorrowRecordNotFound):
		return statusNotFound
	case errors.Is(err, recordstore.ErrDuplicateISBN),
		errors.Is(err, recordstore.ErrOutstandingRecordExists),
		errors.Is(err, recordstore.ErrAvailabilityNotAdjusted):
		return statusRejected
	default:
		return statusError
	}
}

func errorTypeOf(err error) string {
	switch {
	case errors.Is(err, recordstore.ErrBuildingQueryFailed):
		return "build_query"
	case errors.Is(err, recordstore.ErrScanningDBRowFailed):
		return "scan_row"
	case errors.Is(err, recordstore.ErrWritingRecordsFailed):
		return "write"
	case errors.Is(err, recordstore.ErrTransactionFailed):
		return "transaction"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "context"
	default:
		return "query"
	}
}

func (rs *RecordStore) recordOperationMetrics(ctx context.Context, operation, status string, duration time.Duration) {
	if rs.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"status":          status,
	}

	if contextualCollector, ok := rs.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
		contextualCollector.IncrementCounterContext(ctx, metricOperations, labels)

		return
	}

	rs.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
	rs.metricsCollector.IncrementCounter(metricOperations, labels)
}

func (rs *RecordStore) recordErrorMetrics(ctx context.Context, operation, errorType string) {
	if rs.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"status":          statusError,
		spanAttrErrorType: errorType,
	}

	if contextualCollector, ok := rs.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
		return
	}

	rs.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
}

func (rs *RecordStore) startTraceSpan(ctx context.Context, operation string) (context.Context, recordstore.SpanContext) {
	if rs.tracingCollector == nil {
		return ctx, nil
	}

	return rs.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, map[string]string{spanAttrOperation: operation})
}

func (rs *RecordStore) finishTraceSpan(span recordstore.SpanContext, status string, err error, duration time.Duration) {
	if rs.tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		spanAttrDurationMS: fmt.Sprintf("%.2f", toMilliseconds(duration)),
	}

	if status == statusError {
		attrs[spanAttrErrorType] = errorTypeOf(err)
	}

	rs.tracingCollector.FinishSpan(span, status, attrs)
}

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (rs *RecordStore) logQueryWithDuration(ctx context.Context, sqlQuery string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if rs.logger != nil {
		rs.logger.Debug(logMsgSQLExecuted, args...)
	}

	if rs.contextualLogger != nil {
		rs.contextualLogger.DebugContext(ctx, logMsgSQLExecuted, args...)
	}
}

// logOperation logs operational information at info level.
func (rs *RecordStore) logOperation(ctx context.Context, operation string, args ...any) {
	if rs.logger != nil {
		rs.logger.Info(logMsgOperation+operation, args...)
	}

	if rs.contextualLogger != nil {
		rs.contextualLogger.InfoContext(ctx, logMsgOperation+operation, args...)
	}
}

func (rs *RecordStore) logWarn(ctx context.Context, msg string, args ...any) {
	if rs.logger != nil {
		rs.logger.Warn(msg, args...)
	}

	if rs.contextualLogger != nil {
		rs.contextualLogger.WarnContext(ctx, msg, args...)
	}
}

func (rs *RecordStore) logError(ctx context.Context, msg string, args ...any) {
	if rs.logger != nil {
		rs.logger.Error(msg, args...)
	}

	if rs.contextualLogger != nil {
		rs.contextualLogger.ErrorContext(ctx, msg, args...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
