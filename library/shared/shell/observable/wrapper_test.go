package observable_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/observable"
	"github.com/AntonStoeckl/library-circulation-go/testutil/observability/testdoubles"
)

type testCommand struct {
	Value string
}

func (testCommand) CommandType() string { return "TestCommand" }

type testQuery struct{}

func (testQuery) QueryType() string { return "TestQuery" }

type testResult struct {
	shell.HandlerResult
}

type handlerStub[T any] struct {
	result   testResult
	err      error
	calls    []T
	contexts []context.Context
}

func (h *handlerStub[T]) Handle(ctx context.Context, input T) (testResult, error) {
	h.calls = append(h.calls, input)
	h.contexts = append(h.contexts, ctx)

	return h.result, h.err
}

func Test_CommandWrapper_Handle_Success(t *testing.T) {
	// arrange
	expected := testResult{HandlerResult: shell.NewSuccessResult("done")}
	handler := &handlerStub[testCommand]{result: expected}
	metricsCollector := testdoubles.NewMetricsCollectorSpy()
	tracingCollector := testdoubles.NewTracingCollectorSpy()
	contextualLogger := testdoubles.NewContextualLoggerSpy()

	wrapper, err := observable.NewCommandWrapper[testCommand, testResult](
		handler,
		observable.WithCommandMetrics[testCommand, testResult](metricsCollector),
		observable.WithCommandTracing[testCommand, testResult](tracingCollector),
		observable.WithCommandContextualLogging[testCommand, testResult](contextualLogger),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), testCommand{Value: "x"})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	assert.Equal(t, []testCommand{{Value: "x"}}, handler.calls)

	assert.True(t, metricsCollector.HasDurationRecord(shell.CommandHandlerDurationMetric))
	assert.True(t, metricsCollector.HasCounterRecordWithLabel(shell.CommandHandlerCallsMetric, shell.LogAttrStatus, shell.StatusSuccess))
	assert.True(t, metricsCollector.HasCounterRecordWithLabel(shell.CommandHandlerCallsMetric, shell.LogAttrCommandType, "TestCommand"))

	span, found := tracingCollector.FindSpan(shell.SpanNameCommandHandle)
	require.True(t, found)
	assert.True(t, span.Finished)
	assert.Equal(t, shell.StatusSuccess, span.Status)
	assert.Equal(t, "TestCommand", span.StartAttributes[shell.LogAttrCommandType])
	assert.NotEmpty(t, span.StartAttributes[shell.LogAttrCorrelationID])

	assert.True(t, contextualLogger.HasLog("info", shell.LogMsgCommandStarted))
	assert.True(t, contextualLogger.HasLog("info", shell.LogMsgCommandCompleted))
}

func Test_CommandWrapper_Handle_ShouldPassTheCorrelationIDToTheHandler(t *testing.T) {
	// arrange
	handler := &handlerStub[testCommand]{}
	wrapper, err := observable.NewCommandWrapper[testCommand, testResult](handler)
	require.NoError(t, err)

	correlationID := uuid.New()
	ctx := shell.WithCorrelationID(context.Background(), correlationID)

	// act
	_, err = wrapper.Handle(ctx, testCommand{})

	// assert
	require.NoError(t, err)
	require.Len(t, handler.contexts, 1)
	passed, ok := shell.CorrelationIDFrom(handler.contexts[0])
	assert.True(t, ok)
	assert.Equal(t, correlationID, passed)
}

func Test_CommandWrapper_Handle_BusinessRejection(t *testing.T) {
	// arrange
	handler := &handlerStub[testCommand]{
		result: testResult{HandlerResult: shell.NewErrorResult(core.ErrNoAvailability)},
		err:    core.ErrNoAvailability,
	}
	metricsCollector := testdoubles.NewMetricsCollectorSpy()
	tracingCollector := testdoubles.NewTracingCollectorSpy()
	logHandler := testdoubles.NewLogHandlerSpy(false)

	wrapper, err := observable.NewCommandWrapper[testCommand, testResult](
		handler,
		observable.WithCommandMetrics[testCommand, testResult](metricsCollector),
		observable.WithCommandTracing[testCommand, testResult](tracingCollector),
		observable.WithCommandLogging[testCommand, testResult](slog.New(logHandler)),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), testCommand{})

	// assert
	assert.ErrorIs(t, err, core.ErrNoAvailability)
	assert.False(t, result.Success)
	assert.True(t, metricsCollector.HasCounterRecordWithLabel(shell.CommandHandlerRejectedMetric, shell.LogAttrStatus, shell.StatusPolicyViolation))

	span, found := tracingCollector.FindSpan(shell.SpanNameCommandHandle)
	require.True(t, found)
	assert.Equal(t, shell.StatusPolicyViolation, span.Status)
	assert.Equal(t, core.ErrNoAvailability.Error(), span.EndAttributes[shell.LogAttrError])

	assert.True(t, logHandler.HasLogWithMessage(slog.LevelWarn, shell.LogMsgCommandRejected).
		WithDurationMS().
		WithAttr(shell.LogAttrBusinessOutcome, shell.StatusPolicyViolation).
		Assert())
}

func Test_CommandWrapper_Handle_GatewayFault(t *testing.T) {
	// arrange
	handler := &handlerStub[testCommand]{err: core.ErrPaymentProcessing}
	metricsCollector := testdoubles.NewMetricsCollectorSpy()
	logHandler := testdoubles.NewLogHandlerSpy(false)

	wrapper, err := observable.NewCommandWrapper[testCommand, testResult](
		handler,
		observable.WithCommandMetrics[testCommand, testResult](metricsCollector),
		observable.WithCommandLogging[testCommand, testResult](slog.New(logHandler)),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), testCommand{})

	// assert
	assert.ErrorIs(t, err, core.ErrGatewayFault)
	assert.True(t, metricsCollector.HasCounterRecordWithLabel(shell.CommandHandlerGatewayFaultMetric, shell.LogAttrCommandType, "TestCommand"))
	assert.True(t, logHandler.HasLogWithMessage(slog.LevelError, shell.LogMsgCommandFailed).
		WithAttr(shell.LogAttrBusinessOutcome, shell.StatusGatewayFault).
		Assert())
}

func Test_CommandWrapper_Handle_Canceled(t *testing.T) {
	// arrange
	handler := &handlerStub[testCommand]{err: context.Canceled}
	metricsCollector := testdoubles.NewMetricsCollectorSpy()

	wrapper, err := observable.NewCommandWrapper[testCommand, testResult](
		handler,
		observable.WithCommandMetrics[testCommand, testResult](metricsCollector),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), testCommand{})

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, metricsCollector.HasCounterRecordWithLabel(shell.CommandHandlerCanceledMetric, shell.LogAttrStatus, shell.StatusCanceled))
}

func Test_NewCommandWrapper_ShouldFail_WhenAnOptionFails(t *testing.T) {
	// arrange
	optionErr := errors.New("broken option")
	failing := func(*observable.CommandWrapper[testCommand, testResult]) error { return optionErr }

	// act
	wrapper, err := observable.NewCommandWrapper[testCommand, testResult](&handlerStub[testCommand]{}, failing)

	// assert
	assert.ErrorIs(t, err, optionErr)
	assert.Nil(t, wrapper)
}

func Test_QueryWrapper_Handle_Success(t *testing.T) {
	// arrange
	handler := &handlerStub[testQuery]{}
	metricsCollector := testdoubles.NewMetricsCollectorSpy()
	tracingCollector := testdoubles.NewTracingCollectorSpy()
	logHandler := testdoubles.NewLogHandlerSpy(false)

	wrapper, err := observable.NewQueryWrapper[testQuery, testResult](
		handler,
		observable.WithQueryMetrics[testQuery, testResult](metricsCollector),
		observable.WithQueryTracing[testQuery, testResult](tracingCollector),
		observable.WithQueryLogging[testQuery, testResult](slog.New(logHandler)),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), testQuery{})

	// assert
	assert.NoError(t, err)
	assert.Len(t, handler.calls, 1)
	assert.True(t, metricsCollector.HasDurationRecord(shell.QueryHandlerDurationMetric))
	assert.True(t, metricsCollector.HasCounterRecordWithLabel(shell.QueryHandlerCallsMetric, shell.LogAttrQueryType, "TestQuery"))

	span, found := tracingCollector.FindSpan(shell.SpanNameQueryHandle)
	require.True(t, found)
	assert.Equal(t, shell.StatusSuccess, span.Status)

	assert.True(t, logHandler.HasLog(slog.LevelInfo, shell.LogMsgQueryStarted))
	assert.True(t, logHandler.HasLogWithMessage(slog.LevelInfo, shell.LogMsgQueryCompleted).WithDurationMS().Assert())
}

func Test_QueryWrapper_Handle_Timeout(t *testing.T) {
	// arrange
	handler := &handlerStub[testQuery]{err: context.DeadlineExceeded}
	metricsCollector := testdoubles.NewMetricsCollectorSpy()
	contextualLogger := testdoubles.NewContextualLoggerSpy()

	wrapper, err := observable.NewQueryWrapper[testQuery, testResult](
		handler,
		observable.WithQueryMetrics[testQuery, testResult](metricsCollector),
		observable.WithQueryContextualLogging[testQuery, testResult](contextualLogger),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), testQuery{})

	// assert
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, metricsCollector.HasCounterRecordWithLabel(shell.QueryHandlerTimeoutMetric, shell.LogAttrStatus, shell.StatusTimeout))
	assert.True(t, contextualLogger.HasLog("error", shell.LogMsgQueryFailed))
}
