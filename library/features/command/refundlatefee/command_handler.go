package refundlatefee

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/paymentgateway"
)

// DefaultGatewayTimeout bounds a single gateway call unless WithGatewayTimeout says otherwise.
const DefaultGatewayTimeout = 10 * time.Second

// Result is the outcome of a refund.
type Result struct {
	shell.HandlerResult
	TransactionID string
	Amount        decimal.Decimal
}

// RefundProcessor is the payment gateway capability needed by the CommandHandler.
type RefundProcessor interface {
	RefundPayment(ctx context.Context, transactionID string, amount decimal.Decimal) (paymentgateway.RefundOutcome, error)
}

// CommandHandler validates refund requests and forwards them to the gateway.
type CommandHandler struct {
	gateway        RefundProcessor
	gatewayTimeout time.Duration
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithGatewayTimeout sets the upper bound for the gateway call.
func WithGatewayTimeout(timeout time.Duration) Option {
	return func(h *CommandHandler) {
		if timeout > 0 {
			h.gatewayTimeout = timeout
		}
	}
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(gateway RefundProcessor, opts ...Option) CommandHandler {
	handler := CommandHandler{
		gateway:        gateway,
		gatewayTimeout: DefaultGatewayTimeout,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the refund workflow: Validate -> Refund.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	if err := Validate(command); err != nil {
		return failed(command, err)
	}

	outcome, err := paymentgateway.Call(ctx, h.gatewayTimeout, func(ctx context.Context) (paymentgateway.RefundOutcome, error) {
		return h.gateway.RefundPayment(ctx, command.TransactionID, command.Amount)
	})
	if err != nil {
		return failed(command, fmt.Errorf("%w: %w", core.ErrRefundProcessing, err))
	}

	if !outcome.Approved {
		return failed(command, core.WithDetail(core.ErrRefundFailed, outcome.Message))
	}

	return Result{
		HandlerResult: shell.NewSuccessResult(outcome.Message),
		TransactionID: command.TransactionID,
		Amount:        command.Amount,
	}, nil
}

func failed(command Command, err error) (Result, error) {
	return Result{
		HandlerResult: shell.NewErrorResult(err),
		TransactionID: command.TransactionID,
		Amount:        command.Amount,
	}, err
}
