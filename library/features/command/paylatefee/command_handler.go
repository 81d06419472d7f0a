package paylatefee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/paymentgateway"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

// DefaultGatewayTimeout bounds a single gateway call unless WithGatewayTimeout says otherwise.
const DefaultGatewayTimeout = 10 * time.Second

// Result is the outcome of a payment. TransactionID is only set when the gateway approved it.
type Result struct {
	shell.HandlerResult
	TransactionID string
	Amount        decimal.Decimal
}

// RecordStore defines the record store operations needed by the CommandHandler.
type RecordStore interface {
	FindBookByID(ctx context.Context, bookID int64) (recordstore.Book, error)
	FindOutstandingRecord(ctx context.Context, patronID string, bookID int64) (recordstore.BorrowRecord, error)
}

// PaymentProcessor is the payment gateway capability needed by the CommandHandler.
type PaymentProcessor interface {
	ProcessPayment(
		ctx context.Context,
		patronID string,
		amount decimal.Decimal,
		description string,
	) (paymentgateway.PaymentOutcome, error)
}

// CommandHandler quotes the late fee of a loan and charges it through the gateway.
type CommandHandler struct {
	store          RecordStore
	gateway        PaymentProcessor
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

// NewCommandHandler creates a new CommandHandler. The gateway is mandatory.
func NewCommandHandler(store RecordStore, gateway PaymentProcessor, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:          store,
		gateway:        gateway,
		gatewayTimeout: DefaultGatewayTimeout,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the payment workflow: Validate -> Quote -> Describe -> Charge.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	if err := core.ValidatePatronID(command.PatronID); err != nil {
		return failed(err)
	}

	ctx = recordstore.WithStrongConsistency(ctx)

	quote, err := h.quote(ctx, command)
	if err != nil {
		return failed(core.PersistenceError(err))
	}

	if !quote.HasFee() {
		return failed(core.ErrNoFeeOwed)
	}

	book, err := h.store.FindBookByID(ctx, command.BookID)
	switch {
	case errors.Is(err, recordstore.ErrBookNotFound):
		return failed(core.ErrBookNotFound)
	case err != nil:
		return failed(core.PersistenceError(err))
	}

	description := fmt.Sprintf("Late fees for '%s'", book.Title)

	outcome, err := paymentgateway.Call(ctx, h.gatewayTimeout, func(ctx context.Context) (paymentgateway.PaymentOutcome, error) {
		return h.gateway.ProcessPayment(ctx, command.PatronID, quote.FeeAmount, description)
	})
	if err != nil {
		return failed(fmt.Errorf("%w: %w", core.ErrPaymentProcessing, err))
	}

	if !outcome.Approved {
		return failed(core.WithDetail(core.ErrPaymentDeclined, outcome.Message))
	}

	return Result{
		HandlerResult: shell.NewSuccessResult("Payment successful! " + outcome.Message),
		TransactionID: outcome.TransactionID,
		Amount:        quote.FeeAmount,
	}, nil
}

// quote returns the fee owed for the patron's outstanding loan of the book.
// A loan that can't be found owes nothing.
func (h CommandHandler) quote(ctx context.Context, command Command) (core.FeeQuote, error) {
	record, err := h.store.FindOutstandingRecord(ctx, command.PatronID, command.BookID)
	if errors.Is(err, recordstore.ErrBorrowRecordNotFound) {
		return core.NotFoundFeeQuote(), nil
	}

	if err != nil {
		return core.FeeQuote{}, err
	}

	return core.QuoteFee(record.DueDate, command.OccurredAt), nil
}

func failed(err error) (Result, error) {
	return Result{HandlerResult: shell.NewErrorResult(err), Amount: decimal.Zero}, err
}
