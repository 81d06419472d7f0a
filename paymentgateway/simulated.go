package paymentgateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidRequest is returned by Simulated for requests a real provider would reject at the API level.
var ErrInvalidRequest = errors.New("invalid payment request")

var simulatedPaymentLimit = decimal.NewFromInt(1000)

// Simulated approves payments of up to 1000.00, declines larger ones and approves every
// refund of a positive amount for a well-formed transaction id.
type Simulated struct {
	latency time.Duration
	now     func() time.Time
}

// SimulatedOption configures a Simulated gateway.
type SimulatedOption func(*Simulated)

// WithLatency makes every call wait for d or until the context is done.
func WithLatency(d time.Duration) SimulatedOption {
	return func(s *Simulated) {
		s.latency = d
	}
}

// WithClock sets the clock used for transaction and refund ids.
func WithClock(now func() time.Time) SimulatedOption {
	return func(s *Simulated) {
		s.now = now
	}
}

// NewSimulated creates a simulated gateway.
func NewSimulated(options ...SimulatedOption) *Simulated {
	s := &Simulated{now: time.Now}

	for _, option := range options {
		option(s)
	}

	return s
}

// ProcessPayment approves amounts in (0, 1000] and issues txn_<patron>_<unix seconds>.
func (s *Simulated) ProcessPayment(ctx context.Context, patronID string, amount decimal.Decimal, description string) (PaymentOutcome, error) {
	if err := s.wait(ctx); err != nil {
		return PaymentOutcome{}, err
	}

	if !isPatronID(patronID) {
		return PaymentOutcome{}, fmt.Errorf("%w: malformed patron id %q", ErrInvalidRequest, patronID)
	}

	if description == "" {
		return PaymentOutcome{}, fmt.Errorf("%w: description is required", ErrInvalidRequest)
	}

	if !amount.IsPositive() {
		return PaymentOutcome{Approved: false, Message: "Invalid amount"}, nil
	}

	if amount.GreaterThan(simulatedPaymentLimit) {
		return PaymentOutcome{Approved: false, Message: "Payment declined: amount exceeds limit"}, nil
	}

	return PaymentOutcome{
		Approved:      true,
		TransactionID: fmt.Sprintf("%s%s_%d", TransactionIDPrefix, patronID, s.now().Unix()),
		Message:       fmt.Sprintf("Payment of $%s processed successfully", amount.StringFixed(2)),
	}, nil
}

// RefundPayment approves refunds of positive amounts for ids carrying TransactionIDPrefix.
func (s *Simulated) RefundPayment(ctx context.Context, transactionID string, amount decimal.Decimal) (RefundOutcome, error) {
	if err := s.wait(ctx); err != nil {
		return RefundOutcome{}, err
	}

	if !IsTransactionID(transactionID) {
		return RefundOutcome{Approved: false, Message: "Invalid transaction ID"}, nil
	}

	if !amount.IsPositive() {
		return RefundOutcome{Approved: false, Message: "Invalid refund amount"}, nil
	}

	return RefundOutcome{
		Approved: true,
		Message: fmt.Sprintf(
			"Refund of $%s processed successfully. Refund ID: refund_%s_%d",
			amount.StringFixed(2),
			transactionID,
			s.now().Unix(),
		),
	}, nil
}

// isPatronID is the gateway's own request check. It stands in for a remote service and
// does not depend on the library's validation rules, which callers apply before any call.
func isPatronID(id string) bool {
	if len(id) != 6 {
		return false
	}

	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}

	return true
}

func (s *Simulated) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
