package gatewaymock

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/AntonStoeckl/library-circulation-go/paymentgateway"
)

// Gateway is a testify mock implementing ProcessPayment and RefundPayment.
type Gateway struct {
	mock.Mock
}

// New creates a Gateway mock whose expectations are asserted when the test finishes.
func New(t mock.TestingT) *Gateway {
	g := &Gateway{}
	g.Test(t)

	if cleanup, ok := t.(interface{ Cleanup(func()) }); ok {
		cleanup.Cleanup(func() { g.AssertExpectations(t) })
	}

	return g
}

// ProcessPayment records the call and returns the configured outcome.
func (g *Gateway) ProcessPayment(
	ctx context.Context,
	patronID string,
	amount decimal.Decimal,
	description string,
) (paymentgateway.PaymentOutcome, error) {
	args := g.Called(ctx, patronID, amount, description)

	return args.Get(0).(paymentgateway.PaymentOutcome), args.Error(1)
}

// RefundPayment records the call and returns the configured outcome.
func (g *Gateway) RefundPayment(ctx context.Context, transactionID string, amount decimal.Decimal) (paymentgateway.RefundOutcome, error) {
	args := g.Called(ctx, transactionID, amount)

	return args.Get(0).(paymentgateway.RefundOutcome), args.Error(1)
}
