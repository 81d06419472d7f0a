package refundlatefee

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/paymentgateway"
)

// Validate checks a refund request before anything is sent to the gateway.
//
// Business Rules:
//
//	The transaction id must be one the gateway issued (prefix "txn_").
//	The amount must be greater than zero and at most the maximum late fee.
func Validate(command Command) error {
	if !paymentgateway.IsTransactionID(command.TransactionID) {
		return core.ErrInvalidTransactionID
	}

	if !command.Amount.IsPositive() {
		return core.ErrRefundAmountNotPositive
	}

	if command.Amount.GreaterThan(core.MaxLateFee) {
		return core.ErrRefundAmountExceedsMaximum
	}

	return nil
}
