package refundlatefee_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/library/features/command/refundlatefee"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

func Test_Validate(t *testing.T) {
	testCases := []struct {
		name          string
		transactionID string
		amount        string
		expectedErr   error
	}{
		{name: "valid", transactionID: "txn_123456_1700000000", amount: "6.50"},
		{name: "exactly the maximum late fee", transactionID: "txn_1", amount: "15.00"},
		{name: "missing prefix", transactionID: "123456_1700000000", amount: "6.50", expectedErr: core.ErrInvalidTransactionID},
		{name: "prefix only", transactionID: "txn_", amount: "6.50", expectedErr: core.ErrInvalidTransactionID},
		{name: "empty", transactionID: "", amount: "6.50", expectedErr: core.ErrInvalidTransactionID},
		{name: "zero amount", transactionID: "txn_1", amount: "0", expectedErr: core.ErrRefundAmountNotPositive},
		{name: "negative amount", transactionID: "txn_1", amount: "-1.00", expectedErr: core.ErrRefundAmountNotPositive},
		{name: "above the maximum late fee", transactionID: "txn_1", amount: "15.01", expectedErr: core.ErrRefundAmountExceedsMaximum},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			command := refundlatefee.BuildCommand(tc.transactionID, decimal.RequireFromString(tc.amount), time.Now())

			err := refundlatefee.Validate(command)

			if tc.expectedErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func Test_Validate_AmountErrorsAreInvalidAmounts(t *testing.T) {
	err := refundlatefee.Validate(refundlatefee.BuildCommand("txn_1", decimal.RequireFromString("20"), time.Now()))

	assert.ErrorIs(t, err, core.ErrInvalidAmount)
	assert.ErrorIs(t, err, core.ErrPolicyViolation)
}
