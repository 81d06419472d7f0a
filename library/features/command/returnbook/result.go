package returnbook

import (
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// Result is the outcome of returning a book, including the late fee owed for the loan.
type Result struct {
	shell.HandlerResult
	BookTitle   string
	FeeAmount   decimal.Decimal
	DaysOverdue int
}

func failed(err error) (Result, error) {
	return Result{HandlerResult: shell.NewErrorResult(err), FeeAmount: decimal.Zero}, err
}
