package overdueloans

import (
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// OverdueLoans represents the query result, ordered by due date (longest overdue first).
type OverdueLoans struct {
	Loans         []core.Loan
	Count         int
	TotalLateFees decimal.Decimal
}
