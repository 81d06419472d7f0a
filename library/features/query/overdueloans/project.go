package overdueloans

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

// Project keeps the overdue loans among the outstanding records.
//
// Query Logic:
//
//	INCLUDES: outstanding records whose due date lies before query.AsOf
//	ORDER:    by due date, then by record id
func Project(outstanding recordstore.BorrowRecords, query Query) OverdueLoans {
	loans := make([]core.Loan, 0)
	total := decimal.Zero

	for _, record := range outstanding {
		if !record.IsOutstanding() {
			continue
		}

		loan := core.LoanAt(record, query.AsOf)
		if !loan.Overdue {
			continue
		}

		total = total.Add(loan.Fee.FeeAmount)
		loans = append(loans, loan)
	}

	slices.SortStableFunc(loans, func(a, b core.Loan) int {
		if c := a.Record.DueDate.Compare(b.Record.DueDate); c != 0 {
			return c
		}

		return cmp.Compare(a.Record.ID, b.Record.ID)
	})

	return OverdueLoans{Loans: loans, Count: len(loans), TotalLateFees: total}
}
