package patronstatus

import (
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

// Project builds the Report from the patron's outstanding records and full history.
//
// Query Logic:
//
//	CurrentlyBorrowed: every outstanding record with a fee quoted at query.AsOf
//	TotalLateFees:     the sum of those quotes
//	TotalBorrowCount:  every record, returned or not
func Project(outstanding recordstore.BorrowRecords, history recordstore.BorrowRecords, query Query) Report {
	loans := make([]core.Loan, 0, len(outstanding))
	total := decimal.Zero

	for _, record := range outstanding {
		loan := core.LoanAt(record, query.AsOf)
		total = total.Add(loan.Fee.FeeAmount)
		loans = append(loans, loan)
	}

	if history == nil {
		history = make(recordstore.BorrowRecords, 0)
	}

	return Report{
		PatronID:           query.PatronID,
		CurrentlyBorrowed:  loans,
		TotalLateFees:      total,
		CurrentBorrowCount: len(loans),
		TotalBorrowCount:   len(history),
		BorrowHistory:      history,
	}
}
