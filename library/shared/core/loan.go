package core

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

// Loan is an outstanding borrow record together with its fee quote at a given instant.
type Loan struct {
	Record  recordstore.BorrowRecord
	Fee     FeeQuote
	Overdue bool
}

// LoanAt quotes the record's fee at asOf. A loan is overdue as soon as its due date has passed,
// even before the first full day (and therefore the first fee) has accrued.
func LoanAt(record recordstore.BorrowRecord, asOf time.Time) Loan {
	return Loan{
		Record:  record,
		Fee:     QuoteFee(record.DueDate, asOf),
		Overdue: asOf.After(record.DueDate),
	}
}
