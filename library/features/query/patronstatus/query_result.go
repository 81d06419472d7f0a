package patronstatus

import (
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

// Report is the status of one patron at a given instant.
type Report struct {
	PatronID           core.PatronIDString
	CurrentlyBorrowed  []core.Loan
	TotalLateFees      decimal.Decimal
	CurrentBorrowCount int
	TotalBorrowCount   int
	BorrowHistory      recordstore.BorrowRecords
}
