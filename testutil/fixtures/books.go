package fixtures

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

const (
	// PatronID is a well-formed patron id without any borrow records.
	PatronID = "123456"

	// OtherPatronID is a second well-formed patron id.
	OtherPatronID = "654321"
)

// Catalog returns five books with ids 1 to 5 once inserted into an empty store.
func Catalog() []recordstore.NewBook {
	return []recordstore.NewBook{
		{Title: "Learning Domain-Driven Design", Author: "Vlad Khononov", ISBN: "9781098100131", TotalCopies: 2},
		{Title: "The Go Programming Language", Author: "Alan Donovan", ISBN: "9780134190440", TotalCopies: 3},
		{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441172719", TotalCopies: 1},
		{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", ISBN: "9781449373320", TotalCopies: 4},
		{Title: "Test Book", Author: "Test Author", ISBN: "1234567890123", TotalCopies: 5},
	}
}

// BorrowedAt is the instant the feature tests borrow books at.
func BorrowedAt() time.Time {
	return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
}

// DaysAfterBorrowing returns the instant n days after BorrowedAt.
func DaysAfterBorrowing(n int) time.Time {
	return BorrowedAt().AddDate(0, 0, n)
}
