package recordstore

import (
	"time"
)

// Books is an alias type for a slice of Book.
type Books = []Book

// BorrowRecords is an alias type for a slice of BorrowRecord.
type BorrowRecords = []BorrowRecord

// Book is a catalog entry.
//
// AvailableCopies is only ever changed by borrowing (-1) and returning (+1) a copy
// and always stays within [0, TotalCopies].
type Book struct {
	ID              int64
	Title           string
	Author          string
	ISBN            string
	TotalCopies     int
	AvailableCopies int
}

// NewBook holds the values needed to insert a Book; the ID is assigned by the store.
type NewBook struct {
	Title       string
	Author      string
	ISBN        string
	TotalCopies int
}

// BorrowRecord is one loan of a Book to a patron.
//
// ReturnDate is nil while the loan is outstanding.
// BookTitle and BookAuthor are filled by the list operations for display purposes.
type BorrowRecord struct {
	ID         int64
	PatronID   string
	BookID     int64
	BookTitle  string
	BookAuthor string
	BorrowDate time.Time
	DueDate    time.Time
	ReturnDate *time.Time
}

// IsOutstanding reports whether the loan has not been returned yet.
func (r BorrowRecord) IsOutstanding() bool {
	return r.ReturnDate == nil
}
