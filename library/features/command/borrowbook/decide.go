package borrowbook

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

// state is what the record store knows about the book and the patron.
type state struct {
	bookFound          bool
	book               recordstore.Book
	outstandingCount   int
	alreadyBorrowingIt bool
}

// Validate checks the command before any store access.
func Validate(command Command) error {
	return core.ValidatePatronID(command.PatronID)
}

// Decide determines whether the patron may borrow the book.
//
// Business Rules:
//
//	GIVEN: a book with BookID and a patron with PatronID
//	WHEN: BorrowBook command is received
//	THEN: a borrow record is created and the available copies drop by one
//	ERROR: "Book not found." if there is no such book
//	ERROR: "This book is currently not available." if no copy is available
//	ERROR: borrowing limit if the patron already has 5 outstanding loans
//	ERROR: "You have already borrowed this book." if the patron has an outstanding loan of it
func Decide(s state) error {
	if !s.bookFound {
		return core.ErrBookNotFound
	}

	if s.book.AvailableCopies <= 0 {
		return core.ErrNoAvailability
	}

	if s.outstandingCount >= core.MaxOutstandingLoans {
		return core.ErrBorrowLimitExceeded
	}

	if s.alreadyBorrowingIt {
		return core.ErrAlreadyBorrowed
	}

	return nil
}
