package returnbook

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

type state struct {
	bookFound   bool
	book        recordstore.Book
	loanFound   bool
	outstanding recordstore.BorrowRecord
}

// Validate checks the command before any store access.
func Validate(command Command) error {
	return core.ValidatePatronID(command.PatronID)
}

// Decide determines whether the patron can return the book.
//
// Business Rules:
//
//	GIVEN: a book with BookID and a patron with PatronID
//	WHEN: ReturnBook command is received
//	THEN: the outstanding loan gets its return date and the available copies grow by one
//	ERROR: "Book not found." if there is no such book
//	ERROR: not borrowed if the patron has no outstanding loan of the book
func Decide(s state) error {
	if !s.bookFound {
		return core.ErrBookNotFound
	}

	if !s.loanFound {
		return core.ErrNotBorrowed
	}

	return nil
}

// successMessage states the returned title and, if one is owed, the late fee.
func successMessage(title string, quote core.FeeQuote) string {
	if !quote.HasFee() {
		return fmt.Sprintf(`Successfully returned "%s". No late fees.`, title)
	}

	return fmt.Sprintf(
		`Successfully returned "%s". Late fee: %s for %d days overdue.`,
		title,
		core.FormatMoney(quote.FeeAmount),
		quote.DaysOverdue,
	)
}
