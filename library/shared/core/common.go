package core

import (
	"time"
)

// PatronIDString represents a patron identifier: exactly six ASCII digits.
// There is no patron registry, a patron exists by having borrow records.
type PatronIDString = string

// BookID represents a store-assigned book identifier.
type BookID = int64

// ISBNString represents a 13-digit ISBN.
type ISBNString = string

// OccurredAt represents the instant a command happened or a query is evaluated at.
type OccurredAt = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}

// DueDateFor returns the due date of a loan that starts at borrowDate.
func DueDateFor(borrowDate time.Time) time.Time {
	return borrowDate.Add(LoanPeriod)
}
