// Package returnbook implements the Return Book use case.
//
// Returning closes the patron's outstanding loan of the book and puts the copy back
// into circulation. The late fee is quoted exactly once, from the loan's due date and
// the instant the command occurred at, and reported in the result.
package returnbook
