package core

import (
	"errors"
	"fmt"
)

// Error categories. Every specific error below wraps exactly one of them,
// so callers classify with errors.Is(err, core.ErrValidation) and friends.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrPolicyViolation = errors.New("policy violation")
	ErrGatewayDeclined = errors.New("gateway declined")
	ErrGatewayFault    = errors.New("gateway fault")
	ErrPersistence     = errors.New("persistence failure")
)

var (
	ErrInvalidPatron      = categorized(ErrValidation, "Invalid patron ID. Must be exactly 6 digits.")
	ErrTitleRequired      = categorized(ErrValidation, "Title is required.")
	ErrTitleTooLong       = categorized(ErrValidation, "Title must be less than 200 characters.")
	ErrAuthorRequired     = categorized(ErrValidation, "Author is required.")
	ErrAuthorTooLong      = categorized(ErrValidation, "Author must be less than 100 characters.")
	ErrInvalidISBN        = categorized(ErrValidation, "ISBN must be exactly 13 digits.")
	ErrInvalidTotalCopies = categorized(ErrValidation, "Total copies must be a positive integer.")

	ErrBookNotFound = categorized(ErrNotFound, "Book not found.")
	ErrNotBorrowed  = categorized(ErrNotFound, "Patron has not borrowed this book or it has already been returned.")

	ErrDuplicateISBN       = categorized(ErrPolicyViolation, "A book with this ISBN already exists.")
	ErrNoAvailability      = categorized(ErrPolicyViolation, "This book is currently not available.")
	ErrAlreadyBorrowed     = categorized(ErrPolicyViolation, "You have already borrowed this book.")
	ErrBorrowLimitExceeded = categorized(ErrPolicyViolation, fmt.Sprintf("You have reached the maximum borrowing limit of %d books.", MaxOutstandingLoans))
	ErrNoFeeOwed           = categorized(ErrPolicyViolation, "No late fees to pay for this book.")

	ErrInvalidTransactionID       = categorized(ErrValidation, "Invalid transaction ID.")
	ErrInvalidAmount              = categorized(ErrPolicyViolation, "Invalid amount.")
	ErrRefundAmountNotPositive    = categorized(ErrInvalidAmount, "Refund amount must be greater than 0.")
	ErrRefundAmountExceedsMaximum = categorized(ErrInvalidAmount, "Refund amount exceeds maximum late fee.")

	ErrPaymentDeclined   = categorized(ErrGatewayDeclined, "Payment failed")
	ErrRefundFailed      = categorized(ErrGatewayDeclined, "Refund failed")
	ErrPaymentProcessing = categorized(ErrGatewayFault, "Payment processing error")
	ErrRefundProcessing  = categorized(ErrGatewayFault, "Refund processing error")
)

// categorizedError carries a caller-facing message and unwraps to its category.
type categorizedError struct {
	category error
	message  string
}

func categorized(category error, message string) error {
	return &categorizedError{category: category, message: message}
}

func (e *categorizedError) Error() string {
	return e.message
}

func (e *categorizedError) Unwrap() error {
	return e.category
}

// PersistenceError marks a store failure so it classifies as ErrPersistence while keeping the cause.
func PersistenceError(cause error) error {
	return fmt.Errorf("%w: %w", ErrPersistence, cause)
}

// WithDetail appends a detail, for example a gateway message, to a specific error.
func WithDetail(err error, detail string) error {
	return fmt.Errorf("%w: %s", err, detail)
}
