package core_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

func Test_IsValidPatronID(t *testing.T) {
	assert.True(t, core.IsValidPatronID("123456"))
	assert.True(t, core.IsValidPatronID("000000"))

	for _, invalid := range []string{"", "12345", "1234567", "12345a", " 23456", " 123456", "123456\n", "123456 ", "\t123456", "１２３４５６"} {
		assert.False(t, core.IsValidPatronID(invalid), invalid)
	}
}

func Test_ValidatePatronID_ShouldReturnValidationError(t *testing.T) {
	for _, id := range []string{"abc", " 123456", "123456\n"} {
		// act
		err := core.ValidatePatronID(id)

		// assert
		assert.ErrorIs(t, err, core.ErrInvalidPatron, id)
		assert.ErrorIs(t, err, core.ErrValidation, id)
		assert.Equal(t, "Invalid patron ID. Must be exactly 6 digits.", err.Error())
	}
}

func Test_ValidateNewBook(t *testing.T) {
	testCases := []struct {
		name        string
		title       string
		author      string
		isbn        string
		totalCopies int
		expectedErr error
	}{
		{name: "valid", title: "Test Book", author: "Test Author", isbn: "1234567890123", totalCopies: 5},
		{name: "title at limit", title: strings.Repeat("t", 200), author: "A", isbn: "1234567890123", totalCopies: 1},
		{name: "missing title", title: "", author: "A", isbn: "1234567890123", totalCopies: 1, expectedErr: core.ErrTitleRequired},
		{name: "title too long", title: strings.Repeat("t", 201), author: "A", isbn: "1234567890123", totalCopies: 1, expectedErr: core.ErrTitleTooLong},
		{name: "missing author", title: "T", author: "", isbn: "1234567890123", totalCopies: 1, expectedErr: core.ErrAuthorRequired},
		{name: "author too long", title: "T", author: strings.Repeat("a", 101), isbn: "1234567890123", totalCopies: 1, expectedErr: core.ErrAuthorTooLong},
		{name: "short isbn", title: "T", author: "A", isbn: "123456789012", totalCopies: 1, expectedErr: core.ErrInvalidISBN},
		{name: "isbn with letters", title: "T", author: "A", isbn: "123456789012X", totalCopies: 1, expectedErr: core.ErrInvalidISBN},
		{name: "zero copies", title: "T", author: "A", isbn: "1234567890123", totalCopies: 0, expectedErr: core.ErrInvalidTotalCopies},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			err := core.ValidateNewBook(tc.title, tc.author, tc.isbn, tc.totalCopies)

			// assert
			if tc.expectedErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tc.expectedErr)
			assert.ErrorIs(t, err, core.ErrValidation)
		})
	}
}

func Test_Errors_ShouldWrapTheirCategory(t *testing.T) {
	testCases := []struct {
		err      error
		category error
	}{
		{err: core.ErrBookNotFound, category: core.ErrNotFound},
		{err: core.ErrNotBorrowed, category: core.ErrNotFound},
		{err: core.ErrNoAvailability, category: core.ErrPolicyViolation},
		{err: core.ErrBorrowLimitExceeded, category: core.ErrPolicyViolation},
		{err: core.ErrRefundAmountExceedsMaximum, category: core.ErrInvalidAmount},
		{err: core.ErrRefundAmountNotPositive, category: core.ErrPolicyViolation},
		{err: core.ErrPaymentDeclined, category: core.ErrGatewayDeclined},
		{err: core.ErrRefundProcessing, category: core.ErrGatewayFault},
		{err: core.PersistenceError(errors.New("disk full")), category: core.ErrPersistence},
	}

	for _, tc := range testCases {
		assert.ErrorIs(t, tc.err, tc.category, tc.err.Error())
	}
}

func Test_WithDetail_ShouldKeepTheSpecificError(t *testing.T) {
	// act
	err := core.WithDetail(core.ErrPaymentDeclined, "Amount exceeds limit")

	// assert
	assert.ErrorIs(t, err, core.ErrPaymentDeclined)
	assert.ErrorIs(t, err, core.ErrGatewayDeclined)
	assert.Equal(t, "Payment failed: Amount exceeds limit", err.Error())
	assert.Equal(t, "You have reached the maximum borrowing limit of 5 books.", core.ErrBorrowLimitExceeded.Error())
}
