package latefee_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/features/query/latefee"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
	"github.com/AntonStoeckl/library-circulation-go/recordstore/memoryengine"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

func setup(t *testing.T) latefee.QueryHandler {
	t.Helper()

	store := memoryengine.NewRecordStore(memoryengine.WithBooks(fixtures.Catalog()...))
	fixtures.Lend(t, store, fixtures.PatronID, 3, fixtures.BorrowedAt())

	return latefee.NewQueryHandler(store)
}

func Test_QueryHandler_Handle(t *testing.T) {
	testCases := []struct {
		name           string
		bookID         int64
		daysAfter      int
		expectedFee    string
		expectedDays   int
		expectedStatus string
	}{
		{name: "on the due date", bookID: 3, daysAfter: 14, expectedFee: "0.00", expectedStatus: "No late fee"},
		{name: "one day late", bookID: 3, daysAfter: 15, expectedFee: "0.50", expectedDays: 1, expectedStatus: "Late fee calculated: $0.50 for 1 days overdue"},
		{name: "ten days late", bookID: 3, daysAfter: 24, expectedFee: "6.50", expectedDays: 10, expectedStatus: "Late fee calculated: $6.50 for 10 days overdue"},
		{name: "capped", bookID: 3, daysAfter: 100, expectedFee: "15.00", expectedDays: 86, expectedStatus: "Late fee calculated: $15.00 for 86 days overdue"},
		{name: "not borrowed", bookID: 4, daysAfter: 100, expectedFee: "0.00", expectedStatus: "Book not found in patron's borrowed books"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			handler := setup(t)

			// act
			quote, err := handler.Handle(
				context.Background(),
				latefee.BuildQuery(fixtures.PatronID, tc.bookID, fixtures.DaysAfterBorrowing(tc.daysAfter)),
			)

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.expectedFee, quote.FeeAmount.StringFixed(2))
			assert.Equal(t, tc.expectedDays, quote.DaysOverdue)
			assert.Equal(t, tc.expectedStatus, quote.Status)
		})
	}
}

func Test_QueryHandler_Handle_Error_InvalidPatron(t *testing.T) {
	handler := setup(t)

	_, err := handler.Handle(context.Background(), latefee.BuildQuery("12345", 3, fixtures.DaysAfterBorrowing(20)))

	assert.ErrorIs(t, err, core.ErrInvalidPatron)
}

type failingStore struct{}

func (failingStore) FindOutstandingRecord(context.Context, string, int64) (recordstore.BorrowRecord, error) {
	return recordstore.BorrowRecord{}, errors.New("connection refused")
}

func Test_QueryHandler_Handle_Error_StoreFailure(t *testing.T) {
	handler := latefee.NewQueryHandler(failingStore{})

	_, err := handler.Handle(context.Background(), latefee.BuildQuery(fixtures.PatronID, 3, fixtures.DaysAfterBorrowing(20)))

	assert.ErrorIs(t, err, core.ErrPersistence)
	assert.NotErrorIs(t, err, recordstore.ErrBorrowRecordNotFound)
}
