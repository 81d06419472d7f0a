package returnbook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/recordstore/memoryengine"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

func setupWithLoan(t *testing.T, bookID int64) (*memoryengine.RecordStore, returnbook.CommandHandler) {
	t.Helper()

	store := memoryengine.NewRecordStore(memoryengine.WithBooks(fixtures.Catalog()...))

	_, err := borrowbook.NewCommandHandler(store).Handle(
		context.Background(),
		borrowbook.BuildCommand(fixtures.PatronID, bookID, fixtures.BorrowedAt()),
	)
	require.NoError(t, err)

	return store, returnbook.NewCommandHandler(store)
}

func Test_CommandHandler_Handle_Success_SameDay(t *testing.T) {
	// arrange
	ctx := context.Background()
	store, handler := setupWithLoan(t, 5)

	book, _ := store.FindBookByID(ctx, 5)
	require.Equal(t, 4, book.AvailableCopies)

	// act
	result, err := handler.Handle(ctx, returnbook.BuildCommand(fixtures.PatronID, 5, fixtures.BorrowedAt()))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, `Successfully returned "Test Book". No late fees.`, result.Message)
	assert.True(t, result.FeeAmount.IsZero())
	assert.Equal(t, 0, result.DaysOverdue)

	book, _ = store.FindBookByID(ctx, 5)
	assert.Equal(t, 5, book.AvailableCopies)

	history, _ := store.ListHistory(ctx, fixtures.PatronID)
	require.Len(t, history, 1)
	assert.False(t, history[0].IsOutstanding())
	assert.Equal(t, fixtures.BorrowedAt(), *history[0].ReturnDate)
}

func Test_CommandHandler_Handle_Success_Late(t *testing.T) {
	// arrange
	store, handler := setupWithLoan(t, 3)

	// act
	result, err := handler.Handle(context.Background(), returnbook.BuildCommand(fixtures.PatronID, 3, fixtures.DaysAfterBorrowing(24)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "6.50", result.FeeAmount.StringFixed(2))
	assert.Equal(t, 10, result.DaysOverdue)
	assert.Equal(t, `Successfully returned "Dune". Late fee: $6.50 for 10 days overdue.`, result.Message)

	count, _ := store.CountOutstanding(context.Background(), fixtures.PatronID)
	assert.Equal(t, 0, count)
}

func Test_CommandHandler_Handle_Error_NotBorrowed(t *testing.T) {
	// arrange
	ctx := context.Background()
	store, handler := setupWithLoan(t, 5)

	// act
	result, err := handler.Handle(ctx, returnbook.BuildCommand(fixtures.OtherPatronID, 5, fixtures.BorrowedAt()))

	// assert
	assert.ErrorIs(t, err, core.ErrNotBorrowed)
	assert.Equal(t, "Patron has not borrowed this book or it has already been returned.", result.Message)

	book, _ := store.FindBookByID(ctx, 5)
	assert.Equal(t, 4, book.AvailableCopies)

	count, _ := store.CountOutstanding(ctx, fixtures.PatronID)
	assert.Equal(t, 1, count)
}

func Test_CommandHandler_Handle_Error_AlreadyReturned(t *testing.T) {
	// arrange
	ctx := context.Background()
	store, handler := setupWithLoan(t, 5)

	_, err := handler.Handle(ctx, returnbook.BuildCommand(fixtures.PatronID, 5, fixtures.DaysAfterBorrowing(1)))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(ctx, returnbook.BuildCommand(fixtures.PatronID, 5, fixtures.DaysAfterBorrowing(2)))

	// assert
	assert.ErrorIs(t, err, core.ErrNotBorrowed)

	book, _ := store.FindBookByID(ctx, 5)
	assert.Equal(t, 5, book.AvailableCopies)
}

func Test_CommandHandler_Handle_Error_BookNotFound(t *testing.T) {
	// arrange
	_, handler := setupWithLoan(t, 5)

	// act
	_, err := handler.Handle(context.Background(), returnbook.BuildCommand(fixtures.PatronID, 42, fixtures.BorrowedAt()))

	// assert
	assert.ErrorIs(t, err, core.ErrBookNotFound)
}

func Test_CommandHandler_Handle_Error_InvalidPatron(t *testing.T) {
	for _, patronID := range []string{"1234567", " " + fixtures.PatronID, fixtures.PatronID + "\n"} {
		t.Run(patronID, func(t *testing.T) {
			// arrange
			store, handler := setupWithLoan(t, 5)

			// act
			result, err := handler.Handle(context.Background(), returnbook.BuildCommand(patronID, 5, fixtures.BorrowedAt()))

			// assert
			assert.ErrorIs(t, err, core.ErrInvalidPatron)
			assert.False(t, result.Success)

			_, findErr := store.FindOutstandingRecord(context.Background(), fixtures.PatronID, 5)
			assert.NoError(t, findErr)
		})
	}
}
