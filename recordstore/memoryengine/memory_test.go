package memoryengine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/recordstore"
	"github.com/AntonStoeckl/library-circulation-go/recordstore/memoryengine"
)

var borrowedAt = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func Test_WithBooks_ShouldAssignMonotonicIDs(t *testing.T) {
	// arrange
	store := memoryengine.NewRecordStore(memoryengine.WithBooks(dune(), emma()))

	// act
	books, err := store.ListBooks(context.Background())

	// assert
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, int64(1), books[0].ID)
	assert.Equal(t, int64(2), books[1].ID)
	assert.Equal(t, books[0].TotalCopies, books[0].AvailableCopies)
}

func Test_FindBook_ShouldFail_WhenBookIsUnknown(t *testing.T) {
	// arrange
	store := memoryengine.NewRecordStore(memoryengine.WithBooks(dune()))

	// act
	_, byIDErr := store.FindBookByID(context.Background(), 42)
	_, byISBNErr := store.FindBookByISBN(context.Background(), "9999999999999")
	found, foundErr := store.FindBookByISBN(context.Background(), dune().ISBN)

	// assert
	assert.ErrorIs(t, byIDErr, recordstore.ErrBookNotFound)
	assert.ErrorIs(t, byISBNErr, recordstore.ErrBookNotFound)
	require.NoError(t, foundErr)
	assert.Equal(t, "Dune", found.Title)
}

func Test_InTransaction_ShouldApplyBorrowAtomically(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewRecordStore(memoryengine.WithBooks(dune()))

	// act
	err := store.InTransaction(ctx, func(ctx context.Context, tx recordstore.Tx) error {
		if _, insertErr := tx.InsertBorrowRecord(ctx, "123456", 1, borrowedAt, borrowedAt.Add(14*24*time.Hour)); insertErr != nil {
			return insertErr
		}

		return tx.AdjustBookAvailability(ctx, 1, -1)
	})

	// assert
	require.NoError(t, err)

	book, _ := store.FindBookByID(ctx, 1)
	assert.Equal(t, 2, book.AvailableCopies)

	record, findErr := store.FindOutstandingRecord(ctx, "123456", 1)
	require.NoError(t, findErr)
	assert.Equal(t, "Dune", record.BookTitle)
	assert.Equal(t, "Frank Herbert", record.BookAuthor)

	count, _ := store.CountOutstanding(ctx, "123456")
	assert.Equal(t, 1, count)
}

func Test_InTransaction_ShouldRestoreState_WhenFunctionFails(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewRecordStore(memoryengine.WithBooks(dune()))
	failure := errors.New("second step failed")

	// act
	err := store.InTransaction(ctx, func(ctx context.Context, tx recordstore.Tx) error {
		if _, insertErr := tx.InsertBorrowRecord(ctx, "123456", 1, borrowedAt, borrowedAt.Add(14*24*time.Hour)); insertErr != nil {
			return insertErr
		}

		if adjustErr := tx.AdjustBookAvailability(ctx, 1, -1); adjustErr != nil {
			return adjustErr
		}

		return failure
	})

	// assert
	assert.ErrorIs(t, err, failure)

	book, _ := store.FindBookByID(ctx, 1)
	assert.Equal(t, 3, book.AvailableCopies)

	count, _ := store.CountOutstanding(ctx, "123456")
	assert.Equal(t, 0, count)

	history, _ := store.ListHistory(ctx, "123456")
	assert.Empty(t, history)
}

func Test_AdjustBookAvailability_ShouldStayWithinTotalCopies(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewRecordStore(memoryengine.WithBooks(dune()))

	// act
	overErr := store.InTransaction(ctx, func(ctx context.Context, tx recordstore.Tx) error {
		return tx.AdjustBookAvailability(ctx, 1, 1)
	})
	underErr := store.InTransaction(ctx, func(ctx context.Context, tx recordstore.Tx) error {
		return tx.AdjustBookAvailability(ctx, 1, -4)
	})
	unknownErr := store.InTransaction(ctx, func(ctx context.Context, tx recordstore.Tx) error {
		return tx.AdjustBookAvailability(ctx, 7, -1)
	})

	// assert
	assert.ErrorIs(t, overErr, recordstore.ErrAvailabilityNotAdjusted)
	assert.ErrorIs(t, underErr, recordstore.ErrAvailabilityNotAdjusted)
	assert.ErrorIs(t, unknownErr, recordstore.ErrAvailabilityNotAdjusted)
}

func Test_InsertBook_ShouldRejectDuplicateISBN(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewRecordStore(memoryengine.WithBooks(dune()))

	// act
	err := store.InTransaction(ctx, func(ctx context.Context, tx recordstore.Tx) error {
		_, insertErr := tx.InsertBook(ctx, dune())
		return insertErr
	})

	// assert
	assert.ErrorIs(t, err, recordstore.ErrDuplicateISBN)
}

func Test_InsertBorrowRecord_ShouldRejectSecondOutstandingRecord(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewRecordStore(memoryengine.WithBooks(dune()))
	borrow := func(ctx context.Context, tx recordstore.Tx) error {
		_, insertErr := tx.InsertBorrowRecord(ctx, "123456", 1, borrowedAt, borrowedAt.Add(14*24*time.Hour))
		return insertErr
	}
	require.NoError(t, store.InTransaction(ctx, borrow))

	// act
	err := store.InTransaction(ctx, borrow)

	// assert
	assert.ErrorIs(t, err, recordstore.ErrOutstandingRecordExists)
}

func Test_SetReturnDate_ShouldCloseTheOutstandingRecordOnce(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewRecordStore(memoryengine.WithBooks(dune()))
	require.NoError(t, store.InTransaction(ctx, func(ctx context.Context, tx recordstore.Tx) error {
		_, insertErr := tx.InsertBorrowRecord(ctx, "123456", 1, borrowedAt, borrowedAt.Add(14*24*time.Hour))
		return insertErr
	}))
	returnRecord := func(ctx context.Context, tx recordstore.Tx) error {
		return tx.SetReturnDate(ctx, "123456", 1, borrowedAt.Add(72*time.Hour))
	}

	// act
	firstErr := store.InTransaction(ctx, returnRecord)
	secondErr := store.InTransaction(ctx, returnRecord)

	// assert
	require.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, recordstore.ErrBorrowRecordNotFound)

	history, _ := store.ListHistory(ctx, "123456")
	require.Len(t, history, 1)
	require.NotNil(t, history[0].ReturnDate)
	assert.Equal(t, borrowedAt.Add(72*time.Hour), *history[0].ReturnDate)
}

func Test_ListAllOutstanding_ShouldOrderByDueDate(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewRecordStore(memoryengine.WithBooks(dune(), emma()))
	require.NoError(t, store.InTransaction(ctx, func(ctx context.Context, tx recordstore.Tx) error {
		if _, err := tx.InsertBorrowRecord(ctx, "111111", 1, borrowedAt, borrowedAt.Add(20*24*time.Hour)); err != nil {
			return err
		}

		_, err := tx.InsertBorrowRecord(ctx, "222222", 2, borrowedAt, borrowedAt.Add(14*24*time.Hour))

		return err
	}))

	// act
	records, err := store.ListAllOutstanding(ctx)

	// assert
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "222222", records[0].PatronID)
	assert.Equal(t, "111111", records[1].PatronID)
}

func Test_Reads_ShouldFail_WhenContextIsCanceled(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := memoryengine.NewRecordStore()

	// act
	_, err := store.ListBooks(ctx)

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}

func dune() recordstore.NewBook {
	return recordstore.NewBook{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441172719", TotalCopies: 3}
}

func emma() recordstore.NewBook {
	return recordstore.NewBook{Title: "Emma", Author: "Jane Austen", ISBN: "9780141439587", TotalCopies: 1}
}
