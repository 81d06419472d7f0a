package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

// Lend records a loan of the book to the patron the way borrowing does, failing the test on error.
func Lend(t *testing.T, store recordstore.Transactor, patronID string, bookID int64, borrowedAt time.Time) {
	t.Helper()

	err := store.InTransaction(context.Background(), func(ctx context.Context, tx recordstore.Tx) error {
		if _, err := tx.InsertBorrowRecord(ctx, patronID, bookID, borrowedAt, core.DueDateFor(borrowedAt)); err != nil {
			return err
		}

		return tx.AdjustBookAvailability(ctx, bookID, -1)
	})
	require.NoError(t, err)
}

// Return closes the patron's outstanding loan of the book, failing the test on error.
func Return(t *testing.T, store recordstore.Transactor, patronID string, bookID int64, returnedAt time.Time) {
	t.Helper()

	err := store.InTransaction(context.Background(), func(ctx context.Context, tx recordstore.Tx) error {
		if err := tx.SetReturnDate(ctx, patronID, bookID, returnedAt); err != nil {
			return err
		}

		return tx.AdjustBookAvailability(ctx, bookID, +1)
	})
	require.NoError(t, err)
}
