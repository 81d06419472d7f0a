// Package recordstore provides core abstractions and types for persisting
// the circulation state of a public library.
//
// This package defines the records used across the different record store
// implementations, the transaction contract used by the borrowing lifecycle,
// the observability interfaces, and the common error definitions.
//
// Two kinds of records are stored:
//   - Book: a catalog entry with its total and currently available copies
//   - BorrowRecord: one loan of a Book to a patron, outstanding until returned
//
// Every mutation that has to change a BorrowRecord together with the
// availability counter of a Book runs inside a scoped transaction:
//
//	err := store.InTransaction(ctx, func(ctx context.Context, tx recordstore.Tx) error {
//		if _, err := tx.InsertBorrowRecord(ctx, patronID, bookID, borrowedAt, dueAt); err != nil {
//			return err
//		}
//
//		return tx.AdjustBookAvailability(ctx, bookID, -1)
//	})
//
// If the function returns an error, nothing it wrote is kept.
package recordstore
