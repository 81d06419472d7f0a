// Package memoryengine provides an in-memory implementation of the record store.
//
// It offers the same operations as the postgresengine package and is used by the
// feature tests, the CLI's demo mode and anywhere a throwaway store is enough.
// State lives in process memory and is guarded by a mutex.
//
// Transactions snapshot the books and borrow records before running the supplied
// function and restore the snapshot when the function returns an error:
//
//	store := memoryengine.NewRecordStore()
//	err := store.InTransaction(ctx, func(ctx context.Context, tx recordstore.Tx) error {
//		if _, err := tx.InsertBorrowRecord(ctx, patronID, bookID, now, due); err != nil {
//			return err
//		}
//		return tx.AdjustBookAvailability(ctx, bookID, -1)
//	})
package memoryengine
