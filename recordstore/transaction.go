package recordstore

import (
	"context"
	"time"
)

// Tx is the set of write operations that must be executed inside a scoped transaction.
type Tx interface {
	InsertBook(ctx context.Context, book NewBook) (Book, error)
	AdjustBookAvailability(ctx context.Context, bookID int64, delta int) error
	InsertBorrowRecord(ctx context.Context, patronID string, bookID int64, borrowDate time.Time, dueDate time.Time) (BorrowRecord, error)
	SetReturnDate(ctx context.Context, patronID string, bookID int64, returnDate time.Time) error
}

// TxFunc is executed within a scoped transaction.
// Returning an error rolls back every write made through tx.
type TxFunc func(ctx context.Context, tx Tx) error

// Transactor runs a TxFunc within a scoped transaction.
type Transactor interface {
	InTransaction(ctx context.Context, fn TxFunc) error
}
