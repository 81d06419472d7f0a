package recordstore

import (
	"errors"
)

var (
	// ErrEmptyTableName is returned when an empty table name is configured.
	ErrEmptyTableName = errors.New("empty table name supplied")

	// ErrNilDatabaseConnection is returned when a nil database connection is supplied.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrBookNotFound is returned when no book matches the lookup.
	ErrBookNotFound = errors.New("book not found")

	// ErrDuplicateISBN is returned when a book with the same ISBN already exists.
	ErrDuplicateISBN = errors.New("a book with this isbn already exists")

	// ErrBorrowRecordNotFound is returned when no outstanding borrow record matches the lookup.
	ErrBorrowRecordNotFound = errors.New("outstanding borrow record not found")

	// ErrOutstandingRecordExists is returned when the patron already has an outstanding record for the book.
	ErrOutstandingRecordExists = errors.New("an outstanding borrow record for this patron and book already exists")

	// ErrAvailabilityNotAdjusted is returned when an availability change would leave the
	// available copies outside of [0, total copies] or the book does not exist.
	ErrAvailabilityNotAdjusted = errors.New("book availability was not adjusted")

	// ErrBuildingQueryFailed is returned when a SQL statement can't be built.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrQueryingRecordsFailed is returned when a read statement fails.
	ErrQueryingRecordsFailed = errors.New("querying records failed")

	// ErrWritingRecordsFailed is returned when a write statement fails.
	ErrWritingRecordsFailed = errors.New("writing records failed")

	// ErrScanningDBRowFailed is returned when a result row can't be scanned.
	ErrScanningDBRowFailed = errors.New("scanning db row failed")

	// ErrGettingRowsAffectedFailed is returned when the affected row count is not available.
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")

	// ErrTransactionFailed is returned when a transaction can't be started or committed.
	ErrTransactionFailed = errors.New("transaction failed")
)
