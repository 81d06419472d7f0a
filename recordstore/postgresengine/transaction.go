package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/AntonStoeckl/library-circulation-go/recordstore"
	"github.com/AntonStoeckl/library-circulation-go/recordstore/postgresengine/internal/adapters"
)

const uniqueViolationCode = "23505"

// InTransaction runs fn inside a database transaction.
// The transaction is committed when fn returns nil and rolled back otherwise.
func (rs *RecordStore) InTransaction(ctx context.Context, fn recordstore.TxFunc) error {
	return rs.instrument(ctx, operationTransaction, func(ctx context.Context) error {
		dbTx, beginErr := rs.db.BeginTx(ctx)
		if beginErr != nil {
			rs.logError(ctx, logMsgDBExecFailed, logAttrError, beginErr.Error())
			return errors.Join(recordstore.ErrTransactionFailed, beginErr)
		}

		committed := false

		defer func() {
			if committed {
				return
			}

			if rollbackErr := dbTx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil {
				rs.logWarn(ctx, logMsgRollbackFailed, logAttrError, rollbackErr.Error())
			}
		}()

		if fnErr := fn(ctx, &transaction{rs: rs, db: dbTx}); fnErr != nil {
			return fnErr
		}

		if commitErr := dbTx.Commit(ctx); commitErr != nil {
			rs.logError(ctx, logMsgDBExecFailed, logAttrError, commitErr.Error())
			return errors.Join(recordstore.ErrTransactionFailed, commitErr)
		}

		committed = true

		return nil
	})
}

// transaction implements recordstore.Tx on top of a running database transaction.
type transaction struct {
	rs *RecordStore
	db adapters.DBExecutor
}

func (t *transaction) InsertBook(ctx context.Context, book recordstore.NewBook) (recordstore.Book, error) {
	sqlQuery, buildErr := t.rs.buildInsertBookQuery(book)
	if buildErr != nil {
		t.rs.logError(ctx, logMsgBuildQueryFailed, logAttrError, buildErr.Error())
		return recordstore.Book{}, buildErr
	}

	id, insertErr := t.insertReturningID(ctx, sqlQuery)
	if insertErr != nil {
		if isUniqueViolation(insertErr) {
			return recordstore.Book{}, recordstore.ErrDuplicateISBN
		}

		return recordstore.Book{}, insertErr
	}

	return recordstore.Book{
		ID:              id,
		Title:           book.Title,
		Author:          book.Author,
		ISBN:            book.ISBN,
		TotalCopies:     book.TotalCopies,
		AvailableCopies: book.TotalCopies,
	}, nil
}

func (t *transaction) AdjustBookAvailability(ctx context.Context, bookID int64, delta int) error {
	sqlQuery, buildErr := t.rs.buildAdjustAvailabilityQuery(bookID, delta)
	if buildErr != nil {
		t.rs.logError(ctx, logMsgBuildQueryFailed, logAttrError, buildErr.Error())
		return buildErr
	}

	rowsAffected, execErr := t.rs.executeStatement(ctx, t.db, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if rowsAffected != 1 {
		return recordstore.ErrAvailabilityNotAdjusted
	}

	return nil
}

func (t *transaction) InsertBorrowRecord(
	ctx context.Context,
	patronID string,
	bookID int64,
	borrowDate time.Time,
	dueDate time.Time,
) (recordstore.BorrowRecord, error) {

	record := recordstore.BorrowRecord{
		PatronID:   patronID,
		BookID:     bookID,
		BorrowDate: borrowDate.UTC(),
		DueDate:    dueDate.UTC(),
	}

	sqlQuery, buildErr := t.rs.buildInsertBorrowRecordQuery(record)
	if buildErr != nil {
		t.rs.logError(ctx, logMsgBuildQueryFailed, logAttrError, buildErr.Error())
		return recordstore.BorrowRecord{}, buildErr
	}

	id, insertErr := t.insertReturningID(ctx, sqlQuery)
	if insertErr != nil {
		if isUniqueViolation(insertErr) {
			return recordstore.BorrowRecord{}, recordstore.ErrOutstandingRecordExists
		}

		return recordstore.BorrowRecord{}, insertErr
	}

	record.ID = id

	return record, nil
}

func (t *transaction) SetReturnDate(ctx context.Context, patronID string, bookID int64, returnDate time.Time) error {
	returnedAt := returnDate.UTC()
	record := recordstore.BorrowRecord{PatronID: patronID, BookID: bookID, ReturnDate: &returnedAt}

	sqlQuery, buildErr := t.rs.buildSetReturnDateQuery(record)
	if buildErr != nil {
		t.rs.logError(ctx, logMsgBuildQueryFailed, logAttrError, buildErr.Error())
		return buildErr
	}

	rowsAffected, execErr := t.rs.executeStatement(ctx, t.db, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		return recordstore.ErrBorrowRecordNotFound
	}

	return nil
}

// insertReturningID runs an INSERT ... RETURNING id statement and scans the id.
func (t *transaction) insertReturningID(ctx context.Context, sqlQuery string) (int64, error) {
	start := time.Now()
	rows, queryErr := t.db.Query(ctx, sqlQuery)
	t.rs.logQueryWithDuration(ctx, sqlQuery, time.Since(start))

	if queryErr != nil {
		t.rs.logError(ctx, logMsgDBExecFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return 0, errors.Join(recordstore.ErrWritingRecordsFailed, queryErr)
	}
	defer t.rs.closeRows(ctx, rows)

	var id int64

	if rows.Next() {
		if scanErr := rows.Scan(&id); scanErr != nil {
			t.rs.logError(ctx, logMsgScanRowFailed, logAttrError, scanErr.Error())
			return 0, errors.Join(recordstore.ErrScanningDBRowFailed, scanErr)
		}
	}

	// pgx reports constraint violations only after the rows were consumed
	if iterErr := rows.Err(); iterErr != nil {
		t.rs.logError(ctx, logMsgDBExecFailed, logAttrError, iterErr.Error(), logAttrQuery, sqlQuery)
		return 0, errors.Join(recordstore.ErrWritingRecordsFailed, iterErr)
	}

	return id, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}

	return false
}
