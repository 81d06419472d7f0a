package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-circulation-go/recordstore"
	"github.com/AntonStoeckl/library-circulation-go/recordstore/postgresengine/internal/adapters"
)

const (
	defaultBooksTableName         = "books"
	defaultBorrowRecordsTableName = "borrow_records"
	dialectPostgres               = "postgres"
	aliasRecord                   = "r"
	aliasBook                     = "b"
	colID                         = "id"
	colTitle                      = "title"
	colAuthor                     = "author"
	colISBN                       = "isbn"
	colTotalCopies                = "total_copies"
	colAvailableCopies            = "available_copies"
	colPatronID                   = "patron_id"
	colBookID                     = "book_id"
	colBorrowDate                 = "borrow_date"
	colDueDate                    = "due_date"
	colReturnDate                 = "return_date"
)

// RecordStore persists books and borrow records in PostgreSQL.
// It leverages a database adapter and supports customizable table names and observability.
type RecordStore struct {
	db                     adapters.DBAdapter
	booksTableName         string
	borrowRecordsTableName string
	logger                 Logger
	contextualLogger       ContextualLogger
	metricsCollector       MetricsCollector
	tracingCollector       TracingCollector
}

// NewRecordStoreFromPGXPool creates a new RecordStore using a pgx Pool with optional configuration.
func NewRecordStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*RecordStore, error) {
	if db == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newRecordStore(adapters.NewPGXAdapter(db), options...)
}

// NewRecordStoreFromPGXPoolAndReplica creates a new RecordStore using a primary and a replica pgx Pool.
// Reads are only routed to the replica when the context carries recordstore.WithEventualConsistency.
func NewRecordStoreFromPGXPoolAndReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*RecordStore, error) {
	if db == nil || replica == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newRecordStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewRecordStoreFromSQLDB creates a new RecordStore using a sql.DB with optional configuration.
func NewRecordStoreFromSQLDB(db *sql.DB, options ...Option) (*RecordStore, error) {
	if db == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newRecordStore(adapters.NewSQLAdapter(db), options...)
}

// NewRecordStoreFromSQLX creates a new RecordStore using a sqlx.DB with optional configuration.
func NewRecordStoreFromSQLX(db *sqlx.DB, options ...Option) (*RecordStore, error) {
	if db == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newRecordStore(adapters.NewSQLXAdapter(db), options...)
}

// NewRecordStoreFromSQLXAndReplica creates a new RecordStore using a primary and a replica sqlx.DB.
func NewRecordStoreFromSQLXAndReplica(db *sqlx.DB, replica *sqlx.DB, options ...Option) (*RecordStore, error) {
	if db == nil || replica == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newRecordStore(adapters.NewSQLXAdapterWithReplica(db, replica), options...)
}

func newRecordStore(db adapters.DBAdapter, options ...Option) (*RecordStore, error) {
	rs := &RecordStore{
		db:                     db,
		booksTableName:         defaultBooksTableName,
		borrowRecordsTableName: defaultBorrowRecordsTableName,
	}

	for _, option := range options {
		if err := option(rs); err != nil {
			return nil, err
		}
	}

	return rs, nil
}

// FindBookByID returns the book with the given ID or recordstore.ErrBookNotFound.
func (rs *RecordStore) FindBookByID(ctx context.Context, bookID int64) (recordstore.Book, error) {
	return rs.findOneBook(ctx, operationFindBookByID, goqu.C(colID).Eq(bookID))
}

// FindBookByISBN returns the book with the given ISBN or recordstore.ErrBookNotFound.
func (rs *RecordStore) FindBookByISBN(ctx context.Context, isbn string) (recordstore.Book, error) {
	return rs.findOneBook(ctx, operationFindBookByISBN, goqu.C(colISBN).Eq(isbn))
}

// ListBooks returns all books ordered by ID.
func (rs *RecordStore) ListBooks(ctx context.Context) (recordstore.Books, error) {
	var books recordstore.Books

	err := rs.instrument(ctx, operationListBooks, func(ctx context.Context) error {
		sqlQuery, buildErr := rs.buildSelectBooksQuery()
		if buildErr != nil {
			return buildErr
		}

		var queryErr error
		books, queryErr = rs.queryBooks(ctx, rs.db, sqlQuery)

		return queryErr
	})

	return books, err
}

// CountOutstanding returns the number of outstanding borrow records of the patron.
func (rs *RecordStore) CountOutstanding(ctx context.Context, patronID string) (int, error) {
	var count int64

	err := rs.instrument(ctx, operationCountOutstanding, func(ctx context.Context) error {
		sqlQuery, buildErr := rs.buildCountOutstandingQuery(patronID)
		if buildErr != nil {
			return buildErr
		}

		rows, queryErr := rs.executeQuery(ctx, rs.db, sqlQuery)
		if queryErr != nil {
			return queryErr
		}
		defer rs.closeRows(ctx, rows)

		if rows.Next() {
			if scanErr := rows.Scan(&count); scanErr != nil {
				rs.logError(ctx, logMsgScanRowFailed, logAttrError, scanErr.Error())
				return errors.Join(recordstore.ErrScanningDBRowFailed, scanErr)
			}
		}

		return rs.rowsErr(ctx, rows)
	})

	return int(count), err
}

// FindOutstandingRecord returns the outstanding borrow record of the patron for the book
// or recordstore.ErrBorrowRecordNotFound.
func (rs *RecordStore) FindOutstandingRecord(ctx context.Context, patronID string, bookID int64) (recordstore.BorrowRecord, error) {
	var record recordstore.BorrowRecord

	err := rs.instrument(ctx, operationFindOutstanding, func(ctx context.Context) error {
		records, queryErr := rs.queryBorrowRecords(
			ctx,
			recordCol(colDueDate).Asc(),
			recordCol(colPatronID).Eq(patronID),
			recordCol(colBookID).Eq(bookID),
			recordCol(colReturnDate).IsNull(),
		)
		if queryErr != nil {
			return queryErr
		}

		if len(records) == 0 {
			return recordstore.ErrBorrowRecordNotFound
		}

		record = records[0]

		return nil
	})

	return record, err
}

// ListOutstanding returns the outstanding borrow records of the patron ordered by due date.
func (rs *RecordStore) ListOutstanding(ctx context.Context, patronID string) (recordstore.BorrowRecords, error) {
	return rs.listBorrowRecords(
		ctx,
		operationListOutstanding,
		recordCol(colDueDate).Asc(),
		recordCol(colPatronID).Eq(patronID),
		recordCol(colReturnDate).IsNull(),
	)
}

// ListHistory returns all borrow records of the patron, returned or not, newest first.
func (rs *RecordStore) ListHistory(ctx context.Context, patronID string) (recordstore.BorrowRecords, error) {
	return rs.listBorrowRecords(
		ctx,
		operationListHistory,
		recordCol(colBorrowDate).Desc(),
		recordCol(colPatronID).Eq(patronID),
	)
}

// ListAllOutstanding returns the outstanding borrow records of all patrons ordered by due date.
func (rs *RecordStore) ListAllOutstanding(ctx context.Context) (recordstore.BorrowRecords, error) {
	return rs.listBorrowRecords(
		ctx,
		operationListAllOutstanding,
		recordCol(colDueDate).Asc(),
		recordCol(colReturnDate).IsNull(),
	)
}

func (rs *RecordStore) findOneBook(ctx context.Context, operation string, condition exp.Expression) (recordstore.Book, error) {
	var book recordstore.Book

	err := rs.instrument(ctx, operation, func(ctx context.Context) error {
		sqlQuery, buildErr := rs.buildSelectBooksQuery(condition)
		if buildErr != nil {
			return buildErr
		}

		books, queryErr := rs.queryBooks(ctx, rs.db, sqlQuery)
		if queryErr != nil {
			return queryErr
		}

		if len(books) == 0 {
			return recordstore.ErrBookNotFound
		}

		book = books[0]

		return nil
	})

	return book, err
}

func (rs *RecordStore) listBorrowRecords(
	ctx context.Context,
	operation string,
	order exp.OrderedExpression,
	conditions ...exp.Expression,
) (recordstore.BorrowRecords, error) {

	var records recordstore.BorrowRecords

	err := rs.instrument(ctx, operation, func(ctx context.Context) error {
		var queryErr error
		records, queryErr = rs.queryBorrowRecords(ctx, order, conditions...)

		return queryErr
	})

	return records, err
}

// queryBooks executes a books SELECT and scans all rows.
func (rs *RecordStore) queryBooks(ctx context.Context, db adapters.DBExecutor, sqlQuery string) (recordstore.Books, error) {
	rows, queryErr := rs.executeQuery(ctx, db, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer rs.closeRows(ctx, rows)

	books := make(recordstore.Books, 0)

	for rows.Next() {
		var book recordstore.Book

		scanErr := rows.Scan(&book.ID, &book.Title, &book.Author, &book.ISBN, &book.TotalCopies, &book.AvailableCopies)
		if scanErr != nil {
			rs.logError(ctx, logMsgScanRowFailed, logAttrError, scanErr.Error())
			return nil, errors.Join(recordstore.ErrScanningDBRowFailed, scanErr)
		}

		books = append(books, book)
	}

	if err := rs.rowsErr(ctx, rows); err != nil {
		return nil, err
	}

	return books, nil
}

// queryBorrowRecords executes a borrow records SELECT (joined with books) and scans all rows.
func (rs *RecordStore) queryBorrowRecords(
	ctx context.Context,
	order exp.OrderedExpression,
	conditions ...exp.Expression,
) (recordstore.BorrowRecords, error) {

	sqlQuery, buildErr := rs.buildSelectBorrowRecordsQuery(order, conditions...)
	if buildErr != nil {
		return nil, buildErr
	}

	rows, queryErr := rs.executeQuery(ctx, rs.db, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer rs.closeRows(ctx, rows)

	records := make(recordstore.BorrowRecords, 0)

	for rows.Next() {
		var record recordstore.BorrowRecord
		var returnDate sql.NullTime

		scanErr := rows.Scan(
			&record.ID,
			&record.PatronID,
			&record.BookID,
			&record.BookTitle,
			&record.BookAuthor,
			&record.BorrowDate,
			&record.DueDate,
			&returnDate,
		)
		if scanErr != nil {
			rs.logError(ctx, logMsgScanRowFailed, logAttrError, scanErr.Error())
			return nil, errors.Join(recordstore.ErrScanningDBRowFailed, scanErr)
		}

		record.BorrowDate = record.BorrowDate.UTC()
		record.DueDate = record.DueDate.UTC()

		if returnDate.Valid {
			returnedAt := returnDate.Time.UTC()
			record.ReturnDate = &returnedAt
		}

		records = append(records, record)
	}

	if err := rs.rowsErr(ctx, rows); err != nil {
		return nil, err
	}

	return records, nil
}

// executeQuery executes the SQL query and logs it with timing information.
func (rs *RecordStore) executeQuery(ctx context.Context, db adapters.DBExecutor, sqlQuery string) (adapters.DBRows, error) {
	start := time.Now()
	rows, queryErr := db.Query(ctx, sqlQuery)
	rs.logQueryWithDuration(ctx, sqlQuery, time.Since(start))

	if queryErr != nil {
		rs.logError(ctx, logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return nil, errors.Join(recordstore.ErrQueryingRecordsFailed, queryErr)
	}

	return rows, nil
}

// executeStatement executes a write statement, logs it with timing information and returns the affected rows.
func (rs *RecordStore) executeStatement(ctx context.Context, db adapters.DBExecutor, sqlQuery string) (int64, error) {
	start := time.Now()
	result, execErr := db.Exec(ctx, sqlQuery)
	rs.logQueryWithDuration(ctx, sqlQuery, time.Since(start))

	if execErr != nil {
		rs.logError(ctx, logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		return 0, errors.Join(recordstore.ErrWritingRecordsFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		rs.logError(ctx, logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())
		return 0, errors.Join(recordstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

// closeRows safely closes database rows and logs any errors.
func (rs *RecordStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		rs.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

func (rs *RecordStore) rowsErr(ctx context.Context, rows adapters.DBRows) error {
	if iterErr := rows.Err(); iterErr != nil {
		rs.logError(ctx, logMsgDBQueryFailed, logAttrError, iterErr.Error())
		return errors.Join(recordstore.ErrQueryingRecordsFailed, iterErr)
	}

	return nil
}

func recordCol(col string) exp.IdentifierExpression {
	return goqu.T(aliasRecord).Col(col)
}

func bookCol(col string) exp.IdentifierExpression {
	return goqu.T(aliasBook).Col(col)
}
