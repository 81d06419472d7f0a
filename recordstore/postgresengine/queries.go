package postgresengine

import (
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

func (rs *RecordStore) buildSelectBooksQuery(conditions ...exp.Expression) (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(rs.booksTableName).
		Select(colID, colTitle, colAuthor, colISBN, colTotalCopies, colAvailableCopies).
		Where(conditions...).
		Order(goqu.C(colID).Asc())

	return toSQL(selectStmt)
}

func (rs *RecordStore) buildSelectBorrowRecordsQuery(order exp.OrderedExpression, conditions ...exp.Expression) (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(goqu.T(rs.borrowRecordsTableName).As(aliasRecord)).
		InnerJoin(
			goqu.T(rs.booksTableName).As(aliasBook),
			goqu.On(recordCol(colBookID).Eq(bookCol(colID))),
		).
		Select(
			recordCol(colID),
			recordCol(colPatronID),
			recordCol(colBookID),
			bookCol(colTitle),
			bookCol(colAuthor),
			recordCol(colBorrowDate),
			recordCol(colDueDate),
			recordCol(colReturnDate),
		).
		Where(conditions...).
		Order(order, recordCol(colID).Asc())

	return toSQL(selectStmt)
}

func (rs *RecordStore) buildCountOutstandingQuery(patronID string) (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(rs.borrowRecordsTableName).
		Select(goqu.COUNT(goqu.Star())).
		Where(
			goqu.C(colPatronID).Eq(patronID),
			goqu.C(colReturnDate).IsNull(),
		)

	return toSQL(selectStmt)
}

func (rs *RecordStore) buildInsertBookQuery(book recordstore.NewBook) (string, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(rs.booksTableName).
		Rows(goqu.Record{
			colTitle:           book.Title,
			colAuthor:          book.Author,
			colISBN:            book.ISBN,
			colTotalCopies:     book.TotalCopies,
			colAvailableCopies: book.TotalCopies,
		}).
		Returning(goqu.C(colID))

	return toSQL(insertStmt)
}

// buildAdjustAvailabilityQuery only touches the row when the result stays within [0, total_copies].
func (rs *RecordStore) buildAdjustAvailabilityQuery(bookID int64, delta int) (string, error) {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(rs.booksTableName).
		Set(goqu.Record{
			colAvailableCopies: goqu.L(`"available_copies" + ?`, delta),
		}).
		Where(
			goqu.C(colID).Eq(bookID),
			goqu.L(`"available_copies" + ? BETWEEN 0 AND "total_copies"`, delta),
		)

	return toSQL(updateStmt)
}

func (rs *RecordStore) buildInsertBorrowRecordQuery(record recordstore.BorrowRecord) (string, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(rs.borrowRecordsTableName).
		Rows(goqu.Record{
			colPatronID:   record.PatronID,
			colBookID:     record.BookID,
			colBorrowDate: record.BorrowDate,
			colDueDate:    record.DueDate,
		}).
		Returning(goqu.C(colID))

	return toSQL(insertStmt)
}

func (rs *RecordStore) buildSetReturnDateQuery(record recordstore.BorrowRecord) (string, error) {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(rs.borrowRecordsTableName).
		Set(goqu.Record{colReturnDate: *record.ReturnDate}).
		Where(
			goqu.C(colPatronID).Eq(record.PatronID),
			goqu.C(colBookID).Eq(record.BookID),
			goqu.C(colReturnDate).IsNull(),
		)

	return toSQL(updateStmt)
}

type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

func toSQL(builder sqlBuilder) (string, error) {
	sqlQuery, _, toSQLErr := builder.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(recordstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}
