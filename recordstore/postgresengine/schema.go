package postgresengine

import (
	"context"
	"fmt"

	"github.com/lib/pq"
)

// SchemaStatements returns the DDL for the configured table names.
// All statements are idempotent.
func (rs *RecordStore) SchemaStatements() []string {
	books := pq.QuoteIdentifier(rs.booksTableName)
	records := pq.QuoteIdentifier(rs.borrowRecordsTableName)

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	title VARCHAR(200) NOT NULL,
	author VARCHAR(100) NOT NULL,
	isbn CHAR(13) NOT NULL UNIQUE,
	total_copies INTEGER NOT NULL CHECK (total_copies > 0),
	available_copies INTEGER NOT NULL,
	CHECK (available_copies BETWEEN 0 AND total_copies)
)`, books),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	patron_id CHAR(6) NOT NULL,
	book_id BIGINT NOT NULL REFERENCES %s (id),
	borrow_date TIMESTAMPTZ NOT NULL,
	due_date TIMESTAMPTZ NOT NULL,
	return_date TIMESTAMPTZ NULL
)`, records, books),
		fmt.Sprintf(
			`CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (patron_id, book_id) WHERE return_date IS NULL`,
			pq.QuoteIdentifier(rs.borrowRecordsTableName+"_one_outstanding_idx"),
			records,
		),
		fmt.Sprintf(
			`CREATE INDEX IF NOT EXISTS %s ON %s (patron_id)`,
			pq.QuoteIdentifier(rs.borrowRecordsTableName+"_patron_idx"),
			records,
		),
	}
}

// CreateSchema creates the tables and indexes if they don't exist yet.
func (rs *RecordStore) CreateSchema(ctx context.Context) error {
	return rs.instrument(ctx, operationCreateSchema, func(ctx context.Context) error {
		for _, statement := range rs.SchemaStatements() {
			if _, execErr := rs.executeStatement(ctx, rs.db, statement); execErr != nil {
				return execErr
			}
		}

		return nil
	})
}
