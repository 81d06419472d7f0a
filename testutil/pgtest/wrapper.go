package pgtest

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/config"
	"github.com/AntonStoeckl/library-circulation-go/recordstore/postgresengine"
)

// EnvTestDSN names the environment variable holding the integration test database DSN.
const EnvTestDSN = "LIBRARY_TEST_POSTGRES_DSN"

// Adapters lists the database adapters every integration test runs against.
func Adapters() []string {
	return []string{config.AdapterPGX, config.AdapterSQL, config.AdapterSQLX}
}

// Wrapper holds a record store on freshly created tables.
type Wrapper struct {
	Store *postgresengine.RecordStore
	exec  func(ctx context.Context, statement string) error
}

// NewWrapper skips the test when no test database is configured. Otherwise it connects with the
// given adapter, creates uniquely named tables and registers their removal as test cleanup.
func NewWrapper(t *testing.T, adapter string, options ...postgresengine.Option) *Wrapper {
	t.Helper()

	dsn := os.Getenv(EnvTestDSN)
	if dsn == "" {
		t.Skipf("%s is not set", EnvTestDSN)
	}

	ctx := context.Background()
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	booksTable := "books_" + suffix
	recordsTable := "borrow_records_" + suffix

	options = append(options,
		postgresengine.WithBooksTableName(booksTable),
		postgresengine.WithBorrowRecordsTableName(recordsTable),
	)

	w, closeDB, err := open(ctx, adapter, dsn, options)
	require.NoError(t, err, "error in arranging test database")

	t.Cleanup(func() {
		dropErr := w.exec(context.Background(), fmt.Sprintf(
			"DROP TABLE IF EXISTS %s, %s",
			pq.QuoteIdentifier(recordsTable),
			pq.QuoteIdentifier(booksTable),
		))
		closeDB()
		require.NoError(t, dropErr, "error in dropping test tables")
	})

	require.NoError(t, w.Store.CreateSchema(ctx), "error in creating test schema")

	return w
}

func open(ctx context.Context, adapter, dsn string, options []postgresengine.Option) (*Wrapper, func(), error) {
	switch adapter {
	case config.AdapterPGX:
		pool, err := config.NewPGXPool(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewRecordStoreFromPGXPool(pool, options...)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}

		exec := func(ctx context.Context, statement string) error {
			_, execErr := pool.Exec(ctx, statement)
			return execErr
		}

		return &Wrapper{Store: store, exec: exec}, pool.Close, nil

	case config.AdapterSQL:
		db, err := config.NewSQLDB(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewRecordStoreFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		exec := func(ctx context.Context, statement string) error {
			_, execErr := db.ExecContext(ctx, statement)
			return execErr
		}

		return &Wrapper{Store: store, exec: exec}, func() { _ = db.Close() }, nil

	case config.AdapterSQLX:
		db, err := config.NewSQLX(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewRecordStoreFromSQLX(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		exec := func(ctx context.Context, statement string) error {
			_, execErr := db.ExecContext(ctx, statement)
			return execErr
		}

		return &Wrapper{Store: store, exec: exec}, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown adapter %q", config.ErrInvalidSetting, adapter)
	}
}
