// Package postgresengine provides a PostgreSQL implementation of the library record store.
//
// This package persists books and borrow records in PostgreSQL,
// supporting multiple database adapters (pgx, sql.DB, sqlx) with scoped transactions
// for the borrow/return write pairs.
//
// Key features:
//   - Multiple database adapter support (PGX, SQL, SQLX)
//   - Scoped transactions with guaranteed rollback (InTransaction)
//   - Guarded availability updates that can never leave [0, total_copies]
//   - Optional replica reads for eventually consistent queries
//   - Configurable table names, logging, metrics and tracing
//
// Usage examples:
//
//	// Basic usage
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewRecordStoreFromPGXPool(db)
//	_ = store.CreateSchema(ctx)
//
//	// With operational logging
//	store, _ := postgresengine.NewRecordStoreFromPGXPool(
//		db,
//		postgresengine.WithBooksTableName("catalog_books"),
//		postgresengine.WithLogger(logger),
//	)
//
//	book, _ := store.FindBookByID(ctx, 42)
//	err := store.InTransaction(ctx, func(ctx context.Context, tx recordstore.Tx) error {
//		return tx.AdjustBookAvailability(ctx, book.ID, -1)
//	})
package postgresengine
