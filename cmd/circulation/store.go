package main

import (
	"context"
	"fmt"
	"log"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/config"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
	"github.com/AntonStoeckl/library-circulation-go/recordstore/memoryengine"
	"github.com/AntonStoeckl/library-circulation-go/recordstore/postgresengine"
)

// RecordStore is everything the features need from a store. Both engines implement it.
type RecordStore interface {
	FindBookByID(ctx context.Context, bookID int64) (recordstore.Book, error)
	FindBookByISBN(ctx context.Context, isbn string) (recordstore.Book, error)
	ListBooks(ctx context.Context) (recordstore.Books, error)
	CountOutstanding(ctx context.Context, patronID string) (int, error)
	FindOutstandingRecord(ctx context.Context, patronID string, bookID int64) (recordstore.BorrowRecord, error)
	ListOutstanding(ctx context.Context, patronID string) (recordstore.BorrowRecords, error)
	ListHistory(ctx context.Context, patronID string) (recordstore.BorrowRecords, error)
	ListAllOutstanding(ctx context.Context) (recordstore.BorrowRecords, error)
	recordstore.Transactor
}

// openStore returns the in-memory store or a postgres store using the configured adapter,
// plus a function releasing its connections.
func openStore(ctx context.Context, settings config.Settings, useMemory bool, obs Observability) (RecordStore, func(), error) {
	if useMemory {
		var options []memoryengine.Option
		if obs.Logger != nil {
			options = append(options, memoryengine.WithLogger(obs.Logger))
		}

		return memoryengine.NewRecordStore(options...), func() {}, nil
	}

	options := postgresOptions(obs)

	log.Printf("%s Using database adapter: %s", Info("🔧"), Info(settings.DBAdapter))

	switch settings.DBAdapter {
	case config.AdapterSQL:
		db, err := config.NewSQLDB(ctx, settings.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewRecordStoreFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to create record store: %w", err)
		}

		return store, func() { _ = db.Close() }, nil

	case config.AdapterSQLX:
		db, err := config.NewSQLX(ctx, settings.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}

		if settings.PostgresReplicaDSN == "" {
			store, storeErr := postgresengine.NewRecordStoreFromSQLX(db, options...)
			if storeErr != nil {
				_ = db.Close()
				return nil, nil, fmt.Errorf("failed to create record store: %w", storeErr)
			}

			return store, func() { _ = db.Close() }, nil
		}

		replica, err := config.NewSQLX(ctx, settings.PostgresReplicaDSN)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to connect to replica database: %w", err)
		}

		store, err := postgresengine.NewRecordStoreFromSQLXAndReplica(db, replica, options...)
		if err != nil {
			_ = db.Close()
			_ = replica.Close()
			return nil, nil, fmt.Errorf("failed to create record store: %w", err)
		}

		return store, func() { _ = db.Close(); _ = replica.Close() }, nil

	default:
		pool, err := config.NewPGXPool(ctx, settings.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}

		if settings.PostgresReplicaDSN == "" {
			store, storeErr := postgresengine.NewRecordStoreFromPGXPool(pool, options...)
			if storeErr != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("failed to create record store: %w", storeErr)
			}

			return store, pool.Close, nil
		}

		replica, err := config.NewPGXPool(ctx, settings.PostgresReplicaDSN)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to connect to replica database: %w", err)
		}

		store, err := postgresengine.NewRecordStoreFromPGXPoolAndReplica(pool, replica, options...)
		if err != nil {
			pool.Close()
			replica.Close()
			return nil, nil, fmt.Errorf("failed to create record store: %w", err)
		}

		return store, func() { pool.Close(); replica.Close() }, nil
	}
}

func postgresOptions(obs Observability) []postgresengine.Option {
	var options []postgresengine.Option

	if obs.Logger != nil {
		options = append(options, postgresengine.WithLogger(obs.Logger))
	}

	if obs.ContextualLogger != nil {
		options = append(options, postgresengine.WithContextualLogger(obs.ContextualLogger))
	}

	if obs.MetricsCollector != nil {
		options = append(options, postgresengine.WithMetrics(obs.MetricsCollector))
	}

	if obs.TracingCollector != nil {
		options = append(options, postgresengine.WithTracing(obs.TracingCollector))
	}

	return options
}
