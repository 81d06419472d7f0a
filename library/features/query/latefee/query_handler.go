package latefee

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

// RecordStore defines the record store operations needed by the QueryHandler.
type RecordStore interface {
	FindOutstandingRecord(ctx context.Context, patronID string, bookID int64) (recordstore.BorrowRecord, error)
}

// QueryHandler quotes late fees from the outstanding borrow records.
type QueryHandler struct {
	store RecordStore
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store RecordStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the fee quote for the patron's outstanding loan of the book at query.AsOf.
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.FeeQuote, error) {
	if err := core.ValidatePatronID(query.PatronID); err != nil {
		return core.FeeQuote{}, err
	}

	ctx = recordstore.WithEventualConsistency(ctx)

	record, err := h.store.FindOutstandingRecord(ctx, query.PatronID, query.BookID)
	switch {
	case errors.Is(err, recordstore.ErrBorrowRecordNotFound):
		return core.NotFoundFeeQuote(), nil
	case err != nil:
		return core.FeeQuote{}, core.PersistenceError(err)
	}

	return core.QuoteFee(record.DueDate, query.AsOf), nil
}
