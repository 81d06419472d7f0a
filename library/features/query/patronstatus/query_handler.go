package patronstatus

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

// RecordStore defines the record store operations needed by the QueryHandler.
type RecordStore interface {
	ListOutstanding(ctx context.Context, patronID string) (recordstore.BorrowRecords, error)
	ListHistory(ctx context.Context, patronID string) (recordstore.BorrowRecords, error)
}

// QueryHandler builds patron status reports.
type QueryHandler struct {
	store RecordStore
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store RecordStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the report workflow: Validate -> Load -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Report, error) {
	if err := core.ValidatePatronID(query.PatronID); err != nil {
		return Report{}, err
	}

	ctx = recordstore.WithEventualConsistency(ctx)

	outstanding, err := h.store.ListOutstanding(ctx, query.PatronID)
	if err != nil {
		return Report{}, core.PersistenceError(err)
	}

	history, err := h.store.ListHistory(ctx, query.PatronID)
	if err != nil {
		return Report{}, core.PersistenceError(err)
	}

	return Project(outstanding, history, query), nil
}
