package overdueloans

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

// RecordStore defines the record store operations needed by the QueryHandler.
type RecordStore interface {
	ListAllOutstanding(ctx context.Context) (recordstore.BorrowRecords, error)
}

// QueryHandler finds overdue loans.
type QueryHandler struct {
	store RecordStore
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store RecordStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the overdue scan: Load -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (OverdueLoans, error) {
	outstanding, err := h.store.ListAllOutstanding(recordstore.WithEventualConsistency(ctx))
	if err != nil {
		return OverdueLoans{}, core.PersistenceError(err)
	}

	return Project(outstanding, query), nil
}
