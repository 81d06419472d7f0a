package searchbooks

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

// RecordStore defines the record store operations needed by the QueryHandler.
type RecordStore interface {
	ListBooks(ctx context.Context) (recordstore.Books, error)
}

// QueryHandler searches the catalog.
type QueryHandler struct {
	store RecordStore
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store RecordStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the search workflow: Load -> Project.
// Queries that can't match anything are answered without touching the store.
func (h QueryHandler) Handle(ctx context.Context, query Query) (SearchResult, error) {
	if matcherFor(query) == nil {
		return Project(nil, query), nil
	}

	books, err := h.store.ListBooks(recordstore.WithEventualConsistency(ctx))
	if err != nil {
		return SearchResult{}, core.PersistenceError(err)
	}

	return Project(books, query), nil
}
