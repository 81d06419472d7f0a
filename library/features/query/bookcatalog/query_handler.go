package bookcatalog

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

// Catalog represents the query result.
type Catalog struct {
	Books           recordstore.Books
	Count           int
	AvailableCopies int
}

// RecordStore defines the record store operations needed by the QueryHandler.
type RecordStore interface {
	ListBooks(ctx context.Context) (recordstore.Books, error)
}

// QueryHandler lists the catalog.
type QueryHandler struct {
	store RecordStore
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store RecordStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns all books.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (Catalog, error) {
	books, err := h.store.ListBooks(recordstore.WithEventualConsistency(ctx))
	if err != nil {
		return Catalog{}, core.PersistenceError(err)
	}

	if books == nil {
		books = make(recordstore.Books, 0)
	}

	available := 0
	for _, book := range books {
		available += book.AvailableCopies
	}

	return Catalog{Books: books, Count: len(books), AvailableCopies: available}, nil
}
