package bookcatalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/features/query/bookcatalog"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/recordstore/memoryengine"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

func Test_QueryHandler_Handle(t *testing.T) {
	// arrange
	store := memoryengine.NewRecordStore(memoryengine.WithBooks(fixtures.Catalog()...))
	fixtures.Lend(t, store, fixtures.PatronID, 3, fixtures.BorrowedAt())
	fixtures.Lend(t, store, fixtures.PatronID, 5, fixtures.BorrowedAt())
	handler := bookcatalog.NewQueryHandler(store)

	// act
	catalog, err := handler.Handle(context.Background(), bookcatalog.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 5, catalog.Count)
	assert.Equal(t, 13, catalog.AvailableCopies)

	for i, book := range catalog.Books {
		assert.Equal(t, int64(i+1), book.ID, "books are ordered by id")
	}

	assert.Equal(t, 0, catalog.Books[2].AvailableCopies)
	assert.Equal(t, 1, catalog.Books[2].TotalCopies)
}

func Test_QueryHandler_Handle_EmptyCatalog(t *testing.T) {
	handler := bookcatalog.NewQueryHandler(memoryengine.NewRecordStore())

	catalog, err := handler.Handle(context.Background(), bookcatalog.BuildQuery())

	require.NoError(t, err)
	assert.NotNil(t, catalog.Books)
	assert.Zero(t, catalog.Count)
}

func Test_QueryHandler_Handle_Error_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bookcatalog.NewQueryHandler(memoryengine.NewRecordStore()).Handle(ctx, bookcatalog.BuildQuery())

	assert.ErrorIs(t, err, core.ErrPersistence)
	assert.ErrorIs(t, err, context.Canceled)
}
