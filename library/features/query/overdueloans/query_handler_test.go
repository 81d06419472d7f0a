package overdueloans_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/features/query/overdueloans"
	"github.com/AntonStoeckl/library-circulation-go/recordstore/memoryengine"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

func Test_QueryHandler_Handle(t *testing.T) {
	// arrange
	store := memoryengine.NewRecordStore(memoryengine.WithBooks(fixtures.Catalog()...))
	fixtures.Lend(t, store, fixtures.PatronID, 3, fixtures.BorrowedAt())
	fixtures.Lend(t, store, fixtures.OtherPatronID, 1, fixtures.DaysAfterBorrowing(-5))
	fixtures.Lend(t, store, fixtures.OtherPatronID, 2, fixtures.DaysAfterBorrowing(20))
	fixtures.Lend(t, store, fixtures.PatronID, 4, fixtures.BorrowedAt())
	fixtures.Return(t, store, fixtures.PatronID, 4, fixtures.DaysAfterBorrowing(2))

	handler := overdueloans.NewQueryHandler(store)

	// act
	result, err := handler.Handle(context.Background(), overdueloans.BuildQuery(fixtures.DaysAfterBorrowing(24)))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)

	first := result.Loans[0]
	assert.Equal(t, fixtures.OtherPatronID, first.Record.PatronID)
	assert.Equal(t, "Learning Domain-Driven Design", first.Record.BookTitle)
	assert.Equal(t, 15, first.Fee.DaysOverdue)

	second := result.Loans[1]
	assert.Equal(t, fixtures.PatronID, second.Record.PatronID)
	assert.Equal(t, "Dune", second.Record.BookTitle)
	assert.Equal(t, 10, second.Fee.DaysOverdue)

	assert.Equal(t, "18.00", result.TotalLateFees.StringFixed(2))
}

func Test_QueryHandler_Handle_NothingOverdue(t *testing.T) {
	store := memoryengine.NewRecordStore(memoryengine.WithBooks(fixtures.Catalog()...))
	fixtures.Lend(t, store, fixtures.PatronID, 3, fixtures.BorrowedAt())

	result, err := overdueloans.NewQueryHandler(store).Handle(context.Background(), overdueloans.BuildQuery(fixtures.DaysAfterBorrowing(14)))

	require.NoError(t, err)
	assert.Empty(t, result.Loans)
	assert.True(t, result.TotalLateFees.IsZero())
}
