package patronstatus_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/features/query/patronstatus"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/recordstore/memoryengine"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

func Test_QueryHandler_Handle_ReportsLoansFeesAndHistory(t *testing.T) {
	// arrange
	store := memoryengine.NewRecordStore(memoryengine.WithBooks(fixtures.Catalog()...))
	fixtures.Lend(t, store, fixtures.PatronID, 1, fixtures.BorrowedAt())
	fixtures.Return(t, store, fixtures.PatronID, 1, fixtures.DaysAfterBorrowing(3))
	fixtures.Lend(t, store, fixtures.PatronID, 3, fixtures.BorrowedAt())
	fixtures.Lend(t, store, fixtures.PatronID, 4, fixtures.DaysAfterBorrowing(5))
	fixtures.Lend(t, store, fixtures.OtherPatronID, 2, fixtures.BorrowedAt())

	handler := patronstatus.NewQueryHandler(store)

	// act
	report, err := handler.Handle(context.Background(), patronstatus.BuildQuery(fixtures.PatronID, fixtures.DaysAfterBorrowing(24)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, fixtures.PatronID, report.PatronID)
	assert.Equal(t, 2, report.CurrentBorrowCount)
	assert.Equal(t, 3, report.TotalBorrowCount)
	require.Len(t, report.CurrentlyBorrowed, 2)

	dune := report.CurrentlyBorrowed[0]
	assert.Equal(t, "Dune", dune.Record.BookTitle)
	assert.True(t, dune.Overdue)
	assert.Equal(t, 10, dune.Fee.DaysOverdue)
	assert.Equal(t, "6.50", dune.Fee.FeeAmount.StringFixed(2))

	ddia := report.CurrentlyBorrowed[1]
	assert.Equal(t, int64(4), ddia.Record.BookID)
	assert.True(t, ddia.Overdue)
	assert.Equal(t, "2.50", ddia.Fee.FeeAmount.StringFixed(2))

	assert.Equal(t, "9.00", report.TotalLateFees.StringFixed(2))

	require.Len(t, report.BorrowHistory, 3)
	assert.Equal(t, int64(4), report.BorrowHistory[0].BookID, "history is newest first")
	assert.Equal(t, int64(1), report.BorrowHistory[1].BookID)
	assert.False(t, report.BorrowHistory[1].IsOutstanding())
	assert.True(t, report.BorrowHistory[2].IsOutstanding())
}

func Test_QueryHandler_Handle_FeesAreQuotedFreshEveryTime(t *testing.T) {
	// arrange
	store := memoryengine.NewRecordStore(memoryengine.WithBooks(fixtures.Catalog()...))
	fixtures.Lend(t, store, fixtures.PatronID, 3, fixtures.BorrowedAt())
	handler := patronstatus.NewQueryHandler(store)

	// act
	early, err := handler.Handle(context.Background(), patronstatus.BuildQuery(fixtures.PatronID, fixtures.DaysAfterBorrowing(16)))
	require.NoError(t, err)

	late, err := handler.Handle(context.Background(), patronstatus.BuildQuery(fixtures.PatronID, fixtures.DaysAfterBorrowing(40)))
	require.NoError(t, err)

	// assert
	assert.Equal(t, "1.00", early.TotalLateFees.StringFixed(2))
	assert.Equal(t, "15.00", late.TotalLateFees.StringFixed(2))
}

func Test_QueryHandler_Handle_UnknownPatronGetsAnEmptyReport(t *testing.T) {
	// arrange
	store := memoryengine.NewRecordStore(memoryengine.WithBooks(fixtures.Catalog()...))
	handler := patronstatus.NewQueryHandler(store)

	// act
	report, err := handler.Handle(context.Background(), patronstatus.BuildQuery("999999", fixtures.BorrowedAt()))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "999999", report.PatronID)
	assert.Empty(t, report.CurrentlyBorrowed)
	assert.Empty(t, report.BorrowHistory)
	assert.Zero(t, report.CurrentBorrowCount)
	assert.Zero(t, report.TotalBorrowCount)
	assert.True(t, report.TotalLateFees.IsZero())
}

func Test_QueryHandler_Handle_Error_InvalidPatron(t *testing.T) {
	handler := patronstatus.NewQueryHandler(memoryengine.NewRecordStore())

	_, err := handler.Handle(context.Background(), patronstatus.BuildQuery("1234567", fixtures.BorrowedAt()))

	assert.ErrorIs(t, err, core.ErrInvalidPatron)
	assert.ErrorIs(t, err, core.ErrValidation)
}

func Test_QueryHandler_Handle_Error_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	handler := patronstatus.NewQueryHandler(memoryengine.NewRecordStore())

	_, err := handler.Handle(ctx, patronstatus.BuildQuery(fixtures.PatronID, fixtures.BorrowedAt()))

	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, core.ErrPersistence)
}
