package overdueloans_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/features/query/overdueloans"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

func Test_Project_SkipsReturnedAndNotYetDueRecords(t *testing.T) {
	// arrange
	asOf := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	returnedAt := asOf.AddDate(0, 0, -1)

	records := recordstore.BorrowRecords{
		{ID: 3, PatronID: "123456", BookID: 1, DueDate: asOf.AddDate(0, 0, -2)},
		{ID: 1, PatronID: "123456", BookID: 2, DueDate: asOf.AddDate(0, 0, -20)},
		{ID: 2, PatronID: "654321", BookID: 3, DueDate: asOf.AddDate(0, 0, 1)},
		{ID: 4, PatronID: "654321", BookID: 4, DueDate: asOf.AddDate(0, 0, -30), ReturnDate: &returnedAt},
		{ID: 5, PatronID: "654321", BookID: 5, DueDate: asOf.AddDate(0, 0, -2)},
	}

	// act
	result := overdueloans.Project(records, overdueloans.BuildQuery(asOf))

	// assert
	require.Equal(t, 3, result.Count)
	assert.Equal(t, int64(1), result.Loans[0].Record.ID)
	assert.Equal(t, int64(3), result.Loans[1].Record.ID)
	assert.Equal(t, int64(5), result.Loans[2].Record.ID)
	assert.Equal(t, "15.00", result.Loans[0].Fee.FeeAmount.StringFixed(2))
	assert.Equal(t, "17.00", result.TotalLateFees.StringFixed(2))
}
