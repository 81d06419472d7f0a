package latefee

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	queryType = "LateFee"
)

// Query represents the intent to learn the late fee owed for a borrowed book.
type Query struct {
	PatronID core.PatronIDString
	BookID   core.BookID
	AsOf     core.OccurredAt
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(patronID string, bookID int64, asOf time.Time) Query {
	return Query{
		PatronID: patronID,
		BookID:   bookID,
		AsOf:     core.ToOccurredAt(asOf),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
