package patronstatus

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	queryType = "PatronStatus"
)

// Query represents the intent to see everything a patron borrowed and owes.
type Query struct {
	PatronID core.PatronIDString
	AsOf     core.OccurredAt
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(patronID string, asOf time.Time) Query {
	return Query{
		PatronID: patronID,
		AsOf:     core.ToOccurredAt(asOf),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
