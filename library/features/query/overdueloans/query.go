package overdueloans

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	queryType = "OverdueLoans"
)

// Query represents the intent to find all overdue loans at a given instant.
type Query struct {
	AsOf core.OccurredAt
}

// BuildQuery creates a new Query.
func BuildQuery(asOf time.Time) Query {
	return Query{AsOf: core.ToOccurredAt(asOf)}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
