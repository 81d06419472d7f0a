package bookcatalog

const (
	queryType = "BookCatalog"
)

// Query represents the intent to list the whole catalog.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
