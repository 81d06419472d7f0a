package searchbooks

import (
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	queryType = "SearchBooks"
)

// Search types.
const (
	ByTitle  = "title"
	ByAuthor = "author"
	ByISBN   = "isbn"
)

// Query represents the intent to find books in the catalog.
type Query struct {
	Term       string
	SearchType string
}

// BuildQuery creates a new Query. The search type is matched case-insensitively.
func BuildQuery(term string, searchType string) Query {
	return Query{
		Term:       core.NormalizeText(term),
		SearchType: strings.ToLower(core.NormalizeText(searchType)),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
