package searchbooks

import (
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

// SearchResult holds the matching books ordered by id.
type SearchResult struct {
	Books recordstore.Books
	Count int
}
