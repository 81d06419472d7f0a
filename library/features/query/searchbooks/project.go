package searchbooks

import (
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

// Project filters the catalog down to the books matching the query, keeping their order.
//
// Query Logic:
//
//	title:  the title contains the term, ignoring case
//	author: the author contains the term, ignoring case
//	isbn:   the ISBN equals the term
//	blank term or any other search type: nothing matches
func Project(catalog recordstore.Books, query Query) SearchResult {
	matches := make(recordstore.Books, 0)

	match := matcherFor(query)
	if match == nil {
		return SearchResult{Books: matches}
	}

	for _, book := range catalog {
		if match(book) {
			matches = append(matches, book)
		}
	}

	return SearchResult{Books: matches, Count: len(matches)}
}

func matcherFor(query Query) func(recordstore.Book) bool {
	if query.Term == "" {
		return nil
	}

	term := strings.ToLower(query.Term)

	switch query.SearchType {
	case ByTitle:
		return func(b recordstore.Book) bool { return strings.Contains(strings.ToLower(b.Title), term) }
	case ByAuthor:
		return func(b recordstore.Book) bool { return strings.Contains(strings.ToLower(b.Author), term) }
	case ByISBN:
		return func(b recordstore.Book) bool { return b.ISBN == query.Term }
	default:
		return nil
	}
}
