package searchbooks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/library/features/query/searchbooks"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

func catalog() recordstore.Books {
	return recordstore.Books{
		{ID: 1, Title: "Learning Domain-Driven Design", Author: "Vlad Khononov", ISBN: "9781098100131"},
		{ID: 2, Title: "The Go Programming Language", Author: "Alan Donovan", ISBN: "9780134190440"},
		{ID: 3, Title: "Dune", Author: "Frank Herbert", ISBN: "9780441172719"},
		{ID: 4, Title: "Domain Modeling Made Functional", Author: "Scott Wlaschin", ISBN: "9781680502541"},
	}
}

func ids(books recordstore.Books) []int64 {
	result := make([]int64, 0, len(books))
	for _, b := range books {
		result = append(result, b.ID)
	}

	return result
}

func Test_Project(t *testing.T) {
	testCases := []struct {
		name        string
		term        string
		searchType  string
		expectedIDs []int64
	}{
		{name: "title substring ignoring case", term: "DOMAIN", searchType: "title", expectedIDs: []int64{1, 4}},
		{name: "author substring", term: "herb", searchType: "author", expectedIDs: []int64{3}},
		{name: "search type ignoring case and spaces", term: "go", searchType: " Title ", expectedIDs: []int64{2}},
		{name: "isbn exact", term: "9780441172719", searchType: "isbn", expectedIDs: []int64{3}},
		{name: "isbn prefix does not match", term: "978044117", searchType: "isbn", expectedIDs: []int64{}},
		{name: "no match", term: "Tolkien", searchType: "author", expectedIDs: []int64{}},
		{name: "blank term", term: "   ", searchType: "title", expectedIDs: []int64{}},
		{name: "blank type", term: "Dune", searchType: "", expectedIDs: []int64{}},
		{name: "unknown type", term: "Dune", searchType: "publisher", expectedIDs: []int64{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := searchbooks.Project(catalog(), searchbooks.BuildQuery(tc.term, tc.searchType))

			assert.Equal(t, tc.expectedIDs, ids(result.Books))
			assert.Equal(t, len(tc.expectedIDs), result.Count)
			assert.NotNil(t, result.Books)
		})
	}
}
