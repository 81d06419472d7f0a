// Package addbook implements the Add Book use case: a librarian adds a title to the catalog
// with a number of copies, all of which start out available.
package addbook
