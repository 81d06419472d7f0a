// Package bookcatalog implements the Book Catalog query use case: every book ordered by id
// with its current availability.
package bookcatalog
