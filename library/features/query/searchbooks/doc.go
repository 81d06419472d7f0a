// Package searchbooks implements the Search Books query use case.
//
// Titles and authors match by case-insensitive substring, ISBNs match exactly.
// A blank search term or an unknown search type yields an empty result, never an error.
package searchbooks
