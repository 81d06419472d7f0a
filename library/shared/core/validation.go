package core

import (
	"strings"
	"unicode/utf8"
)

const (
	patronIDLength  = 6
	isbnLength      = 13
	maxTitleLength  = 200
	maxAuthorLength = 100
)

// IsValidPatronID reports whether id consists of exactly six ASCII digits.
func IsValidPatronID(id string) bool {
	return isDigits(id, patronIDLength)
}

// IsValidISBN reports whether isbn consists of exactly thirteen ASCII digits.
func IsValidISBN(isbn string) bool {
	return isDigits(isbn, isbnLength)
}

// ValidatePatronID returns ErrInvalidPatron for malformed ids.
func ValidatePatronID(id string) error {
	if !IsValidPatronID(id) {
		return ErrInvalidPatron
	}

	return nil
}

// ValidateNewBook checks the catalog fields of a book to be added.
// Title and author are expected to be trimmed already.
func ValidateNewBook(title, author, isbn string, totalCopies int) error {
	switch {
	case title == "":
		return ErrTitleRequired
	case utf8.RuneCountInString(title) > maxTitleLength:
		return ErrTitleTooLong
	case author == "":
		return ErrAuthorRequired
	case utf8.RuneCountInString(author) > maxAuthorLength:
		return ErrAuthorTooLong
	case !IsValidISBN(isbn):
		return ErrInvalidISBN
	case totalCopies <= 0:
		return ErrInvalidTotalCopies
	}

	return nil
}

// NormalizeText trims surrounding whitespace from user input.
func NormalizeText(s string) string {
	return strings.TrimSpace(s)
}

func isDigits(s string, length int) bool {
	if len(s) != length {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
