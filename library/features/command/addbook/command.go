package addbook

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	commandType = "AddBook"
)

// Command represents the intent to add a book to the catalog.
type Command struct {
	Title       string
	Author      string
	ISBN        core.ISBNString
	TotalCopies int
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with surrounding whitespace trimmed from all text fields.
func BuildCommand(title, author, isbn string, totalCopies int, occurredAt time.Time) Command {
	return Command{
		Title:       core.NormalizeText(title),
		Author:      core.NormalizeText(author),
		ISBN:        core.NormalizeText(isbn),
		TotalCopies: totalCopies,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
