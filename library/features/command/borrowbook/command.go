package borrowbook

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	commandType = "BorrowBook"
)

// Command represents the intent of a patron to borrow a copy of a book.
type Command struct {
	PatronID   core.PatronIDString
	BookID     core.BookID
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(patronID string, bookID int64, occurredAt time.Time) Command {
	return Command{
		PatronID:   patronID,
		BookID:     bookID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
