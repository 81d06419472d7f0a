package borrowbook

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// Result is the outcome of borrowing a book. BookTitle and DueDate are only set on success.
type Result struct {
	shell.HandlerResult
	BookTitle string
	DueDate   time.Time
}

func failed(err error) (Result, error) {
	return Result{HandlerResult: shell.NewErrorResult(err)}, err
}
