package borrowbook

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

// RecordStore defines the record store operations needed by the CommandHandler.
type RecordStore interface {
	FindBookByID(ctx context.Context, bookID int64) (recordstore.Book, error)
	CountOutstanding(ctx context.Context, patronID string) (int, error)
	FindOutstandingRecord(ctx context.Context, patronID string, bookID int64) (recordstore.BorrowRecord, error)
	recordstore.Transactor
}

// CommandHandler orchestrates the borrow workflow: Validate -> Load -> Decide -> Write.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	store RecordStore
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store RecordStore) CommandHandler {
	return CommandHandler{store: store}
}

// Handle executes the borrow workflow.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	if err := Validate(command); err != nil {
		return failed(err)
	}

	ctx = recordstore.WithStrongConsistency(ctx)

	s, err := h.load(ctx, command)
	if err != nil {
		return failed(core.PersistenceError(err))
	}

	if decideErr := Decide(s); decideErr != nil {
		return failed(decideErr)
	}

	dueDate := core.DueDateFor(command.OccurredAt)

	err = h.store.InTransaction(ctx, func(ctx context.Context, tx recordstore.Tx) error {
		if _, insertErr := tx.InsertBorrowRecord(ctx, command.PatronID, s.book.ID, command.OccurredAt, dueDate); insertErr != nil {
			return insertErr
		}

		return tx.AdjustBookAvailability(ctx, s.book.ID, -1)
	})

	switch {
	case errors.Is(err, recordstore.ErrAvailabilityNotAdjusted):
		return failed(core.ErrNoAvailability)
	case errors.Is(err, recordstore.ErrOutstandingRecordExists):
		return failed(core.ErrAlreadyBorrowed)
	case err != nil:
		return failed(core.PersistenceError(err))
	}

	return Result{
		HandlerResult: shell.NewSuccessResult(
			fmt.Sprintf(`Successfully borrowed "%s". Due date: %s.`, s.book.Title, dueDate.Format("2006-01-02")),
		),
		BookTitle: s.book.Title,
		DueDate:   dueDate,
	}, nil
}

// load gathers the state Decide needs. A missing book is part of the state, not an error.
func (h CommandHandler) load(ctx context.Context, command Command) (state, error) {
	book, err := h.store.FindBookByID(ctx, command.BookID)
	if errors.Is(err, recordstore.ErrBookNotFound) {
		return state{bookFound: false}, nil
	}

	if err != nil {
		return state{}, err
	}

	count, err := h.store.CountOutstanding(ctx, command.PatronID)
	if err != nil {
		return state{}, err
	}

	_, err = h.store.FindOutstandingRecord(ctx, command.PatronID, command.BookID)
	alreadyBorrowingIt := err == nil

	if err != nil && !errors.Is(err, recordstore.ErrBorrowRecordNotFound) {
		return state{}, err
	}

	return state{
		bookFound:          true,
		book:               book,
		outstandingCount:   count,
		alreadyBorrowingIt: alreadyBorrowingIt,
	}, nil
}
