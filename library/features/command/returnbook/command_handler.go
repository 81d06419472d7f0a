package returnbook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

// RecordStore defines the record store operations needed by the CommandHandler.
type RecordStore interface {
	FindBookByID(ctx context.Context, bookID int64) (recordstore.Book, error)
	FindOutstandingRecord(ctx context.Context, patronID string, bookID int64) (recordstore.BorrowRecord, error)
	recordstore.Transactor
}

// CommandHandler orchestrates the return workflow: Validate -> Load -> Decide -> Write -> Quote.
type CommandHandler struct {
	store RecordStore
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store RecordStore) CommandHandler {
	return CommandHandler{store: store}
}

// Handle executes the return workflow.
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

	err = h.store.InTransaction(ctx, func(ctx context.Context, tx recordstore.Tx) error {
		if setErr := tx.SetReturnDate(ctx, command.PatronID, command.BookID, command.OccurredAt); setErr != nil {
			return setErr
		}

		return tx.AdjustBookAvailability(ctx, command.BookID, +1)
	})

	switch {
	case errors.Is(err, recordstore.ErrBorrowRecordNotFound):
		return failed(core.ErrNotBorrowed)
	case err != nil:
		return failed(core.PersistenceError(err))
	}

	quote := core.QuoteFee(s.outstanding.DueDate, command.OccurredAt)

	return Result{
		HandlerResult: shell.NewSuccessResult(successMessage(s.book.Title, quote)),
		BookTitle:     s.book.Title,
		FeeAmount:     quote.FeeAmount,
		DaysOverdue:   quote.DaysOverdue,
	}, nil
}

func (h CommandHandler) load(ctx context.Context, command Command) (state, error) {
	book, err := h.store.FindBookByID(ctx, command.BookID)
	if errors.Is(err, recordstore.ErrBookNotFound) {
		return state{bookFound: false}, nil
	}

	if err != nil {
		return state{}, err
	}

	record, err := h.store.FindOutstandingRecord(ctx, command.PatronID, command.BookID)
	if errors.Is(err, recordstore.ErrBorrowRecordNotFound) {
		return state{bookFound: true, book: book, loanFound: false}, nil
	}

	if err != nil {
		return state{}, err
	}

	return state{bookFound: true, book: book, loanFound: true, outstanding: record}, nil
}
