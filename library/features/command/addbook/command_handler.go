package addbook

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

// Result is the outcome of adding a book. BookID is only set on success.
type Result struct {
	shell.HandlerResult
	BookID core.BookID
}

// RecordStore defines the record store operations needed by the CommandHandler.
type RecordStore interface {
	FindBookByISBN(ctx context.Context, isbn string) (recordstore.Book, error)
	recordstore.Transactor
}

// CommandHandler validates the catalog fields, rejects duplicate ISBNs and inserts the book.
type CommandHandler struct {
	store RecordStore
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store RecordStore) CommandHandler {
	return CommandHandler{store: store}
}

// Handle executes the add book workflow.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	if err := core.ValidateNewBook(command.Title, command.Author, command.ISBN, command.TotalCopies); err != nil {
		return failed(err)
	}

	ctx = recordstore.WithStrongConsistency(ctx)

	_, err := h.store.FindBookByISBN(ctx, command.ISBN)
	switch {
	case err == nil:
		return failed(core.ErrDuplicateISBN)
	case !errors.Is(err, recordstore.ErrBookNotFound):
		return failed(core.PersistenceError(err))
	}

	var added recordstore.Book

	err = h.store.InTransaction(ctx, func(ctx context.Context, tx recordstore.Tx) error {
		var insertErr error
		added, insertErr = tx.InsertBook(ctx, recordstore.NewBook{
			Title:       command.Title,
			Author:      command.Author,
			ISBN:        command.ISBN,
			TotalCopies: command.TotalCopies,
		})

		return insertErr
	})

	switch {
	case errors.Is(err, recordstore.ErrDuplicateISBN):
		return failed(core.ErrDuplicateISBN)
	case err != nil:
		return failed(core.PersistenceError(err))
	}

	return Result{
		HandlerResult: shell.NewSuccessResult(fmt.Sprintf(`Book "%s" has been successfully added to the catalog.`, added.Title)),
		BookID:        added.ID,
	}, nil
}

func failed(err error) (Result, error) {
	return Result{HandlerResult: shell.NewErrorResult(err)}, err
}
