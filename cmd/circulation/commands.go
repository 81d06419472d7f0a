package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/paylatefee"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/refundlatefee"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/bookcatalog"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/latefee"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/overdueloans"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/patronstatus"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/searchbooks"
	"github.com/AntonStoeckl/library-circulation-go/library/httpapi"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/config"
)

// errReported marks failures whose outcome was already printed.
var errReported = errors.New("operation failed")

// cli carries what the subcommands work with.
type cli struct {
	out      io.Writer
	errOut   io.Writer
	handlers httpapi.Handlers
	store    RecordStore
	settings config.Settings
	logger   shell.Logger
	now      func() time.Time
}

type subcommand struct {
	name    string
	summary string
	run     func(ctx context.Context, c *cli, args []string) error
}

var subcommands = []subcommand{
	{name: "serve", summary: "run the HTTP API", run: serve},
	{name: "watch-overdue", summary: "log overdue loans on a cron schedule", run: watchOverdue},
	{name: "init-schema", summary: "create the postgres tables", run: initSchema},
	{name: "add-book", summary: "add a book to the catalog", run: addBook},
	{name: "catalog", summary: "list all books", run: catalog},
	{name: "search", summary: "search books by title, author or isbn", run: search},
	{name: "borrow", summary: "borrow a book for a patron", run: borrow},
	{name: "return", summary: "return a borrowed book", run: returnBorrowed},
	{name: "late-fee", summary: "show the late fee of a loan", run: lateFee},
	{name: "pay-late-fee", summary: "pay the late fee of a loan", run: payLateFee},
	{name: "refund", summary: "refund a late fee payment", run: refund},
	{name: "patron-status", summary: "show loans, fees and history of a patron", run: patronStatus},
	{name: "overdue", summary: "list all overdue loans", run: overdue},
}

func findSubcommand(name string) (subcommand, bool) {
	for _, sc := range subcommands {
		if sc.name == name {
			return sc, true
		}
	}

	return subcommand{}, false
}

func (c *cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.errOut)

	return fs
}

// report prints a command result and turns a failure into errReported.
func (c *cli) report(result shell.HandlerResult, err error, data map[string]any) error {
	out := outcome{Success: result.Success, Message: result.Message}
	if err == nil {
		out.Data = data
	}

	if printErr := printJSON(c.out, out); printErr != nil {
		return printErr
	}

	if err != nil {
		return errReported
	}

	return nil
}

/*** Commands ***/

func addBook(ctx context.Context, c *cli, args []string) error {
	fs := c.flagSet("add-book")
	title := fs.String("title", "", "book title")
	author := fs.String("author", "", "book author")
	isbn := fs.String("isbn", "", "13 digit ISBN")
	copies := fs.Int("copies", 1, "number of copies")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := c.handlers.AddBook.Handle(ctx, addbook.BuildCommand(*title, *author, *isbn, *copies, c.now()))

	return c.report(result.HandlerResult, err, map[string]any{"book_id": result.BookID})
}

func borrow(ctx context.Context, c *cli, args []string) error {
	fs := c.flagSet("borrow")
	patronID := fs.String("patron", "", "6 digit patron id")
	bookID := fs.Int64("book", 0, "book id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := c.handlers.BorrowBook.Handle(ctx, borrowbook.BuildCommand(*patronID, *bookID, c.now()))

	return c.report(result.HandlerResult, err, map[string]any{
		"book_title": result.BookTitle,
		"due_date":   result.DueDate.Format(dateLayout),
	})
}

func returnBorrowed(ctx context.Context, c *cli, args []string) error {
	fs := c.flagSet("return")
	patronID := fs.String("patron", "", "6 digit patron id")
	bookID := fs.Int64("book", 0, "book id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := c.handlers.ReturnBook.Handle(ctx, returnbook.BuildCommand(*patronID, *bookID, c.now()))

	return c.report(result.HandlerResult, err, map[string]any{
		"book_title":   result.BookTitle,
		"fee_amount":   money(result.FeeAmount),
		"days_overdue": result.DaysOverdue,
	})
}

func payLateFee(ctx context.Context, c *cli, args []string) error {
	fs := c.flagSet("pay-late-fee")
	patronID := fs.String("patron", "", "6 digit patron id")
	bookID := fs.Int64("book", 0, "book id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := c.handlers.PayLateFee.Handle(ctx, paylatefee.BuildCommand(*patronID, *bookID, c.now()))

	return c.report(result.HandlerResult, err, map[string]any{
		"transaction_id": result.TransactionID,
		"amount":         money(result.Amount),
	})
}

func refund(ctx context.Context, c *cli, args []string) error {
	fs := c.flagSet("refund")
	transactionID := fs.String("txn", "", "transaction id of the payment")
	rawAmount := fs.String("amount", "", "amount to refund, e.g. 6.50")
	if err := fs.Parse(args); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(*rawAmount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", *rawAmount, err)
	}

	result, err := c.handlers.RefundLateFee.Handle(ctx, refundlatefee.BuildCommand(*transactionID, amount, c.now()))

	return c.report(result.HandlerResult, err, map[string]any{
		"transaction_id": result.TransactionID,
		"amount":         money(result.Amount),
	})
}

/*** Queries ***/

func catalog(ctx context.Context, c *cli, args []string) error {
	if err := c.flagSet("catalog").Parse(args); err != nil {
		return err
	}

	result, err := c.handlers.BookCatalog.Handle(ctx, bookcatalog.BuildQuery())
	if err != nil {
		return err
	}

	return printJSON(c.out, map[string]any{
		"books":            booksOutput(result.Books),
		"count":            result.Count,
		"available_copies": result.AvailableCopies,
	})
}

func search(ctx context.Context, c *cli, args []string) error {
	fs := c.flagSet("search")
	term := fs.String("q", "", "search term")
	searchType := fs.String("type", searchbooks.ByTitle, "title, author or isbn")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := c.handlers.SearchBooks.Handle(ctx, searchbooks.BuildQuery(*term, *searchType))
	if err != nil {
		return err
	}

	return printJSON(c.out, map[string]any{"books": booksOutput(result.Books), "count": result.Count})
}

func lateFee(ctx context.Context, c *cli, args []string) error {
	fs := c.flagSet("late-fee")
	patronID := fs.String("patron", "", "6 digit patron id")
	bookID := fs.Int64("book", 0, "book id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	quote, err := c.handlers.LateFee.Handle(ctx, latefee.BuildQuery(*patronID, *bookID, c.now()))
	if err != nil {
		return err
	}

	return printJSON(c.out, map[string]any{
		"fee_amount":   money(quote.FeeAmount),
		"days_overdue": quote.DaysOverdue,
		"status":       quote.Status,
	})
}

func patronStatus(ctx context.Context, c *cli, args []string) error {
	fs := c.flagSet("patron-status")
	patronID := fs.String("patron", "", "6 digit patron id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	report, err := c.handlers.PatronStatus.Handle(ctx, patronstatus.BuildQuery(*patronID, c.now()))
	if err != nil {
		return err
	}

	history := make([]map[string]any, 0, len(report.BorrowHistory))
	for _, record := range report.BorrowHistory {
		entry := map[string]any{
			"book_id":     record.BookID,
			"title":       record.BookTitle,
			"borrow_date": record.BorrowDate.Format(dateLayout),
			"due_date":    record.DueDate.Format(dateLayout),
		}
		if record.ReturnDate != nil {
			entry["return_date"] = record.ReturnDate.Format(dateLayout)
		}

		history = append(history, entry)
	}

	return printJSON(c.out, map[string]any{
		"patron_id":            report.PatronID,
		"currently_borrowed":   loansOutput(report.CurrentlyBorrowed),
		"total_late_fees":      money(report.TotalLateFees),
		"current_borrow_count": report.CurrentBorrowCount,
		"total_borrow_count":   report.TotalBorrowCount,
		"borrow_history":       history,
	})
}

func overdue(ctx context.Context, c *cli, args []string) error {
	if err := c.flagSet("overdue").Parse(args); err != nil {
		return err
	}

	result, err := c.handlers.OverdueLoans.Handle(ctx, overdueloans.BuildQuery(c.now()))
	if err != nil {
		return err
	}

	return printJSON(c.out, map[string]any{
		"loans":           loansOutput(result.Loans),
		"count":           result.Count,
		"total_late_fees": money(result.TotalLateFees),
	})
}

/*** Long running ***/

func serve(ctx context.Context, c *cli, args []string) error {
	fs := c.flagSet("serve")
	addr := fs.String("addr", c.settings.HTTPAddress, "listen address")
	watch := fs.Bool("watch-overdue", false, "also run the scheduled overdue scan")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *watch {
		scanner := overdueScanner{handler: c.handlers.OverdueLoans, now: c.now, logger: c.logger}

		scheduler, err := scanner.start(ctx, c.settings.OverdueScanSchedule)
		if err != nil {
			return err
		}
		defer stopScheduler(scheduler)
	}

	server := httpapi.NewServer(c.handlers, httpapi.WithClock(c.now), httpapi.WithLogger(c.logger))

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.Start(*addr)
	}()

	fmt.Fprintf(c.errOut, "%s listening on %s\n", Success("🚀"), Info(*addr))

	select {
	case err := <-serverDone:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
		fmt.Fprintf(c.errOut, "📢 %s\n", Warning("Shutting down HTTP server..."))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	}
}

func watchOverdue(ctx context.Context, c *cli, args []string) error {
	fs := c.flagSet("watch-overdue")
	schedule := fs.String("schedule", c.settings.OverdueScanSchedule, "cron spec or descriptor like @hourly")
	runNow := fs.Bool("now", false, "scan once immediately before waiting for the schedule")
	if err := fs.Parse(args); err != nil {
		return err
	}

	scanner := overdueScanner{handler: c.handlers.OverdueLoans, now: c.now, logger: c.logger}

	if *runNow {
		if _, err := scanner.scan(ctx); err != nil {
			return err
		}
	}

	scheduler, err := scanner.start(ctx, *schedule)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.errOut, "⏳ Overdue scan scheduled: %s (Ctrl+C to stop)\n", Info(*schedule))

	<-ctx.Done()
	stopScheduler(scheduler)

	return nil
}

type schemaCreator interface {
	CreateSchema(ctx context.Context) error
}

func initSchema(ctx context.Context, c *cli, args []string) error {
	if err := c.flagSet("init-schema").Parse(args); err != nil {
		return err
	}

	creator, ok := c.store.(schemaCreator)
	if !ok {
		return errors.New("init-schema needs a postgres store, drop -memory")
	}

	if err := creator.CreateSchema(ctx); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	fmt.Fprintf(c.out, "%s %s\n", Success("✅"), Success("Schema created"))

	return nil
}
