package httpapi

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

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
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// CorrelationIDHeader carries the correlation id of a request in both directions.
const CorrelationIDHeader = "X-Correlation-ID"

// Handlers holds one handler per feature. Plain feature handlers and their observable wrappers both fit.
type Handlers struct {
	AddBook       shell.CommandHandler[addbook.Command, addbook.Result]
	BorrowBook    shell.CommandHandler[borrowbook.Command, borrowbook.Result]
	ReturnBook    shell.CommandHandler[returnbook.Command, returnbook.Result]
	PayLateFee    shell.CommandHandler[paylatefee.Command, paylatefee.Result]
	RefundLateFee shell.CommandHandler[refundlatefee.Command, refundlatefee.Result]

	LateFee      shell.QueryHandler[latefee.Query, core.FeeQuote]
	SearchBooks  shell.QueryHandler[searchbooks.Query, searchbooks.SearchResult]
	BookCatalog  shell.QueryHandler[bookcatalog.Query, bookcatalog.Catalog]
	PatronStatus shell.QueryHandler[patronstatus.Query, patronstatus.Report]
	OverdueLoans shell.QueryHandler[overdueloans.Query, overdueloans.OverdueLoans]
}

type server struct {
	handlers Handlers
	now      func() time.Time
	logger   shell.Logger
}

// Option configures the server.
type Option func(*server)

// WithClock sets the clock requests are evaluated at.
func WithClock(now func() time.Time) Option {
	return func(s *server) {
		s.now = now
	}
}

// WithLogger sets the logger for internal failures.
func WithLogger(logger shell.Logger) Option {
	return func(s *server) {
		s.logger = logger
	}
}

// NewServer creates an echo instance with all routes registered.
func NewServer(handlers Handlers, opts ...Option) *echo.Echo {
	s := &server{handlers: handlers, now: time.Now}

	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.Recover())
	e.Use(correlationID)

	e.POST("/books", s.addBook)
	e.GET("/books", s.bookCatalog)
	e.GET("/books/search", s.searchBooks)
	e.POST("/books/:bookID/borrow", s.borrowBook)
	e.POST("/books/:bookID/return", s.returnBook)
	e.GET("/patrons/:patronID/books/:bookID/late-fee", s.lateFee)
	e.POST("/patrons/:patronID/books/:bookID/late-fee/payment", s.payLateFee)
	e.GET("/patrons/:patronID/status", s.patronStatus)
	e.POST("/refunds", s.refundLateFee)
	e.GET("/loans/overdue", s.overdueLoans)

	return e
}

// correlationID takes the correlation id from the request header or creates one,
// puts it into the request context and echoes it in the response.
func correlationID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if id, err := uuid.Parse(c.Request().Header.Get(CorrelationIDHeader)); err == nil {
			ctx = shell.WithCorrelationID(ctx, id)
		}

		ctx, id := shell.EnsureCorrelationID(ctx)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Response().Header().Set(CorrelationIDHeader, id.String())

		return next(c)
	}
}
