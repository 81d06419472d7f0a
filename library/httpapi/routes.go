package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

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
)

/*** Commands ***/

func (s *server) addBook(c echo.Context) error {
	var req addBookRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	command := addbook.BuildCommand(req.Title, req.Author, req.ISBN, req.TotalCopies, s.now())

	result, err := s.handlers.AddBook.Handle(c.Request().Context(), command)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, succeed(result.Message, payload{"book_id": result.BookID}))
}

func (s *server) borrowBook(c echo.Context) error {
	bookID, err := bookIDParam(c)
	if err != nil {
		return err
	}

	var req patronRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	command := borrowbook.BuildCommand(req.PatronID, bookID, s.now())

	result, err := s.handlers.BorrowBook.Handle(c.Request().Context(), command)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, succeed(result.Message, payload{
		"book_title": result.BookTitle,
		"due_date":   result.DueDate.Format(dateLayout),
	}))
}

func (s *server) returnBook(c echo.Context) error {
	bookID, err := bookIDParam(c)
	if err != nil {
		return err
	}

	var req patronRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	command := returnbook.BuildCommand(req.PatronID, bookID, s.now())

	result, err := s.handlers.ReturnBook.Handle(c.Request().Context(), command)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, succeed(result.Message, payload{
		"book_title":   result.BookTitle,
		"fee_amount":   money(result.FeeAmount),
		"days_overdue": result.DaysOverdue,
	}))
}

func (s *server) payLateFee(c echo.Context) error {
	bookID, err := bookIDParam(c)
	if err != nil {
		return err
	}

	command := paylatefee.BuildCommand(c.Param("patronID"), bookID, s.now())

	result, err := s.handlers.PayLateFee.Handle(c.Request().Context(), command)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, succeed(result.Message, payload{
		"transaction_id": result.TransactionID,
		"amount":         money(result.Amount),
	}))
}

func (s *server) refundLateFee(c echo.Context) error {
	var req refundRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	command := refundlatefee.BuildCommand(req.TransactionID, req.Amount, s.now())

	result, err := s.handlers.RefundLateFee.Handle(c.Request().Context(), command)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, succeed(result.Message, payload{
		"transaction_id": result.TransactionID,
		"amount":         money(result.Amount),
	}))
}

/*** Queries ***/

func (s *server) lateFee(c echo.Context) error {
	bookID, err := bookIDParam(c)
	if err != nil {
		return err
	}

	quote, err := s.handlers.LateFee.Handle(c.Request().Context(), latefee.BuildQuery(c.Param("patronID"), bookID, s.now()))
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, succeed(quote.Status, payload{
		"fee_amount":   money(quote.FeeAmount),
		"days_overdue": quote.DaysOverdue,
	}))
}

func (s *server) searchBooks(c echo.Context) error {
	query := searchbooks.BuildQuery(c.QueryParam("q"), c.QueryParam("type"))

	result, err := s.handlers.SearchBooks.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, succeed(fmt.Sprintf("%d books found.", result.Count), payload{
		"books": toBookDTOs(result.Books),
		"count": result.Count,
	}))
}

func (s *server) bookCatalog(c echo.Context) error {
	catalog, err := s.handlers.BookCatalog.Handle(c.Request().Context(), bookcatalog.BuildQuery())
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, succeed(fmt.Sprintf("%d books in the catalog.", catalog.Count), payload{
		"books":            toBookDTOs(catalog.Books),
		"count":            catalog.Count,
		"available_copies": catalog.AvailableCopies,
	}))
}

func (s *server) patronStatus(c echo.Context) error {
	report, err := s.handlers.PatronStatus.Handle(c.Request().Context(), patronstatus.BuildQuery(c.Param("patronID"), s.now()))
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, succeed(fmt.Sprintf("Patron %s has %d books borrowed.", report.PatronID, report.CurrentBorrowCount), payload{
		"patron_id":            report.PatronID,
		"currently_borrowed":   toLoanDTOs(report.CurrentlyBorrowed),
		"total_late_fees":      money(report.TotalLateFees),
		"current_borrow_count": report.CurrentBorrowCount,
		"total_borrow_count":   report.TotalBorrowCount,
		"borrow_history":       toRecordDTOs(report.BorrowHistory),
	}))
}

func (s *server) overdueLoans(c echo.Context) error {
	result, err := s.handlers.OverdueLoans.Handle(c.Request().Context(), overdueloans.BuildQuery(s.now()))
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, succeed(fmt.Sprintf("%d overdue loans.", result.Count), payload{
		"loans":           toLoanDTOs(result.Loans),
		"count":           result.Count,
		"total_late_fees": money(result.TotalLateFees),
	}))
}

func bookIDParam(c echo.Context) (int64, error) {
	bookID, err := strconv.ParseInt(c.Param("bookID"), 10, 64)
	if err != nil || bookID <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID.")
	}

	return bookID, nil
}
