package httpapi

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

const dateLayout = "2006-01-02"

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// payload holds the feature specific fields of a successful response.
type payload map[string]any

func succeed(message string, fields payload) payload {
	body := payload{"success": true, "message": message}
	for k, v := range fields {
		body[k] = v
	}

	return body
}

type patronRequest struct {
	PatronID string `json:"patron_id"`
}

type addBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	TotalCopies int    `json:"total_copies"`
}

type refundRequest struct {
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
}

type bookDTO struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

type recordDTO struct {
	ID         int64   `json:"id"`
	PatronID   string  `json:"patron_id"`
	BookID     int64   `json:"book_id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	BorrowDate string  `json:"borrow_date"`
	DueDate    string  `json:"due_date"`
	ReturnDate *string `json:"return_date"`
}

type loanDTO struct {
	Record      recordDTO `json:"record"`
	Overdue     bool   `json:"overdue"`
	DaysOverdue int    `json:"days_overdue"`
	FeeAmount   string `json:"fee_amount"`
}

func money(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func toBookDTOs(books recordstore.Books) []bookDTO {
	dtos := make([]bookDTO, 0, len(books))
	for _, b := range books {
		dtos = append(dtos, bookDTO{
			ID:              b.ID,
			Title:           b.Title,
			Author:          b.Author,
			ISBN:            b.ISBN,
			TotalCopies:     b.TotalCopies,
			AvailableCopies: b.AvailableCopies,
		})
	}

	return dtos
}

func toRecordDTO(r recordstore.BorrowRecord) recordDTO {
	dto := recordDTO{
		ID:         r.ID,
		PatronID:   r.PatronID,
		BookID:     r.BookID,
		Title:      r.BookTitle,
		Author:     r.BookAuthor,
		BorrowDate: r.BorrowDate.Format(time.RFC3339),
		DueDate:    r.DueDate.Format(dateLayout),
	}

	if r.ReturnDate != nil {
		returned := r.ReturnDate.Format(time.RFC3339)
		dto.ReturnDate = &returned
	}

	return dto
}

func toRecordDTOs(records recordstore.BorrowRecords) []recordDTO {
	dtos := make([]recordDTO, 0, len(records))
	for _, r := range records {
		dtos = append(dtos, toRecordDTO(r))
	}

	return dtos
}

func toLoanDTOs(loans []core.Loan) []loanDTO {
	dtos := make([]loanDTO, 0, len(loans))
	for _, l := range loans {
		dtos = append(dtos, loanDTO{
			Record:      toRecordDTO(l.Record),
			Overdue:     l.Overdue,
			DaysOverdue: l.Fee.DaysOverdue,
			FeeAmount:   money(l.Fee.FeeAmount),
		})
	}

	return dtos
}
