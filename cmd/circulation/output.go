package main

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/recordstore"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}

// outcome is the JSON shape of every command result and failure.
type outcome struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

type loanOutput struct {
	PatronID    string `json:"patron_id"`
	BookID      int64  `json:"book_id"`
	Title       string `json:"title"`
	DueDate     string `json:"due_date"`
	Overdue     bool   `json:"overdue"`
	DaysOverdue int    `json:"days_overdue"`
	FeeAmount   string `json:"fee_amount"`
}

func loansOutput(loans []core.Loan) []loanOutput {
	out := make([]loanOutput, 0, len(loans))
	for _, loan := range loans {
		out = append(out, loanOutput{
			PatronID:    loan.Record.PatronID,
			BookID:      loan.Record.BookID,
			Title:       loan.Record.BookTitle,
			DueDate:     loan.Record.DueDate.Format(dateLayout),
			Overdue:     loan.Overdue,
			DaysOverdue: loan.Fee.DaysOverdue,
			FeeAmount:   money(loan.Fee.FeeAmount),
		})
	}

	return out
}

type bookOutput struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

func booksOutput(books recordstore.Books) []bookOutput {
	out := make([]bookOutput, 0, len(books))
	for _, b := range books {
		out = append(out, bookOutput{
			ID:              b.ID,
			Title:           b.Title,
			Author:          b.Author,
			ISBN:            b.ISBN,
			TotalCopies:     b.TotalCopies,
			AvailableCopies: b.AvailableCopies,
		})
	}

	return out
}

const dateLayout = "2006-01-02"

func money(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
