package core

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// LoanPeriod is the time between borrowing a book and its due date.
	LoanPeriod = 14 * 24 * time.Hour

	// MaxOutstandingLoans is the number of books a patron may have borrowed at the same time.
	MaxOutstandingLoans = 5

	discountedDays = 7

	feeStatusNoLateFee = "No late fee"
	feeStatusNotFound  = "Book not found in patron's borrowed books"
)

var (
	// MaxLateFee caps the fee of a single loan. Refunds above it are rejected as well.
	MaxLateFee = decimal.RequireFromString("15.00")

	discountedDailyRate = decimal.RequireFromString("0.50")
	regularDailyRate    = decimal.RequireFromString("1.00")
)

// FeeQuote is the late fee owed for one loan at a given instant. It is never stored.
type FeeQuote struct {
	FeeAmount   decimal.Decimal
	DaysOverdue int
	Status      string
}

// HasFee reports whether the quote asks for a payment.
func (q FeeQuote) HasFee() bool {
	return q.FeeAmount.IsPositive()
}

// QuoteFee computes the late fee of a loan due at dueDate, evaluated at now.
//
// Business Rules:
//
//	Overdue days are whole days elapsed since the due date, truncated toward zero.
//	The first 7 overdue days cost 0.50 each, every further day costs 1.00.
//	The fee never exceeds 15.00 and is rounded to cents.
func QuoteFee(dueDate time.Time, now time.Time) FeeQuote {
	days := int(now.Sub(dueDate) / (24 * time.Hour))
	if days <= 0 {
		return FeeQuote{FeeAmount: decimal.Zero, DaysOverdue: 0, Status: feeStatusNoLateFee}
	}

	fee := discountedDailyRate.Mul(decimal.NewFromInt(int64(min(days, discountedDays)))).
		Add(regularDailyRate.Mul(decimal.NewFromInt(int64(max(days-discountedDays, 0)))))

	if fee.GreaterThan(MaxLateFee) {
		fee = MaxLateFee
	}

	fee = fee.Round(2)

	return FeeQuote{
		FeeAmount:   fee,
		DaysOverdue: days,
		Status:      fmt.Sprintf("Late fee calculated: %s for %d days overdue", FormatMoney(fee), days),
	}
}

// NotFoundFeeQuote is the quote for a loan that can't be located: no fee is owed.
func NotFoundFeeQuote() FeeQuote {
	return FeeQuote{FeeAmount: decimal.Zero, DaysOverdue: 0, Status: feeStatusNotFound}
}

// FormatMoney renders an amount as dollars with two decimals, e.g. "$6.50".
func FormatMoney(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
