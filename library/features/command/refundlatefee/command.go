package refundlatefee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	commandType = "RefundLateFee"
)

// Command represents the intent to give back a previously paid late fee.
type Command struct {
	TransactionID string
	Amount        decimal.Decimal
	OccurredAt    core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(transactionID string, amount decimal.Decimal, occurredAt time.Time) Command {
	return Command{
		TransactionID: strings.TrimSpace(transactionID),
		Amount:        amount,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
