package paymentgateway

import (
	"strings"
)

// TransactionIDPrefix marks every transaction id issued by a gateway.
const TransactionIDPrefix = "txn_"

// PaymentOutcome is the gateway's answer to a payment request.
// TransactionID is empty unless Approved is true.
type PaymentOutcome struct {
	Approved      bool
	TransactionID string
	Message       string
}

// RefundOutcome is the gateway's answer to a refund request.
type RefundOutcome struct {
	Approved bool
	Message  string
}

// IsTransactionID reports whether id looks like a gateway-issued transaction id.
func IsTransactionID(id string) bool {
	return strings.HasPrefix(id, TransactionIDPrefix) && len(id) > len(TransactionIDPrefix)
}
