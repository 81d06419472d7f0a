// Package paylatefee implements the Pay Late Fee use case.
//
// The fee owed for an outstanding loan is quoted at the instant the command occurred at
// and charged through the payment gateway. Malformed patron ids and loans without a fee
// never reach the gateway. Gateway faults (transport errors, panics, timeouts) are turned
// into ErrPaymentProcessing, declines into ErrPaymentDeclined.
//
// Payments are not retried: a timed out call may still have been charged by the gateway.
package paylatefee
