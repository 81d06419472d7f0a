// Package refundlatefee implements the Refund Late Fee use case.
//
// A refund targets a gateway transaction id and an amount that must be positive and
// must not exceed the maximum late fee. Requests failing these checks never reach the gateway.
package refundlatefee
