// Package latefee implements the Late Fee query use case.
//
// It quotes the fee a patron owes for one outstanding loan at a given instant.
// A loan that can't be found is answered with a quote of zero rather than an error.
package latefee
