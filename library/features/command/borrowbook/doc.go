// Package borrowbook implements the Borrow Book use case.
//
// A patron borrows one copy of a catalog book for the loan period of 14 days.
// The business rules live in Validate and Decide, both pure functions. The CommandHandler
// gathers the state they need from the record store and writes the new borrow record
// and the decremented availability in one scoped transaction.
package borrowbook
