// Package patronstatus implements the Patron Status query use case.
//
// The report is derived from the patron's borrow records only, since there is no patron registry:
// an id that never borrowed anything gets an empty report rather than an error.
// Fees are quoted fresh for every report and never stored.
package patronstatus
