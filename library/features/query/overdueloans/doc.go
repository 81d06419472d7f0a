// Package overdueloans implements the Overdue Loans query use case.
//
// It lists every outstanding loan of every patron whose due date has passed at the given instant,
// each with a freshly quoted fee. The scheduled overdue scan of the CLI runs this query.
package overdueloans
