// Package observable provides wrappers that instrument command and query handlers
// with metrics, tracing and logging while keeping the handlers themselves free of it.
//
// Wrappers are applied explicitly at wiring time:
//
//	coreHandler := borrowbook.NewCommandHandler(store)
//
//	handler, err := observable.NewCommandWrapper[borrowbook.Command, borrowbook.Result](
//		coreHandler,
//		observable.WithCommandMetrics[borrowbook.Command, borrowbook.Result](metricsCollector),
//		observable.WithCommandTracing[borrowbook.Command, borrowbook.Result](tracingCollector),
//		observable.WithCommandContextualLogging[borrowbook.Command, borrowbook.Result](contextualLogger),
//	)
//
// Every call gets a correlation id (kept if the context already carries one) that
// shows up in the log records and span attributes. The business outcome is derived
// from the returned error with shell.ClassifyOutcome, so a declined payment is
// reported as "declined" and not as a technical failure.
//
// For unit tests of business logic use the handlers directly, without any wrapper.
package observable
