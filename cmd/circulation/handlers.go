package main

import (
	"fmt"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/paylatefee"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/refundlatefee"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/bookcatalog"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/latefee"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/overdueloans"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/patronstatus"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/searchbooks"
	"github.com/AntonStoeckl/library-circulation-go/library/httpapi"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/observable"
	"github.com/AntonStoeckl/library-circulation-go/paymentgateway"
)

// Gateway is the payment gateway capability of the paying and refunding features.
type Gateway interface {
	paylatefee.PaymentProcessor
	refundlatefee.RefundProcessor
}

// newHandlers creates every feature handler wrapped with observability.
func newHandlers(store RecordStore, gateway Gateway, gatewayTimeout time.Duration, obs Observability) (httpapi.Handlers, error) {
	var handlers httpapi.Handlers
	var err error

	if handlers.AddBook, err = wrapCommand[addbook.Command, addbook.Result](addbook.NewCommandHandler(store), obs); err != nil {
		return httpapi.Handlers{}, err
	}

	if handlers.BorrowBook, err = wrapCommand[borrowbook.Command, borrowbook.Result](borrowbook.NewCommandHandler(store), obs); err != nil {
		return httpapi.Handlers{}, err
	}

	if handlers.ReturnBook, err = wrapCommand[returnbook.Command, returnbook.Result](returnbook.NewCommandHandler(store), obs); err != nil {
		return httpapi.Handlers{}, err
	}

	payLateFee := paylatefee.NewCommandHandler(store, gateway, paylatefee.WithGatewayTimeout(gatewayTimeout))
	if handlers.PayLateFee, err = wrapCommand[paylatefee.Command, paylatefee.Result](payLateFee, obs); err != nil {
		return httpapi.Handlers{}, err
	}

	refundLateFee := refundlatefee.NewCommandHandler(gateway, refundlatefee.WithGatewayTimeout(gatewayTimeout))
	if handlers.RefundLateFee, err = wrapCommand[refundlatefee.Command, refundlatefee.Result](refundLateFee, obs); err != nil {
		return httpapi.Handlers{}, err
	}

	if handlers.LateFee, err = wrapQuery[latefee.Query, core.FeeQuote](latefee.NewQueryHandler(store), obs); err != nil {
		return httpapi.Handlers{}, err
	}

	if handlers.SearchBooks, err = wrapQuery[searchbooks.Query, searchbooks.SearchResult](searchbooks.NewQueryHandler(store), obs); err != nil {
		return httpapi.Handlers{}, err
	}

	if handlers.BookCatalog, err = wrapQuery[bookcatalog.Query, bookcatalog.Catalog](bookcatalog.NewQueryHandler(store), obs); err != nil {
		return httpapi.Handlers{}, err
	}

	if handlers.PatronStatus, err = wrapQuery[patronstatus.Query, patronstatus.Report](patronstatus.NewQueryHandler(store), obs); err != nil {
		return httpapi.Handlers{}, err
	}

	if handlers.OverdueLoans, err = wrapQuery[overdueloans.Query, overdueloans.OverdueLoans](overdueloans.NewQueryHandler(store), obs); err != nil {
		return httpapi.Handlers{}, err
	}

	return handlers, nil
}

func wrapCommand[C shell.Command, R any](handler shell.CommandHandler[C, R], obs Observability) (shell.CommandHandler[C, R], error) {
	wrapper, err := observable.NewCommandWrapper(handler,
		observable.WithCommandLogging[C, R](obs.Logger),
		observable.WithCommandContextualLogging[C, R](obs.ContextualLogger),
		observable.WithCommandMetrics[C, R](obs.MetricsCollector),
		observable.WithCommandTracing[C, R](obs.TracingCollector),
	)
	if err != nil {
		var zero C
		return nil, fmt.Errorf("failed to create %s handler: %w", zero.CommandType(), err)
	}

	return wrapper, nil
}

func wrapQuery[Q shell.Query, R any](handler shell.QueryHandler[Q, R], obs Observability) (shell.QueryHandler[Q, R], error) {
	wrapper, err := observable.NewQueryWrapper(handler,
		observable.WithQueryLogging[Q, R](obs.Logger),
		observable.WithQueryContextualLogging[Q, R](obs.ContextualLogger),
		observable.WithQueryMetrics[Q, R](obs.MetricsCollector),
		observable.WithQueryTracing[Q, R](obs.TracingCollector),
	)
	if err != nil {
		var zero Q
		return nil, fmt.Errorf("failed to create %s handler: %w", zero.QueryType(), err)
	}

	return wrapper, nil
}

// newGateway returns the simulated payment gateway used until a real provider is integrated.
func newGateway() Gateway {
	return paymentgateway.NewSimulated()
}
