package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/AntonStoeckl/library-circulation-go/library/features/query/overdueloans"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/config"
)

type overdueLoansHandler = shell.QueryHandler[overdueloans.Query, overdueloans.OverdueLoans]

// overdueScanner runs the overdue loans query on a cron schedule and logs what it finds.
type overdueScanner struct {
	handler overdueLoansHandler
	now     func() time.Time
	logger  shell.Logger
}

// start schedules the scan. The returned scheduler must be stopped by the caller.
func (s overdueScanner) start(ctx context.Context, schedule string) (*cron.Cron, error) {
	scheduler := cron.New()

	_, err := scheduler.AddFunc(schedule, func() {
		_, _ = s.scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: overdue scan schedule %q: %w", config.ErrInvalidSetting, schedule, err)
	}

	scheduler.Start()

	return scheduler, nil
}

// scan runs the query once at the current instant and logs one warning per overdue loan.
func (s overdueScanner) scan(ctx context.Context) (overdueloans.OverdueLoans, error) {
	result, err := s.handler.Handle(ctx, overdueloans.BuildQuery(s.now()))
	if err != nil {
		s.logger.Error("overdue scan failed", "error", err.Error())
		return overdueloans.OverdueLoans{}, err
	}

	for _, loan := range result.Loans {
		s.logger.Warn("loan overdue",
			"patron_id", loan.Record.PatronID,
			"book_id", loan.Record.BookID,
			"due_date", loan.Record.DueDate.Format(dateLayout),
			"days_overdue", loan.Fee.DaysOverdue,
			"fee_amount", money(loan.Fee.FeeAmount),
		)
	}

	s.logger.Info("overdue scan completed",
		"overdue_loans", result.Count,
		"total_late_fees", money(result.TotalLateFees),
	)

	return result, nil
}

// stopScheduler stops the scheduler and waits for a running scan to finish.
func stopScheduler(scheduler *cron.Cron) {
	<-scheduler.Stop().Done()
}
