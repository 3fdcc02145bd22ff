package jobs

import (
	"context"
	"log/slog"

	"bundletrack/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderActivitySweepJob periodically re-evaluates the activity flag of every
// active cut order. The per-action refresh after a bundle mutation is best
// effort; this sweep is the safety net that catches orders whose refresh was
// skipped or failed.
type OrderActivitySweepJob struct {
	handler commands.SweepOrderActivityCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderActivitySweepJob creates a new job for sweeping order activity.
// Uses SweepOrderActivityCommandHandler to process the sweep every minute.
func NewOrderActivitySweepJob(handler commands.SweepOrderActivityCommandHandler, logger *slog.Logger) *OrderActivitySweepJob {
	return &OrderActivitySweepJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "order_activity_sweep_job"),
	}
}

// Start begins the sweep job to run every minute.
func (j *OrderActivitySweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewSweepOrderActivityCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Order activity sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order activity sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *OrderActivitySweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order activity sweep job stopped")
}
