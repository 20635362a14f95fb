package jobs

import (
	"context"
	"log/slog"
	"time"

	"mentormatch/internal/service"
)

// StatusReconcileJob keeps offering activity and availability flags in
// line with the clock and the committed seat counts.
type StatusReconcileJob struct {
	lifecycle *service.LifecycleService
	interval  time.Duration
	ticker    *time.Ticker
	done      chan bool
}

func NewStatusReconcileJob(lifecycle *service.LifecycleService, interval time.Duration) *StatusReconcileJob {
	return &StatusReconcileJob{
		lifecycle: lifecycle,
		interval:  interval,
		done:      make(chan bool),
	}
}

// Start begins the background reconcile loop
func (j *StatusReconcileJob) Start(ctx context.Context) {
	slog.Info("Starting status reconcile job", "interval", j.interval.String())

	j.ticker = time.NewTicker(j.interval)

	go j.reconcile(ctx)

	go func() {
		for {
			select {
			case <-j.ticker.C:
				go j.reconcile(ctx)
			case <-j.done:
				slog.Info("Status reconcile job stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the background job
func (j *StatusReconcileJob) Stop() {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	close(j.done)
}

func (j *StatusReconcileJob) reconcile(ctx context.Context) {
	if err := j.lifecycle.RunStatusReconciliation(ctx); err != nil {
		slog.Error("Status reconciliation failed", "error", err)
	}
}
