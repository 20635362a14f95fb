package jobs

import (
	"context"
	"log/slog"
	"time"

	"mentormatch/internal/service"
)

// ExpirySweepJob periodically expires lapsed reservations and reopens
// offerings that regained capacity.
type ExpirySweepJob struct {
	lifecycle *service.LifecycleService
	interval  time.Duration
	ticker    *time.Ticker
	done      chan bool
}

func NewExpirySweepJob(lifecycle *service.LifecycleService, interval time.Duration) *ExpirySweepJob {
	return &ExpirySweepJob{
		lifecycle: lifecycle,
		interval:  interval,
		done:      make(chan bool),
	}
}

// Start begins the background sweep loop
func (j *ExpirySweepJob) Start(ctx context.Context) {
	slog.Info("Starting expiry sweep job", "interval", j.interval.String())

	j.ticker = time.NewTicker(j.interval)

	// Run initial sweep immediately
	go j.sweep(ctx)

	go func() {
		for {
			select {
			case <-j.ticker.C:
				go j.sweep(ctx)
			case <-j.done:
				slog.Info("Expiry sweep job stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the background job
func (j *ExpirySweepJob) Stop() {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	close(j.done)
}

func (j *ExpirySweepJob) sweep(ctx context.Context) {
	if err := j.lifecycle.RunExpirySweep(ctx); err != nil {
		slog.Error("Expiry sweep failed", "error", err)
	}
}
