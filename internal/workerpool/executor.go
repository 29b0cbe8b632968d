package workerpool

import (
	"context"
	"time"

	boff "github.com/Andrej220/go-utils/backoff"

	"github.com/Andrej220/go-utils/jobcache"
	"github.com/Andrej220/go-utils/jobcache/internal/telemetry"
)

// execute runs handle against job with retry and exponential backoff,
// stopping early if ctx is canceled while parked between attempts.
func (p *Pool) execute(ctx context.Context, job jobcache.Metajob) {
	logger := telemetry.FromContext(ctx).With(telemetry.Any("job_id", job.ID()), telemetry.Int("priority", job.Priority()))
	logger.Info("worker processing job", telemetry.Int32("active_workers", p.activeWorkers.Load()))

	pol := p.defaultRetry
	bo := boff.New(pol.Initial, pol.Max, time.Now().UnixNano())

	for attempt := 1; attempt <= pol.Attempts; attempt++ {
		err := p.handle(ctx, job)
		if err == nil {
			p.metrics.IncExecuted()
			logger.Info("worker finished", telemetry.Int32("active_workers", p.activeWorkers.Load()))
			return
		}
		if attempt == pol.Attempts {
			p.metrics.IncFailed()
			logger.Error("job failed permanently", telemetry.Int("attempt", attempt), telemetry.Any("error", err))
			p.reportJobError(err)
			return
		}

		delay := bo.Next()
		logger.Warn("job attempt failed; backing off",
			telemetry.Int("attempt", attempt),
			telemetry.String("sleep", delay.String()),
			telemetry.Any("error", err),
		)
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			logger.Info("job canceled", telemetry.Any("reason", ctx.Err()))
			return
		}
	}
}
