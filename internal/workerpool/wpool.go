package workerpool

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Andrej220/go-utils/jobcache"
	"github.com/Andrej220/go-utils/jobcache/internal/telemetry"
)

const (
	defaultAttempts     = 3
	defaultInitialRetry = 200 * time.Millisecond
	defauiltMaxRetry    = 5 * time.Second
)

// Handler executes one job pulled off a JobCache.
type Handler func(ctx context.Context, job jobcache.Metajob) error

// Pool runs a fixed number of workers, each blocking on cache.Shift(threshold)
// for its next job and running it through handle with retry and panic
// recovery. Pool owns no queue of its own: ordering, admission, and blocking
// handoff all live in the JobCache it pulls from. A worker exits for good the
// first time Shift returns false, which happens once the cache is stopped.
type Pool struct {
	cache     *jobcache.JobCache
	threshold jobcache.Threshold
	handle    Handler

	wg            sync.WaitGroup
	activeWorkers atomic.Int32

	defaultRetry RetryPolicy
	metrics      MetricsPolicy
	pinWorkers   bool

	OnInternalError func(error)
	OnJobError      func(error)
}

// NewPool starts opts.Workers goroutines pulling from cache at opts.Threshold
// and running handle for each job. Workers start immediately; call Shutdown
// or Stop once the cache has been stopped to wait for them to drain.
func NewPool(cache *jobcache.JobCache, handle Handler, opts Options) *Pool {
	opts.FillDefaults()

	p := &Pool{
		cache:        cache,
		threshold:    opts.Threshold,
		handle:       handle,
		defaultRetry: opts.RetryPolicy,
		metrics:      opts.Metrics,
		pinWorkers:   opts.PinWorkers,

		OnInternalError: opts.OnInternalError,
		OnJobError:      opts.OnJobError,
	}
	if p.metrics == nil {
		p.metrics = &AtomicMetrics{}
	}

	for i := 0; i < opts.Workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	return p
}

// Shutdown waits for every worker to return, which only happens once the
// pool's JobCache has been stopped elsewhere. Pool does not stop the cache
// itself: the cache is typically shared with a producer that also needs to
// observe the stop, so that call belongs to whoever wires the two together.
func (p *Pool) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.wg.Wait()
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop blocks until every worker has drained. Prefer Shutdown when a
// deadline matters.
func (p *Pool) Stop() { _ = p.Shutdown(context.Background()) }

// ActiveWorkers reports how many workers are currently executing a job
// rather than blocked in Shift.
func (p *Pool) ActiveWorkers() int32 { return p.activeWorkers.Load() }

// Metrics returns the pool's MetricsPolicy. Unless Options.Metrics overrides
// it, this is an *AtomicMetrics, so callers can type-assert to read
// Executed/Failed counts without wiring their own collector.
func (p *Pool) Metrics() MetricsPolicy { return p.metrics }

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	if p.pinWorkers {
		// Never unlocked: when the worker exits, the runtime discards the
		// pinned thread instead of reusing it.
		runtime.LockOSThread()
		if err := PinToCPU(id); err != nil {
			p.reportInternalError(err)
		}
	}

	for {
		job, ok := p.cache.Shift(p.threshold)
		if !ok {
			return
		}
		p.activeWorkers.Add(1)
		p.runJob(job)
		p.activeWorkers.Add(-1)
	}
}

func (p *Pool) runJob(job jobcache.Metajob) {
	defer func() {
		if r := recover(); r != nil {
			telemetry.FromContext(context.Background()).Error("job panicked", telemetry.Any("panic", r), telemetry.Any("job_id", job.ID()))
			p.reportJobError(panicError{r})
		}
	}()
	p.execute(context.Background(), job)
}

type panicError struct{ v any }

func (e panicError) Error() string { return fmt.Sprintf("workerpool: job panicked: %v", e.v) }
