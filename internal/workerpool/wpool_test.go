package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Andrej220/go-utils/jobcache"
)

var fastRetry = RetryPolicy{Attempts: 3, Initial: 5 * time.Millisecond, Max: 10 * time.Millisecond}

func newCache(t *testing.T, maxSize int) *jobcache.JobCache {
	t.Helper()
	c, err := jobcache.New(maxSize, 0, nil)
	if err != nil {
		t.Fatalf("jobcache.New: %v", err)
	}
	return c
}

func TestJobSuccess(t *testing.T) {
	cache := newCache(t, 4)
	done := make(chan struct{})

	p := NewPool(cache, func(ctx context.Context, job jobcache.Metajob) error {
		close(done)
		return nil
	}, Options{Workers: 2, Threshold: jobcache.AnyThreshold(), RetryPolicy: fastRetry})

	cache.Push(jobcache.Job{IDValue: 1, PriorityValue: 1})

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not complete")
	}

	cache.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := p.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if got := p.ActiveWorkers(); got != 0 {
		t.Fatalf("active workers = %d; want 0", got)
	}
}

func TestRetryThenSuccess(t *testing.T) {
	cache := newCache(t, 4)
	var attempts int32
	done := make(chan struct{})

	p := NewPool(cache, func(ctx context.Context, job jobcache.Metajob) error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errors.New("fail")
		}
		close(done)
		return nil
	}, Options{Workers: 1, Threshold: jobcache.AnyThreshold(),
		RetryPolicy: RetryPolicy{Attempts: 3, Initial: 2 * time.Millisecond, Max: 5 * time.Millisecond}})

	cache.Push(jobcache.Job{IDValue: 42, PriorityValue: 1})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not succeed after retries")
	}

	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Fatalf("attempts = %d; want 3", got)
	}
	cache.Stop()
	p.Stop()
}

func TestShutdownWaitsForActiveJob(t *testing.T) {
	cache := newCache(t, 4)
	started := make(chan struct{})
	release := make(chan struct{})

	p := NewPool(cache, func(ctx context.Context, job jobcache.Metajob) error {
		close(started)
		<-release
		return nil
	}, Options{Workers: 1, Threshold: jobcache.AnyThreshold(), RetryPolicy: fastRetry})

	cache.Push(jobcache.Job{IDValue: 1, PriorityValue: 1})
	<-started
	cache.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := p.Shutdown(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Shutdown err = %v; want deadline exceeded while job is still running", err)
	}

	close(release)
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("second Shutdown err = %v; want nil", err)
	}
}

func TestWorkerExitsWhenCacheStops(t *testing.T) {
	cache := newCache(t, 4)
	p := NewPool(cache, func(ctx context.Context, job jobcache.Metajob) error { return nil },
		Options{Workers: 3, Threshold: jobcache.AnyThreshold(), RetryPolicy: fastRetry})

	cache.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := p.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown err = %v; want workers to exit once the cache stops", err)
	}
}

func TestPanicRecoveryAndCleanup(t *testing.T) {
	cache := newCache(t, 4)
	var mu sync.Mutex
	var errs []error
	secondDone := make(chan struct{})

	p := NewPool(cache, func(ctx context.Context, job jobcache.Metajob) error {
		j := job.(jobcache.Job)
		if j.IDValue == 1 {
			panic("boom")
		}
		close(secondDone)
		return nil
	}, Options{
		Workers:     1,
		Threshold:   jobcache.AnyThreshold(),
		RetryPolicy: RetryPolicy{Attempts: 1, Initial: time.Millisecond, Max: time.Millisecond},
		OnJobError: func(err error) {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		},
	})

	cache.Push(jobcache.Job{IDValue: 1, PriorityValue: 1}, jobcache.Job{IDValue: 2, PriorityValue: 1})

	select {
	case <-secondDone:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("second job did not run after first panicked")
	}

	cache.Stop()
	p.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(errs) != 1 {
		t.Fatalf("reported errors = %v; want exactly one panic report", errs)
	}
}
