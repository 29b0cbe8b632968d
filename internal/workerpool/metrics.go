package workerpool

import (
	"sync/atomic"
)

// MetricsPolicy defines hooks used by the worker pool to report execution
// activity. Queue-depth metrics live against the JobCache directly (see
// internal/metrics), since the pool no longer owns a queue of its own.
//
// Implementations must be safe for concurrent use.
// All methods are expected to be lightweight and non-blocking.
type MetricsPolicy interface {
	// IncExecuted increments the successfully executed jobs counter.
	IncExecuted()

	// IncFailed increments the permanently failed jobs counter.
	IncFailed()
}

// AtomicMetrics is a lock-free MetricsPolicy backed by atomics. It is the
// Pool's default MetricsPolicy, so execution/failure counts are always
// available through Pool.Metrics even when the caller doesn't wire in
// something like a Prometheus collector.
type AtomicMetrics struct {
	executed atomic.Uint64
	failed   atomic.Uint64
}

// Executed returns the total number of jobs that completed without error.
func (m *AtomicMetrics) Executed() uint64 { return m.executed.Load() }

// Failed returns the total number of jobs that exhausted their retries.
func (m *AtomicMetrics) Failed() uint64 { return m.failed.Load() }

func (m *AtomicMetrics) IncExecuted() { m.executed.Add(1) }
func (m *AtomicMetrics) IncFailed()   { m.failed.Add(1) }
