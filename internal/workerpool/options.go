package workerpool

import (
	"runtime"

	"github.com/Andrej220/go-utils/jobcache"
)

// Options configure a worker Pool. FillDefaults replaces a non-positive
// Workers and non-positive RetryPolicy fields with defaults; NewPool
// substitutes an *AtomicMetrics for a nil Metrics. Threshold has no useful
// zero value (its zero value is Bounded(0), which accepts only negative
// priorities), so callers must set it explicitly.
type Options struct {
	// Workers is how many goroutines pull from the cache concurrently.
	Workers int

	// Threshold is passed to every Shift call a worker makes.
	Threshold jobcache.Threshold

	RetryPolicy RetryPolicy
	Metrics     MetricsPolicy

	// PinWorkers locks each worker goroutine's OS thread to a distinct CPU.
	// Only takes effect on linux; see affinity.go.
	PinWorkers bool

	OnInternalError func(error)
	OnJobError      func(error)
}

func (o *Options) FillDefaults() {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	def := GetDefaultRP()
	if o.RetryPolicy.Attempts <= 0 {
		o.RetryPolicy.Attempts = def.Attempts
	}
	if o.RetryPolicy.Initial <= 0 {
		o.RetryPolicy.Initial = def.Initial
	}
	if o.RetryPolicy.Max <= 0 {
		o.RetryPolicy.Max = def.Max
	}
}
