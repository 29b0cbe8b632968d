// Package metrics exposes JobCache and worker pool activity as Prometheus
// metrics.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Andrej220/go-utils/jobcache"
)

// Collector samples a JobCache on an interval and exposes its size, spare
// capacity, and refill state as gauges, plus running totals for jobs
// executed and failed by the worker pool.
type Collector struct {
	size       prometheus.Gauge
	space      prometheus.Gauge
	jobsNeeded prometheus.Gauge

	executed prometheus.Counter
	failed   prometheus.Counter
}

// NewCollector builds a Collector and registers its metrics against reg.
// Pass prometheus.DefaultRegisterer for the global registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jobcache_size",
			Help: "Number of jobs currently held in the cache.",
		}),
		space: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jobcache_space",
			Help: "Jobs the cache could still usefully absorb, including any-threshold waiters.",
		}),
		jobsNeeded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jobcache_jobs_needed",
			Help: "1 if the cache is below minimum_size and a producer should top it up, else 0.",
		}),
		executed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobcache_worker_jobs_executed_total",
			Help: "Total number of jobs the worker pool completed without error.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobcache_worker_jobs_failed_total",
			Help: "Total number of jobs the worker pool abandoned after exhausting retries.",
		}),
	}
	reg.MustRegister(c.size, c.space, c.jobsNeeded, c.executed, c.failed)
	return c
}

// IncExecuted implements workerpool.MetricsPolicy.
func (c *Collector) IncExecuted() { c.executed.Inc() }

// IncFailed implements workerpool.MetricsPolicy.
func (c *Collector) IncFailed() { c.failed.Inc() }

// Sample runs until ctx is canceled, refreshing the cache gauges every
// interval.
func (c *Collector) Sample(ctx context.Context, cache *jobcache.JobCache, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.size.Set(float64(cache.Size()))
			c.space.Set(float64(cache.Space()))
			if cache.JobsNeeded() {
				c.jobsNeeded.Set(1)
			} else {
				c.jobsNeeded.Set(0)
			}
		}
	}
}

// Handler returns the /metrics HTTP handler for a Prometheus scraper.
func Handler() http.Handler { return promhttp.Handler() }
