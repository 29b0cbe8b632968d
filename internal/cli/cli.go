// Package cli wires jobcached's Cobra command tree: run starts the cache,
// producer, worker pool, and metrics server; status reports the current
// config without starting anything.
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/Andrej220/go-utils/jobcache"
	"github.com/Andrej220/go-utils/jobcache/internal/config"
	"github.com/Andrej220/go-utils/jobcache/internal/metrics"
	"github.com/Andrej220/go-utils/jobcache/internal/producer"
	"github.com/Andrej220/go-utils/jobcache/internal/workerpool"
)

var configFile string

// BuildCLI assembles the jobcached root command.
func BuildCLI() *cobra.Command {
	root := &cobra.Command{
		Use:     "jobcached",
		Short:   "Bounded priority job cache with a Postgres producer and worker pool",
		Version: "0.1.0",
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "optional YAML config overlay path")

	root.AddCommand(buildRunCommand())
	root.AddCommand(buildStatusCommand())
	return root
}

func buildRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the cache, producer, and worker pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
}

func buildStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the resolved configuration and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			fmt.Printf("cache: maximum_size=%d minimum_size=%d\n", cfg.Cache.MaximumSize, cfg.Cache.MinimumSize)
			fmt.Printf("worker: count=%d pin_workers=%v\n", cfg.Worker.Count, cfg.Worker.PinWorkers)
			fmt.Printf("producer: queue=%q poll_interval=%s batch_size=%d\n", cfg.Producer.Queue, cfg.Producer.PollInterval, cfg.Producer.BatchSize)
			fmt.Printf("metrics: enabled=%v addr=%s\n", cfg.Metrics.Enabled, cfg.Metrics.Addr)
			return nil
		},
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cache, err := jobcache.New(cfg.Cache.MaximumSize, cfg.Cache.MinimumSize, nil)
	if err != nil {
		return fmt.Errorf("constructing cache: %w", err)
	}

	prod, err := producer.Open(cfg.Producer.DatabaseURL, cache, cfg.Producer.Queue, cfg.Producer.PollInterval, cfg.Producer.BatchSize)
	if err != nil {
		return fmt.Errorf("starting producer: %w", err)
	}
	defer prod.Close()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := prod.Run(runCtx); err != nil && err != context.Canceled {
			fmt.Fprintf(os.Stderr, "producer stopped: %v\n", err)
		}
	}()

	threshold := jobcache.AnyThreshold()
	if !cfg.Worker.ThresholdIsAny {
		threshold = jobcache.Bounded(cfg.Worker.Threshold)
	}

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(prometheus.DefaultRegisterer)
	}

	poolOpts := workerpool.Options{
		Workers:   cfg.Worker.Count,
		Threshold: threshold,
		RetryPolicy: workerpool.RetryPolicy{
			Attempts: cfg.Worker.RetryAttempts,
			Initial:  cfg.Worker.RetryInitial,
			Max:      cfg.Worker.RetryMax,
		},
		PinWorkers: cfg.Worker.PinWorkers,
	}
	if collector != nil {
		poolOpts.Metrics = collector
	}

	pool := workerpool.NewPool(cache, executeJob, poolOpts)

	if cfg.Metrics.Enabled {
		go func() {
			go collector.Sample(runCtx, cache, cfg.Metrics.Interval)
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				fmt.Fprintf(os.Stderr, "metrics server stopped: %v\n", err)
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	fmt.Println("shutting down")

	cache.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	return pool.Shutdown(shutdownCtx)
}

// executeJob is the default job handler: it just acknowledges the job. A
// real deployment would dispatch on job.(jobcache.Job).Kind and run the
// matching business logic.
func executeJob(ctx context.Context, job jobcache.Metajob) error {
	_ = ctx
	_ = job
	return nil
}
