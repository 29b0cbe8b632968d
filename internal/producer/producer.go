// Package producer polls a Postgres-backed jobs table and feeds ready rows
// into a jobcache.JobCache, releasing the row lock on anything the cache
// evicts back.
package producer

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Andrej220/go-utils/jobcache"
	"github.com/Andrej220/go-utils/jobcache/internal/telemetry"
)

// Producer polls a jobs table on an interval, previews admission with
// cache.Accept before locking rows, then locks and pushes exactly the
// admitted subset.
type Producer struct {
	db    *sql.DB
	cache *jobcache.JobCache

	queue        string
	pollInterval time.Duration
	batchSize    int
}

// Open connects to databaseURL (a postgres:// DSN) and returns a Producer
// that will poll queue on interval for up to batchSize rows per poll.
func Open(databaseURL string, cache *jobcache.JobCache, queue string, interval time.Duration, batchSize int) (*Producer, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("producer: opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("producer: pinging database: %w", err)
	}
	return &Producer{
		db:           db,
		cache:        cache,
		queue:        queue,
		pollInterval: interval,
		batchSize:    batchSize,
	}, nil
}

// Close releases the underlying database connection pool.
func (p *Producer) Close() error { return p.db.Close() }

// Run polls until ctx is canceled or the cache stops, whichever comes
// first. Each poll only fires when the cache reports it needs jobs, so an
// idle cache doesn't churn empty round trips to the database.
func (p *Producer) Run(ctx context.Context) error {
	logger := telemetry.FromContext(ctx).With(telemetry.String("queue", p.queue))
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if p.cache.Stopping() {
				return nil
			}
			if !p.cache.JobsNeeded() {
				continue
			}
			if err := p.poll(ctx); err != nil {
				logger.Error("poll failed", telemetry.Any("error", err))
			}
		}
	}
}

// poll fetches up to batchSize available rows, previews which ones the
// cache would actually keep, locks only that subset with FOR UPDATE SKIP
// LOCKED, and pushes them. Anything Push evicts is released immediately so
// another worker (or this producer's next poll) can pick it back up.
func (p *Producer) poll(ctx context.Context) error {
	candidates, err := p.fetchAvailable(ctx)
	if err != nil {
		return fmt.Errorf("fetching available rows: %w", err)
	}
	if len(candidates) == 0 {
		return nil
	}

	metajobs := make([]jobcache.Metajob, len(candidates))
	for i, row := range candidates {
		metajobs[i] = row
	}
	admitted := p.cache.Accept(metajobs...)
	if len(admitted) == 0 {
		return nil
	}

	ids := make([]int64, len(admitted))
	for i, m := range admitted {
		ids[i] = m.ID()
	}
	locked, err := p.lockRows(ctx, ids)
	if err != nil {
		return fmt.Errorf("locking rows: %w", err)
	}
	if len(locked) == 0 {
		return nil
	}

	pushed := make([]jobcache.Metajob, len(locked))
	for i, row := range locked {
		pushed[i] = row
	}
	evicted := p.cache.Push(pushed...)
	if len(evicted) == 0 {
		return nil
	}
	evictedIDs := make([]int64, len(evicted))
	for i, m := range evicted {
		evictedIDs[i] = m.ID()
	}
	return p.unlockRows(ctx, evictedIDs)
}

func (p *Producer) fetchAvailable(ctx context.Context) ([]jobcache.Job, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, priority, run_at, kind, args, attempt FROM jobs
		 WHERE queue = $1 AND status = 'available' AND run_at <= now()
		 ORDER BY priority ASC, run_at ASC LIMIT $2`,
		p.queue, p.batchSize,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []jobcache.Job
	for rows.Next() {
		var j jobcache.Job
		j.Queue = p.queue
		if err := rows.Scan(&j.IDValue, &j.PriorityValue, &j.RunAtValue, &j.Kind, &j.Args, &j.Attempt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (p *Producer) lockRows(ctx context.Context, ids []int64) ([]jobcache.Job, error) {
	rows, err := p.db.QueryContext(ctx,
		`UPDATE jobs SET status = 'locked'
		 WHERE id = ANY($1) AND status = 'available'
		 AND id IN (SELECT id FROM jobs WHERE id = ANY($1) FOR UPDATE SKIP LOCKED)
		 RETURNING id, priority, run_at, kind, args, attempt`,
		int64ArrayParam(ids),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []jobcache.Job
	for rows.Next() {
		var j jobcache.Job
		j.Queue = p.queue
		if err := rows.Scan(&j.IDValue, &j.PriorityValue, &j.RunAtValue, &j.Kind, &j.Args, &j.Attempt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (p *Producer) unlockRows(ctx context.Context, ids []int64) error {
	_, err := p.db.ExecContext(ctx,
		`UPDATE jobs SET status = 'available' WHERE id = ANY($1) AND status = 'locked'`,
		int64ArrayParam(ids),
	)
	return err
}

func int64ArrayParam(ids []int64) any {
	return pq.Array(ids)
}
