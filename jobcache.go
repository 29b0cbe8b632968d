package jobcache

import (
	"sort"
	"sync"
)

// JobCache is a bounded, priority-ordered, multi-consumer job buffer. It
// sits between a producer that fetches ready-to-run jobs from durable
// storage and a pool of workers that execute them: producers preview with
// Accept and enqueue with Push; workers block on Shift until an eligible
// job is available or the cache is stopped.
//
// JobCache performs no I/O and never allocates outside the region it holds
// its lock. A single mutex guards store, waiters, and stopping; Push hands
// jobs directly to the most tolerant eligible waiter before broadcasting,
// so parked goroutines that aren't the chosen recipient simply re-check and
// go back to sleep rather than stampede the store.
//
// A JobCache is created running and transitions once, irreversibly, to
// stopped via Stop. It is not reusable afterward.
type JobCache struct {
	mu   sync.Mutex
	cond *sync.Cond

	maximumSize int
	minimumSize int

	store    *sortedStore
	waiters  *waiterList
	stopping bool
}

// New constructs a JobCache. priorities is accepted as a label only: it is
// not used to size the waiter registry (which grows on demand), and it does
// not restrict which thresholds Shift may later accept.
func New(maximumSize, minimumSize int, priorities []Threshold) (*JobCache, error) {
	if maximumSize <= 0 {
		return nil, ErrMaxSizeTooSmall
	}
	if minimumSize < 0 {
		return nil, ErrMinSizeNegative
	}
	if minimumSize > maximumSize {
		return nil, errMinExceedsMax(minimumSize, maximumSize)
	}

	c := &JobCache{
		maximumSize: maximumSize,
		minimumSize: minimumSize,
		store:       newSortedStore(maximumSize),
		waiters:     newWaiterList(),
	}
	_ = priorities // labels only; waiter registry grows on demand regardless
	c.cond = sync.NewCond(&c.mu)
	return c, nil
}

// Push atomically merges jobs into the cache, evicts the least important
// entries down to maximum_size if capacity was exceeded, and hands off as
// many of the remaining entries as possible to eligible parked waiters. It
// returns the evicted jobs, sorted ascending by sort key, so the caller can
// release whatever durable lock it took on them. If the cache is stopping,
// none of jobs are admitted: Push returns them all, sorted, as "evicted".
func (c *JobCache) Push(jobs ...Metajob) []Metajob {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopping {
		return sortedCopy(jobs)
	}

	for _, j := range jobs {
		c.store.insert(j)
	}

	var evicted []Metajob
	for c.store.len() > c.maximumSize {
		max, _ := c.store.popMax()
		evicted = append(evicted, max)
	}
	// popMax yields the largest remaining each time, so evicted came out
	// non-increasing; flip it to the ascending order callers expect.
	reverseMetajobs(evicted)

	c.deliverToWaiters()

	c.cond.Broadcast()
	return evicted
}

// deliverToWaiters hands the store's smallest job to the parked waiter with
// the highest threshold that still dominates it, repeating until either the
// store is empty or the most tolerant remaining waiter can't take the
// current minimum (in which case none of the less tolerant ones can either,
// since thresholds only get stricter from there). Caller must hold c.mu.
func (c *JobCache) deliverToWaiters() {
	for {
		w, ok := c.waiters.highest()
		if !ok {
			return
		}
		job, ok := c.store.peekMin()
		if !ok {
			return
		}
		if !w.threshold.satisfies(job.Priority()) {
			return
		}
		c.store.popMin()
		c.waiters.removeHighest()
		w.job = job
	}
}

// Accept previews Push without mutating any state. It returns the subset of
// jobs that would be retained if Push were called right now, sorted
// ascending. While stopping, Accept returns jobs unchanged (sorted) rather
// than empty, so a producer keeps treating the cache as full instead of
// trying to force more work through a cache that is shutting down.
func (c *JobCache) Accept(jobs ...Metajob) []Metajob {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopping {
		return sortedCopy(jobs)
	}

	type tagged struct {
		job      Metajob
		fromArgs bool
	}
	existing := c.store.snapshot()
	merged := make([]tagged, 0, len(existing)+len(jobs))
	for _, j := range existing {
		merged = append(merged, tagged{job: j})
	}
	for _, j := range jobs {
		merged = append(merged, tagged{job: j, fromArgs: true})
	}
	sort.Slice(merged, func(i, j int) bool {
		return sortKeyLess(merged[i].job, merged[j].job)
	})

	if len(merged) > c.maximumSize {
		merged = merged[:c.maximumSize]
	}

	admitted := make([]Metajob, 0, len(jobs))
	for _, t := range merged {
		if t.fromArgs {
			admitted = append(admitted, t.job)
		}
	}
	return admitted
}

// Shift blocks until a job whose priority satisfies threshold is available,
// or the cache stops. A false second return means the cache is done: the
// caller should exit its worker loop.
func (c *JobCache) Shift(threshold Threshold) (Metajob, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopping {
		return nil, false
	}
	if job, ok := c.store.peekMin(); ok && threshold.satisfies(job.Priority()) {
		c.store.popMin()
		return job, true
	}

	w := c.waiters.register(threshold)
	for {
		c.cond.Wait()

		if c.stopping {
			c.waiters.remove(w)
			return nil, false
		}
		if w.job != nil {
			return w.job, true
		}
		if job, ok := c.store.peekMin(); ok && threshold.satisfies(job.Priority()) {
			c.store.popMin()
			c.waiters.remove(w)
			return job, true
		}
		// spurious wakeup or a broadcast meant for someone else; keep waiting
	}
}

// Stop latches the cache into its terminal state and wakes every waiter.
// It is idempotent. After Stop, Push rejects everything, Shift returns
// false immediately, and Accept keeps echoing its input; Clear still
// drains whatever is left in the store.
func (c *JobCache) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopping {
		return
	}
	c.stopping = true
	c.cond.Broadcast()
}

// Size returns the number of jobs currently held.
func (c *JobCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.len()
}

// Space reports how many jobs the cache could still usefully absorb: free
// slots plus one per parked any-threshold waiter, so a polling producer
// knows to over-fetch for idle workers that will take anything.
func (c *JobCache) Space() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	free := c.maximumSize - c.store.len()
	if free < 0 {
		free = 0
	}
	return free + c.waiters.countAny()
}

// JobsNeeded reports whether the store has fallen below minimum_size and a
// producer should top it up.
func (c *JobCache) JobsNeeded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.len() < c.minimumSize
}

// Stopping reports whether Stop has been called.
func (c *JobCache) Stopping() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopping
}

// ToA returns a freshly allocated, ascending snapshot of the store's
// contents. Each call returns a distinct slice.
func (c *JobCache) ToA() []Metajob {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.snapshot()
}

// Clear empties the store and returns everything it held, ascending. It
// works even after Stop.
func (c *JobCache) Clear() []Metajob {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.drain()
}

// sortedCopy returns a freshly allocated, ascending copy of jobs.
func sortedCopy(jobs []Metajob) []Metajob {
	out := make([]Metajob, len(jobs))
	copy(out, jobs)
	sortMetajobs(out)
	return out
}
