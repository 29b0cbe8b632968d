package jobcache

import "sort"

// waiter is a parked consumer's registration. It is created by Shift when no
// job is immediately eligible, and lives in the JobCache's waiter registry
// until Push delivers a job to it directly, or it removes itself again
// after seeing the cache stop or taking an eligible job from the store. A
// spurious wakeup leaves it registered.
type waiter struct {
	threshold Threshold
	job       Metajob // set by Push when a job is handed to this waiter directly
}

// waiterList is the cache's ordered set of parked consumers, kept ascending
// by threshold rank so the highest (most tolerant) threshold that still
// dominates a candidate job's priority is always the last element. Like
// sortedStore, it is not itself safe for concurrent use.
type waiterList struct {
	entries []*waiter
}

func newWaiterList() *waiterList {
	return &waiterList{}
}

// len returns the number of currently parked waiters.
func (w *waiterList) len() int { return len(w.entries) }

// countAny returns how many parked waiters hold the "any priority"
// threshold; JobCache.Space folds this into its over-fetch hint.
func (w *waiterList) countAny() int {
	n := 0
	for _, e := range w.entries {
		if e.threshold.IsAny() {
			n++
		}
	}
	return n
}

// register parks a new waiter with the given threshold and returns its
// handle. The handle stays valid until the waiter is removed.
func (w *waiterList) register(threshold Threshold) *waiter {
	e := &waiter{threshold: threshold}
	rank := threshold.rank()
	i := sort.Search(len(w.entries), func(i int) bool {
		return w.entries[i].threshold.rank() >= rank
	})
	w.entries = append(w.entries, nil)
	copy(w.entries[i+1:], w.entries[i:])
	w.entries[i] = e
	return e
}

// remove drops target from the registry, if still present. It is a no-op if
// the waiter was already removed (e.g. by a prior delivery).
func (w *waiterList) remove(target *waiter) {
	for i, e := range w.entries {
		if e == target {
			w.entries = append(w.entries[:i], w.entries[i+1:]...)
			return
		}
	}
}

// highest returns the parked waiter with the greatest threshold rank
// without removing it.
func (w *waiterList) highest() (*waiter, bool) {
	n := len(w.entries)
	if n == 0 {
		return nil, false
	}
	return w.entries[n-1], true
}

// removeHighest drops and returns the waiter with the greatest threshold
// rank.
func (w *waiterList) removeHighest() (*waiter, bool) {
	n := len(w.entries)
	if n == 0 {
		return nil, false
	}
	e := w.entries[n-1]
	w.entries[n-1] = nil
	w.entries = w.entries[:n-1]
	return e, true
}
