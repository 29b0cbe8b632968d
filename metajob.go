package jobcache

import "time"

// Metajob is the read-only view of a durable job row that the cache orders
// and hands out. Everything the cache does is driven by three fields:
// Priority, RunAt, and ID. Callers are free to carry additional payload on
// their own concrete type; the cache never looks past the three accessors
// below.
//
// Lower Priority is more important. Lower RunAt is more important. Lower ID
// is the final tiebreak. The triple forms a total order, and since ID is
// expected to be globally unique in practice, no two distinct jobs compare
// equal.
type Metajob interface {
	Priority() int
	RunAt() time.Time
	ID() int64
}

// sortKeyLess reports whether a sorts strictly before b under the cache's
// total order: ascending (Priority, RunAt, ID).
func sortKeyLess(a, b Metajob) bool {
	if a.Priority() != b.Priority() {
		return a.Priority() < b.Priority()
	}
	if !a.RunAt().Equal(b.RunAt()) {
		return a.RunAt().Before(b.RunAt())
	}
	return a.ID() < b.ID()
}

// sortKeyEqual reports whether a and b share the same sort key.
func sortKeyEqual(a, b Metajob) bool {
	return a.Priority() == b.Priority() && a.RunAt().Equal(b.RunAt()) && a.ID() == b.ID()
}

// Threshold is the maximum priority (exclusive) a consumer will accept from
// Shift. AnyThreshold accepts every priority; a Bounded threshold accepts
// only jobs whose priority is strictly less than the bound.
type Threshold struct {
	any   bool
	bound int
}

// AnyThreshold accepts a job of any priority.
func AnyThreshold() Threshold { return Threshold{any: true} }

// Bounded returns a threshold that accepts only priorities strictly less
// than bound.
func Bounded(bound int) Threshold { return Threshold{bound: bound} }

// IsAny reports whether t is the "any priority" sentinel.
func (t Threshold) IsAny() bool { return t.any }

// Bound returns the numeric bound. It is only meaningful when !t.IsAny().
func (t Threshold) Bound() int { return t.bound }

// satisfies reports whether a job with the given priority is eligible for a
// consumer parked on t: strictly less-than, or "any" always matches.
func (t Threshold) satisfies(priority int) bool {
	return t.any || priority < t.bound
}

// rank orders thresholds ascending for the waiter registry, with "any"
// sorting after every bounded value (it accepts strictly more than any
// finite bound does).
func (t Threshold) rank() int {
	if t.any {
		return int(^uint(0) >> 1) // max int
	}
	return t.bound
}
