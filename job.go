package jobcache

import "time"

// Job is the concrete Metajob most callers will actually use: a handle over
// a durable job row, carrying the three sort-key fields the cache depends
// on plus the bookkeeping a SQL-backed producer and worker pool need to
// round-trip a row (queue name, kind, encoded args, attempt count).
//
// Job satisfies Metajob by value; the cache only ever reads Priority,
// RunAt, and ID off it.
type Job struct {
	IDValue       int64
	PriorityValue int
	RunAtValue    time.Time

	Queue   string
	Kind    string
	Args    []byte
	Attempt int
}

var _ Metajob = Job{}

func (j Job) Priority() int    { return j.PriorityValue }
func (j Job) RunAt() time.Time { return j.RunAtValue }
func (j Job) ID() int64        { return j.IDValue }

// Equal reports whether j and other share the same sort key, the notion of
// equality the cache's invariants are stated in terms of.
func (j Job) Equal(other Job) bool {
	return sortKeyEqual(j, other)
}
