package jobcache

import "sort"

// sortedStore is an in-memory ordered multiset of Metajob, kept ascending by
// sort key at all times. It backs JobCache's admission and eviction logic
// and is not itself safe for concurrent use — callers hold JobCache's mutex.
type sortedStore struct {
	items []Metajob
}

func newSortedStore(capacityHint int) *sortedStore {
	return &sortedStore{items: make([]Metajob, 0, capacityHint)}
}

// len returns the number of jobs currently held.
func (s *sortedStore) len() int { return len(s.items) }

// insert places job at its sorted position.
func (s *sortedStore) insert(job Metajob) {
	i := sort.Search(len(s.items), func(i int) bool {
		return sortKeyLess(job, s.items[i])
	})
	s.items = append(s.items, nil)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = job
}

// peekMin returns the smallest (most important) job without removing it.
func (s *sortedStore) peekMin() (Metajob, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	return s.items[0], true
}

// popMin removes and returns the smallest job.
func (s *sortedStore) popMin() (Metajob, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	job := s.items[0]
	copy(s.items, s.items[1:])
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
	return job, true
}

// popMax removes and returns the largest (least important) job.
func (s *sortedStore) popMax() (Metajob, bool) {
	n := len(s.items)
	if n == 0 {
		return nil, false
	}
	job := s.items[n-1]
	s.items[n-1] = nil
	s.items = s.items[:n-1]
	return job, true
}

// snapshot returns a freshly allocated, ascending copy of the store's
// contents. The caller owns the returned slice.
func (s *sortedStore) snapshot() []Metajob {
	out := make([]Metajob, len(s.items))
	copy(out, s.items)
	return out
}

// drain empties the store and returns everything it held, ascending. The
// caller owns the returned slice.
func (s *sortedStore) drain() []Metajob {
	out := s.items
	s.items = make([]Metajob, 0, cap(out))
	return out
}
