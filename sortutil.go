package jobcache

import "sort"

// sortMetajobs sorts jobs ascending in place by sort key.
func sortMetajobs(jobs []Metajob) {
	sort.Slice(jobs, func(i, j int) bool {
		return sortKeyLess(jobs[i], jobs[j])
	})
}

// reverseMetajobs reverses jobs in place.
func reverseMetajobs(jobs []Metajob) {
	for i, j := 0, len(jobs)-1; i < j; i, j = i+1, j-1 {
		jobs[i], jobs[j] = jobs[j], jobs[i]
	}
}
