// Package workerpool runs a fixed number of workers against a
// jobcache.JobCache.
//
// Design goals
//
// The package is a thin execution layer over the cache:
//
//   - No queue of its own — ordering, admission, and blocking handoff all
//     live in the JobCache
//   - Predictable retry and backoff for handlers that return an error
//   - Panics inside a handler are recovered and reported, not fatal
//
// Architecture overview
//
// A Pool is composed of two layers:
//
//   1. Scheduling (jobcache.JobCache)
//      Owned elsewhere. Each worker calls cache.Shift(threshold) and blocks
//      until a job clears that threshold or the cache stops.
//
//   2. Execution (Pool / workers)
//      Each worker runs jobs sequentially, one at a time, through Handler
//      with retry and exponential backoff. Parallelism comes from running
//      multiple workers, not from batching within one.
//
// Error handling
//
// The pool distinguishes between two classes of errors:
//
//   - Job errors: returned by a handler or produced by panic recovery
//   - Internal errors: unexpected failures inside the pool itself (currently
//     just a failed CPU pin)
//
// Errors are reported via user-provided handlers (Options.OnJobError,
// Options.OnInternalError) and do not stop other workers.
//
// CPU pinning
//
// On Linux, workers may optionally be pinned to distinct CPUs via
// Options.PinWorkers. Elsewhere PinToCPU is a no-op.
//
// Shutdown
//
// A Pool cannot be stopped independently of its cache: workers exit once
// Shift returns false, which happens after the shared JobCache is stopped.
// Shutdown/Stop wait for that drain; they do not trigger it.
package workerpool
