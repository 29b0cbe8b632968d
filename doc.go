// Package jobcache provides a bounded, priority-ordered, multi-consumer job
// buffer for building job-runner systems.
//
// Design goals
//
// The package is designed around the following principles:
//
//   - A total order over jobs: ascending (priority, run_at, id)
//   - A hard capacity, with eviction of the least important entries
//   - Priority-threshold-aware blocking dequeues across many consumers
//   - Admission previews cheap enough for a producer to call before it
//     pays the cost of locking a row in durable storage
//   - An orderly, one-way shutdown that unblocks every waiter deterministically
//
// Architecture overview
//
// JobCache is composed of four cooperating pieces, all guarded by a single
// mutex:
//
//  1. sortedStore
//     An ordered multiset of Metajob, sorted ascending by sort key.
//     Supports insert, pop-min, pop-max, and a freshly allocated snapshot.
//
//  2. Admission logic
//     Accept previews what Push would retain without mutating anything;
//     Push's eviction branch drops the least important entries once the
//     store exceeds its configured maximum.
//
//  3. waiterList
//     An ordered set of parked consumers, each tagged with a priority
//     threshold. Push delivers directly to the most tolerant eligible
//     waiter rather than broadcasting a job to everyone.
//
//  4. Synchronization core
//     One mutex plus a condition variable coordinate producers, consumers,
//     and shutdown. Push wakes waiters with Broadcast after handing off
//     what it can; a woken goroutine that isn't the intended recipient
//     re-checks its own eligibility and goes back to sleep.
//
// Dataflow
//
// A producer calls Accept to preview whether a set of candidate jobs is
// worth locking in durable storage, then Push to enqueue them, receiving
// back any evicted jobs so it can release their locks. Consumers call Shift
// with a priority threshold to block until an eligible job is available. A
// supervisor calls Stop to drain the system: every future and currently
// parked Shift call then returns false, which callers treat as "exit the
// worker loop".
//
// Non-goals
//
// JobCache does not persist anything, does not coordinate across processes,
// does not guarantee exact fairness between equally eligible waiters, does
// not support pre-emption of an already-dequeued job, and does not
// guarantee wakeup order when several waiters become eligible at once. It
// performs no I/O of any kind; the SQL-backed poller that produces
// Metajobs, the workers that execute them, retry/backoff, and logging all
// live outside this package.
package jobcache
