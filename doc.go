// Package workerpool provides a controllable pool of worker goroutines that
// pull tasks from a shared inbound queue, execute them, and route outcomes to
// separate result and error queues.
//
// Construction
//   - New(opts ...Option): builds a pool and starts it immediately. The pool
//     begins dequeuing as soon as New returns; use Pause/Resume to gate work.
//   - With(fn, opts ...Option): scoped variant that guarantees Shutdown on
//     every exit path, including panics.
//
// Defaults
// Unless overridden, a newly created pool uses:
//   - Workers: runtime.NumCPU()
//   - Stagger: 0 (no startup ramp)
//   - DequeueWait: 1s (bounded wait per dequeue attempt)
//   - Metrics: no-op provider
//   - No rate limit, no scaling controller
//
// Queue lifecycle
// The pool exposes three queues:
//   - Inbox: inbound tasks, fed by Submit/SubmitTask or directly
//   - Outbox: successful task results
//   - Errbox: task failures, wrapped in *TaskError
//
// The queues are unbounded and never closed; drain Outbox/Errbox with Drain
// once the pool has stopped, or consume them concurrently while it runs.
// A task failure never stops the pool or its worker; it produces exactly one
// Errbox entry. A task that never returns blocks its worker indefinitely and
// is not recovered.
//
// Scaling
// WithScaling attaches a watchman: a background controller that polls inbox
// backlog against pool size at a fixed interval and summons or banishes
// workers to hold a target backlog-per-worker ratio, bounded by a maximum
// pool size and a per-tick rate. The watchman stops before the pool drains
// during Stop/Shutdown.
//
// The shrink decision has no floor while backlog remains: when pressure
// falls below the ratio the watchman can banish the last worker with items
// still queued, and it never grows a zero-worker pool, so those items stay
// queued until Summon adds workers. Stop(true) on such a pool blocks on the
// inbox join. Size the ratio so expected backlog holds at least one worker,
// or stop without join.
package workerpool
