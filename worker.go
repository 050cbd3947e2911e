package workerpool

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// worker is one executor loop bound to the pool's queue triple and control
// signals. The run and stop signals are shared with the pool and read-only
// here; the banished flag is set externally and owned by this worker.
// A worker terminates exactly once and is never reused.
type worker struct {
	name    string
	stagger time.Duration
	wait    time.Duration

	run  *signal
	stop *signal

	banished atomic.Bool

	inbox  Queue[Task]
	outbox Queue[any]
	errbox Queue[error]

	exec    Executor
	limiter *rate.Limiter
	mx      *instruments

	// ctx is the pool's lifecycle context, passed to operations and the
	// limiter. The pool cancels it only after every worker has exited, so
	// in-flight operations never observe cancellation mid-run.
	ctx context.Context

	// done is closed when the loop returns; Banish and Stop join on it.
	done chan struct{}
}

// banish flags the worker for cooperative termination. The worker observes
// the flag at its next loop iteration, so latency is bounded by the dequeue
// wait, not immediate.
func (w *worker) banish() {
	w.banished.Store(true)
}

// loop is the worker body. It waits for the run signal, sleeps its one-time
// stagger, then pulls one task at a time until stopped or banished. A cleared
// run signal blocks the worker before its next dequeue without terminating
// it. Dequeue uses a bounded wait so stop and banish stay observable while
// still avoiding a hot poll against the inbox.
func (w *worker) loop() {
	defer close(w.done)

	for !w.run.isSet() {
		if w.banished.Load() || w.stop.isSet() {
			return
		}
		w.run.wait(w.wait)
	}

	if w.stagger > 0 {
		time.Sleep(w.stagger)
	}

	for {
		if w.banished.Load() {
			return
		}
		if w.stop.isSet() {
			return
		}
		if !w.run.isSet() {
			w.run.wait(w.wait)
			continue
		}

		t, ok := w.inbox.Get(w.wait)
		if !ok {
			continue
		}
		w.execute(t)
	}
}

// execute runs one task and routes its outcome. The task is marked done
// exactly once whether it succeeds or fails; a failure never propagates
// beyond its errbox entry.
func (w *worker) execute(t Task) {
	defer w.inbox.TaskDone()

	if w.limiter != nil {
		_ = w.limiter.Wait(w.ctx)
	}

	start := time.Now()
	result, err := w.exec.Execute(w.ctx, t)
	w.mx.duration.Record(time.Since(start).Seconds())

	if err != nil {
		w.mx.failed.Add(1)
		w.errbox.Put(newTaskError(t, err))
		return
	}
	w.mx.completed.Add(1)
	w.outbox.Put(result)
}
