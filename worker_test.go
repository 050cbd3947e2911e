package workerpool

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jnoller/workerpool/metrics"
)

// newTestWorker builds a worker wired to fresh queues and signals with a
// short dequeue wait so stop/banish tests run quickly.
func newTestWorker(t *testing.T) *worker {
	t.Helper()
	w := &worker{
		name:   "worker-test",
		wait:   10 * time.Millisecond,
		run:    newSignal(),
		stop:   newSignal(),
		inbox:  NewQueue[Task](),
		outbox: NewQueue[any](),
		errbox: NewQueue[error](),
		exec:   callExecutor{},
		mx:     newInstruments(metrics.NewNoopProvider()),
		ctx:    context.Background(),
		done:   make(chan struct{}),
	}
	return w
}

func joinWorker(t *testing.T, w *worker) {
	t.Helper()
	select {
	case <-w.done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not terminate")
	}
}

func TestWorker_ExecutesAndRoutesResult(t *testing.T) {
	w := newTestWorker(t)
	go w.loop()
	w.run.raise()

	w.inbox.Put(Call(func(_ context.Context, args []any, _ map[string]any) (any, error) {
		return args[0].(int) * 2, nil
	}, 21))

	w.inbox.Join()
	require.Equal(t, []any{42}, Drain(w.outbox))
	require.Empty(t, Drain(w.errbox))

	w.stop.raise()
	joinWorker(t, w)
}

func TestWorker_RoutesFailureToErrbox(t *testing.T) {
	w := newTestWorker(t)
	go w.loop()
	w.run.raise()

	sentinel := errors.New("bad input")
	w.inbox.Put(Call(func(context.Context, []any, map[string]any) (any, error) {
		return nil, sentinel
	}))

	w.inbox.Join()
	require.Empty(t, Drain(w.outbox))

	errs := Drain(w.errbox)
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], sentinel)

	w.stop.raise()
	joinWorker(t, w)
}

func TestWorker_FailureDoesNotStopWorker(t *testing.T) {
	w := newTestWorker(t)
	go w.loop()
	w.run.raise()

	w.inbox.Put(Call(func(context.Context, []any, map[string]any) (any, error) {
		panic("first task blows up")
	}))
	w.inbox.Put(Call(func(context.Context, []any, map[string]any) (any, error) {
		return "still alive", nil
	}))

	w.inbox.Join()
	require.Equal(t, []any{"still alive"}, Drain(w.outbox))

	errs := Drain(w.errbox)
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], ErrTaskPanicked)

	w.stop.raise()
	joinWorker(t, w)
}

func TestWorker_BanishTerminates(t *testing.T) {
	w := newTestWorker(t)
	go w.loop()
	w.run.raise()

	w.banish()
	joinWorker(t, w)
}

func TestWorker_BanishBeforeRunTerminates(t *testing.T) {
	w := newTestWorker(t)
	go w.loop()

	// never raise run; banish must still be observed
	w.banish()
	joinWorker(t, w)
}

func TestWorker_StopBeforeRunTerminates(t *testing.T) {
	w := newTestWorker(t)
	go w.loop()

	w.stop.raise()
	joinWorker(t, w)
}

func TestWorker_WaitsForRunSignal(t *testing.T) {
	w := newTestWorker(t)
	go w.loop()

	w.inbox.Put(Call(func(context.Context, []any, map[string]any) (any, error) {
		return 1, nil
	}))

	// run never raised: the task must stay queued
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 1, w.inbox.Len())

	w.run.raise()
	w.inbox.Join()
	require.Equal(t, 0, w.inbox.Len())

	w.stop.raise()
	joinWorker(t, w)
}

func TestWorker_StaggerDelaysFirstDequeue(t *testing.T) {
	w := newTestWorker(t)
	w.stagger = 60 * time.Millisecond
	go w.loop()
	w.run.raise()

	w.inbox.Put(Call(func(context.Context, []any, map[string]any) (any, error) {
		return 1, nil
	}))

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, 1, w.inbox.Len(), "task dequeued before stagger elapsed")

	w.inbox.Join()

	w.stop.raise()
	joinWorker(t, w)
}
