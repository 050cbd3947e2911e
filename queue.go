package workerpool

import (
	"context"
	"sync"
	"time"
)

// Queue is an unbounded, concurrency-safe FIFO with completion tracking.
// An item is pending from Put until a consumer calls TaskDone; Join blocks
// until the pending count reaches zero. Implementations may be supplied at
// pool construction via WithInbox/WithOutbox/WithErrbox.
type Queue[T any] interface {
	// Put enqueues one item. It never blocks.
	Put(v T)

	// Get dequeues one item, waiting up to timeout for one to arrive.
	// It reports false on timeout.
	Get(timeout time.Duration) (T, bool)

	// TryGet dequeues one item without waiting.
	TryGet() (T, bool)

	// TaskDone marks one previously dequeued item as fully processed.
	// Calls beyond the number of pending items are ignored.
	TaskDone()

	// Len reports the number of items currently queued (not yet dequeued).
	Len() int

	// Pending reports the number of items enqueued but not yet marked done.
	Pending() int

	// Join blocks until the pending count reaches zero.
	Join()

	// JoinContext is Join bounded by ctx; it returns ctx.Err() when ctx ends
	// before the queue drains.
	JoinContext(ctx context.Context) error
}

// fifo is the default Queue implementation.
type fifo[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	idle     *sync.Cond
	items    []T
	pending  int
}

// NewQueue returns an unbounded FIFO Queue.
func NewQueue[T any]() Queue[T] {
	q := &fifo[T]{}
	q.notEmpty = sync.NewCond(&q.mu)
	q.idle = sync.NewCond(&q.mu)
	return q
}

func (q *fifo[T]) Put(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.pending++
	q.notEmpty.Signal()
	q.mu.Unlock()
}

func (q *fifo[T]) Get(timeout time.Duration) (T, bool) {
	deadline := time.Now().Add(timeout)
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			var zero T
			return zero, false
		}
		t := time.AfterFunc(remaining, q.notEmpty.Broadcast)
		q.notEmpty.Wait()
		t.Stop()
	}
	return q.popLocked(), true
}

func (q *fifo[T]) TryGet() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.popLocked(), true
}

// popLocked removes and returns the head. Callers hold q.mu.
func (q *fifo[T]) popLocked() T {
	v := q.items[0]
	var zero T
	q.items[0] = zero // release the reference held by the backing array
	q.items = q.items[1:]
	return v
}

func (q *fifo[T]) TaskDone() {
	q.mu.Lock()
	if q.pending > 0 {
		q.pending--
		if q.pending == 0 {
			q.idle.Broadcast()
		}
	}
	q.mu.Unlock()
}

func (q *fifo[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *fifo[T]) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending
}

func (q *fifo[T]) Join() {
	q.mu.Lock()
	for q.pending > 0 {
		q.idle.Wait()
	}
	q.mu.Unlock()
}

func (q *fifo[T]) JoinContext(ctx context.Context) error {
	stop := context.AfterFunc(ctx, q.idle.Broadcast)
	defer stop()
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.pending > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		q.idle.Wait()
	}
	return nil
}

// Drain harvests every currently queued item into a slice, marking each as
// done. Calling it while producers are still writing returns partial results.
func Drain[T any](q Queue[T]) []T {
	out := make([]T, 0, q.Len())
	for {
		v, ok := q.TryGet()
		if !ok {
			return out
		}
		q.TaskDone()
		out = append(out, v)
	}
}
