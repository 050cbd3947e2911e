package workerpool

import (
	"context"
	"fmt"
)

// Op is the operation a task carries: a callable plus its positional and
// named arguments. The consuming worker interprets a task as exactly
// (operation, positional args, named args).
type Op func(ctx context.Context, args []any, kwargs map[string]any) (any, error)

// Task is one unit of work submitted to a pool's inbox.
type Task struct {
	Op     Op
	Args   []any
	Kwargs map[string]any
}

// Call builds a Task from an operation and positional arguments.
func Call(op Op, args ...any) Task {
	return Task{Op: op, Args: args}
}

// CallKw builds a Task from an operation, positional, and named arguments.
func CallKw(op Op, args []any, kwargs map[string]any) Task {
	return Task{Op: op, Args: args, Kwargs: kwargs}
}

// OpValue adapts a no-error function to an Op.
func OpValue(fn func(ctx context.Context, args []any, kwargs map[string]any) any) Op {
	return func(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
		return fn(ctx, args, kwargs), nil
	}
}

// OpError adapts an error-only function to an Op. The result routed to the
// outbox on success is nil.
func OpError(fn func(ctx context.Context, args []any, kwargs map[string]any) error) Op {
	return func(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
		return nil, fn(ctx, args, kwargs)
	}
}

// Executor is the pluggable strategy a worker uses to turn a task into a
// result or a failure. The default invokes the task's operation with its
// arguments and converts panics into errors; supply your own via WithExecutor
// when tasks carry a different payload convention.
type Executor interface {
	Execute(ctx context.Context, t Task) (any, error)
}

// callExecutor is the default call-with-args strategy.
type callExecutor struct{}

func (callExecutor) Execute(ctx context.Context, t Task) (result any, err error) {
	if t.Op == nil {
		return nil, ErrNilOperation
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()
	return t.Op(ctx, t.Args, t.Kwargs)
}
