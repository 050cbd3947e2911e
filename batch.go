package workerpool

import (
	"context"
	"errors"
)

// RunAll executes tasks on a scoped pool configured by opts and returns the
// drained results along with the aggregated failures (errors.Join of every
// errbox entry, nil when all tasks succeed). Results are in completion order,
// not submission order.
func RunAll(tasks []Task, opts ...Option) ([]any, error) {
	var (
		results  []any
		failures []error
	)
	err := With(func(p *Pool) error {
		for _, t := range tasks {
			p.SubmitTask(t)
		}
		p.Stop(true)
		results = Drain(p.Outbox())
		failures = Drain(p.Errbox())
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return results, errors.Join(failures...)
}

// ForEach applies fn to every item concurrently on a scoped pool and returns
// the aggregated error, nil when all applications succeed.
func ForEach[T any](items []T, fn func(context.Context, T) error, opts ...Option) error {
	if len(items) == 0 {
		return nil
	}
	tasks := make([]Task, 0, len(items))
	for _, item := range items {
		tasks = append(tasks, Call(OpError(
			func(ctx context.Context, _ []any, _ map[string]any) error {
				return fn(ctx, item)
			},
		)))
	}
	_, err := RunAll(tasks, opts...)
	return err
}
