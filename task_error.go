package workerpool

import (
	"errors"
	"fmt"
)

// TaskError is the errbox entry produced when a task fails. It carries the
// failed task for correlation and unwraps to the original failure, so callers
// can match with errors.Is/errors.As.
type TaskError struct {
	Task Task
	Err  error
}

func newTaskError(t Task, err error) error {
	if err == nil {
		return nil
	}
	return &TaskError{Task: t, Err: err}
}

func (e *TaskError) Error() string { return e.Err.Error() }
func (e *TaskError) Unwrap() error { return e.Err }

func (e *TaskError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "task(args=%v): %+v", e.Task.Args, e.Err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractTask returns the failed task from err if it carries one.
func ExtractTask(err error) (Task, bool) {
	var te *TaskError
	if errors.As(err, &te) {
		return te.Task, true
	}
	return Task{}, false
}
