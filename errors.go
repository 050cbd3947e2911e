package workerpool

import "errors"

const Namespace = "workerpool"

var (
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
	ErrNilOperation  = errors.New(Namespace + ": task has no operation")
	ErrTaskPanicked  = errors.New(Namespace + ": task execution panicked")
)
