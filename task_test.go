package workerpool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCallExecutor_InvokesWithArgs(t *testing.T) {
	var exec callExecutor

	task := CallKw(
		func(_ context.Context, args []any, kwargs map[string]any) (any, error) {
			return args[0].(int) + args[1].(int) + kwargs["bias"].(int), nil
		},
		[]any{1, 2},
		map[string]any{"bias": 10},
	)

	result, err := exec.Execute(context.Background(), task)
	require.NoError(t, err)
	require.Equal(t, 13, result)
}

func TestCallExecutor_NilOperation(t *testing.T) {
	var exec callExecutor
	_, err := exec.Execute(context.Background(), Task{})
	require.ErrorIs(t, err, ErrNilOperation)
}

func TestCallExecutor_RecoversPanic(t *testing.T) {
	var exec callExecutor

	task := Call(func(context.Context, []any, map[string]any) (any, error) {
		panic("boom")
	})

	result, err := exec.Execute(context.Background(), task)
	require.Nil(t, result)
	require.ErrorIs(t, err, ErrTaskPanicked)
	require.Contains(t, err.Error(), "boom")
}

func TestCallExecutor_PropagatesError(t *testing.T) {
	var exec callExecutor
	sentinel := errors.New("no such thing")

	task := Call(func(context.Context, []any, map[string]any) (any, error) {
		return nil, sentinel
	})

	_, err := exec.Execute(context.Background(), task)
	require.ErrorIs(t, err, sentinel)
}

func TestOpValue(t *testing.T) {
	op := OpValue(func(_ context.Context, args []any, _ map[string]any) any {
		return args[0]
	})
	result, err := op(context.Background(), []any{"v"}, nil)
	require.NoError(t, err)
	require.Equal(t, "v", result)
}

func TestOpError(t *testing.T) {
	sentinel := errors.New("nope")
	op := OpError(func(context.Context, []any, map[string]any) error {
		return sentinel
	})
	result, err := op(context.Background(), nil, nil)
	require.Nil(t, result)
	require.ErrorIs(t, err, sentinel)
}

func TestTaskError_UnwrapAndExtract(t *testing.T) {
	sentinel := errors.New("original failure")
	task := Call(nil, 1, 2)

	err := newTaskError(task, sentinel)
	require.ErrorIs(t, err, sentinel)

	extracted, ok := ExtractTask(err)
	require.True(t, ok)
	require.Equal(t, []any{1, 2}, extracted.Args)

	_, ok = ExtractTask(sentinel)
	require.False(t, ok)
}

func TestTaskError_NilErr(t *testing.T) {
	require.NoError(t, newTaskError(Task{}, nil))
}
