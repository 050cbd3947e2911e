package workerpool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignal_SetClear(t *testing.T) {
	s := newSignal()
	require.False(t, s.isSet())

	s.raise()
	require.True(t, s.isSet())

	// raise is idempotent
	s.raise()
	require.True(t, s.isSet())

	s.clear()
	require.False(t, s.isSet())
}

func TestSignal_WaitTimesOut(t *testing.T) {
	s := newSignal()
	start := time.Now()
	require.False(t, s.wait(20*time.Millisecond))
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSignal_WaitAlreadySet(t *testing.T) {
	s := newSignal()
	s.raise()
	require.True(t, s.wait(time.Millisecond))
}

func TestSignal_WaitWokenByRaise(t *testing.T) {
	s := newSignal()
	got := make(chan bool, 1)
	go func() { got <- s.wait(time.Second) }()

	time.Sleep(10 * time.Millisecond)
	s.raise()

	select {
	case ok := <-got:
		require.True(t, ok)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("waiter not released by raise")
	}
}

func TestSignal_BroadcastReleasesAllWaiters(t *testing.T) {
	s := newSignal()
	const n = 8
	got := make(chan bool, n)
	for range n {
		go func() { got <- s.wait(time.Second) }()
	}

	time.Sleep(10 * time.Millisecond)
	s.raise()

	for range n {
		select {
		case ok := <-got:
			require.True(t, ok)
		case <-time.After(500 * time.Millisecond):
			t.Fatal("not all waiters released")
		}
	}
}
