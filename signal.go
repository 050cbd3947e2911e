package workerpool

import (
	"sync"
	"time"
)

// signal is a broadcast flag: write-rare, read-many, resettable.
// Each pool owns its run and stop signals exclusively; workers only read them.
// Waiters use a bounded wait so externally set flags (stop, banish) stay
// observable even while the flag they wait on is clear.
type signal struct {
	mu   sync.Mutex
	cond *sync.Cond
	set  bool
}

func newSignal() *signal {
	s := &signal{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// raise sets the flag and wakes all waiters.
func (s *signal) raise() {
	s.mu.Lock()
	if !s.set {
		s.set = true
		s.cond.Broadcast()
	}
	s.mu.Unlock()
}

// clear resets the flag. Waiters started after clear block until the next raise.
func (s *signal) clear() {
	s.mu.Lock()
	s.set = false
	s.mu.Unlock()
}

func (s *signal) isSet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set
}

// wait blocks until the flag is set or the timeout elapses.
// Returns true if the flag was set.
func (s *signal) wait(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	s.mu.Lock()
	defer s.mu.Unlock()
	for !s.set {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}
		// AfterFunc wakes every waiter; the loop re-checks the deadline.
		t := time.AfterFunc(remaining, s.cond.Broadcast)
		s.cond.Wait()
		t.Stop()
	}
	return true
}
