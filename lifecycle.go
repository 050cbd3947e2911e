package workerpool

import "sync"

// lifecycle encapsulates the pool's shutdown sequence. It is a wiring helper:
// it owns nothing and orchestrates the halt, drain, signal, and join steps in
// a deterministic order, exactly once.
//
// Sequence:
//  1. halt the watchman so no resize races the teardown
//  2. optionally join the inbox (every submitted task dequeued and done)
//  3. raise the stop signal
//  4. join every live worker
//  5. release the lifecycle context
//
// A paused pool still stops: workers re-check the stop signal on a bounded
// wait while the run signal is clear. A second call is a no-op, which also
// makes Stop followed by Shutdown safe.
type lifecycle struct {
	haltWatchman func()
	joinInbox    func()
	signalStop   func()
	joinWorkers  func()
	release      func()

	once sync.Once
}

func (lc *lifecycle) stopSequence(join bool) {
	lc.once.Do(func() {
		if lc.haltWatchman != nil {
			lc.haltWatchman()
		}
		if join && lc.joinInbox != nil {
			lc.joinInbox()
		}
		lc.signalStop()
		lc.joinWorkers()
		if lc.release != nil {
			lc.release()
		}
	})
}
