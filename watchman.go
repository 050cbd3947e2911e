package workerpool

import (
	"sync"
	"time"
)

// Watchman is the pool's scaling controller: a background loop that samples
// inbox backlog and pool size at a fixed interval and summons or banishes
// workers to hold the configured backlog-per-worker ratio. It holds a
// non-owning back-reference to exactly one pool and is created and destroyed
// with it. States are Running and Stopped; the only transition is an explicit
// stop, issued by the pool before drain.
type Watchman struct {
	pool *Pool

	baseline int
	max      int
	rate     int
	ratio    int
	interval time.Duration

	halt     chan struct{}
	haltOnce sync.Once
	done     chan struct{}
}

func newWatchman(p *Pool, baseline int, sc ScalingConfig) *Watchman {
	return &Watchman{
		pool:     p,
		baseline: baseline,
		max:      sc.MaxWorkers,
		rate:     sc.Rate,
		ratio:    sc.Ratio,
		interval: sc.Interval,
		halt:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (wm *Watchman) loop() {
	defer close(wm.done)
	ticker := time.NewTicker(wm.interval)
	defer ticker.Stop()
	for {
		select {
		case <-wm.halt:
			return
		case <-ticker.C:
			wm.tick()
		}
	}
}

// tick applies one proportional-threshold decision. Not a PID controller:
// oscillation is damped only by the per-tick rate cap and the poll interval,
// with no hysteresis band beyond the single ratio.
func (wm *Watchman) tick() {
	backlog := wm.pool.Inbox().Len()
	workers := wm.pool.Size()

	if backlog > 0 && workers > 0 {
		// Integer division: sub-ratio fractional pressure reads as pressure
		// below the threshold.
		pressure := backlog / workers
		switch {
		case pressure > wm.ratio && workers < wm.max:
			wm.pool.Summon(min(wm.rate, wm.max-workers), 0)
		case pressure < wm.ratio:
			wm.pool.Banish(wm.rate)
		}
		return
	}

	// Idle (or empty) pool: shrink back toward the baseline.
	if workers > wm.baseline {
		wm.pool.Banish(wm.rate)
	}
}

// stop halts the control loop and waits for it to exit. Idempotent.
func (wm *Watchman) stop() {
	wm.haltOnce.Do(func() { close(wm.halt) })
	<-wm.done
}
