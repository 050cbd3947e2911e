package workerpool

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Pool owns the queue triple, a dynamic set of live workers, and the run/stop
// control signals. The live-worker collection is mutated only by Summon,
// Banish, and Stop, serialized by the pool's mutex; the signals are broadcast
// flags shared read-only with every worker.
type Pool struct {
	config *config

	inbox  Queue[Task]
	outbox Queue[any]
	errbox Queue[error]

	run  *signal
	stop *signal

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	workers []*worker
	nextID  int

	watchman *Watchman
	lc       *lifecycle
	mx       *instruments
}

// New creates a pool, summons the configured number of workers, and starts
// processing immediately. There is no armed-but-idle state beyond Pause.
func New(opts ...Option) (*Pool, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	p := &Pool{
		config: &cfg,
		inbox:  cfg.Inbox,
		outbox: cfg.Outbox,
		errbox: cfg.Errbox,
		run:    newSignal(),
		stop:   newSignal(),
		mx:     newInstruments(cfg.Metrics),
	}
	if p.inbox == nil {
		p.inbox = NewQueue[Task]()
	}
	if p.outbox == nil {
		p.outbox = NewQueue[any]()
	}
	if p.errbox == nil {
		p.errbox = NewQueue[error]()
	}
	p.ctx, p.cancel = context.WithCancel(context.Background())

	p.Summon(cfg.Workers, cfg.Stagger)

	if cfg.Scaling != nil {
		p.watchman = newWatchman(p, cfg.Workers, *cfg.Scaling)
		go p.watchman.loop()
	}

	p.lc = &lifecycle{
		haltWatchman: p.haltWatchman,
		joinInbox:    p.inbox.Join,
		signalStop:   p.stop.raise,
		joinWorkers:  p.joinWorkers,
		release:      p.cancel,
	}

	p.run.raise()
	return p, nil
}

// Inbox returns the inbound task queue.
func (p *Pool) Inbox() Queue[Task] { return p.inbox }

// Outbox returns the result queue.
func (p *Pool) Outbox() Queue[any] { return p.outbox }

// Errbox returns the error queue.
func (p *Pool) Errbox() Queue[error] { return p.errbox }

// Submit enqueues op with positional arguments.
func (p *Pool) Submit(op Op, args ...any) {
	p.SubmitTask(Call(op, args...))
}

// SubmitTask enqueues one task.
func (p *Pool) SubmitTask(t Task) {
	p.mx.submitted.Add(1)
	p.inbox.Put(t)
}

// Size returns the current count of live workers. It is a snapshot and is not
// linearizable with concurrent Summon/Banish.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workers)
}

// Summon creates count workers and starts them immediately. Stagger
// accumulates per new worker: the first sleeps stagger before its first
// dequeue, the second 2*stagger, and so on, independent of existing workers.
func (p *Pool) Summon(count int, stagger time.Duration) {
	if count <= 0 {
		return
	}
	p.mu.Lock()
	var cum time.Duration
	for range count {
		cum += stagger
		p.nextID++
		w := &worker{
			name:    fmt.Sprintf("worker-%d", p.nextID),
			stagger: cum,
			wait:    p.config.DequeueWait,
			run:     p.run,
			stop:    p.stop,
			inbox:   p.inbox,
			outbox:  p.outbox,
			errbox:  p.errbox,
			exec:    p.config.Executor,
			limiter: p.config.Limiter,
			mx:      p.mx,
			ctx:     p.ctx,
			done:    make(chan struct{}),
		}
		p.workers = append(p.workers, w)
		go w.loop()
	}
	p.mu.Unlock()

	p.mx.summoned.Add(int64(count))
	p.mx.poolSize.Add(int64(count))
}

// Banish removes up to min(count, Size()) workers, most-recently-added first,
// flags each for termination, and blocks until every removed worker has
// exited. It drains only the removed workers; tasks held by other workers are
// unaffected. Banishing more workers than exist is clamped, not an error.
func (p *Pool) Banish(count int) {
	if count <= 0 {
		return
	}
	p.mu.Lock()
	n := min(count, len(p.workers))
	cut := len(p.workers) - n
	// Copy before truncating: a Summon after the unlock would append into the
	// truncated slice's backing array, overwriting the tail being joined.
	victims := make([]*worker, n)
	copy(victims, p.workers[cut:])
	p.workers = p.workers[:cut]
	p.mu.Unlock()

	for _, w := range victims {
		w.banish()
	}
	for _, w := range victims {
		<-w.done
	}

	if n > 0 {
		p.mx.banished.Add(int64(n))
		p.mx.poolSize.Add(-int64(n))
	}
}

// Pause clears the run signal; every worker blocks before its next dequeue
// attempt. Tasks already dequeued still complete. Pool size is unaffected.
func (p *Pool) Pause() {
	p.run.clear()
}

// Resume sets the run signal, releasing paused workers.
func (p *Pool) Resume() {
	p.run.raise()
}

// Stop halts the pool. With join, it first blocks until the inbox reports
// zero pending tasks, so everything submitted is dequeued and marked done
// before the stop signal is raised. Without join, queued-but-undequeued tasks
// are abandoned in place; workers still finish the task they hold.
// The watchman, when attached, is stopped first so it cannot resize the pool
// mid-shutdown. Stop executes its sequence exactly once; later calls return
// immediately.
func (p *Pool) Stop(join bool) {
	p.lc.stopSequence(join)
}

// Shutdown performs a full teardown: Stop with inbox join plus release of the
// pool's lifecycle context. Safe to call after Stop; the sequence still runs
// only once.
func (p *Pool) Shutdown() {
	p.Stop(true)
}

// haltWatchman stops the scaling controller and waits for its loop to exit.
func (p *Pool) haltWatchman() {
	if p.watchman != nil {
		p.watchman.stop()
	}
}

// joinWorkers waits for every live worker to terminate, then empties the live
// collection. Joining a worker that already exited returns immediately.
func (p *Pool) joinWorkers() {
	p.mu.Lock()
	victims := make([]*worker, len(p.workers))
	copy(victims, p.workers)
	p.workers = p.workers[:0]
	p.mu.Unlock()

	for _, w := range victims {
		<-w.done
	}
	if len(victims) > 0 {
		p.mx.poolSize.Add(-int64(len(victims)))
	}
}
