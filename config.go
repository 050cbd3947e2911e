package workerpool

import (
	"runtime"
	"time"

	"golang.org/x/time/rate"

	"github.com/jnoller/workerpool/metrics"
)

// config holds pool configuration assembled from Options.
type config struct {
	// Workers is the number of workers summoned at construction.
	// Default: runtime.NumCPU().
	Workers int

	// Stagger is the per-worker startup delay step. Worker i of the initial
	// batch sleeps i*Stagger before its first dequeue, ramping large batches
	// instead of starting them simultaneously.
	// Default: 0.
	Stagger time.Duration

	// DequeueWait bounds each dequeue attempt. Shorter values make stop,
	// banish, and pause observable sooner at the cost of queue contention.
	// Default: 1s.
	DequeueWait time.Duration

	// Executor is the strategy turning a task into a result or failure.
	// Default: call the task's operation with its arguments.
	Executor Executor

	// Inbox, Outbox, Errbox override the pool's queues.
	// Default: fresh unbounded FIFOs.
	Inbox  Queue[Task]
	Outbox Queue[any]
	Errbox Queue[error]

	// Metrics receives pool measurements. Default: no-op provider.
	Metrics metrics.Provider

	// Limiter, when non-nil, gates task execution across all workers.
	Limiter *rate.Limiter

	// Scaling, when non-nil, attaches a watchman controller.
	Scaling *ScalingConfig
}

// ScalingConfig tunes the watchman attached via WithScaling.
type ScalingConfig struct {
	// MaxWorkers bounds pool growth. Required, > 0.
	MaxWorkers int

	// Rate is the maximum number of workers summoned or banished per tick.
	// Default: 1.
	Rate int

	// Ratio is the target backlog-per-worker threshold. Pressure above it
	// grows the pool; pressure below it shrinks the pool.
	// Default: 10.
	Ratio int

	// Interval is the poll period. Default: 1s.
	Interval time.Duration
}

// defaultConfig centralizes default values; options mutate a copy of it.
func defaultConfig() config {
	return config{
		Workers:     runtime.NumCPU(),
		Stagger:     0,
		DequeueWait: time.Second,
		Executor:    callExecutor{},
		Metrics:     metrics.NewNoopProvider(),
	}
}

func (sc *ScalingConfig) applyDefaults() {
	if sc.Rate == 0 {
		sc.Rate = 1
	}
	if sc.Ratio == 0 {
		sc.Ratio = 10
	}
	if sc.Interval == 0 {
		sc.Interval = time.Second
	}
}

// validateConfig checks cross-option invariants after all options applied.
// Scaling bounds are clamped at runtime rather than rejected here, matching
// the pool's clamp-not-error policy; per-option validation happens in the
// options themselves.
func validateConfig(_ *config) error {
	return nil
}

// instruments are the pool's pre-built metric handles.
type instruments struct {
	submitted metrics.Counter
	completed metrics.Counter
	failed    metrics.Counter
	summoned  metrics.Counter
	banished  metrics.Counter
	poolSize  metrics.Gauge
	duration  metrics.Histogram
}

func newInstruments(p metrics.Provider) *instruments {
	return &instruments{
		submitted: p.Counter("workerpool_tasks_submitted_total", metrics.WithUnit("1")),
		completed: p.Counter("workerpool_tasks_completed_total", metrics.WithUnit("1")),
		failed:    p.Counter("workerpool_tasks_failed_total", metrics.WithUnit("1")),
		summoned:  p.Counter("workerpool_workers_summoned_total", metrics.WithUnit("1")),
		banished:  p.Counter("workerpool_workers_banished_total", metrics.WithUnit("1")),
		poolSize:  p.Gauge("workerpool_pool_size", metrics.WithUnit("1")),
		duration:  p.Histogram("workerpool_task_duration_seconds", metrics.WithUnit("seconds")),
	}
}
