package workerpool

import (
	"time"

	"github.com/ygrebnov/errorc"
	"golang.org/x/time/rate"

	"github.com/jnoller/workerpool/metrics"
)

// Option configures a Pool. Use New(opts...) to construct a Pool via options.
// Options return an error on invalid input instead of panicking.
type Option func(*config) error

// WithWorkers sets the number of workers summoned at construction.
// Zero is valid: the pool starts empty and relies on Summon or a watchman.
func WithWorkers(n int) Option {
	return func(cfg *config) error {
		if n < 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithWorkers requires n >= 0"))
		}
		cfg.Workers = n
		return nil
	}
}

// WithStagger sets the per-worker startup delay step for the initial batch.
func WithStagger(d time.Duration) Option {
	return func(cfg *config) error {
		if d < 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithStagger requires d >= 0"))
		}
		cfg.Stagger = d
		return nil
	}
}

// WithDequeueWait bounds each dequeue attempt (default 1s). Stop, banish, and
// pause latency are bounded by this value.
func WithDequeueWait(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithDequeueWait requires d > 0"))
		}
		cfg.DequeueWait = d
		return nil
	}
}

// WithExecutor replaces the default call-with-args execution strategy.
func WithExecutor(e Executor) Option {
	return func(cfg *config) error {
		if e == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithExecutor requires a non-nil executor"))
		}
		cfg.Executor = e
		return nil
	}
}

// WithInbox supplies the inbound task queue.
func WithInbox(q Queue[Task]) Option {
	return func(cfg *config) error {
		if q == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithInbox requires a non-nil queue"))
		}
		cfg.Inbox = q
		return nil
	}
}

// WithOutbox supplies the result queue.
func WithOutbox(q Queue[any]) Option {
	return func(cfg *config) error {
		if q == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithOutbox requires a non-nil queue"))
		}
		cfg.Outbox = q
		return nil
	}
}

// WithErrbox supplies the error queue.
func WithErrbox(q Queue[error]) Option {
	return func(cfg *config) error {
		if q == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithErrbox requires a non-nil queue"))
		}
		cfg.Errbox = q
		return nil
	}
}

// WithMetrics sets the metrics provider receiving pool measurements.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}

// WithRateLimit gates task execution across all workers at the given rate.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(cfg *config) error {
		if limit <= 0 || burst <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithRateLimit requires limit > 0 and burst > 0"))
		}
		cfg.Limiter = rate.NewLimiter(limit, burst)
		return nil
	}
}

// WithScaling attaches a watchman controller that grows and shrinks the pool
// around the configured backlog-per-worker ratio. Zero-valued Rate, Ratio,
// and Interval fall back to 1, 10, and 1s.
func WithScaling(sc ScalingConfig) Option {
	return func(cfg *config) error {
		if sc.MaxWorkers <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithScaling requires MaxWorkers > 0"))
		}
		if sc.Rate < 0 || sc.Ratio < 0 || sc.Interval < 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithScaling requires non-negative Rate, Ratio, and Interval"))
		}
		sc.applyDefaults()
		cfg.Scaling = &sc
		return nil
	}
}
