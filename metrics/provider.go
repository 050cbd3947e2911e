// Package metrics defines the instrument surface the pool records into.
// The default provider discards everything; Basic aggregates in memory for
// tests and lightweight applications. Production users adapt their own
// backend behind Provider.
package metrics

// Provider constructs named instruments. Implementations must be safe for
// concurrent use; requesting the same name twice returns the same instrument.
type Provider interface {
	Counter(name string, opts ...InstrumentOption) Counter
	Gauge(name string, opts ...InstrumentOption) Gauge
	Histogram(name string, opts ...InstrumentOption) Histogram
}

// Counter records monotonic counts.
type Counter interface {
	Add(n int64)
}

// Gauge records values that move up and down, such as current pool size.
type Gauge interface {
	Add(n int64)
}

// Histogram records a distribution of float64 measurements, such as task
// durations in seconds.
type Histogram interface {
	Record(v float64)
}

// InstrumentConfig carries advisory instrument metadata.
type InstrumentConfig struct {
	Description string
	Unit        string
}

// InstrumentOption mutates InstrumentConfig.
type InstrumentOption func(*InstrumentConfig)

// WithDescription sets an advisory description for the instrument.
func WithDescription(desc string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Description = desc }
}

// WithUnit sets an advisory unit for the instrument, e.g. "1" or "seconds".
func WithUnit(unit string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Unit = unit }
}
