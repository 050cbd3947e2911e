package metrics

import (
	"sync"
	"sync/atomic"
)

// BasicProvider aggregates measurements in memory. Instruments are created on
// demand by name and reused for the same name. Safe for concurrent use.
type BasicProvider struct {
	mu         sync.Mutex
	counters   map[string]*BasicCounter
	gauges     map[string]*BasicGauge
	histograms map[string]*BasicHistogram
	meta       map[string]InstrumentConfig
}

// NewBasicProvider constructs an empty BasicProvider.
func NewBasicProvider() *BasicProvider {
	return &BasicProvider{
		counters:   make(map[string]*BasicCounter),
		gauges:     make(map[string]*BasicGauge),
		histograms: make(map[string]*BasicHistogram),
		meta:       make(map[string]InstrumentConfig),
	}
}

func applyOptions(opts []InstrumentOption) InstrumentConfig {
	var cfg InstrumentConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}

// Counter returns the monotonic counter registered under name, creating it once.
func (p *BasicProvider) Counter(name string, opts ...InstrumentOption) Counter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.counters[name]; ok {
		return c
	}
	p.meta[name] = applyOptions(opts)
	c := &BasicCounter{}
	p.counters[name] = c
	return c
}

// Gauge returns the gauge registered under name, creating it once.
func (p *BasicProvider) Gauge(name string, opts ...InstrumentOption) Gauge {
	p.mu.Lock()
	defer p.mu.Unlock()
	if g, ok := p.gauges[name]; ok {
		return g
	}
	p.meta[name] = applyOptions(opts)
	g := &BasicGauge{}
	p.gauges[name] = g
	return g
}

// Histogram returns the histogram registered under name, creating it once.
func (p *BasicProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	p.mu.Lock()
	defer p.mu.Unlock()
	if h, ok := p.histograms[name]; ok {
		return h
	}
	p.meta[name] = applyOptions(opts)
	h := &BasicHistogram{}
	p.histograms[name] = h
	return h
}

// BasicCounter is a thread-safe monotonic counter.
type BasicCounter struct {
	val atomic.Int64
}

func (c *BasicCounter) Add(n int64) { c.val.Add(n) }

// Snapshot returns the current value.
func (c *BasicCounter) Snapshot() int64 { return c.val.Load() }

// BasicGauge is a thread-safe up/down value.
type BasicGauge struct {
	val atomic.Int64
}

func (g *BasicGauge) Add(n int64) { g.val.Add(n) }

// Snapshot returns the current value.
func (g *BasicGauge) Snapshot() int64 { return g.val.Load() }

// BasicHistogram tracks count, sum, min, and max of recorded measurements.
// It maintains no buckets.
type BasicHistogram struct {
	mu    sync.Mutex
	count int64
	sum   float64
	min   float64
	max   float64
}

// Record adds one measurement.
func (h *BasicHistogram) Record(v float64) {
	h.mu.Lock()
	if h.count == 0 {
		h.min, h.max = v, v
	} else {
		if v < h.min {
			h.min = v
		}
		if v > h.max {
			h.max = v
		}
	}
	h.count++
	h.sum += v
	h.mu.Unlock()
}

// HistSnapshot is an immutable view of a BasicHistogram.
type HistSnapshot struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Mean  float64
}

// Snapshot returns the histogram state at the time of call.
func (h *BasicHistogram) Snapshot() HistSnapshot {
	h.mu.Lock()
	s := HistSnapshot{Count: h.count, Sum: h.sum, Min: h.min, Max: h.max}
	h.mu.Unlock()
	if s.Count > 0 {
		s.Mean = s.Sum / float64(s.Count)
	}
	return s
}
