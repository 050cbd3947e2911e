package metrics

// NoopProvider returns instruments that discard all measurements.
// It is the pool's default provider.
type NoopProvider struct{}

// NewNoopProvider constructs a Provider that records nothing.
func NewNoopProvider() NoopProvider { return NoopProvider{} }

func (NoopProvider) Counter(_ string, _ ...InstrumentOption) Counter {
	return noopCounter{}
}

func (NoopProvider) Gauge(_ string, _ ...InstrumentOption) Gauge {
	return noopGauge{}
}

func (NoopProvider) Histogram(_ string, _ ...InstrumentOption) Histogram {
	return noopHistogram{}
}

type noopCounter struct{}

func (noopCounter) Add(_ int64) {}

type noopGauge struct{}

func (noopGauge) Add(_ int64) {}

type noopHistogram struct{}

func (noopHistogram) Record(_ float64) {}
