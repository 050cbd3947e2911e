package workerpool

// With constructs a pool, hands it to fn, and guarantees a full Shutdown on
// every exit path: normal return, early error return, or panic (the panic is
// re-raised after shutdown). No worker or watchman goroutine outlives the
// call. Options select a plain or scaling pool exactly as with New.
func With(fn func(*Pool) error, opts ...Option) error {
	p, err := New(opts...)
	if err != nil {
		return err
	}
	defer p.Shutdown()
	return fn(p)
}
