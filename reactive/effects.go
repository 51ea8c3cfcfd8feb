package reactive

type ErrFn func() error

// Effect runs fn now and again after every flush in which something it read
// changed. Errors returned by fn go to the system's OnErrorFunc. The returned
// function stops the effect and releases its node.
func Effect(rs *ReactiveSystem, fn ErrFn, opts ...NodeOption) (stop func()) {
	o := applyNodeOptions(opts)
	e := &ReadonlySignal[struct{}]{
		rs:  rs,
		ref: rs.alloc(kindEffect, o.label),
		getter: func() (struct{}, error) {
			return struct{}{}, fn()
		},
	}

	run := func() {
		// effects created inside a computation do not become its dependency
		rs.PauseTracking()
		defer rs.ResumeTracking()
		if _, err := e.Value(); err != nil {
			rs.reportError(e.ref, err)
		}
	}
	run()
	unsubscribe := e.Subscribe(run)

	stopped := false
	return func() {
		if stopped {
			return
		}
		stopped = true
		unsubscribe()
		e.Dispose()
	}
}
