package reactive

//go:generate go run ../cmd/codegen --out computed_gen.go

// ReadonlySignal is a derived cell. Its function runs lazily on read and the
// result is memoized until one of the cells read during the last run
// changes. The dependency set is rebuilt on every run, so a branch that is
// not taken holds no edge.
type ReadonlySignal[T any] struct {
	rs     *ReactiveSystem
	ref    nodeRef
	value  T
	getter func() (T, error)
}

func (c *ReadonlySignal[T]) isSignalAware() {}

func (c *ReadonlySignal[T]) Info() NodeInfo {
	return c.rs.info(c.ref)
}

func Computed[T any](rs *ReactiveSystem, getter func() (T, error), opts ...NodeOption) *ReadonlySignal[T] {
	o := applyNodeOptions(opts)
	return &ReadonlySignal[T]{
		rs:     rs,
		ref:    rs.alloc(kindComputed, o.label),
		getter: getter,
	}
}

// Memo is Computed for functions that cannot fail.
func Memo[T any](rs *ReactiveSystem, fn func() T, opts ...NodeOption) *ReadonlySignal[T] {
	return Computed(rs, func() (T, error) {
		return fn(), nil
	}, opts...)
}

// Value returns the memoized result, recomputing it first if a dependency
// changed since the last successful run. A failed run is never cached.
func (c *ReadonlySignal[T]) Value() (T, error) {
	rs := c.rs
	rs.track(c.ref)

	n := rs.node(c.ref)
	if n == nil {
		return c.value, ErrDisposed
	}
	if n.flags&fValid != 0 {
		return c.value, nil
	}
	if n.flags&fComputing != 0 {
		var zero T
		return zero, &ComputationError{Label: n.label, Err: ErrCircularDependency}
	}
	return c.recompute()
}

// MustValue is Value for callers that treat a failed computation as a bug.
func (c *ReadonlySignal[T]) MustValue() T {
	v, err := c.Value()
	if err != nil {
		panic(err)
	}
	return v
}

func (c *ReadonlySignal[T]) Read() (T, error) {
	return c.Value()
}

func (c *ReadonlySignal[T]) Snapshot() (any, error) {
	return c.Value()
}

func (c *ReadonlySignal[T]) recompute() (v T, err error) {
	rs := c.rs
	rs.clearDeps(c.ref)
	rs.setFlags(c.ref, fComputing, fFailed)

	prevSub := rs.activeSub
	rs.activeSub = c.ref
	returned := false
	defer func() {
		rs.activeSub = prevSub
		rs.setFlags(c.ref, 0, fComputing)
		if !returned {
			// a panicking run counts as failed so input changes still notify
			rs.setFlags(c.ref, fFailed, 0)
		}
	}()

	v, err = c.getter()
	returned = true
	if err != nil {
		n := rs.node(c.ref)
		label := ""
		if n != nil {
			label = n.label
		}
		rs.setFlags(c.ref, fFailed, 0)
		var zero T
		return zero, &ComputationError{Label: label, Err: err}
	}

	c.value = v
	rs.setFlags(c.ref, fValid, 0)
	return v, nil
}

// Invalidate forces the next read to recompute and notifies subscribers on
// the next flush.
func (c *ReadonlySignal[T]) Invalidate() {
	c.rs.invalidate(c.ref)
}

func (c *ReadonlySignal[T]) Subscribe(cb func()) (unsubscribe func()) {
	return c.rs.subscribeFunc(c.ref, cb)
}

func (c *ReadonlySignal[T]) Dispose() {
	c.rs.dispose(c.ref)
}
