package reactive

import "reflect"

type NodeOption func(*nodeOptions)

type nodeOptions struct {
	label string
}

// Label names a node in errors and log lines.
func Label(label string) NodeOption {
	return func(o *nodeOptions) {
		o.label = label
	}
}

func applyNodeOptions(opts []NodeOption) nodeOptions {
	var o nodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type WriteableSignal[T any] struct {
	rs    *ReactiveSystem
	ref   nodeRef
	value T
}

func (s *WriteableSignal[T]) isSignalAware() {}

func (s *WriteableSignal[T]) Info() NodeInfo {
	return s.rs.info(s.ref)
}

// Signal creates a writeable cell. A Container initial value is adopted so
// that its in-place mutations notify this signal.
func Signal[T any](rs *ReactiveSystem, initialValue T, opts ...NodeOption) *WriteableSignal[T] {
	o := applyNodeOptions(opts)
	s := &WriteableSignal[T]{
		rs:    rs,
		ref:   rs.alloc(kindSignal, o.label),
		value: initialValue,
	}
	if c, ok := any(initialValue).(Container); ok && c != nil {
		c.adopt(s.owner())
	}
	return s
}

func (s *WriteableSignal[T]) owner() owner {
	return owner{rs: s.rs, ref: s.ref}
}

// Value returns the current value, registering the signal as a dependency
// of the computation being evaluated, if any.
func (s *WriteableSignal[T]) Value() T {
	s.rs.track(s.ref)
	return s.value
}

// Peek returns the current value without tracking.
func (s *WriteableSignal[T]) Peek() T {
	return s.value
}

func (s *WriteableSignal[T]) Read() (T, error) {
	return s.Value(), nil
}

func (s *WriteableSignal[T]) Snapshot() (any, error) {
	return s.Value(), nil
}

// SetValue stores v and schedules a notification. Writing a plain value
// identical to the current one does nothing. Writing a Container always
// notifies, even when it is the container already held.
func (s *WriteableSignal[T]) SetValue(v T) {
	next, isContainer := any(v).(Container)
	if isContainer && next == nil {
		isContainer = false
	}
	if !isContainer && sameValue(s.value, v) {
		return
	}

	o := s.owner()
	if prev, ok := any(s.value).(Container); ok && prev != nil && (!isContainer || prev != next) {
		prev.release(o)
	}
	s.value = v
	if isContainer {
		next.adopt(o)
	}
	s.rs.markSignal(s.ref)
}

// Update applies fn to the current value and stores the result.
func (s *WriteableSignal[T]) Update(fn func(T) T) {
	s.SetValue(fn(s.value))
}

// Subscribe registers cb to run on every flush that follows a change. The
// returned function removes it and is safe to call more than once.
func (s *WriteableSignal[T]) Subscribe(cb func()) (unsubscribe func()) {
	return s.rs.subscribeFunc(s.ref, cb)
}

// Dispose detaches the signal from the graph and frees its slot. The value
// stays readable but nothing is notified any more.
func (s *WriteableSignal[T]) Dispose() {
	if c, ok := any(s.value).(Container); ok && c != nil {
		c.release(s.owner())
	}
	s.rs.dispose(s.ref)
}

// sameValue reports whether a and b are identical for change detection.
// Values whose dynamic type is not comparable never match.
func sameValue[T any](a, b T) bool {
	va, vb := reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem()
	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return va.Equal(vb)
}
