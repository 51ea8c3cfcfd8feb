package reactive

import (
	"fmt"
	"slices"
)

// Driver decides when a scheduled flush actually runs. Schedule is called at
// most once per tick and must not run fn synchronously.
type Driver interface {
	Schedule(fn func()) (cancel func())
}

type DriverFunc func(fn func()) (cancel func())

func (f DriverFunc) Schedule(fn func()) (cancel func()) {
	return f(fn)
}

// ManualDriver queues scheduled callbacks until Tick is called. It is the
// default driver and the natural choice for tests and for hosts that own
// their own frame loop.
type ManualDriver struct {
	queue []*manualTask
}

type manualTask struct {
	fn        func()
	cancelled bool
}

func NewManualDriver() *ManualDriver {
	return &ManualDriver{}
}

func (d *ManualDriver) Schedule(fn func()) (cancel func()) {
	t := &manualTask{fn: fn}
	d.queue = append(d.queue, t)
	return func() {
		t.cancelled = true
	}
}

// Pending reports how many scheduled callbacks are waiting for Tick.
func (d *ManualDriver) Pending() int {
	count := 0
	for _, t := range d.queue {
		if !t.cancelled {
			count++
		}
	}
	return count
}

// Tick runs the callbacks queued so far and returns how many ran. Callbacks
// scheduled while ticking wait for the next Tick.
func (d *ManualDriver) Tick() int {
	tasks := d.queue
	d.queue = nil
	ran := 0
	for _, t := range tasks {
		if t.cancelled {
			continue
		}
		t.cancelled = true
		t.fn()
		ran++
	}
	return ran
}

type pendingCallback struct {
	from nodeRef
	id   uint64
	fn   func()
}

func (rs *ReactiveSystem) hasPending() bool {
	return len(rs.pendingSignals) > 0 || len(rs.pendingComputed) > 0
}

// markSignal records a written signal for the next flush.
func (rs *ReactiveSystem) markSignal(ref nodeRef) {
	if rs.node(ref) == nil {
		return
	}
	if rs.pendingSignalSet.Add(ref) {
		rs.pendingSignals = append(rs.pendingSignals, ref)
	}
	rs.schedule()
}

// invalidate marks a computed stale and queues it. Already-invalid nodes are
// left alone, except that a node whose last evaluation failed is queued once
// more so its subscribers hear that the inputs moved.
func (rs *ReactiveSystem) invalidate(ref nodeRef) {
	n := rs.node(ref)
	if n == nil || n.flags&(fValid|fFailed) == 0 {
		return
	}
	n.flags &^= fValid | fFailed
	if rs.pendingCompSet.Add(ref) {
		rs.pendingComputed = append(rs.pendingComputed, ref)
	}
	if !rs.flushing {
		rs.schedule()
	}
}

func (rs *ReactiveSystem) schedule() {
	if rs.scheduled || rs.batchDepth > 0 {
		return
	}
	rs.scheduled = true
	rs.cancelFlush = rs.driver.Schedule(rs.scheduledFlush)
}

func (rs *ReactiveSystem) scheduledFlush() {
	rs.cancelFlush = nil
	rs.Flush()
}

// Flush delivers everything written since the previous flush. Dependency
// edges are resolved first, draining computed invalidations to a fixed
// point, and only then do external callbacks run so they observe settled
// state. A flush started from inside a callback is a no-op; writes and
// invalidations made by callbacks are delivered on the next tick.
func (rs *ReactiveSystem) Flush() {
	if rs.flushing {
		return
	}
	if rs.cancelFlush != nil {
		rs.cancelFlush()
		rs.cancelFlush = nil
	}
	rs.flushing = true
	rs.scheduled = false
	rs.flushes++
	defer func() {
		rs.flushing = false
		// work queued by callbacks after the drain belongs to the next tick
		if rs.hasPending() {
			rs.schedule()
		}
	}()

	var callbacks []pendingCallback

	signals := rs.pendingSignals
	rs.pendingSignals = nil
	rs.pendingSignalSet.Clear()
	for _, ref := range signals {
		callbacks = rs.notify(ref, callbacks)
	}

	for len(rs.pendingComputed) > 0 {
		computeds := rs.pendingComputed
		rs.pendingComputed = nil
		rs.pendingCompSet.Clear()
		for _, ref := range computeds {
			callbacks = rs.notify(ref, callbacks)
		}
	}

	for _, cb := range callbacks {
		if !rs.subscribed(cb.from, cb.id) {
			// unsubscribed by an earlier callback in this flush
			continue
		}
		rs.safeCall(cb.from, cb.fn)
	}
}

func (rs *ReactiveSystem) notify(ref nodeRef, callbacks []pendingCallback) []pendingCallback {
	n := rs.node(ref)
	if n == nil {
		return callbacks
	}
	for _, s := range slices.Clone(n.subs) {
		if s.fn != nil {
			callbacks = append(callbacks, pendingCallback{from: ref, id: s.id, fn: s.fn})
			continue
		}
		rs.invalidate(s.sub)
	}
	return callbacks
}

func (rs *ReactiveSystem) subscribed(ref nodeRef, id uint64) bool {
	n := rs.node(ref)
	if n == nil {
		return false
	}
	return slices.ContainsFunc(n.subs, func(s subscription) bool {
		return s.id == id
	})
}

// safeCall isolates one callback so a panic cannot abort the rest of the
// flush.
func (rs *ReactiveSystem) safeCall(from nodeRef, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			var err error
			if e, ok := r.(error); ok {
				err = fmt.Errorf("%w: %w", ErrSubscriberPanic, e)
			} else {
				err = fmt.Errorf("%w: %v", ErrSubscriberPanic, r)
			}
			rs.reportError(from, err)
		}
	}()
	fn()
}
