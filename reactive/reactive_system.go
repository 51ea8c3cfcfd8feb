package reactive

import (
	"log/slog"

	mapset "github.com/deckarep/golang-set/v2"
)

type OnErrorFunc func(from NodeInfo, err error)

// ReactiveSystem owns every piece of state the engine shares between cells:
// the node arena, the active computation, and the scheduler queues. Cells
// created from different systems never observe each other.
//
// A ReactiveSystem is not safe for concurrent use. Drive it from a single
// goroutine, for example the one running a loop.Loop.
type ReactiveSystem struct {
	nodes  []node
	free   []uint32
	nextID uint64

	activeSub  nodeRef
	pauseStack []nodeRef

	pendingSignals   []nodeRef
	pendingSignalSet mapset.Set[nodeRef]
	pendingComputed  []nodeRef
	pendingCompSet   mapset.Set[nodeRef]
	scheduled        bool
	cancelFlush      func()
	flushing         bool
	batchDepth       int
	flushes          uint64

	driver  Driver
	onError OnErrorFunc
	logger  *slog.Logger
}

type Option func(*ReactiveSystem)

// WithDriver sets the driver used to schedule flushes.
func WithDriver(d Driver) Option {
	return func(rs *ReactiveSystem) {
		rs.driver = d
	}
}

// WithOnError sets the hook receiving subscriber failures and effect errors.
func WithOnError(fn OnErrorFunc) Option {
	return func(rs *ReactiveSystem) {
		rs.onError = fn
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(rs *ReactiveSystem) {
		rs.logger = logger
	}
}

// CreateReactiveSystem builds an engine. Without WithDriver it schedules
// flushes on a ManualDriver, so nothing is delivered until the caller runs
// Tick on it (see Driver) or calls Flush. Pass a loop.Loop as the driver for
// frame-timed or zero-delay delivery.
func CreateReactiveSystem(opts ...Option) *ReactiveSystem {
	rs := &ReactiveSystem{
		// slot 0 is never handed out so the zero nodeRef means "none"
		nodes:            make([]node, 1, 64),
		pendingSignalSet: mapset.NewThreadUnsafeSet[nodeRef](),
		pendingCompSet:   mapset.NewThreadUnsafeSet[nodeRef](),
	}
	for _, opt := range opts {
		opt(rs)
	}
	if rs.logger == nil {
		rs.logger = slog.Default()
	}
	if rs.driver == nil {
		rs.driver = NewManualDriver()
	}
	if rs.onError == nil {
		rs.onError = func(from NodeInfo, err error) {
			rs.logger.Error("reactive callback failed",
				"node", from.ID,
				"kind", from.Kind,
				"label", from.Label,
				"error", err,
			)
		}
	}
	return rs
}

// Driver returns the driver flushes are scheduled on.
func (rs *ReactiveSystem) Driver() Driver {
	return rs.driver
}

// Reset drops all pending notifications and tracking state. Cells created
// before the reset keep their values and subscribers.
func (rs *ReactiveSystem) Reset() {
	if rs.cancelFlush != nil {
		rs.cancelFlush()
		rs.cancelFlush = nil
	}
	rs.pendingSignals = rs.pendingSignals[:0]
	rs.pendingSignalSet.Clear()
	rs.pendingComputed = rs.pendingComputed[:0]
	rs.pendingCompSet.Clear()
	rs.scheduled = false
	rs.flushing = false
	rs.batchDepth = 0
	rs.activeSub = nodeRef{}
	rs.pauseStack = rs.pauseStack[:0]
}

func (rs *ReactiveSystem) StartBatch() {
	rs.batchDepth++
}

func (rs *ReactiveSystem) EndBatch() {
	rs.batchDepth--
	if rs.batchDepth != 0 || !rs.hasPending() {
		return
	}
	if rs.flushing {
		// the running flush cannot be re-entered, hand it to the next tick
		rs.schedule()
		return
	}
	rs.Flush()
}

// Batch holds back scheduling while cb runs and flushes synchronously once
// the outermost batch returns.
func (rs *ReactiveSystem) Batch(cb func()) {
	rs.StartBatch()
	defer rs.EndBatch()
	cb()
}

func (rs *ReactiveSystem) PauseTracking() {
	rs.pauseStack = append(rs.pauseStack, rs.activeSub)
	rs.activeSub = nodeRef{}
}

func (rs *ReactiveSystem) ResumeTracking() {
	lastIdx := len(rs.pauseStack) - 1
	if lastIdx < 0 {
		return
	}
	rs.activeSub = rs.pauseStack[lastIdx]
	rs.pauseStack = rs.pauseStack[:lastIdx]
}

// Untrack runs fn without registering dependencies on the active computation.
func (rs *ReactiveSystem) Untrack(fn func()) {
	rs.PauseTracking()
	defer rs.ResumeTracking()
	fn()
}

type Stats struct {
	Nodes           int
	PendingSignals  int
	PendingComputed int
	Flushes         uint64
}

func (rs *ReactiveSystem) Stats() Stats {
	return Stats{
		Nodes:           len(rs.nodes) - 1 - len(rs.free),
		PendingSignals:  len(rs.pendingSignals),
		PendingComputed: len(rs.pendingComputed),
		Flushes:         rs.flushes,
	}
}

func (rs *ReactiveSystem) reportError(ref nodeRef, err error) {
	if err == nil {
		return
	}
	rs.onError(rs.info(ref), err)
}

func (rs *ReactiveSystem) info(ref nodeRef) NodeInfo {
	info := NodeInfo{ID: ref.idx}
	if n := rs.node(ref); n != nil {
		info.Kind = n.kind.String()
		info.Label = n.label
	}
	return info
}
