package lifecycle

import (
	"fmt"
	"log/slog"
	"slices"
)

// ScopeID identifies a scope. GlobalScope always exists implicitly; every
// other id comes from CreateScope and is never reused.
type ScopeID uint64

const GlobalScope ScopeID = 0

type Callback func()

type OnErrorFunc func(scope ScopeID, err error)

type scope struct {
	start []Callback
	stop  []Callback
}

// Registry maps scopes to ordered start and stop callbacks. A scope is
// active from creation until RunStop, which fires its stop callbacks once
// and evicts it. Like the reactive engine it is meant to be driven from a
// single goroutine.
type Registry struct {
	lastID ScopeID
	scopes map[ScopeID]*scope
	order  []ScopeID

	onError OnErrorFunc
	logger  *slog.Logger
}

type Option func(*Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithOnError sets the hook receiving panics recovered from callbacks.
func WithOnError(fn OnErrorFunc) Option {
	return func(r *Registry) {
		r.onError = fn
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		scopes: map[ScopeID]*scope{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.onError == nil {
		r.onError = func(id ScopeID, err error) {
			r.logger.Error("lifecycle callback failed", "scope", id, "error", err)
		}
	}
	return r
}

// CreateScope registers a new active scope.
func (r *Registry) CreateScope() ScopeID {
	r.lastID++
	id := r.lastID
	r.scopes[id] = &scope{}
	r.order = append(r.order, id)
	return id
}

// lookup returns the scope for id, creating the global scope on demand.
func (r *Registry) lookup(id ScopeID) *scope {
	if s, ok := r.scopes[id]; ok {
		return s
	}
	if id != GlobalScope {
		return nil
	}
	s := &scope{}
	r.scopes[GlobalScope] = s
	r.order = append([]ScopeID{GlobalScope}, r.order...)
	return s
}

// Active reports whether id has not been stopped yet. The global scope is
// always active.
func (r *Registry) Active(id ScopeID) bool {
	if id == GlobalScope {
		return true
	}
	_, ok := r.scopes[id]
	return ok
}

// Len returns the number of live scopes, the global one included once used.
func (r *Registry) Len() int {
	return len(r.scopes)
}

// OnStart queues cb for the next RunStart of id. Callbacks for scopes that
// were already stopped are dropped.
func (r *Registry) OnStart(id ScopeID, cb Callback) {
	if cb == nil {
		return
	}
	s := r.lookup(id)
	if s == nil {
		r.logger.Debug("start callback for inactive scope dropped", "scope", id)
		return
	}
	s.start = append(s.start, cb)
}

// OnStop queues cb for RunStop of id. When the scope is already stopped cb
// runs immediately, so a late subscription never outlives its scope.
func (r *Registry) OnStop(id ScopeID, cb Callback) {
	if cb == nil {
		return
	}
	s := r.lookup(id)
	if s == nil {
		r.call(id, cb)
		return
	}
	s.stop = append(s.stop, cb)
}

// RunStart fires and clears the start callbacks of id. Callbacks registered
// while it runs wait for the next RunStart.
func (r *Registry) RunStart(id ScopeID) {
	s := r.lookup(id)
	if s == nil {
		return
	}
	callbacks := s.start
	s.start = nil
	for _, cb := range callbacks {
		r.call(id, cb)
	}
}

// RunStop fires the stop callbacks of id in registration order and evicts
// the scope. Stopping a scope twice is a no-op.
func (r *Registry) RunStop(id ScopeID) {
	s, ok := r.scopes[id]
	if !ok {
		return
	}
	delete(r.scopes, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	for _, cb := range s.stop {
		r.call(id, cb)
	}
}

// RunStartAll fires the start callbacks of every active scope in creation
// order, the global scope first.
func (r *Registry) RunStartAll() {
	for _, id := range slices.Clone(r.order) {
		r.RunStart(id)
	}
}

// RunStopAll tears everything down: every active scope's stop callbacks
// fire and the registry is emptied.
func (r *Registry) RunStopAll() {
	ids := slices.Clone(r.order)
	scopes := r.scopes
	r.scopes = map[ScopeID]*scope{}
	r.order = nil
	for _, id := range ids {
		if s, ok := scopes[id]; ok {
			for _, cb := range s.stop {
				r.call(id, cb)
			}
		}
	}
}

func (r *Registry) call(id ScopeID, cb Callback) {
	defer func() {
		if rec := recover(); rec != nil {
			var err error
			if e, ok := rec.(error); ok {
				err = fmt.Errorf("%w: %w", ErrCallbackPanic, e)
			} else {
				err = fmt.Errorf("%w: %v", ErrCallbackPanic, rec)
			}
			r.onError(id, err)
		}
	}()
	cb()
}
