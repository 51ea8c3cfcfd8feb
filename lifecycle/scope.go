package lifecycle

// Subscribable is the subscription surface of a reactive cell.
type Subscribable interface {
	Subscribe(cb func()) (unsubscribe func())
}

// Scope is an explicit handle on one scope of a Registry. Components thread
// it through construction instead of relying on an ambient current scope.
type Scope struct {
	r  *Registry
	id ScopeID
}

// Begin creates a scope and returns its handle.
func (r *Registry) Begin() *Scope {
	return &Scope{r: r, id: r.CreateScope()}
}

// Global returns a handle on the implicit global scope.
func (r *Registry) Global() *Scope {
	return &Scope{r: r, id: GlobalScope}
}

// Scope returns a handle on an existing id.
func (r *Registry) Scope(id ScopeID) *Scope {
	return &Scope{r: r, id: id}
}

func (s *Scope) ID() ScopeID {
	return s.id
}

func (s *Scope) OnStart(cb Callback) {
	s.r.OnStart(s.id, cb)
}

func (s *Scope) OnStop(cb Callback) {
	s.r.OnStop(s.id, cb)
}

func (s *Scope) Start() {
	s.r.RunStart(s.id)
}

func (s *Scope) Stop() {
	s.r.RunStop(s.id)
}

func (s *Scope) Stopped() bool {
	return !s.r.Active(s.id)
}

// Watch subscribes cb to src for as long as the scope is active.
func (s *Scope) Watch(src Subscribable, cb func()) {
	if src == nil || cb == nil {
		return
	}
	s.OnStop(Callback(src.Subscribe(cb)))
}
