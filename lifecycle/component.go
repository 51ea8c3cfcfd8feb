package lifecycle

// Component vocabulary used by renderers, routers and plugin wrappers. A
// component is a scope: mount callbacks are start callbacks and unmount
// callbacks are stop callbacks.

func (r *Registry) CreateComponent() ScopeID {
	return r.CreateScope()
}

func (r *Registry) OnMount(id ScopeID, cb Callback) {
	r.OnStart(id, cb)
}

func (r *Registry) OnUnmount(id ScopeID, cb Callback) {
	r.OnStop(id, cb)
}

func (r *Registry) ExecuteOnMount(id ScopeID) {
	r.RunStart(id)
}

func (r *Registry) ExecuteOnUnmount(id ScopeID) {
	r.RunStop(id)
}

// ExecuteOnMountAll mounts every active component, as a router does after
// swapping page content.
func (r *Registry) ExecuteOnMountAll() {
	r.RunStartAll()
}

// ExecuteOnUnmountAll unmounts every component before a page swap.
func (r *Registry) ExecuteOnUnmountAll() {
	r.RunStopAll()
}
