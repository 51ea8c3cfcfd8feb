package lifecycle_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/propa/lifecycle"
	"github.com/delaneyj/propa/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) *lifecycle.Registry {
	t.Helper()
	return lifecycle.NewRegistry(lifecycle.WithOnError(func(id lifecycle.ScopeID, err error) {
		assert.FailNow(t, err.Error())
	}))
}

func TestScopeIDsAreMonotonic(t *testing.T) {
	r := newRegistry(t)
	a := r.CreateScope()
	b := r.CreateScope()
	r.RunStop(b)
	c := r.CreateScope()

	assert.Equal(t, lifecycle.ScopeID(1), a)
	assert.Equal(t, lifecycle.ScopeID(2), b)
	assert.Equal(t, lifecycle.ScopeID(3), c, "ids are never reused")
	assert.Equal(t, 2, r.Len())
}

func TestStartCallbacksFireOnceInOrder(t *testing.T) {
	r := newRegistry(t)
	id := r.CreateScope()

	order := []string{}
	r.OnStart(id, func() { order = append(order, "first") })
	r.OnStart(id, func() { order = append(order, "second") })

	r.RunStart(id)
	r.RunStart(id)
	assert.Equal(t, []string{"first", "second"}, order)
	assert.True(t, r.Active(id), "starting does not stop")
}

func TestStartCallbackRegisteredWhileStarting(t *testing.T) {
	r := newRegistry(t)
	id := r.CreateScope()

	calls := 0
	r.OnStart(id, func() {
		r.OnStart(id, func() {
			calls++
		})
	})
	r.RunStart(id)
	assert.Zero(t, calls)
	r.RunStart(id)
	assert.Equal(t, 1, calls)
}

// should fire stop callbacks in order and evict the scope
func TestStopFiresAndEvicts(t *testing.T) {
	r := newRegistry(t)
	id := r.CreateScope()

	order := []string{}
	r.OnStop(id, func() { order = append(order, "first") })
	r.OnStop(id, func() { order = append(order, "second") })

	r.RunStop(id)
	assert.Equal(t, []string{"first", "second"}, order)
	assert.False(t, r.Active(id))

	r.RunStop(id)
	assert.Equal(t, []string{"first", "second"}, order, "double teardown is a no-op")
}

func TestLateRegistrationOnStoppedScope(t *testing.T) {
	r := newRegistry(t)
	id := r.CreateScope()
	r.RunStop(id)

	stopped, started := 0, 0
	r.OnStop(id, func() { stopped++ })
	r.OnStart(id, func() { started++ })
	assert.Equal(t, 1, stopped, "late stop callbacks run immediately")

	r.RunStart(id)
	assert.Zero(t, started)
	assert.Zero(t, r.Len())
}

func TestGlobalScope(t *testing.T) {
	r := newRegistry(t)
	assert.True(t, r.Active(lifecycle.GlobalScope))
	assert.Zero(t, r.Len())

	local := r.CreateScope()
	order := []string{}
	r.OnStart(local, func() { order = append(order, "local") })
	r.OnStart(lifecycle.GlobalScope, func() { order = append(order, "global") })

	r.RunStartAll()
	assert.Equal(t, []string{"global", "local"}, order)
}

func TestRunStopAllClearsRegistry(t *testing.T) {
	r := newRegistry(t)
	a := r.CreateScope()
	b := r.CreateScope()

	order := []lifecycle.ScopeID{}
	r.OnStop(a, func() { order = append(order, a) })
	r.OnStop(b, func() { order = append(order, b) })
	r.OnStop(lifecycle.GlobalScope, func() { order = append(order, lifecycle.GlobalScope) })

	r.RunStopAll()
	assert.Equal(t, []lifecycle.ScopeID{lifecycle.GlobalScope, a, b}, order)
	assert.Zero(t, r.Len())
	assert.False(t, r.Active(a))

	r.RunStopAll()
	assert.Len(t, order, 3)
}

func TestCallbackPanicIsIsolated(t *testing.T) {
	var reported []error
	var scopes []lifecycle.ScopeID
	r := lifecycle.NewRegistry(lifecycle.WithOnError(func(id lifecycle.ScopeID, err error) {
		scopes = append(scopes, id)
		reported = append(reported, err)
	}))
	id := r.CreateScope()

	errBoom := errors.New("boom")
	ran := false
	r.OnStop(id, func() { panic(errBoom) })
	r.OnStop(id, func() { ran = true })

	r.RunStop(id)
	assert.True(t, ran)
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], lifecycle.ErrCallbackPanic)
	assert.ErrorIs(t, reported[0], errBoom)
	assert.Equal(t, id, scopes[0])
}

func TestNilCallbacksAreIgnored(t *testing.T) {
	r := newRegistry(t)
	id := r.CreateScope()
	r.OnStart(id, nil)
	r.OnStop(id, nil)
	r.RunStart(id)
	r.RunStop(id)
	r.OnStop(id, nil)
}

// should mount and unmount components like a router swapping a page
func TestComponentVocabulary(t *testing.T) {
	r := newRegistry(t)
	header := r.CreateComponent()
	body := r.CreateComponent()

	events := []string{}
	r.OnMount(header, func() { events = append(events, "mount header") })
	r.OnMount(body, func() { events = append(events, "mount body") })
	r.OnUnmount(header, func() { events = append(events, "unmount header") })
	r.OnUnmount(body, func() { events = append(events, "unmount body") })

	r.ExecuteOnMountAll()
	r.ExecuteOnUnmount(body)
	r.ExecuteOnUnmount(body)
	r.ExecuteOnMount(header)
	r.ExecuteOnUnmountAll()

	assert.Equal(t, []string{
		"mount header",
		"mount body",
		"unmount body",
		"unmount header",
	}, events)
}

// should stop delivering signal changes once the owning scope stops
func TestScopeWatchUnsubscribesOnStop(t *testing.T) {
	r := newRegistry(t)
	driver := reactive.NewManualDriver()
	rs := reactive.CreateReactiveSystem(reactive.WithDriver(driver))
	count := reactive.Signal(rs, 0)

	scope := r.Begin()
	rendered := []int{}
	scope.Watch(count, func() {
		rendered = append(rendered, count.Value())
	})
	scope.Start()

	count.SetValue(1)
	driver.Tick()
	assert.Equal(t, []int{1}, rendered)

	scope.Stop()
	assert.True(t, scope.Stopped())
	count.SetValue(2)
	driver.Tick()
	assert.Equal(t, []int{1}, rendered)

	// binding to an already stopped scope leaks nothing
	scope.Watch(count, func() {
		rendered = append(rendered, -1)
	})
	count.SetValue(3)
	driver.Tick()
	assert.Equal(t, []int{1}, rendered)
}

func TestScopeHandles(t *testing.T) {
	r := newRegistry(t)
	s := r.Begin()
	same := r.Scope(s.ID())

	calls := 0
	same.OnStart(func() { calls++ })
	s.Start()
	assert.Equal(t, 1, calls)

	global := r.Global()
	assert.Equal(t, lifecycle.GlobalScope, global.ID())
	global.Stop()
	assert.False(t, global.Stopped(), "the global scope is always active")
}
