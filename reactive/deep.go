package reactive

import (
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"
)

// Container is implemented by values whose in-place mutations are
// observable through every signal holding them. Go cannot intercept field
// or element access, so reactive containers route mutation through methods
// that update the backing storage and then notify their owners.
//
// A container held by a signal is "wrapped": adopting it again for the same
// signal is a no-op. Containers nested inside a wrapped container are wrapped
// lazily, the first time they are read through it.
type Container interface {
	adopt(o owner) bool
	release(o owner)
}

type owner struct {
	rs  *ReactiveSystem
	ref nodeRef
}

// owners is embedded by every container.
type owners struct {
	set mapset.Set[owner]
}

func (w *owners) add(o owner) bool {
	if w.set == nil {
		w.set = mapset.NewThreadUnsafeSet[owner]()
	}
	return w.set.Add(o)
}

func (w *owners) remove(o owner) bool {
	if w.set == nil || !w.set.Contains(o) {
		return false
	}
	w.set.Remove(o)
	return true
}

func (w *owners) list() []owner {
	if w.set == nil || w.set.Cardinality() == 0 {
		return nil
	}
	return w.set.ToSlice()
}

// Owned reports how many signals currently hold the container.
func (w *owners) Owned() int {
	if w.set == nil {
		return 0
	}
	return w.set.Cardinality()
}

// notify queues every owner for the next flush.
func (w *owners) notify() {
	for _, o := range w.list() {
		o.rs.markSignal(o.ref)
	}
}

// track registers the owners with any computation reading the container.
func (w *owners) track() {
	for _, o := range w.list() {
		if !o.rs.activeSub.isZero() {
			o.rs.track(o.ref)
		}
	}
}

// wrap adopts a nested container read through this one.
func (w *owners) wrap(v any) {
	c, ok := v.(Container)
	if !ok || c == nil {
		return
	}
	for _, o := range w.list() {
		c.adopt(o)
	}
}

// unwrap releases a nested container that left this one.
func (w *owners) unwrap(v any) {
	c, ok := v.(Container)
	if !ok || c == nil {
		return
	}
	for _, o := range w.list() {
		c.release(o)
	}
}

func releaseValue(v any, o owner) {
	if c, ok := v.(Container); ok && c != nil {
		c.release(o)
	}
}

// fieldContainers returns the containers held in the exported fields of a
// struct value.
func fieldContainers(v any) []Container {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	var found []Container
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if c, ok := f.Interface().(Container); ok && c != nil && !isNilPointer(f) {
			found = append(found, c)
		}
	}
	return found
}

func isNilPointer(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return false
}
