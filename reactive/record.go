package reactive

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

var recordCompare = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	// nested containers notify on their own, compare them by identity
	cmp.Comparer(func(a, b Container) bool { return a == b }),
}

// Record makes a plain struct observable. Fields are changed through Mutate
// or Set; containers stored in exported fields are wrapped when read.
type Record[T any] struct {
	owners
	v T
}

func NewRecord[T any](v T) *Record[T] {
	return &Record[T]{v: v}
}

func (r *Record[T]) adopt(o owner) bool {
	if r == nil {
		return false
	}
	return r.add(o)
}

func (r *Record[T]) release(o owner) {
	if r == nil || !r.remove(o) {
		return
	}
	for _, c := range fieldContainers(r.v) {
		c.release(o)
	}
}

// Get returns a deep copy of the struct. Slices, maps and pointers in
// exported fields are copied; containers are shared.
func (r *Record[T]) Get() T {
	r.track()
	for _, c := range fieldContainers(r.v) {
		r.wrap(c)
	}
	return r.snapshot()
}

// Mutate edits the struct in place and notifies only if it changed,
// including edits made through slices and maps held in its fields.
func (r *Record[T]) Mutate(fn func(*T)) {
	before := r.snapshot()
	prev := fieldContainers(r.v)
	fn(&r.v)
	r.commit(before, prev)
}

func (r *Record[T]) Set(v T) {
	before := r.snapshot()
	prev := fieldContainers(r.v)
	r.v = v
	r.commit(before, prev)
}

func (r *Record[T]) snapshot() T {
	var out T
	reflect.ValueOf(&out).Elem().Set(deepCopy(reflect.ValueOf(&r.v).Elem(), map[copyKey]reflect.Value{}))
	return out
}

func (r *Record[T]) commit(before T, prev []Container) {
	if cmp.Equal(before, r.v, recordCompare...) {
		return
	}
	next := fieldContainers(r.v)
	for _, c := range prev {
		if !containsContainer(next, c) {
			r.unwrap(c)
		}
	}
	r.notify()
}

func containsContainer(list []Container, c Container) bool {
	for _, x := range list {
		if x == c {
			return true
		}
	}
	return false
}

var containerType = reflect.TypeFor[Container]()

type copyKey struct {
	t reflect.Type
	p uintptr
}

// deepCopy copies v through exported fields, slices, arrays, maps and
// pointers. Unexported fields are copied shallowly and containers keep
// their identity.
func deepCopy(v reflect.Value, seen map[copyKey]reflect.Value) reflect.Value {
	if v.Type().Implements(containerType) {
		return v
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		key := copyKey{t: v.Type(), p: v.Pointer()}
		if cp, ok := seen[key]; ok {
			return cp
		}
		cp := reflect.New(v.Type().Elem())
		seen[key] = cp
		cp.Elem().Set(deepCopy(v.Elem(), seen))
		return cp

	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		cp := reflect.New(v.Type()).Elem()
		cp.Set(deepCopy(v.Elem(), seen))
		return cp

	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		cp := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := range v.Len() {
			cp.Index(i).Set(deepCopy(v.Index(i), seen))
		}
		return cp

	case reflect.Array:
		cp := reflect.New(v.Type()).Elem()
		for i := range v.Len() {
			cp.Index(i).Set(deepCopy(v.Index(i), seen))
		}
		return cp

	case reflect.Map:
		if v.IsNil() {
			return v
		}
		cp := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			cp.SetMapIndex(iter.Key(), deepCopy(iter.Value(), seen))
		}
		return cp

	case reflect.Struct:
		cp := reflect.New(v.Type()).Elem()
		cp.Set(v)
		for i := range v.NumField() {
			if !v.Type().Field(i).IsExported() {
				continue
			}
			cp.Field(i).Set(deepCopy(v.Field(i), seen))
		}
		return cp
	}
	return v
}
