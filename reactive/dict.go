package reactive

import (
	"iter"
	"slices"
)

// Dict is a reactive associative collection that iterates in insertion
// order.
type Dict[K comparable, V any] struct {
	owners
	keys []K
	vals map[K]V
}

func NewDict[K comparable, V any]() *Dict[K, V] {
	return &Dict[K, V]{vals: map[K]V{}}
}

func (d *Dict[K, V]) adopt(o owner) bool {
	if d == nil {
		return false
	}
	return d.add(o)
}

func (d *Dict[K, V]) release(o owner) {
	if d == nil || !d.remove(o) {
		return
	}
	for _, v := range d.vals {
		releaseValue(v, o)
	}
}

// drop releases a container that left the dict, unless another key still
// maps to it.
func (d *Dict[K, V]) drop(v V) {
	c, ok := any(v).(Container)
	if !ok || c == nil {
		return
	}
	for _, x := range d.vals {
		if xc, ok := any(x).(Container); ok && xc == c {
			return
		}
	}
	d.unwrap(c)
}

func (d *Dict[K, V]) Len() int {
	d.track()
	return len(d.keys)
}

func (d *Dict[K, V]) Get(k K) (V, bool) {
	d.track()
	v, ok := d.vals[k]
	if ok {
		d.wrap(v)
	}
	return v, ok
}

func (d *Dict[K, V]) Has(k K) bool {
	d.track()
	_, ok := d.vals[k]
	return ok
}

func (d *Dict[K, V]) Set(k K, v V) {
	prev, ok := d.vals[k]
	if ok && sameValue(prev, v) {
		return
	}
	if !ok {
		d.keys = append(d.keys, k)
	}
	d.vals[k] = v
	if ok {
		d.drop(prev)
	}
	d.notify()
}

func (d *Dict[K, V]) Delete(k K) bool {
	prev, ok := d.vals[k]
	if !ok {
		return false
	}
	delete(d.vals, k)
	if i := slices.Index(d.keys, k); i >= 0 {
		d.keys = slices.Delete(d.keys, i, i+1)
	}
	d.drop(prev)
	d.notify()
	return true
}

func (d *Dict[K, V]) Clear() {
	if len(d.keys) == 0 {
		return
	}
	for _, v := range d.vals {
		d.unwrap(v)
	}
	d.keys = nil
	d.vals = map[K]V{}
	d.notify()
}

// Keys returns a copy of the keys in insertion order.
func (d *Dict[K, V]) Keys() []K {
	d.track()
	return slices.Clone(d.keys)
}

func (d *Dict[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		d.track()
		for _, k := range d.keys {
			v := d.vals[k]
			d.wrap(v)
			if !yield(k, v) {
				return
			}
		}
	}
}
