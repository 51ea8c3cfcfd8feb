package reactive

import (
	"iter"
	"slices"
)

// List is a reactive ordered collection. Every method works directly on the
// backing slice; mutations that change it notify the owning signals once.
type List[T any] struct {
	owners
	items []T
}

func NewList[T any](items ...T) *List[T] {
	return &List[T]{items: slices.Clone(items)}
}

func (l *List[T]) adopt(o owner) bool {
	if l == nil {
		return false
	}
	return l.add(o)
}

func (l *List[T]) release(o owner) {
	if l == nil || !l.remove(o) {
		return
	}
	for _, item := range l.items {
		releaseValue(item, o)
	}
}

// drop releases a container that left the list, unless another slot
// still holds it.
func (l *List[T]) drop(item T) {
	c, ok := any(item).(Container)
	if !ok || c == nil {
		return
	}
	for _, x := range l.items {
		if xc, ok := any(x).(Container); ok && xc == c {
			return
		}
	}
	l.unwrap(c)
}

func (l *List[T]) Len() int {
	l.track()
	return len(l.items)
}

// At returns the element at i, wrapping it if it is a container. It panics
// when i is out of range, like indexing a slice.
func (l *List[T]) At(i int) T {
	l.track()
	item := l.items[i]
	l.wrap(item)
	return item
}

func (l *List[T]) Set(i int, v T) {
	prev := l.items[i]
	if sameValue(prev, v) {
		return
	}
	l.items[i] = v
	l.drop(prev)
	l.notify()
}

func (l *List[T]) Push(items ...T) {
	if len(items) == 0 {
		return
	}
	l.items = append(l.items, items...)
	l.notify()
}

func (l *List[T]) Pop() (T, bool) {
	var zero T
	last := len(l.items) - 1
	if last < 0 {
		return zero, false
	}
	item := l.items[last]
	l.items[last] = zero
	l.items = l.items[:last]
	l.drop(item)
	l.notify()
	return item, true
}

// Insert places items before index i; i == Len() appends.
func (l *List[T]) Insert(i int, items ...T) {
	if len(items) == 0 {
		return
	}
	l.items = slices.Insert(l.items, i, items...)
	l.notify()
}

func (l *List[T]) RemoveAt(i int) T {
	item := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	l.drop(item)
	l.notify()
	return item
}

func (l *List[T]) Clear() {
	if len(l.items) == 0 {
		return
	}
	for _, item := range l.items {
		l.unwrap(item)
	}
	l.items = nil
	l.notify()
}

// SortFunc sorts in place; an already sorted list is left untouched and
// does not notify.
func (l *List[T]) SortFunc(cmp func(a, b T) int) {
	if slices.IsSortedFunc(l.items, cmp) {
		return
	}
	slices.SortStableFunc(l.items, cmp)
	l.notify()
}

func (l *List[T]) Index(fn func(T) bool) int {
	l.track()
	return slices.IndexFunc(l.items, fn)
}

func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		l.track()
		for i, item := range l.items {
			l.wrap(item)
			if !yield(i, item) {
				return
			}
		}
	}
}

func (l *List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range l.All() {
			if !yield(item) {
				return
			}
		}
	}
}

// Slice returns a copy of the elements.
func (l *List[T]) Slice() []T {
	l.track()
	return slices.Clone(l.items)
}
