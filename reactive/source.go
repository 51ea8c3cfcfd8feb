package reactive

// Readable is the typed read surface shared by signals and computeds.
type Readable[T any] interface {
	Read() (T, error)
}

// Subscribable is anything that can notify a callback and be unsubscribed.
type Subscribable interface {
	Subscribe(cb func()) (unsubscribe func())
}

// Source is the untyped surface renderers bind to.
type Source interface {
	Subscribable
	Snapshot() (any, error)
}

var (
	_ Source = (*WriteableSignal[int])(nil)
	_ Source = (*ReadonlySignal[int])(nil)
)

// AsSource reports whether v has the shape of a reactive cell.
func AsSource(v any) (Source, bool) {
	s, ok := v.(Source)
	if !ok || s == nil {
		return nil, false
	}
	return s, true
}

// Resolve returns the current value of a reactive cell, or v itself when v
// is not one. A cell whose read fails resolves to the error.
func Resolve(v any) any {
	s, ok := AsSource(v)
	if !ok {
		return v
	}
	x, err := s.Snapshot()
	if err != nil {
		return err
	}
	return x
}
