package reactive

type nodeKind uint8

const (
	kindSignal nodeKind = iota + 1
	kindComputed
	kindEffect
)

func (k nodeKind) String() string {
	switch k {
	case kindSignal:
		return "signal"
	case kindComputed:
		return "computed"
	case kindEffect:
		return "effect"
	default:
		return "unknown"
	}
}

type nodeFlags uint8

const (
	fValid nodeFlags = 1 << iota
	fComputing
	fFailed
	fLive
)

// nodeRef addresses a slot in the arena. A ref whose generation no longer
// matches the slot points at a disposed node and is inert.
type nodeRef struct {
	idx uint32
	gen uint32
}

func (r nodeRef) isZero() bool {
	return r.idx == 0
}

// subscription is one entry in a node's subscriber list. Exactly one of sub
// and fn is set: sub for dependency edges, fn for external callbacks.
type subscription struct {
	id  uint64
	sub nodeRef
	fn  func()
}

// edge is held by a dependent and points back at the subscription it owns
// on the dependency.
type edge struct {
	dep nodeRef
	id  uint64
}

type node struct {
	gen   uint32
	kind  nodeKind
	flags nodeFlags
	label string
	subs  []subscription
	deps  []edge
}

// NodeInfo describes a node for error reporting.
type NodeInfo struct {
	ID    uint32
	Kind  string
	Label string
}

// SignalAware is implemented by every reactive cell.
type SignalAware interface {
	isSignalAware()
	Info() NodeInfo
}
