package reactive

import "slices"

// alloc hands out a fresh slot, reusing disposed ones. Pointers into
// rs.nodes are invalidated by alloc, so never hold a *node across it.
func (rs *ReactiveSystem) alloc(kind nodeKind, label string) nodeRef {
	if last := len(rs.free) - 1; last >= 0 {
		idx := rs.free[last]
		rs.free = rs.free[:last]
		n := &rs.nodes[idx]
		n.gen++
		n.kind = kind
		n.flags = fLive
		n.label = label
		return nodeRef{idx: idx, gen: n.gen}
	}

	idx := uint32(len(rs.nodes))
	rs.nodes = append(rs.nodes, node{
		gen:   1,
		kind:  kind,
		flags: fLive,
		label: label,
	})
	return nodeRef{idx: idx, gen: 1}
}

func (rs *ReactiveSystem) node(ref nodeRef) *node {
	if ref.idx == 0 || int(ref.idx) >= len(rs.nodes) {
		return nil
	}
	n := &rs.nodes[ref.idx]
	if n.gen != ref.gen || n.flags&fLive == 0 {
		return nil
	}
	return n
}

func (rs *ReactiveSystem) dispose(ref nodeRef) {
	if rs.node(ref) == nil {
		return
	}
	rs.clearDeps(ref)

	n := rs.node(ref)
	n.flags = 0
	n.label = ""
	n.subs = nil
	n.deps = nil
	rs.free = append(rs.free, ref.idx)
}

// track links dep to the active computation, once per evaluation.
func (rs *ReactiveSystem) track(dep nodeRef) {
	sub := rs.activeSub
	if sub.isZero() || sub == dep {
		return
	}
	sn := rs.node(sub)
	if sn == nil {
		return
	}
	for _, e := range sn.deps {
		if e.dep == dep {
			return
		}
	}
	id := rs.subscribe(dep, subscription{sub: sub})
	if id == 0 {
		return
	}
	sn.deps = append(sn.deps, edge{dep: dep, id: id})
}

func (rs *ReactiveSystem) subscribe(dep nodeRef, s subscription) uint64 {
	n := rs.node(dep)
	if n == nil {
		return 0
	}
	rs.nextID++
	s.id = rs.nextID
	n.subs = append(n.subs, s)
	return s.id
}

// unsubscribe is idempotent: unknown ids and stale refs are ignored.
func (rs *ReactiveSystem) unsubscribe(dep nodeRef, id uint64) {
	n := rs.node(dep)
	if n == nil {
		return
	}
	i := slices.IndexFunc(n.subs, func(s subscription) bool {
		return s.id == id
	})
	if i < 0 {
		return
	}
	// delivery iterates over copies, so shifting in place is safe
	n.subs = slices.Delete(n.subs, i, i+1)
}

// clearDeps drops every dependency edge held by ref.
func (rs *ReactiveSystem) clearDeps(ref nodeRef) {
	n := rs.node(ref)
	if n == nil || len(n.deps) == 0 {
		return
	}
	deps := n.deps
	n.deps = nil
	for _, e := range deps {
		rs.unsubscribe(e.dep, e.id)
	}
}

func (rs *ReactiveSystem) subscribeFunc(ref nodeRef, cb func()) (unsubscribe func()) {
	if cb == nil {
		return func() {}
	}
	id := rs.subscribe(ref, subscription{fn: cb})
	return func() {
		rs.unsubscribe(ref, id)
	}
}

func (rs *ReactiveSystem) setFlags(ref nodeRef, set, clear nodeFlags) {
	if n := rs.node(ref); n != nil {
		n.flags = n.flags&^clear | set
	}
}
