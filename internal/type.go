package internal

import (
	"sync"
	"sync/atomic"
)

// Type is a runtime type. It holds the capability slots the type defines
// itself and the list of its bases, which together with the bases' own
// ancestors determine the capabilities of every object of the type.
//
// Types may be modified at any time: slots can be stored or cleared and bases
// replaced. Nothing in this package caches a resolved capability, so every
// lookup observes the current state.
type Type struct {
	// Slots is the type's own capability table.
	Slots Slots

	// bases is the head of this type's bases list. If bases.p is nil, then
	// the type has no bases.
	bases baseLink

	name string
	id   uintptr
}

// NewType creates a new type with the given name and bases. If no bases are
// given, the type's only base is the VM's root object type.
func (vm *VM) NewType(name string, bases ...*Type) *Type {
	if len(bases) == 0 && vm.BaseType != nil {
		bases = []*Type{vm.BaseType}
	}
	t := &Type{name: name, id: nextObject()}
	t.SetBases(bases...)
	return t
}

// Name returns the type's name.
func (t *Type) Name() string {
	return t.name
}

// String returns the type's name.
func (t *Type) String() string {
	return t.name
}

// UniqueID returns the type's unique ID.
func (t *Type) UniqueID() uintptr {
	return t.id
}

// baseLink is a node of a concurrent linked list. Its p and n fields must be
// accessed atomically.
type baseLink struct {
	// p is the base at this element.
	p atomic.Pointer[Type]
	// n is the link to the next node.
	n atomic.Pointer[baseLink]
	// mu is a mutex for write permission on the link. Even while holding the
	// lock, p and n must be handled atomically, as readers do not acquire it.
	mu sync.Mutex
}

// logicalDeleted marks the head of a bases list as logically deleted.
// Readers seeing it must wait for the writer holding the head's lock.
var logicalDeleted = new(Type)

// baseHead returns the type's first base and the link to the next.
func (t *Type) baseHead() (p *Type, n *baseLink) {
	for {
		p = t.bases.p.Load()
		if p == logicalDeleted {
			// Someone holds the head's lock. Acquire it so the runtime can
			// park us instead of spinning; once we hold it, the node is
			// consistent.
			t.bases.mu.Lock()
			p = t.bases.p.Load()
			t.bases.mu.Unlock()
		}
		n = t.bases.n.Load()
		// Require the head to be unchanged so that we don't pair the first
		// base of one list with the link of another.
		if p == t.bases.p.Load() {
			return p, n
		}
	}
}

// iterR returns the node's data and its next link. p is nil at the end of the
// list. This must not be called on the head rooted on a type; use baseHead.
func (l *baseLink) iterR() (p *Type, n *baseLink) {
	if l == nil {
		return nil, nil
	}
	return l.p.Load(), l.n.Load()
}

// Bases returns a snapshot of the type's bases. The result is nil if t has no
// bases.
func (t *Type) Bases() []*Type {
	p, n := t.baseHead()
	if p == nil {
		return nil
	}
	r := []*Type{p} // most types have one base
	for p, n = n.iterR(); p != nil; p, n = n.iterR() {
		r = append(r, p)
	}
	return r
}

// ForeachBase calls exec on each of the type's direct bases in order. exec
// must not modify t's bases. If exec returns false, then the iteration ceases.
func (t *Type) ForeachBase(exec func(p *Type) bool) {
	p, n := t.baseHead()
	if p == nil || !exec(p) {
		return
	}
	for p, n := n.iterR(); p != nil; p, n = n.iterR() {
		if !exec(p) {
			return
		}
	}
}

// SetBases replaces the type's bases.
func (t *Type) SetBases(bases ...*Type) {
	t.bases.mu.Lock()
	t.storeBases(bases)
	t.bases.mu.Unlock()
}

// storeBases publishes a new bases list. The head's lock must be held.
func (t *Type) storeBases(bases []*Type) {
	switch len(bases) {
	case 0:
		t.bases.p.Store(nil)
		t.bases.n.Store(nil)
	case 1:
		t.bases.p.Store(logicalDeleted)
		t.bases.n.Store(nil)
		t.bases.p.Store(bases[0])
	default:
		m := &baseLink{}
		m.p.Store(bases[1])
		n := m
		for _, b := range bases[2:] {
			l := &baseLink{}
			l.p.Store(b)
			n.n.Store(l)
			n = l
		}
		t.bases.p.Store(logicalDeleted)
		t.bases.n.Store(m)
		t.bases.p.Store(bases[0])
	}
}

// AppendBase adds a base to the end of the type's bases.
func (t *Type) AppendBase(base *Type) {
	t.bases.mu.Lock()
	if t.bases.p.CompareAndSwap(nil, base) {
		t.bases.mu.Unlock()
		return
	}
	// Holding each node's lock in turn means there are no concurrent
	// writers past this point.
	cur := &t.bases
	next := cur.n.Load()
	for next != nil {
		next.mu.Lock()
		cur.mu.Unlock()
		cur = next
		next = cur.n.Load()
	}
	l := &baseLink{}
	l.p.Store(base)
	cur.n.Store(l)
	cur.mu.Unlock()
}

// PrependBase adds a base to the front of the type's bases, giving it
// priority over every existing base.
func (t *Type) PrependBase(base *Type) {
	t.bases.mu.Lock()
	old := t.bases.p.Swap(logicalDeleted)
	if old == nil {
		t.bases.p.Store(base)
		t.bases.mu.Unlock()
		return
	}
	l := &baseLink{}
	l.p.Store(old)
	l.n.Store(t.bases.n.Load())
	t.bases.n.Store(l)
	t.bases.p.Store(base)
	t.bases.mu.Unlock()
}

// RemoveBase removes all instances of base from the type's bases. Comparison
// is by identity.
func (t *Type) RemoveBase(base *Type) {
	t.bases.mu.Lock()
	var r []*Type
	// ForeachBase only locks when the head is logicalDeleted, which only
	// happens under the lock we already hold.
	t.ForeachBase(func(p *Type) bool {
		if p != base {
			r = append(r, p)
		}
		return true
	})
	t.storeBases(r)
	t.bases.mu.Unlock()
}
