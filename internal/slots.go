package internal

import (
	"fmt"
	"sync/atomic"
)

// Capability names one of the built-in operations a type can supply through
// its slots.
type Capability int

// Capabilities known to the runtime. The set is closed.
const (
	// CapIter produces an iterator over an object.
	CapIter Capability = iota
	// CapIterNext advances an iterator.
	CapIterNext
	// CapGetItem indexes an object by position. It is the legacy fallback
	// for objects which do not supply CapIter.
	CapGetItem
	// CapLen reports an object's exact length.
	CapLen
	// CapLengthHint reports an estimate of the number of elements an
	// iterator has left.
	CapLengthHint
)

var capNames = [...]string{"iter", "iternext", "getitem", "len", "length_hint"}

// String returns the capability's name.
func (c Capability) String() string {
	if c < CapIter || c > CapLengthHint {
		return fmt.Sprintf("Capability(%d)", int(c))
	}
	return capNames[c]
}

// IterFunc implements CapIter. It returns an object which must itself supply
// CapIterNext.
type IterFunc func(vm *VM, obj *Object) (*Object, error)

// IterNextFunc implements CapIterNext. Exhaustion is reported through the
// IterReturn, never as an error.
type IterNextFunc func(vm *VM, obj *Object) (IterReturn, error)

// GetItemFunc implements CapGetItem. Positions past the end are reported by
// raising IndexError.
type GetItemFunc func(vm *VM, obj, index *Object) (*Object, error)

// LenFunc implements CapLen.
type LenFunc func(vm *VM, obj *Object) (int, error)

// LengthHintFunc implements CapLengthHint. ok is false if the object cannot
// estimate its length.
type LengthHintFunc func(vm *VM, obj *Object) (n int, ok bool, err error)

// Slot is a single optional capability entry. The zero value is an empty
// slot. Slots may be stored and cleared concurrently with lookups.
type Slot[F any] struct {
	p atomic.Pointer[F]
}

// Load returns the slot's function and whether the slot is set.
func (s *Slot[F]) Load() (f F, ok bool) {
	if p := s.p.Load(); p != nil {
		return *p, true
	}
	return f, false
}

// Store sets the slot's function.
func (s *Slot[F]) Store(f F) {
	s.p.Store(&f)
}

// Clear empties the slot, so that lookups continue to the type's ancestors.
func (s *Slot[F]) Clear() {
	s.p.Store(nil)
}

// Valid returns whether the slot is set.
func (s *Slot[F]) Valid() bool {
	return s.p.Load() != nil
}

// Slots is the fixed-shape capability table of a type. An empty slot means
// the type does not supply the capability at its own level.
type Slots struct {
	Iter       Slot[IterFunc]
	IterNext   Slot[IterNextFunc]
	GetItem    Slot[GetItemFunc]
	Len        Slot[LenFunc]
	LengthHint Slot[LengthHintFunc]
}

// Has returns whether the table sets the given capability.
func (s *Slots) Has(c Capability) bool {
	switch c {
	case CapIter:
		return s.Iter.Valid()
	case CapIterNext:
		return s.IterNext.Valid()
	case CapGetItem:
		return s.GetItem.Valid()
	case CapLen:
		return s.Len.Valid()
	case CapLengthHint:
		return s.LengthHint.Valid()
	}
	return false
}

// Slot selectors for resolve.
func selIter(s *Slots) *Slot[IterFunc]             { return &s.Iter }
func selIterNext(s *Slots) *Slot[IterNextFunc]     { return &s.IterNext }
func selGetItem(s *Slots) *Slot[GetItemFunc]       { return &s.GetItem }
func selLen(s *Slots) *Slot[LenFunc]               { return &s.Len }
func selLengthHint(s *Slots) *Slot[LengthHintFunc] { return &s.LengthHint }

// resolve finds the nearest type in t's resolution order whose selected slot
// is set and returns that slot's function.
func resolve[F any](vm *VM, t *Type, sel func(*Slots) *Slot[F]) (f F, ok bool) {
	vm.walk(t, func(p *Type) bool {
		f, ok = sel(&p.Slots).Load()
		return !ok
	})
	return f, ok
}

// Resolve returns the nearest type in t's resolution order, including t
// itself, which supplies the capability. ok is false if no ancestor does.
func (vm *VM) Resolve(t *Type, c Capability) (owner *Type, ok bool) {
	vm.walk(t, func(p *Type) bool {
		if p.Slots.Has(c) {
			owner, ok = p, true
			return false
		}
		return true
	})
	return owner, ok
}
