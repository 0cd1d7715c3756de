package internal

import (
	"iter"

	"github.com/zephyrtronium/contains"
)

/*
Capability lookup walks a type and then its ancestors depth-first, taking
bases left to right and skipping any type already seen. That order is the
method resolution order of this runtime: the first type in it which supplies
a slot wins. Lookups happen on every advance of every iterator, so the walk
in (*VM).walk reuses the VM's scratch set and stack and allocates nothing once
the stack has grown to the depth of the deepest hierarchy in use.
*/

// walkTypes visits t and then its ancestors in resolution order until visit
// returns false. set and stack are scratch space; the emptied stack is
// returned so its capacity can be reused.
func walkTypes(t *Type, set *contains.Set, stack []*Type, visit func(*Type) bool) []*Type {
	stack = stack[:0]
	if t == nil || !visit(t) {
		return stack
	}
	set.Reset()
	set.Add(t.UniqueID())
	stack = pushBases(set, stack, t)
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(p) {
			return stack[:0]
		}
		stack = pushBases(set, stack, p)
	}
	return stack
}

// pushBases pushes the unseen bases of t onto stack so that the first base is
// on top.
func pushBases(set *contains.Set, stack []*Type, t *Type) []*Type {
	start := len(stack)
	t.ForeachBase(func(p *Type) bool {
		if set.Add(p.UniqueID()) {
			stack = append(stack, p)
		}
		return true
	})
	// We appended in forward order; reverse the new segment.
	for i, j := start, len(stack)-1; i < j; i, j = i+1, j-1 {
		stack[i], stack[j] = stack[j], stack[i]
	}
	return stack
}

// walk visits t and its ancestors in resolution order using the VM's scratch
// space. visit must not do anything that could walk again, which includes
// calling any slot function.
func (vm *VM) walk(t *Type, visit func(*Type) bool) {
	vm.protoStack = walkTypes(t, &vm.protoSet, vm.protoStack, visit)
}

// Ancestors returns the resolution order of t, starting with t itself. The
// sequence is computed lazily and may be ranged over any number of times; each
// pass reflects the bases at the time it runs.
func (t *Type) Ancestors() iter.Seq[*Type] {
	return func(yield func(*Type) bool) {
		var set contains.Set
		walkTypes(t, &set, nil, yield)
	}
}

// IsSubtype returns whether t is u or has u among its ancestors.
func (t *Type) IsSubtype(u *Type) bool {
	for p := range t.Ancestors() {
		if p == u {
			return true
		}
	}
	return false
}

// isSubtype is like t.IsSubtype(u) but uses the VM's scratch space.
func (vm *VM) isSubtype(t, u *Type) bool {
	r := false
	vm.walk(t, func(p *Type) bool {
		r = p == u
		return !r
	})
	return r
}
