// Package testutils provides utilities for testing the runtime in Go.
package testutils

import (
	"sync"
	"testing"

	"github.com/zephyrtronium/iterproto/internal"
)

// testVM is the VM used for all tests.
var testVM *internal.VM

var testVMInit sync.Once

// VM returns a VM for testing. The VM is shared by all tests that use this
// package.
func VM() *internal.VM {
	testVMInit.Do(ResetVM)
	return testVM
}

// ResetVM reinitializes the VM returned by VM. It is not safe to call this in
// parallel tests.
func ResetVM() {
	testVM = internal.NewVM(nil)
}

// Probe counts calls to a slot function.
type Probe struct {
	// Calls is the number of calls so far.
	Calls int
}

// IterNext wraps an iternext slot so that each call is counted.
func (p *Probe) IterNext(f internal.IterNextFunc) internal.IterNextFunc {
	return func(vm *internal.VM, obj *internal.Object) (internal.IterReturn, error) {
		p.Calls++
		return f(vm, obj)
	}
}

// GetItem wraps a getitem slot so that each call is counted.
func (p *Probe) GetItem(f internal.GetItemFunc) internal.GetItemFunc {
	return func(vm *internal.VM, obj, index *internal.Object) (*internal.Object, error) {
		p.Calls++
		return f(vm, obj, index)
	}
}

// Indexed creates an object of a new type which supplies only the getitem
// capability, serving items by position and raising IndexError past the end.
// The returned Probe counts getitem calls.
func Indexed(vm *internal.VM, name string, items ...*internal.Object) (*internal.Object, *Probe) {
	p := new(Probe)
	t := vm.NewType(name)
	t.Slots.GetItem.Store(p.GetItem(func(vm *internal.VM, obj, index *internal.Object) (*internal.Object, error) {
		i, ok := vm.AsInt(index)
		if !ok {
			return nil, vm.NewExceptionf(vm.TypeError, "bad index")
		}
		if i < 0 || i >= len(items) {
			return nil, vm.NewExceptionf(vm.IndexError, "%s index out of range", name)
		}
		return items[i], nil
	}))
	return vm.NewObject(t, nil), p
}

// Scripted creates an iterator of a new type whose iternext slot returns the
// given outcomes in order and then exhaustion forever. The slot is built on
// raised StopIteration: an outcome with a nil error produces its object, and
// an error is raised as given. The returned Probe counts iternext calls.
func Scripted(vm *internal.VM, name string, outcomes ...Outcome) (*internal.Object, *Probe) {
	p := new(Probe)
	t := vm.NewType(name)
	t.Slots.Iter.Store(internal.SelfIter)
	n := 0
	t.Slots.IterNext.Store(p.IterNext(func(vm *internal.VM, obj *internal.Object) (internal.IterReturn, error) {
		if n >= len(outcomes) {
			return vm.FromResult(nil, vm.NewStopIteration(nil))
		}
		o := outcomes[n]
		n++
		return vm.FromResult(o.Obj, o.Err)
	}))
	return vm.NewObject(t, nil), p
}

// Outcome is one scripted result of a slot function.
type Outcome struct {
	Obj *internal.Object
	Err error
}

// Drain advances it until exhaustion, failing the test on any error. It
// returns the produced elements and the exhaustion payload. To guard against
// runaway iterators, it fails after limit elements.
func Drain(t *testing.T, vm *internal.VM, it internal.Iter, limit int) ([]*internal.Object, *internal.Object) {
	t.Helper()
	var r []*internal.Object
	for len(r) <= limit {
		x, err := it.Next(vm)
		if err != nil {
			t.Fatalf("error after %d elements: %v", len(r), err)
		}
		if x.Done {
			return r, x.Value
		}
		r = append(r, x.Value)
	}
	t.Fatalf("iterator produced more than %d elements", limit)
	return nil, nil
}

// CheckObjects reports an error for each position at which have and want
// differ according to vm.Equal.
func CheckObjects(t *testing.T, vm *internal.VM, have, want []*internal.Object) {
	t.Helper()
	for i, v := range have {
		if i >= len(want) {
			t.Errorf("too many objects: have %v at %d", v, i)
			continue // report every unexpected object
		}
		if !vm.Equal(v, want[i]) {
			t.Errorf("wrong object at %d: want %v, have %v", i, want[i], v)
		}
	}
	for i := len(have); i < len(want); i++ {
		t.Errorf("too few objects: missing %v at %d", want[i], i)
	}
}
