package internal

import (
	"fmt"
	"math"
)

// rangeValue is the value of a range object, which yields the terms of a
// linear sequence start, start+step, ... up to but excluding stop.
type rangeValue struct {
	start, stop, step int
	// n is the number of terms.
	n int
}

// String returns the range in constructor form.
func (r *rangeValue) String() string {
	return fmt.Sprintf("range(%d, %d, %d)", r.start, r.stop, r.step)
}

func (r *rangeValue) at(k int) int {
	return r.start + k*r.step
}

// rangeWith computes the range with the given start, stop, and step. step
// must not be zero. The result is false if the range has more than
// math.MaxInt terms.
func rangeWith(start, stop, step int) (rangeValue, bool) {
	// Spans are computed in uint64 so that extreme bounds don't overflow.
	var span, stride uint64
	switch {
	case step > 0 && stop > start:
		span, stride = uint64(stop)-uint64(start), uint64(step)
	case step < 0 && stop < start:
		span, stride = uint64(start)-uint64(stop), -uint64(step)
	}
	var n uint64
	if span > 0 {
		n = (span-1)/stride + 1
	}
	if n > math.MaxInt {
		return rangeValue{}, false
	}
	return rangeValue{start: start, stop: stop, step: step, n: int(n)}, true
}

// NewRange creates a range object. A zero step or a range with more terms
// than fit in an int is a ValueError.
func (vm *VM) NewRange(start, stop, step int) (*Object, error) {
	if step == 0 {
		return nil, vm.NewExceptionf(vm.ValueError, "range() arg 3 must not be zero")
	}
	r, ok := rangeWith(start, stop, step)
	if !ok {
		return nil, vm.NewExceptionf(vm.ValueError, "range(%d, %d, %d) has too many terms", start, stop, step)
	}
	return vm.NewObject(vm.RangeType, &r), nil
}

// RangeContains returns whether v is a term of the range r.
func (vm *VM) RangeContains(r *Object, v int) bool {
	rv, ok := r.value().(*rangeValue)
	if !ok || rv.n == 0 {
		return false
	}
	if rv.step > 0 {
		if v < rv.start || v >= rv.stop {
			return false
		}
		return (uint64(v)-uint64(rv.start))%uint64(rv.step) == 0
	}
	if v > rv.start || v <= rv.stop {
		return false
	}
	return (uint64(rv.start)-uint64(v))%-uint64(rv.step) == 0
}

// rangeGetItem is the CapGetItem slot of range. Negative indices count from
// the end.
func rangeGetItem(vm *VM, obj, index *Object) (*Object, error) {
	r := obj.value().(*rangeValue)
	k, ok := vm.AsInt(index)
	if !ok {
		return nil, vm.NewExceptionf(vm.TypeError, "range indices must be integers, not '%s'", vm.TypeName(index))
	}
	if k < 0 {
		k += r.n
	}
	if k < 0 || k >= r.n {
		return nil, vm.NewExceptionf(vm.IndexError, "range object index out of range")
	}
	return vm.NewInt(r.at(k)), nil
}

// rangeLen is the CapLen slot of range.
func rangeLen(vm *VM, obj *Object) (int, error) {
	return obj.value().(*rangeValue).n, nil
}

// rangeIter is the CapIter slot of range. Each iterator has its own cursor.
func rangeIter(vm *VM, obj *Object) (*Object, error) {
	r := obj.value().(*rangeValue)
	return vm.NewObject(vm.RangeIterType, &rangeIterator{r: *r}), nil
}

// rangeIterator is the value of a range iterator.
type rangeIterator struct {
	r rangeValue
	// index is the number of terms yielded. It stops at r.n, so advancing
	// an exhausted iterator keeps reporting exhaustion.
	index int
}

// rangeIterNext is the CapIterNext slot of range iterators.
func rangeIterNext(vm *VM, obj *Object) (IterReturn, error) {
	obj.Lock()
	it := obj.Value.(*rangeIterator)
	if it.index >= it.r.n {
		obj.Unlock()
		return Exhausted(nil), nil
	}
	v := it.r.at(it.index)
	it.index++
	obj.Unlock()
	return Produced(vm.NewInt(v)), nil
}

// rangeIterLengthHint is the CapLengthHint slot of range iterators. The hint
// is exact.
func rangeIterLengthHint(vm *VM, obj *Object) (int, bool, error) {
	obj.Lock()
	it := obj.Value.(*rangeIterator)
	n := it.r.n - it.index
	obj.Unlock()
	return n, true, nil
}

func (vm *VM) initRange() {
	vm.RangeType = vm.NewType("range")
	vm.RangeType.Slots.Iter.Store(rangeIter)
	vm.RangeType.Slots.GetItem.Store(rangeGetItem)
	vm.RangeType.Slots.Len.Store(rangeLen)

	vm.RangeIterType = vm.NewType("range_iterator")
	vm.RangeIterType.Slots.Iter.Store(SelfIter)
	vm.RangeIterType.Slots.IterNext.Store(rangeIterNext)
	vm.RangeIterType.Slots.LengthHint.Store(rangeIterLengthHint)
}
