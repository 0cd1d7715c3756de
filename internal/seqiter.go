package internal

// seqIterator is the value of a sequence iterator, which adapts an object
// supplying only CapGetItem to the iterator protocol.
type seqIterator struct {
	// target is the indexed object. It becomes nil once the iterator is
	// exhausted so that the target is never indexed again.
	target *Object
	// pos is the next index to request.
	pos int
}

// NewSeqIterator creates a sequence iterator over target. The iterator
// requests target's items at positions 0, 1, 2, ... and is exhausted by the
// first IndexError or StopIteration.
func (vm *VM) NewSeqIterator(target *Object) *Object {
	return vm.NewObject(vm.SeqIterType, &seqIterator{target: target})
}

// seqIterNext is the CapIterNext slot of sequence iterators.
func seqIterNext(vm *VM, obj *Object) (IterReturn, error) {
	s := obj.value().(*seqIterator)
	obj.Lock()
	target, pos := s.target, s.pos
	obj.Unlock()
	if target == nil {
		return Exhausted(nil), nil
	}
	getitem, ok := resolve(vm, target.Type(), selGetItem)
	if !ok {
		return IterReturn{}, vm.NewExceptionf(vm.TypeError, "'%s' object is not subscriptable", vm.TypeName(target))
	}
	r, err := vm.FromGetItemResult(getitem(vm, target, vm.NewInt(pos)))
	if err != nil {
		return r, err
	}
	obj.Lock()
	if r.Done {
		s.target = nil
	} else {
		s.pos++
	}
	obj.Unlock()
	return r, nil
}

// seqIterLengthHint is the CapLengthHint slot of sequence iterators. The hint
// is the target's length less the current position, if the target has a
// length.
func seqIterLengthHint(vm *VM, obj *Object) (int, bool, error) {
	s := obj.value().(*seqIterator)
	obj.Lock()
	target, pos := s.target, s.pos
	obj.Unlock()
	if target == nil {
		return 0, true, nil
	}
	n, ok, err := vm.Len(target)
	if err != nil || !ok {
		return 0, false, err
	}
	if n < pos {
		return 0, true, nil
	}
	return n - pos, true, nil
}

// SelfIter is a CapIter slot which returns the object itself. Iterator types
// use it so that iterating an iterator yields the same iterator.
func SelfIter(vm *VM, obj *Object) (*Object, error) {
	return obj, nil
}

func (vm *VM) initSeqIterator() {
	vm.SeqIterType = vm.NewType("iterator")
	vm.SeqIterType.Slots.Iter.Store(SelfIter)
	vm.SeqIterType.Slots.IterNext.Store(seqIterNext)
	vm.SeqIterType.Slots.LengthHint.Store(seqIterLengthHint)
}
