package internal

// NewList creates a list with the given items.
func (vm *VM) NewList(items ...*Object) *Object {
	if items == nil {
		items = []*Object{}
	}
	return vm.NewObject(vm.ListType, items)
}

// ListAppend appends an item to a list object. Panics if l is not a list.
func (vm *VM) ListAppend(l *Object, v *Object) {
	l.Lock()
	l.Value = append(l.Value.([]*Object), v)
	l.Unlock()
}

// listGetItem is the CapGetItem slot of list.
func listGetItem(vm *VM, obj, index *Object) (*Object, error) {
	i, ok := vm.AsInt(index)
	if !ok {
		return nil, vm.NewExceptionf(vm.TypeError, "list indices must be integers, not '%s'", vm.TypeName(index))
	}
	obj.Lock()
	l := obj.Value.([]*Object)
	if i < 0 {
		i += len(l)
	}
	if i < 0 || i >= len(l) {
		obj.Unlock()
		return nil, vm.NewExceptionf(vm.IndexError, "list index out of range")
	}
	r := l[i]
	obj.Unlock()
	return r, nil
}

// listLen is the CapLen slot of list.
func listLen(vm *VM, obj *Object) (int, error) {
	obj.Lock()
	n := len(obj.Value.([]*Object))
	obj.Unlock()
	return n, nil
}

// listIter is the CapIter slot of list.
func listIter(vm *VM, obj *Object) (*Object, error) {
	return vm.NewObject(vm.ListIterType, &listIterator{list: obj}), nil
}

// listIterator is the value of a list iterator. It observes appends made to
// the list while iterating.
type listIterator struct {
	// list is the list being iterated. It becomes nil on exhaustion.
	list *Object
	pos  int
}

// listIterNext is the CapIterNext slot of list iterators.
func listIterNext(vm *VM, obj *Object) (IterReturn, error) {
	it := obj.value().(*listIterator)
	obj.Lock()
	defer obj.Unlock()
	if it.list == nil {
		return Exhausted(nil), nil
	}
	it.list.Lock()
	l := it.list.Value.([]*Object)
	it.list.Unlock()
	if it.pos >= len(l) {
		it.list = nil
		return Exhausted(nil), nil
	}
	r := l[it.pos]
	it.pos++
	return Produced(r), nil
}

// listIterLengthHint is the CapLengthHint slot of list iterators.
func listIterLengthHint(vm *VM, obj *Object) (int, bool, error) {
	it := obj.value().(*listIterator)
	obj.Lock()
	defer obj.Unlock()
	if it.list == nil {
		return 0, true, nil
	}
	it.list.Lock()
	n := len(it.list.Value.([]*Object)) - it.pos
	it.list.Unlock()
	if n < 0 {
		n = 0
	}
	return n, true, nil
}

func (vm *VM) initList() {
	vm.ListType = vm.NewType("list")
	vm.ListType.Slots.Iter.Store(listIter)
	vm.ListType.Slots.GetItem.Store(listGetItem)
	vm.ListType.Slots.Len.Store(listLen)

	vm.ListIterType = vm.NewType("list_iterator")
	vm.ListIterType.Slots.Iter.Store(SelfIter)
	vm.ListIterType.Slots.IterNext.Store(listIterNext)
	vm.ListIterType.Slots.LengthHint.Store(listIterLengthHint)
}
