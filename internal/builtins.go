package internal

// IterBuiltin implements the one-argument iter builtin. It shares GetIter
// with loop entry, so both behave identically.
func (vm *VM) IterBuiltin(obj *Object) (*Object, error) {
	it, err := vm.GetIter(obj)
	if err != nil {
		return nil, err
	}
	return it.Object(), nil
}

// IterSentinel implements the two-argument iter builtin, producing an
// iterator which calls callable until it returns sentinel.
func (vm *VM) IterSentinel(callable, sentinel *Object) (*Object, error) {
	if _, ok := callable.value().(*function); !ok {
		return nil, vm.NewExceptionf(vm.TypeError, "iter(v, w): v must be callable")
	}
	return vm.NewCallableIterator(callable, sentinel), nil
}

// NextBuiltin implements the next builtin. obj must be an iterator. When it is
// exhausted, dflt is returned if it is not nil; otherwise StopIteration is
// raised carrying the exhaustion payload.
func (vm *VM) NextBuiltin(obj, dflt *Object) (*Object, error) {
	if !vm.CheckIter(obj) {
		return nil, vm.notAnIterator(obj)
	}
	r, err := NewIter(obj).Next(vm)
	if err != nil {
		return nil, err
	}
	if r.Done && dflt != nil {
		return dflt, nil
	}
	return vm.IntoResult(r)
}

// ANext advances it for an asynchronous consumer, reporting exhaustion as
// StopAsyncIteration.
func (vm *VM) ANext(it Iter) (*Object, error) {
	r, err := it.Next(vm)
	if err != nil {
		return nil, err
	}
	return vm.IntoAsyncResult(r)
}
