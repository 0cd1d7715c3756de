package internal

// GoFunc is the implementation of a function object.
type GoFunc func(vm *VM) (*Object, error)

// function is the value of a function object.
type function struct {
	name string
	fn   GoFunc
}

// String returns the function's name.
func (f *function) String() string {
	return "<function " + f.name + ">"
}

// NewFunction creates a function object which calls fn with no arguments.
func (vm *VM) NewFunction(name string, fn GoFunc) *Object {
	return vm.NewObject(vm.FunctionType, &function{name: name, fn: fn})
}

// Call calls a function object.
func (vm *VM) Call(obj *Object) (*Object, error) {
	f, ok := obj.value().(*function)
	if !ok {
		return nil, vm.NewExceptionf(vm.TypeError, "'%s' object is not callable", vm.TypeName(obj))
	}
	return f.fn(vm)
}

// Equal reports whether two objects are equal: identical, or ints or strs with
// equal values.
func (vm *VM) Equal(x, y *Object) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}
	if a, ok := vm.AsInt(x); ok {
		b, ok := vm.AsInt(y)
		return ok && a == b
	}
	if a, ok := vm.AsStr(x); ok {
		b, ok := vm.AsStr(y)
		return ok && a == b
	}
	return false
}

// callableIterator is the value of an iterator created by the two-argument
// form of iter.
type callableIterator struct {
	// callable becomes nil once the iterator is exhausted.
	callable *Object
	sentinel *Object
}

// NewCallableIterator creates an iterator which calls callable on each
// advance and is exhausted when the result equals sentinel or the call raises
// StopIteration.
func (vm *VM) NewCallableIterator(callable, sentinel *Object) *Object {
	return vm.NewObject(vm.CallableIterType, &callableIterator{callable: callable, sentinel: sentinel})
}

// callIterNext is the CapIterNext slot of callable iterators.
func callIterNext(vm *VM, obj *Object) (IterReturn, error) {
	c := obj.value().(*callableIterator)
	obj.Lock()
	callable, sentinel := c.callable, c.sentinel
	obj.Unlock()
	if callable == nil {
		return Exhausted(nil), nil
	}
	r, err := vm.FromResult(vm.Call(callable))
	if err != nil {
		return r, err
	}
	if r.Done || vm.Equal(r.Value, sentinel) {
		obj.Lock()
		c.callable = nil
		obj.Unlock()
		if r.Done {
			return r, nil
		}
		return Exhausted(nil), nil
	}
	return r, nil
}

func (vm *VM) initFunction() {
	vm.FunctionType = vm.NewType("function")

	vm.CallableIterType = vm.NewType("callable_iterator")
	vm.CallableIterType.Slots.Iter.Store(SelfIter)
	vm.CallableIterType.Slots.IterNext.Store(callIterNext)
}
