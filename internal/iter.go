package internal

// IterReturn is the outcome of advancing an iterator: either a produced
// element or exhaustion, optionally carrying a final payload. Exhaustion is a
// normal outcome, not an error.
type IterReturn struct {
	// Value is the produced element, or the exhaustion payload if Done. A nil
	// payload means there is none.
	Value *Object
	// Done is true if the iterator is exhausted.
	Done bool
}

// Produced returns an IterReturn holding an element.
func Produced(v *Object) IterReturn {
	return IterReturn{Value: v}
}

// Exhausted returns an IterReturn reporting exhaustion with the given payload,
// which may be nil.
func Exhausted(payload *Object) IterReturn {
	return IterReturn{Value: payload, Done: true}
}

// Iter is a handle to an iterator: an object whose type supplied CapIterNext
// when the handle was created. The handle does not retain the resolved slot;
// each Next resolves it again, so changes to the object's type take effect
// immediately.
type Iter struct {
	obj *Object
}

// NewIter wraps obj without checking that it is an iterator. Use it only when
// obj has already passed CheckIter or came from GetIter.
func NewIter(obj *Object) Iter {
	return Iter{obj: obj}
}

// Object returns the iterator object.
func (it Iter) Object() *Object {
	return it.obj
}

// CheckIter returns whether obj's type supplies CapIterNext. A nil obj is
// never an iterator.
func (vm *VM) CheckIter(obj *Object) bool {
	if obj == nil {
		return false
	}
	_, ok := resolve(vm, obj.Type(), selIterNext)
	return ok
}

// Next advances the iterator. If the iterator's type no longer supplies
// CapIterNext, the result is a TypeError caused by ErrNotAnIterator.
// Otherwise, the slot's result is returned unchanged.
func (it Iter) Next(vm *VM) (IterReturn, error) {
	next, ok := resolve(vm, it.obj.Type(), selIterNext)
	if !ok {
		return IterReturn{}, vm.notAnIterator(it.obj)
	}
	return next(vm, it.obj)
}

func (vm *VM) notAnIterator(obj *Object) error {
	return vm.typeError(ErrNotAnIterator, "'%s' object is not an iterator", vm.TypeName(obj))
}

// GetIter obtains an iterator over obj. This is the entry point for loops and
// for the iter builtin. The protocols are tried in order, committing to the
// first that applies:
//
//  1. If obj's type supplies CapIter, its result is the iterator. That result
//     must itself supply CapIterNext, or else GetIter returns a TypeError
//     caused by ErrBadIteratorProtocol.
//  2. If obj's type supplies CapIterNext, obj is already an iterator and is
//     its own iterator.
//  3. If obj's type supplies CapGetItem, the iterator is a sequence iterator
//     which indexes obj at 0, 1, 2, ... until IndexError.
//
// If none apply, the result is a TypeError caused by ErrNotIterable.
func (vm *VM) GetIter(obj *Object) (Iter, error) {
	t := obj.Type()
	if getiter, ok := resolve(vm, t, selIter); ok {
		r, err := getiter(vm, obj)
		if err != nil {
			return Iter{}, err
		}
		if !vm.CheckIter(r) {
			return Iter{}, vm.typeError(ErrBadIteratorProtocol, "iterator protocol returned a non-iterator of type '%s'", vm.TypeName(r))
		}
		vm.Log.Debug().Stringer("type", t).Stringer("iterator", r.Type()).Msg("iter protocol")
		return Iter{obj: r}, nil
	}
	if vm.CheckIter(obj) {
		vm.Log.Debug().Stringer("type", t).Msg("object is its own iterator")
		return Iter{obj: obj}, nil
	}
	if _, ok := resolve(vm, t, selGetItem); ok {
		vm.Log.Debug().Stringer("type", t).Msg("sequence protocol")
		return Iter{obj: vm.NewSeqIterator(obj)}, nil
	}
	return Iter{}, vm.typeError(ErrNotIterable, "'%s' object is not iterable", t.Name())
}

// FromResult normalizes the outcome of a computation that signals completion
// by raising StopIteration. A result becomes Produced; StopIteration or a
// subtype becomes Exhausted carrying its first argument, if any; any other
// error is returned unchanged.
func (vm *VM) FromResult(obj *Object, err error) (IterReturn, error) {
	if err == nil {
		return Produced(obj), nil
	}
	if vm.IsInstance(err, vm.StopIteration) {
		return Exhausted(ExceptionArg(err, 0)), nil
	}
	return IterReturn{}, err
}

// FromGetItemResult normalizes the outcome of indexing for the sequence
// protocol. IndexError becomes Exhausted with no payload; otherwise it
// behaves as FromResult.
func (vm *VM) FromGetItemResult(obj *Object, err error) (IterReturn, error) {
	if err != nil && vm.IsInstance(err, vm.IndexError) {
		return Exhausted(nil), nil
	}
	return vm.FromResult(obj, err)
}

// IntoResult expresses an IterReturn for synchronous consumers that expect
// exhaustion as a raised StopIteration carrying the payload.
func (vm *VM) IntoResult(r IterReturn) (*Object, error) {
	if r.Done {
		return nil, vm.NewStopIteration(r.Value)
	}
	return r.Value, nil
}

// IntoAsyncResult expresses an IterReturn for asynchronous consumers.
// Exhaustion becomes StopAsyncIteration whose arguments are the payload, or
// empty if there is none.
func (vm *VM) IntoAsyncResult(r IterReturn) (*Object, error) {
	if !r.Done {
		return r.Value, nil
	}
	if r.Value == nil {
		return nil, vm.NewException(vm.StopAsyncIteration)
	}
	return nil, vm.NewException(vm.StopAsyncIteration, r.Value)
}
