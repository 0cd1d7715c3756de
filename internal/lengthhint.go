package internal

// Len returns obj's exact length through CapLen. ok is false if obj's type
// does not supply it.
func (vm *VM) Len(obj *Object) (n int, ok bool, err error) {
	length, ok := resolve(vm, obj.Type(), selLen)
	if !ok {
		return 0, false, nil
	}
	n, err = length(vm, obj)
	if err != nil {
		return 0, false, err
	}
	if n < 0 {
		return 0, false, vm.NewExceptionf(vm.ValueError, "len should return >= 0")
	}
	return n, true, nil
}

// LengthHint estimates the number of elements obj will produce. It consults
// CapLen first, then CapLengthHint. A TypeError from CapLen is treated as if
// the capability were absent. ok is false if neither gives an estimate.
//
// Both capabilities may run arbitrary guest code, including code that
// advances obj, so the result is advisory only.
func (vm *VM) LengthHint(obj *Object) (n int, ok bool, err error) {
	n, ok, err = vm.Len(obj)
	switch {
	case err == nil && ok:
		return n, true, nil
	case err != nil && !vm.IsInstance(err, vm.TypeError):
		return 0, false, err
	}
	hint, has := resolve(vm, obj.Type(), selLengthHint)
	if !has {
		return 0, false, nil
	}
	n, ok, err = hint(vm, obj)
	if err != nil || !ok {
		return 0, false, err
	}
	if n < 0 {
		return 0, false, vm.NewExceptionf(vm.ValueError, "length_hint should return >= 0")
	}
	return n, true, nil
}
