package internal

// smallInts is the range of ints NewInt serves from the VM's cache. Sequence
// iterators create an int for every position they request, and most
// positions are small.
const smallInts = 256

// NewInt creates an int object.
func (vm *VM) NewInt(n int) *Object {
	if n >= 0 && n < len(vm.intCache) {
		return vm.intCache[n]
	}
	return vm.NewObject(vm.IntType, n)
}

// AsInt returns the value of an int object. ok is false if obj is not an int.
func (vm *VM) AsInt(obj *Object) (n int, ok bool) {
	if obj == nil || !vm.isSubtype(obj.Type(), vm.IntType) {
		return 0, false
	}
	n, ok = obj.value().(int)
	return n, ok
}

func (vm *VM) initInt() {
	vm.IntType = vm.NewType("int")
	vm.intCache = make([]*Object, smallInts)
	for i := range vm.intCache {
		vm.intCache[i] = vm.NewObject(vm.IntType, i)
	}
}
