package internal

import "github.com/zephyrtronium/iterproto/internal/textenc"

// strValue is the value of a str object. Indexing is by code point.
type strValue struct {
	s string
	r []rune
}

// String returns the str's text.
func (v *strValue) String() string {
	return v.s
}

// NewStr creates a str object.
func (vm *VM) NewStr(s string) *Object {
	return vm.NewObject(vm.StrType, &strValue{s: s, r: []rune(s)})
}

// DecodeStr creates a str object by decoding b from the named encoding. If
// encoding is empty, the VM's configured default is used.
func (vm *VM) DecodeStr(b []byte, encoding string) (*Object, error) {
	if encoding == "" {
		encoding = vm.Config.Encoding
	}
	s, err := textenc.Decode(encoding, b)
	if err != nil {
		return nil, vm.NewExceptionf(vm.ValueError, "%v", err)
	}
	return vm.NewStr(s), nil
}

// AsStr returns the text of a str object. ok is false if obj is not a str.
func (vm *VM) AsStr(obj *Object) (s string, ok bool) {
	if obj == nil || !vm.isSubtype(obj.Type(), vm.StrType) {
		return "", false
	}
	v, ok := obj.value().(*strValue)
	if !ok {
		return "", false
	}
	return v.s, true
}

// strGetItem is the CapGetItem slot of str. The item at an index is the str
// holding the code point there. Negative indices count from the end.
func strGetItem(vm *VM, obj, index *Object) (*Object, error) {
	v := obj.value().(*strValue)
	i, ok := vm.AsInt(index)
	if !ok {
		return nil, vm.NewExceptionf(vm.TypeError, "string indices must be integers, not '%s'", vm.TypeName(index))
	}
	if i < 0 {
		i += len(v.r)
	}
	if i < 0 || i >= len(v.r) {
		return nil, vm.NewExceptionf(vm.IndexError, "string index out of range")
	}
	return vm.NewStr(string(v.r[i])), nil
}

// strLen is the CapLen slot of str.
func strLen(vm *VM, obj *Object) (int, error) {
	return len(obj.value().(*strValue).r), nil
}

// initStr creates the str type. str supplies only indexing and length, so
// iterating a str goes through the sequence protocol.
func (vm *VM) initStr() {
	vm.StrType = vm.NewType("str")
	vm.StrType.Slots.GetItem.Store(strGetItem)
	vm.StrType.Slots.Len.Store(strLen)
}
