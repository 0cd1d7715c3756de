package internal_test

import (
	"testing"

	"github.com/zephyrtronium/iterproto/internal"
	"github.com/zephyrtronium/iterproto/testutils"
)

func TestLengthHint(t *testing.T) {
	vm := testutils.VM()
	withSlots := func(name string, length internal.LenFunc, hint internal.LengthHintFunc) *internal.Object {
		typ := vm.NewType(name)
		if length != nil {
			typ.Slots.Len.Store(length)
		}
		if hint != nil {
			typ.Slots.LengthHint.Store(hint)
		}
		return vm.NewObject(typ, nil)
	}
	lenIs := func(n int, err error) internal.LenFunc {
		return func(vm *internal.VM, obj *internal.Object) (int, error) { return n, err }
	}
	hintIs := func(n int, ok bool, err error) internal.LengthHintFunc {
		return func(vm *internal.VM, obj *internal.Object) (int, bool, error) { return n, ok, err }
	}
	typeErr := vm.NewExceptionf(vm.TypeError, "no len")
	otherErr := vm.NewExceptionf(vm.RuntimeError, "broken len")
	lit, err := vm.GetIter(vm.NewList(ints(vm, 1, 2, 3, 4)...))
	if err != nil {
		t.Fatal(err)
	}
	lit.Next(vm)

	cases := map[string]struct {
		obj  *internal.Object
		n    int
		ok   bool
		fail *internal.Type
	}{
		"List":         {vm.NewList(ints(vm, 1, 2)...), 2, true, nil},
		"Str":          {vm.NewStr("abc"), 3, true, nil},
		"ListIterator": {lit.Object(), 3, true, nil},
		"None":         {vm.NewInt(1), 0, false, nil},
		"LenWins":      {withSlots("lenwins", lenIs(2, nil), hintIs(9, true, nil)), 2, true, nil},
		"HintOnly":     {withSlots("hintonly", nil, hintIs(9, true, nil)), 9, true, nil},
		"HintDeclines": {withSlots("declines", nil, hintIs(9, false, nil)), 0, false, nil},
		"LenTypeError": {withSlots("lentypeerr", lenIs(0, typeErr), hintIs(4, true, nil)), 4, true, nil},
		"LenFails":     {withSlots("lenfails", lenIs(0, otherErr), hintIs(4, true, nil)), 0, false, vm.RuntimeError},
		"LenNegative":  {withSlots("lenneg", lenIs(-1, nil), nil), 0, false, vm.ValueError},
		"HintNegative": {withSlots("hintneg", nil, hintIs(-2, true, nil)), 0, false, vm.ValueError},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			n, ok, err := vm.LengthHint(c.obj)
			if c.fail != nil {
				if !vm.IsInstance(err, c.fail) {
					t.Errorf("want %v, have %d, %t, %v", c.fail, n, ok, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if n != c.n || ok != c.ok {
				t.Errorf("wrong hint: want %d, %t; have %d, %t", c.n, c.ok, n, ok)
			}
		})
	}
}

// TestSeqIterLengthHint tests the hint of sequence iterators as they
// advance.
func TestSeqIterLengthHint(t *testing.T) {
	vm := testutils.VM()
	it, err := vm.GetIter(vm.NewStr("ab"))
	if err != nil {
		t.Fatal(err)
	}
	for want := 2; want >= 0; want-- {
		n, ok, err := vm.LengthHint(it.Object())
		if err != nil || !ok || n != want {
			t.Errorf("wrong hint: want %d, have %d, %t, %v", want, n, ok, err)
		}
		it.Next(vm)
	}
	// A target without a length gives no hint.
	obj, _ := testutils.Indexed(vm, "nolen", vm.NewInt(1))
	it, err = vm.GetIter(obj)
	if err != nil {
		t.Fatal(err)
	}
	if n, ok, err := vm.LengthHint(it.Object()); err != nil || ok {
		t.Errorf("hint without len: %d, %t, %v", n, ok, err)
	}
}
