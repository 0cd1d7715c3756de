package internal_test

import (
	"sync"
	"testing"

	"github.com/zephyrtronium/iterproto/internal"
	"github.com/zephyrtronium/iterproto/testutils"
)

func checkTypes(t *testing.T, have, want []*internal.Type) {
	t.Helper()
	for i, v := range have {
		if i >= len(want) {
			t.Errorf("too many types: have %v at %d", v, i)
			continue // report every unexpected type
		}
		if v != want[i] {
			t.Errorf("wrong type at %d: want %v, have %v", i, want[i], v)
		}
	}
	for i := len(have); i < len(want); i++ {
		t.Errorf("too few types: missing %v at %d", want[i], i)
	}
}

// TestBases tests that a type reports the bases it is created with.
func TestBases(t *testing.T) {
	vm := testutils.VM()
	cases := map[string][]*internal.Type{
		"one":   {vm.IntType},
		"three": {vm.IntType, vm.StrType, vm.ListType},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			typ := vm.NewType(name, c...)
			checkTypes(t, typ.Bases(), c)
		})
	}
	t.Run("default", func(t *testing.T) {
		typ := vm.NewType("default")
		checkTypes(t, typ.Bases(), []*internal.Type{vm.BaseType})
	})
	t.Run("root", func(t *testing.T) {
		if b := vm.BaseType.Bases(); b != nil {
			t.Errorf("root type has bases %v", b)
		}
	})
	t.Run("concurrent", func(t *testing.T) {
		for name, c := range cases {
			t.Run(name, func(t *testing.T) {
				var wg sync.WaitGroup
				typ := vm.NewType(name, c...)
				const n = 128
				wg.Add(n)
				for k := 0; k < n; k++ {
					go func() {
						defer wg.Done()
						checkTypes(t, typ.Bases(), c)
					}()
				}
				wg.Wait()
			})
		}
	})
}

// TestModifyBases tests the operations that change a type's bases.
func TestModifyBases(t *testing.T) {
	vm := testutils.VM()
	a, b, c := vm.NewType("a"), vm.NewType("b"), vm.NewType("c")
	cases := map[string]struct {
		init []*internal.Type
		op   func(typ *internal.Type)
		want []*internal.Type
	}{
		"Append":       {[]*internal.Type{a}, func(typ *internal.Type) { typ.AppendBase(b) }, []*internal.Type{a, b}},
		"Prepend":      {[]*internal.Type{a}, func(typ *internal.Type) { typ.PrependBase(b) }, []*internal.Type{b, a}},
		"RemoveFirst":  {[]*internal.Type{a, b, c}, func(typ *internal.Type) { typ.RemoveBase(a) }, []*internal.Type{b, c}},
		"RemoveMiddle": {[]*internal.Type{a, b, c}, func(typ *internal.Type) { typ.RemoveBase(b) }, []*internal.Type{a, c}},
		"RemoveLast":   {[]*internal.Type{a, b, c}, func(typ *internal.Type) { typ.RemoveBase(c) }, []*internal.Type{a, b}},
		"RemoveAll":    {[]*internal.Type{a, b, a}, func(typ *internal.Type) { typ.RemoveBase(a) }, []*internal.Type{b}},
		"RemoveOnly":   {[]*internal.Type{a}, func(typ *internal.Type) { typ.RemoveBase(a) }, nil},
		"Set":          {[]*internal.Type{a}, func(typ *internal.Type) { typ.SetBases(c, b) }, []*internal.Type{c, b}},
		"SetNone":      {[]*internal.Type{a, b}, func(typ *internal.Type) { typ.SetBases() }, nil},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			typ := vm.NewType(name, c.init...)
			c.op(typ)
			checkTypes(t, typ.Bases(), c.want)
		})
	}
}

// TestAncestors tests resolution order: depth-first, bases left to right, each
// type once.
func TestAncestors(t *testing.T) {
	vm := testutils.VM()
	// Diamond: d(b, c), b(a), c(a).
	a := vm.NewType("a")
	b := vm.NewType("b", a)
	c := vm.NewType("c", a)
	d := vm.NewType("d", b, c)
	var have []*internal.Type
	for p := range d.Ancestors() {
		have = append(have, p)
	}
	checkTypes(t, have, []*internal.Type{d, b, a, vm.BaseType, c})

	t.Run("cycle", func(t *testing.T) {
		x := vm.NewType("x")
		y := vm.NewType("y", x)
		x.SetBases(y)
		var have []*internal.Type
		for p := range x.Ancestors() {
			have = append(have, p)
		}
		checkTypes(t, have, []*internal.Type{x, y})
	})
	t.Run("stop", func(t *testing.T) {
		n := 0
		for range d.Ancestors() {
			n++
			break
		}
		if n != 1 {
			t.Errorf("visited %d types after break", n)
		}
	})
}

// TestResolve tests that capability lookup finds the nearest supplier.
func TestResolve(t *testing.T) {
	vm := testutils.VM()
	a := vm.NewType("a")
	a.Slots.Len.Store(func(vm *internal.VM, obj *internal.Object) (int, error) { return 1, nil })
	b := vm.NewType("b", a)
	c := vm.NewType("c", a)
	c.Slots.Len.Store(func(vm *internal.VM, obj *internal.Object) (int, error) { return 3, nil })
	d := vm.NewType("d", b, c)
	cases := map[string]struct {
		typ   *internal.Type
		capa  internal.Capability
		owner *internal.Type
	}{
		"Local":    {c, internal.CapLen, c},
		"Ancestor": {b, internal.CapLen, a},
		"Diamond":  {d, internal.CapLen, a}, // a precedes c in d's resolution order
		"Never":    {d, internal.CapIter, nil},
		"Builtin":  {vm.NewType("sub", vm.ListType), internal.CapGetItem, vm.ListType},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			owner, ok := vm.Resolve(c.typ, c.capa)
			if owner != c.owner {
				t.Errorf("%v found on wrong type: have %v, want %v", c.capa, owner, c.owner)
			}
			if ok != (c.owner != nil) {
				t.Errorf("wrong ok for %v: %t", c.capa, ok)
			}
		})
	}
	t.Run("Override", func(t *testing.T) {
		e := vm.NewType("e", b, c)
		e.Slots.Len.Store(func(vm *internal.VM, obj *internal.Object) (int, error) { return 5, nil })
		n, ok, err := vm.Len(vm.NewObject(e, nil))
		if err != nil || !ok || n != 5 {
			t.Errorf("wrong len: want 5, have %d, %t, %v", n, ok, err)
		}
		e.Slots.Len.Clear()
		n, ok, err = vm.Len(vm.NewObject(e, nil))
		if err != nil || !ok || n != 1 {
			t.Errorf("wrong len after clear: want 1, have %d, %t, %v", n, ok, err)
		}
	})
}

func TestIsSubtype(t *testing.T) {
	vm := testutils.VM()
	cases := map[string]struct {
		t, u *internal.Type
		want bool
	}{
		"Self":       {vm.IntType, vm.IntType, true},
		"Root":       {vm.IntType, vm.BaseType, true},
		"Exception":  {vm.IndexError, vm.LookupError, true},
		"Unrelated":  {vm.IntType, vm.StrType, false},
		"Reversed":   {vm.LookupError, vm.IndexError, false},
		"StopIter":   {vm.StopIteration, vm.ExceptionType, true},
		"AsyncIsNot": {vm.StopAsyncIteration, vm.StopIteration, false},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if got := c.t.IsSubtype(c.u); got != c.want {
				t.Errorf("%v.IsSubtype(%v) = %t, want %t", c.t, c.u, got, c.want)
			}
		})
	}
}

func TestCapabilityString(t *testing.T) {
	cases := map[internal.Capability]string{
		internal.CapIter:        "iter",
		internal.CapIterNext:    "iternext",
		internal.CapGetItem:     "getitem",
		internal.CapLen:         "len",
		internal.CapLengthHint:  "length_hint",
		internal.Capability(99): "Capability(99)",
		internal.Capability(-1): "Capability(-1)",
	}
	for c, want := range cases {
		if got := c.String(); got != want {
			t.Errorf("wrong name for %d: want %q, have %q", int(c), want, got)
		}
	}
}
