package internal_test

import (
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/zephyrtronium/iterproto/internal"
	"github.com/zephyrtronium/iterproto/testutils"
)

// counting returns a generator body yielding 0, 1, ..., n-1 and returning
// ret.
func counting(n int, ret *internal.Object) internal.GenFunc {
	return func(vm *internal.VM, yield func(*internal.Object) bool) (*internal.Object, error) {
		for i := 0; i < n; i++ {
			if !yield(vm.NewInt(i)) {
				return nil, nil
			}
		}
		return ret, nil
	}
}

func TestGenerator(t *testing.T) {
	vm := testutils.VM()
	cases := map[string]struct {
		body    internal.GenFunc
		want    []*internal.Object
		payload *internal.Object
	}{
		"Empty":   {counting(0, nil), nil, nil},
		"Three":   {counting(3, nil), ints(vm, 0, 1, 2), nil},
		"Returns": {counting(2, vm.NewInt(42)), ints(vm, 0, 1), vm.NewInt(42)},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			g := vm.NewGenerator(c.body)
			it, err := vm.GetIter(g)
			if err != nil {
				t.Fatal(err)
			}
			have, payload := testutils.Drain(t, vm, it, 10)
			testutils.CheckObjects(t, vm, have, c.want)
			if !vm.Equal(payload, c.payload) {
				t.Errorf("wrong payload: want %v, have %v", c.payload, payload)
			}
			// The payload is reported once.
			r, err := it.Next(vm)
			if err != nil || !r.Done || r.Value != nil {
				t.Errorf("after exhaustion: have %+v, %v", r, err)
			}
		})
	}
}

// TestGeneratorRaises tests exceptions escaping a generator body.
func TestGeneratorRaises(t *testing.T) {
	vm := testutils.VM()
	t.Run("ValueError", func(t *testing.T) {
		boom := vm.NewExceptionf(vm.ValueError, "boom")
		g := vm.NewGenerator(func(vm *internal.VM, yield func(*internal.Object) bool) (*internal.Object, error) {
			yield(vm.NewInt(1))
			return nil, boom
		})
		it := internal.NewIter(g)
		if r, err := it.Next(vm); err != nil || !vm.Equal(r.Value, vm.NewInt(1)) {
			t.Fatalf("first: %+v, %v", r, err)
		}
		if _, err := it.Next(vm); err != boom {
			t.Errorf("wrong error: want %v, have %v", boom, err)
		}
		if r, err := it.Next(vm); err != nil || !r.Done {
			t.Errorf("after error: %+v, %v", r, err)
		}
	})
	t.Run("StopIteration", func(t *testing.T) {
		stop := vm.NewStopIteration(vm.NewInt(5))
		g := vm.NewGenerator(func(vm *internal.VM, yield func(*internal.Object) bool) (*internal.Object, error) {
			return nil, stop
		})
		_, err := internal.NewIter(g).Next(vm)
		if !vm.IsInstance(err, vm.RuntimeError) {
			t.Fatalf("want RuntimeError, have %v", err)
		}
		if !strings.Contains(err.Error(), "generator raised StopIteration") {
			t.Errorf("wrong message: %v", err)
		}
		if cause := errors.Unwrap(err); cause != stop {
			t.Errorf("wrong cause: want %v, have %v", stop, cause)
		}
	})
}

// TestGeneratorReentry tests that a generator cannot advance itself.
func TestGeneratorReentry(t *testing.T) {
	vm := testutils.VM()
	var g *internal.Object
	g = vm.NewGenerator(func(vm *internal.VM, yield func(*internal.Object) bool) (*internal.Object, error) {
		_, err := vm.NextBuiltin(g, nil)
		return nil, err
	})
	_, err := internal.NewIter(g).Next(vm)
	if !vm.IsInstance(err, vm.ValueError) {
		t.Fatalf("want ValueError, have %v", err)
	}
	if !strings.Contains(err.Error(), "generator already executing") {
		t.Errorf("wrong message: %v", err)
	}
}

func TestCloseGenerator(t *testing.T) {
	vm := testutils.VM()
	closed := false
	g := vm.NewGenerator(func(vm *internal.VM, yield func(*internal.Object) bool) (*internal.Object, error) {
		for i := 0; ; i++ {
			if !yield(vm.NewInt(i)) {
				closed = true
				return vm.NewInt(-1), nil
			}
		}
	})
	it := internal.NewIter(g)
	if r, err := it.Next(vm); err != nil || !vm.Equal(r.Value, vm.NewInt(0)) {
		t.Fatalf("first: %+v, %v", r, err)
	}
	if err := vm.CloseGenerator(g); err != nil {
		t.Fatal(err)
	}
	if !closed {
		t.Error("body did not observe close")
	}
	r, err := it.Next(vm)
	if err != nil || !r.Done || r.Value != nil {
		t.Errorf("after close: have %+v, %v", r, err)
	}
	t.Run("NotGenerator", func(t *testing.T) {
		err := vm.CloseGenerator(vm.NewInt(1))
		if !vm.IsInstance(err, vm.TypeError) {
			t.Errorf("want TypeError, have %v", err)
		}
	})
	t.Run("Unstarted", func(t *testing.T) {
		g := vm.NewGenerator(counting(3, nil))
		if err := vm.CloseGenerator(g); err != nil {
			t.Fatal(err)
		}
		r, err := internal.NewIter(g).Next(vm)
		if err != nil || !r.Done {
			t.Errorf("after close: have %+v, %v", r, err)
		}
	})
}

// TestGeneratorCollected tests that a generator abandoned mid-body does not
// keep its body suspended after the generator is collected.
func TestGeneratorCollected(t *testing.T) {
	vm := testutils.VM()
	forever := func(vm *internal.VM, yield func(*internal.Object) bool) (*internal.Object, error) {
		for yield(vm.NewInt(1)) {
			// do nothing
		}
		return nil, nil
	}
	runtime.GC()
	before := runtime.NumGoroutine()
	const n = 50
	for i := 0; i < n; i++ {
		_, err := vm.Unpack(vm.NewGenerator(forever), 2)
		if !vm.IsInstance(err, vm.ValueError) {
			t.Fatalf("wrong error unpacking infinite generator: %v", err)
		}
	}
	deadline := time.Now().Add(5 * time.Second)
	for {
		runtime.GC()
		after := runtime.NumGoroutine()
		if after < before+n/2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("abandoned generators still suspended: %d goroutines before, %d after", before, after)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
