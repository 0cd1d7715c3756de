package internal

import (
	"iter"
	"runtime"
)

// GenFunc is the body of a generator. It produces elements by calling yield,
// which returns false if the generator has been closed, and returns the
// generator's final payload, which may be nil.
type GenFunc func(vm *VM, yield func(*Object) bool) (*Object, error)

// Generator is the value of a generator object. Its body runs as a coroutine
// which is resumed on each advance and suspends at each yield.
type Generator struct {
	next func() (*Object, bool)
	stop func()

	// ret and err are the body's results, set when it returns.
	ret *Object
	err error

	running bool
	done    bool
}

// NewGenerator creates a generator object running body. If the object is
// collected while the body is suspended, the body is stopped as by
// CloseGenerator, so its yield returns false.
func (vm *VM) NewGenerator(body GenFunc) *Object {
	g := &Generator{}
	seq := func(yield func(*Object) bool) {
		g.ret, g.err = body(vm, yield)
	}
	g.next, g.stop = iter.Pull(seq)
	obj := vm.NewObject(vm.GeneratorType, g)
	// The finalizer must reference only g. The suspended body holds g, so
	// capturing obj would keep it reachable forever.
	runtime.SetFinalizer(obj, func(*Object) { g.stop() })
	return obj
}

// resume runs the generator's body until it yields or returns. Completion is
// signaled by raising StopIteration carrying the body's return value.
func (g *Generator) resume(vm *VM) (*Object, error) {
	if g.running {
		return nil, vm.NewExceptionf(vm.ValueError, "generator already executing")
	}
	if g.done {
		return nil, vm.NewStopIteration(nil)
	}
	g.running = true
	v, ok := g.next()
	g.running = false
	if ok {
		return v, nil
	}
	g.done = true
	if err := g.err; err != nil {
		g.err = nil
		if vm.IsInstance(err, vm.StopIteration) {
			// A StopIteration escaping the body would otherwise end the
			// generator silently.
			e := vm.NewExceptionf(vm.RuntimeError, "generator raised StopIteration")
			e.err = err
			return nil, e
		}
		return nil, err
	}
	r := g.ret
	g.ret = nil
	return nil, vm.NewStopIteration(r)
}

// genNext is the CapIterNext slot of generators.
func genNext(vm *VM, obj *Object) (IterReturn, error) {
	g := obj.value().(*Generator)
	r, err := g.resume(vm)
	// obj must outlive the resume, or its finalizer could stop the body
	// while it runs.
	runtime.KeepAlive(obj)
	return vm.FromResult(r, err)
}

// CloseGenerator stops a generator's body at its current yield. Later
// advances report exhaustion.
func (vm *VM) CloseGenerator(obj *Object) error {
	g, ok := obj.value().(*Generator)
	if !ok {
		return vm.NewExceptionf(vm.TypeError, "'%s' object is not a generator", vm.TypeName(obj))
	}
	if g.running {
		return vm.NewExceptionf(vm.ValueError, "generator already executing")
	}
	g.stop()
	g.done = true
	g.ret, g.err = nil, nil
	return nil
}

func (vm *VM) initGenerator() {
	vm.GeneratorType = vm.NewType("generator")
	vm.GeneratorType.Slots.Iter.Store(SelfIter)
	vm.GeneratorType.Slots.IterNext.Store(genNext)
}
