package iterproto_test

import (
	"errors"
	"fmt"

	"github.com/zephyrtronium/iterproto"
)

func Example() {
	vm := iterproto.NewVM(nil)
	// str supplies only getitem, so this goes through the sequence protocol.
	it, err := vm.GetIter(vm.NewStr("abc"))
	if err != nil {
		panic(err)
	}
	for {
		r, err := it.Next(vm)
		if err != nil {
			panic(err)
		}
		if r.Done {
			break
		}
		fmt.Println(r.Value)
	}
	// Output:
	// a
	// b
	// c
}

func Example_customIterator() {
	vm := iterproto.NewVM(nil)
	countdown := vm.NewType("countdown")
	countdown.Slots.Iter.Store(iterproto.SelfIter)
	countdown.Slots.IterNext.Store(func(vm *iterproto.VM, obj *iterproto.Object) (iterproto.IterReturn, error) {
		obj.Lock()
		defer obj.Unlock()
		n := obj.Value.(int)
		if n == 0 {
			return iterproto.Exhausted(vm.NewStr("liftoff")), nil
		}
		obj.Value = n - 1
		return iterproto.Produced(vm.NewInt(n)), nil
	})
	it, err := vm.GetIter(vm.NewObject(countdown, 3))
	if err != nil {
		panic(err)
	}
	for {
		r, err := it.Next(vm)
		if err != nil {
			panic(err)
		}
		fmt.Println(r.Value)
		if r.Done {
			break
		}
	}
	// Output:
	// 3
	// 2
	// 1
	// liftoff
}

func ExampleSeq() {
	vm := iterproto.NewVM(nil)
	r, err := vm.NewRange(0, 10, 3)
	if err != nil {
		panic(err)
	}
	it, err := vm.GetIter(r)
	if err != nil {
		panic(err)
	}
	s, err := iterproto.Seq(vm, it, iterproto.ToInt)
	if err != nil {
		panic(err)
	}
	lower, upper, ok := s.SizeHint()
	fmt.Println("hint:", lower, upper, ok)
	sum := 0
	for n, err := range s.All() {
		if err != nil {
			panic(err)
		}
		sum += n
	}
	fmt.Println("sum:", sum)
	// Output:
	// hint: 4 4 true
	// sum: 18
}

func Example_notIterable() {
	vm := iterproto.NewVM(nil)
	_, err := vm.GetIter(vm.NewInt(1))
	fmt.Println(err)
	fmt.Println(errors.Is(err, iterproto.ErrNotIterable))
	// Output:
	// TypeError: 'int' object is not iterable
	// true
}
