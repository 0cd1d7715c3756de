package internal

import "iter"

// Converter coerces an element produced by an iterator into a Go value.
type Converter[T any] func(vm *VM, obj *Object) (T, error)

// Identity is the Converter which returns elements unchanged.
func Identity(vm *VM, obj *Object) (*Object, error) {
	return obj, nil
}

// ToInt is a Converter which requires elements to be ints.
func ToInt(vm *VM, obj *Object) (int, error) {
	if n, ok := vm.AsInt(obj); ok {
		return n, nil
	}
	return 0, vm.NewExceptionf(vm.TypeError, "expected int, got '%s'", vm.TypeName(obj))
}

// ToString is a Converter which requires elements to be strs.
func ToString(vm *VM, obj *Object) (string, error) {
	if s, ok := vm.AsStr(obj); ok {
		return s, nil
	}
	return "", vm.NewExceptionf(vm.TypeError, "expected str, got '%s'", vm.TypeName(obj))
}

// HostSeq presents an iterator as a Go pull sequence. It carries a length
// hint taken once when the HostSeq is created, which is never recomputed and
// may be stale or wrong.
//
// Once the iterator reports exhaustion, the HostSeq is spent: every later call
// to Next reports absence without advancing the iterator again. The
// exhaustion payload is discarded; use Iter.Next directly to observe it.
type HostSeq[T any] struct {
	vm   *VM
	it   Iter
	conv Converter[T]

	hint   int
	hinted bool
	spent  bool
}

// Seq creates a HostSeq over it whose elements are coerced by conv.
//
// The length hint is obtained through vm.LengthHint unless hints are disabled
// by the VM's configuration. If the probe fails, the HostSeq has no hint and
// the failure is logged, unless the configuration asks for strict hints, in
// which case the failure is returned.
func Seq[T any](vm *VM, it Iter, conv Converter[T]) (*HostSeq[T], error) {
	s := &HostSeq[T]{vm: vm, it: it, conv: conv}
	if vm.Config.LengthHint.Disabled {
		return s, nil
	}
	n, ok, err := vm.LengthHint(it.Object())
	if err != nil {
		if vm.Config.LengthHint.Strict {
			return nil, err
		}
		vm.Log.Debug().Err(err).Str("type", vm.TypeName(it.Object())).Msg("ignoring failed length hint")
		return s, nil
	}
	s.hint, s.hinted = n, ok
	return s, nil
}

// AsHostSeq creates a HostSeq over the iterator with uncoerced elements.
func (it Iter) AsHostSeq(vm *VM) (*HostSeq[*Object], error) {
	return Seq[*Object](vm, it, Identity)
}

// Next produces the next element. ok is false once the iterator is
// exhausted. Errors from the iterator or from coercion are returned without
// spending the sequence.
func (s *HostSeq[T]) Next() (v T, ok bool, err error) {
	if s.spent {
		return v, false, nil
	}
	r, err := s.it.Next(s.vm)
	if err != nil {
		return v, false, err
	}
	if r.Done {
		s.spent = true
		return v, false, nil
	}
	v, err = s.conv(s.vm, r.Value)
	if err != nil {
		return v, false, err
	}
	return v, true, nil
}

// SizeHint returns bounds on the number of remaining elements. lower is the
// hint or 0, and upper is the hint. ok is false if there is no hint, in which
// case upper is meaningless. The bounds are advisory only.
func (s *HostSeq[T]) SizeHint() (lower, upper int, ok bool) {
	if !s.hinted {
		return 0, 0, false
	}
	return s.hint, s.hint, true
}

// All returns a Go iterator over the remaining elements. If the iterator
// fails, the error is yielded with a zero element and the sequence ends.
func (s *HostSeq[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, ok, err := s.Next()
			if err != nil {
				yield(v, err)
				return
			}
			if !ok || !yield(v, nil) {
				return
			}
		}
	}
}

// Collect drains the remaining elements into a slice. The length hint, capped
// by the VM's configuration, is used only to preallocate.
func (s *HostSeq[T]) Collect() ([]T, error) {
	n, _, _ := s.SizeHint()
	if limit := s.vm.Config.LengthHint.MaxPrealloc; n > limit {
		n = limit
	}
	r := make([]T, 0, n)
	for v, err := range s.All() {
		if err != nil {
			return r, err
		}
		r = append(r, v)
	}
	return r, nil
}

// Unpack obtains an iterator over obj and takes exactly n elements from it,
// as for destructuring assignment. Too few or too many elements is a
// ValueError.
func (vm *VM) Unpack(obj *Object, n int) ([]*Object, error) {
	it, err := vm.GetIter(obj)
	if err != nil {
		return nil, err
	}
	s, err := it.AsHostSeq(vm)
	if err != nil {
		return nil, err
	}
	r := make([]*Object, 0, n)
	for len(r) < n {
		v, ok, err := s.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, vm.NewExceptionf(vm.ValueError, "not enough values to unpack (expected %d, got %d)", n, len(r))
		}
		r = append(r, v)
	}
	_, ok, err := s.Next()
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, vm.NewExceptionf(vm.ValueError, "too many values to unpack (expected %d)", n)
	}
	return r, nil
}
