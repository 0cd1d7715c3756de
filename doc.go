/*
Package iterproto implements the dispatch and iteration core of an object
runtime for a dynamically typed language.

Every runtime value is an Object with a Type. A Type has a fixed table of
optional capability slots and a list of bases. Capabilities are resolved on
each use by walking the type and its ancestors depth-first, bases left to
right, each ancestor visited once; the first type whose slot is set supplies
the capability. Nothing caches a resolved slot, so changing a type's slots or
bases, or changing an object's type, takes effect on the very next call.

Iteration

An arbitrary value becomes an iterator through GetIter, which is shared by loop
entry and by the iter builtin:

	it, err := vm.GetIter(obj)
	if err != nil {
		// TypeError: errors.Is(err, iterproto.ErrNotIterable), or
		// errors.Is(err, iterproto.ErrBadIteratorProtocol)
	}
	for {
		r, err := it.Next(vm)
		if err != nil {
			return err
		}
		if r.Done {
			// r.Value is the exhaustion payload, possibly nil.
			break
		}
		use(r.Value)
	}

GetIter tries, in order, the type's iter capability, whether the value is
already an iterator, and finally the legacy getitem capability, which it
adapts by indexing at 0, 1, 2, ... until IndexError.

Exhaustion is data, not an error. Slot functions written in terms of raised
StopIteration normalize through FromResult or FromGetItemResult; consumers
that need exhaustion as a raised signal use IntoResult, or IntoAsyncResult
for asynchronous consumers, which see StopAsyncIteration instead.

Host sequences

AsHostSeq and Seq present an iterator as a Go pull sequence with an advisory
length hint. A HostSeq never advances its iterator again after the first
exhaustion, and its All method plugs into range-over-func loops:

	s, err := it.AsHostSeq(vm)
	if err != nil {
		return err
	}
	for v, err := range s.All() {
		...
	}

Configuration

NewVM takes a Config, usually loaded from YAML with LoadConfig. It controls
the VM's log level, the default encoding for DecodeStr, and length hint
behavior.
*/
package iterproto
