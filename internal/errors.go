package internal

import "errors"

// Causes of the TypeErrors raised by the iteration protocol. Go callers can
// test for them with errors.Is; guest code sees only the TypeError.
var (
	// ErrNotAnIterator is the cause when an object asked to advance does not
	// supply CapIterNext.
	ErrNotAnIterator = errors.New("object is not an iterator")
	// ErrNotIterable is the cause when an object supplies neither CapIter
	// nor CapGetItem.
	ErrNotIterable = errors.New("object is not iterable")
	// ErrBadIteratorProtocol is the cause when CapIter returns an object
	// which does not supply CapIterNext.
	ErrBadIteratorProtocol = errors.New("iterator protocol returned a non-iterator")
)
