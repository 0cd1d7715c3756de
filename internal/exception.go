package internal

import (
	"errors"
	"fmt"
	"strings"
)

// Exception is a guest-language exception. It implements error so that slot
// functions can return it through ordinary Go error returns.
type Exception struct {
	// Type is the exception's type. It is always a subtype of the VM's
	// BaseException.
	Type *Type
	// Args are the exception's arguments. For StopIteration and
	// StopAsyncIteration, the first argument is the exhaustion payload.
	Args []*Object

	// err is the Go-side cause, if any.
	err error
}

// Error returns the exception type name and its arguments.
func (e *Exception) Error() string {
	switch len(e.Args) {
	case 0:
		return e.Type.Name()
	case 1:
		return e.Type.Name() + ": " + e.Args[0].String()
	}
	s := make([]string, len(e.Args))
	for i, arg := range e.Args {
		s[i] = arg.String()
	}
	return e.Type.Name() + ": (" + strings.Join(s, ", ") + ")"
}

// Unwrap returns the exception's Go-side cause.
func (e *Exception) Unwrap() error {
	return e.err
}

// NewException creates an exception of the given type with the given
// arguments.
func (vm *VM) NewException(typ *Type, args ...*Object) *Exception {
	return &Exception{Type: typ, Args: args}
}

// NewExceptionf creates an exception of the given type whose only argument is
// a str containing the formatted message.
func (vm *VM) NewExceptionf(typ *Type, format string, args ...interface{}) *Exception {
	return vm.NewException(typ, vm.NewStr(fmt.Sprintf(format, args...)))
}

// typeError creates a TypeError with a Go-side cause.
func (vm *VM) typeError(cause error, format string, args ...interface{}) *Exception {
	e := vm.NewExceptionf(vm.TypeError, format, args...)
	e.err = cause
	return e
}

// NewStopIteration creates the exhaustion signal. If payload is nil, the
// exception has no arguments.
func (vm *VM) NewStopIteration(payload *Object) *Exception {
	if payload == nil {
		return vm.NewException(vm.StopIteration)
	}
	return vm.NewException(vm.StopIteration, payload)
}

// IsInstance returns whether err is an Exception whose type is typ or one of
// its subtypes.
func (vm *VM) IsInstance(err error, typ *Type) bool {
	var e *Exception
	if !errors.As(err, &e) {
		return false
	}
	return vm.isSubtype(e.Type, typ)
}

// ExceptionArg returns the nth argument of the exception in err's chain, or
// nil if there is no exception or it has too few arguments.
func ExceptionArg(err error, n int) *Object {
	var e *Exception
	if !errors.As(err, &e) || n < 0 || n >= len(e.Args) {
		return nil
	}
	return e.Args[n]
}

// initException creates the exception hierarchy.
func (vm *VM) initException() {
	vm.BaseException = vm.NewType("BaseException")
	vm.ExceptionType = vm.NewType("Exception", vm.BaseException)
	vm.TypeError = vm.NewType("TypeError", vm.ExceptionType)
	vm.ValueError = vm.NewType("ValueError", vm.ExceptionType)
	vm.RuntimeError = vm.NewType("RuntimeError", vm.ExceptionType)
	vm.LookupError = vm.NewType("LookupError", vm.ExceptionType)
	vm.IndexError = vm.NewType("IndexError", vm.LookupError)
	vm.StopIteration = vm.NewType("StopIteration", vm.ExceptionType)
	vm.StopAsyncIteration = vm.NewType("StopAsyncIteration", vm.ExceptionType)
}
