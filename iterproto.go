package iterproto

import (
	"github.com/zephyrtronium/iterproto/internal"
	"github.com/zephyrtronium/iterproto/internal/config"
)

type (
	// VM holds the runtime's types and lookup state.
	VM = internal.VM
	// Object is a runtime value.
	Object = internal.Object
	// Type is a runtime type.
	Type = internal.Type
	// Slots is a type's capability table.
	Slots = internal.Slots
	// Capability names a slot.
	Capability = internal.Capability

	// IterFunc implements the iter capability.
	IterFunc = internal.IterFunc
	// IterNextFunc implements the iternext capability.
	IterNextFunc = internal.IterNextFunc
	// GetItemFunc implements the getitem capability.
	GetItemFunc = internal.GetItemFunc
	// LenFunc implements the len capability.
	LenFunc = internal.LenFunc
	// LengthHintFunc implements the length_hint capability.
	LengthHintFunc = internal.LengthHintFunc

	// Iter is a handle to an iterator.
	Iter = internal.Iter
	// IterReturn is the outcome of advancing an iterator.
	IterReturn = internal.IterReturn
	// HostSeq presents an iterator as a Go pull sequence of objects.
	HostSeq = internal.HostSeq[*internal.Object]

	// Exception is a guest-language exception.
	Exception = internal.Exception
	// GoFunc implements a function object.
	GoFunc = internal.GoFunc
	// GenFunc is the body of a generator.
	GenFunc = internal.GenFunc

	// Config is the runtime configuration.
	Config = config.Config
)

// Capabilities.
const (
	CapIter       = internal.CapIter
	CapIterNext   = internal.CapIterNext
	CapGetItem    = internal.CapGetItem
	CapLen        = internal.CapLen
	CapLengthHint = internal.CapLengthHint
)

// Causes of iteration protocol TypeErrors.
var (
	ErrNotAnIterator       = internal.ErrNotAnIterator
	ErrNotIterable         = internal.ErrNotIterable
	ErrBadIteratorProtocol = internal.ErrBadIteratorProtocol
)

// NewVM creates a runtime. If cfg is nil, the default configuration is used.
func NewVM(cfg *Config) *VM {
	return internal.NewVM(cfg)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return config.Default()
}

// LoadConfig reads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// NewIter wraps an object already known to be an iterator.
func NewIter(obj *Object) Iter {
	return internal.NewIter(obj)
}

// Produced returns an IterReturn holding an element.
func Produced(v *Object) IterReturn {
	return internal.Produced(v)
}

// Exhausted returns an IterReturn reporting exhaustion with a payload, which
// may be nil.
func Exhausted(payload *Object) IterReturn {
	return internal.Exhausted(payload)
}

// SelfIter is an iter slot which returns the object itself.
func SelfIter(vm *VM, obj *Object) (*Object, error) {
	return internal.SelfIter(vm, obj)
}

// ExceptionArg returns the nth argument of the exception in err's chain.
func ExceptionArg(err error, n int) *Object {
	return internal.ExceptionArg(err, n)
}

// Seq presents an iterator as a Go pull sequence whose elements are coerced
// by conv.
func Seq[T any](vm *VM, it Iter, conv func(vm *VM, obj *Object) (T, error)) (*internal.HostSeq[T], error) {
	return internal.Seq(vm, it, internal.Converter[T](conv))
}

// ToInt is a Seq converter which requires elements to be ints.
func ToInt(vm *VM, obj *Object) (int, error) {
	return internal.ToInt(vm, obj)
}

// ToString is a Seq converter which requires elements to be strs.
func ToString(vm *VM, obj *Object) (string, error) {
	return internal.ToString(vm, obj)
}
