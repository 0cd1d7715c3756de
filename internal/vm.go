package internal

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/zephyrtronium/contains"

	"github.com/zephyrtronium/iterproto/internal/config"
)

// VM holds the runtime's types and the scratch space for capability lookups.
// A VM is not safe for concurrent use; the runtime is single-threaded, and
// generator bodies run only while the goroutine that resumed them waits.
type VM struct {
	// BaseType is the root of every type hierarchy. It supplies no
	// capabilities.
	BaseType *Type

	// Builtin types.
	IntType          *Type
	StrType          *Type
	ListType         *Type
	ListIterType     *Type
	SeqIterType      *Type
	RangeType        *Type
	RangeIterType    *Type
	FunctionType     *Type
	CallableIterType *Type
	GeneratorType    *Type

	// Exception types.
	BaseException      *Type
	ExceptionType      *Type
	TypeError          *Type
	ValueError         *Type
	RuntimeError       *Type
	LookupError        *Type
	IndexError         *Type
	StopIteration      *Type
	StopAsyncIteration *Type

	// Config is the configuration the VM was created with.
	Config config.Config
	// Log receives the VM's diagnostics. Nothing is logged while advancing
	// an iterator.
	Log zerolog.Logger

	// protoSet is the set of types visited during a lookup.
	protoSet contains.Set
	// protoStack is the stack of types to visit during a lookup.
	protoStack []*Type

	// intCache holds the ints served by NewInt without allocating.
	intCache []*Object
}

// NewVM creates a runtime. If cfg is nil, the default configuration is used.
// The VM logs through the global zerolog logger at the configured level.
func NewVM(cfg *config.Config) *VM {
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}
	vm := VM{
		Config: *cfg,
		Log:    log.Logger.With().Str("component", "vm").Logger().Level(cfg.Level()),
	}

	// BaseType must exist before anything else so that NewType can use it.
	// Exceptions come next because every slot may raise them, and int must
	// precede anything that indexes.
	vm.BaseType = vm.NewType("object")
	vm.initException()
	vm.initInt()
	vm.initStr()
	vm.initList()
	vm.initRange()
	vm.initSeqIterator()
	vm.initFunction()
	vm.initGenerator()

	return &vm
}
