package internal

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Object is a runtime value. Every Object has a Type, which determines the
// capabilities to which the object responds.
//
// Always use NewObject or a type-specific constructor to obtain new objects.
// Creating objects directly will result in arbitrary failures.
type Object struct {
	// typ is the object's runtime type. It is swapped atomically so that
	// assigning a new type is visible to the next capability lookup.
	typ atomic.Pointer[Type]

	// Mutex is a lock which must be held when accessing the value of the
	// object if it is or may be mutable. It must never be held while calling
	// a slot function, since slot functions may touch the same object.
	sync.Mutex
	// Value is the object's type-specific primitive value.
	Value interface{}

	// id is the object's unique ID.
	id uintptr
}

// NewObject creates a new object with the given type and primitive value.
func (vm *VM) NewObject(typ *Type, value interface{}) *Object {
	r := &Object{
		Value: value,
		id:    nextObject(),
	}
	r.typ.Store(typ)
	return r
}

// Type returns the object's current runtime type.
func (o *Object) Type() *Type {
	return o.typ.Load()
}

// SetType changes the object's runtime type. Iterator handles already
// wrapping the object observe the new type on their next advance.
func (o *Object) SetType(typ *Type) {
	o.typ.Store(typ)
}

// UniqueID returns the object's unique ID.
func (o *Object) UniqueID() uintptr {
	return o.id
}

// value returns a snapshot of the object's primitive value.
func (o *Object) value() interface{} {
	o.Lock()
	v := o.Value
	o.Unlock()
	return v
}

// String returns a representation of the object suitable for messages.
func (o *Object) String() string {
	if o == nil {
		return "<nil>"
	}
	switch v := o.value().(type) {
	case int:
		return strconv.Itoa(v)
	case []*Object:
		b := strings.Builder{}
		b.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				b.WriteString(", ")
			}
			if e == o {
				b.WriteString("[...]")
				continue
			}
			b.WriteString(e.String())
		}
		b.WriteByte(']')
		return b.String()
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("<%s object %#x>", o.Type().Name(), o.id)
}

// TypeName returns the name of the object's type. A nil object is named
// NoneType.
func (vm *VM) TypeName(o *Object) string {
	if o == nil {
		return "NoneType"
	}
	return o.Type().Name()
}

// objcounter is the global counter for object and type IDs. All accesses to
// this must be atomic.
var objcounter uintptr

// nextObject increments the object counter and returns its value as a unique
// ID for a new object or type.
func nextObject() uintptr {
	return atomic.AddUintptr(&objcounter, 1)
}
