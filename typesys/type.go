package typesys

import (
	"clr-typesys/options"
	"clr-typesys/platform"
)

// Type is a node of the type-signature algebra. The set of implementations
// is closed: Intrinsic, Pointer, Array, GenericParameter, GenericInstance,
// Modified, Boxed, Pinned, MethodPointer and NamedType.
//
// Types are immutable once built. Every transformation returns a new node,
// or the receiver itself when nothing changes.
type Type interface {
	// Kind returns the variant tag.
	Kind() TypeKind
	// Module returns the module the node belongs to. The node does not own it.
	Module() *Module
	// ElementType returns the directly nested type, or nil for leaves.
	ElementType() Type
	// ContainsGenericArguments reports whether an unresolved generic
	// parameter reference is reachable from the node.
	ContainsGenericArguments() bool
	// MapGenericArguments substitutes generic parameters through gm. It
	// returns the receiver when ContainsGenericArguments is false.
	MapGenericArguments(gm GenericMap) Type
	// NakedType strips the wrapper layers selected by opts from the top of
	// the node.
	NakedType(opts options.NakedEnum) Type
	// IsAssignableTo reports whether a value of this type can be used where
	// target is expected.
	IsAssignableTo(target Type, gm GenericMap, opts options.AssignEnum) bool
	// Translate returns an equivalent node owned by target. It returns the
	// receiver when target is already its module.
	Translate(target *Module) (Type, error)
	// Hash returns the canonical hash, consistent with Equal.
	Hash() uint64
	// Classification tells how values of the type are stored.
	Classification() Classification
	// ValueSize returns the in-memory size of a value on the platform.
	ValueSize(p platform.Info) (int, error)
	// String returns the IL reference of the node relative to its module.
	String() string

	sealed()
}

// Equal reports whether a and b denote the same type. Optional custom
// modifiers and pinned markers are ignored at every level; required
// modifiers participate.
func Equal(a, b Type) bool {
	return EqualWith(a, b, options.NakedDefault)
}

// EqualWith compares a and b after stripping the layers selected by opts at
// every level of both trees.
func EqualWith(a, b Type, opts options.NakedEnum) bool {
	return equal(a, b, opts)
}

// HashWith returns a hash consistent with EqualWith under the same opts.
func HashWith(t Type, opts options.NakedEnum) uint64 {
	return hashOf(t, opts)
}

// Classify returns the classification of t's naked form, or ClassUnknown for nil.
func Classify(t Type) Classification {
	if t == nil {
		return ClassUnknown
	}

	return t.Classification()
}

// IsValueType reports whether t is stored by value.
func IsValueType(t Type) bool {
	return Classify(t) == ClassValue
}

// IsReferenceType reports whether t is stored by reference.
func IsReferenceType(t Type) bool {
	return Classify(t) == ClassReference
}

// IsAssignable is the free-function form of Type.IsAssignableTo.
func IsAssignable(source, target Type, gm GenericMap, opts options.AssignEnum) bool {
	return isAssignable(source, target, gm, opts)
}
