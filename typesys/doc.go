// Package typesys models the runtime's type-signature algebra.
//
// A Type is an immutable node drawn from a closed set of variants:
//   - Intrinsic: built-in types (int32, string, object, ...)
//   - Pointer: unmanaged (*) and managed (&) pointers
//   - Array: vectors and multi-dimensional arrays
//   - GenericParameter: !n and !!n references
//   - GenericInstance: a generic definition closed over arguments
//   - Modified: modreq/modopt custom modifier wrappers
//   - Boxed, Pinned: boxing and pinning markers
//   - MethodPointer: pointers to functions of a MethodSignature
//   - NamedType: a type declaration owned by a module
//
// Every node belongs to a Module, and modules belong to a Domain. Types move
// between modules of one domain with Translate. GenericMap substitutes
// generic parameters, and IsAssignableTo implements the runtime's
// compatibility relation. Two textual projections are provided:
// ILReference (IL assembler syntax) and ReflectionName (reflection type
// name grammar).
package typesys
