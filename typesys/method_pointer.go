package typesys

import (
	"slices"

	"clr-typesys/internal/diagnostic"
	"clr-typesys/options"
	"clr-typesys/platform"
)

// MethodPointer is an unmanaged pointer to a method with a given signature.
type MethodPointer struct {
	module    *Module
	signature MethodSignature
}

// NewMethodPointer returns a method pointer owned by m.
func NewMethodPointer(m *Module, sig MethodSignature) *MethodPointer {
	const op = "NewMethodPointer"

	if m == nil {
		panic(diagnostic.InvalidArgument(op, "nil module"))
	}

	sig.validate(op)
	sig.Parameters = slices.Clone(sig.Parameters)

	return &MethodPointer{module: m, signature: sig}
}

func (*MethodPointer) sealed() {}

func (t *MethodPointer) Kind() TypeKind    { return TypeKindMethodPointer }
func (t *MethodPointer) Module() *Module   { return t.module }
func (t *MethodPointer) ElementType() Type { return nil }
func (t *MethodPointer) ContainsGenericArguments() bool {
	return t.signature.ContainsGenericArguments()
}
func (t *MethodPointer) NakedType(options.NakedEnum) Type { return t }
func (t *MethodPointer) Classification() Classification   { return ClassPointer }
func (t *MethodPointer) Hash() uint64                     { return hashOf(t, options.NakedDefault) }
func (t *MethodPointer) String() string                   { return ILReference(t) }

// Signature returns a copy of the pointed-to signature.
func (t *MethodPointer) Signature() MethodSignature {
	sig := t.signature
	sig.Parameters = slices.Clone(sig.Parameters)

	return sig
}

func (t *MethodPointer) MapGenericArguments(gm GenericMap) Type {
	sig, changed := t.signature.MapGenericArguments(gm)
	if !changed {
		return t
	}

	return &MethodPointer{module: t.module, signature: sig}
}

func (t *MethodPointer) ValueSize(p platform.Info) (int, error) {
	return p.PointerSize, nil
}

// SystemType returns System.IntPtr, the runtime representation of method
// pointers.
func (t *MethodPointer) SystemType() *NamedType {
	return t.module.SystemType("IntPtr")
}

func (t *MethodPointer) IsAssignableTo(target Type, gm GenericMap, opts options.AssignEnum) bool {
	return isAssignable(t, target, gm, opts)
}

func (t *MethodPointer) Translate(target *Module) (Type, error) {
	if t.module == target {
		return t, nil
	}

	if err := checkTranslation("MethodPointer.Translate", t.module, target); err != nil {
		return nil, err
	}

	sig, err := t.signature.Translate(target)
	if err != nil {
		return nil, err
	}

	return &MethodPointer{module: target, signature: sig}, nil
}
