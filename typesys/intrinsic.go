package typesys

import (
	"clr-typesys/options"
	"clr-typesys/platform"
	"clr-typesys/primitive"
)

// Intrinsic is a built-in primitive type. A module holds exactly one
// instance per kind; obtain it with Module.Intrinsic.
type Intrinsic struct {
	module *Module
	kind   primitive.IntrinsicEnum
}

func (*Intrinsic) sealed() {}

func (t *Intrinsic) Kind() TypeKind                         { return TypeKindIntrinsic }
func (t *Intrinsic) Module() *Module                        { return t.module }
func (t *Intrinsic) ElementType() Type                      { return nil }
func (t *Intrinsic) ContainsGenericArguments() bool         { return false }
func (t *Intrinsic) MapGenericArguments(GenericMap) Type    { return t }
func (t *Intrinsic) NakedType(options.NakedEnum) Type       { return t }
func (t *Intrinsic) Hash() uint64                           { return hashOf(t, options.NakedDefault) }
func (t *Intrinsic) String() string                         { return ILReference(t) }
func (t *Intrinsic) IntrinsicKind() primitive.IntrinsicEnum { return t.kind }

func (t *Intrinsic) Classification() Classification {
	if t.kind.IsValueType() {
		return ClassValue
	}

	return ClassReference
}

func (t *Intrinsic) ValueSize(p platform.Info) (int, error) {
	return t.kind.SizeOn(p.PointerSize), nil
}

func (t *Intrinsic) IsAssignableTo(target Type, gm GenericMap, opts options.AssignEnum) bool {
	return isAssignable(t, target, gm, opts)
}

func (t *Intrinsic) Translate(target *Module) (Type, error) {
	if err := checkTranslation("Intrinsic.Translate", t.module, target); err != nil {
		return nil, err
	}

	return target.Intrinsic(t.kind), nil
}

// SystemType returns the System declaration backing the intrinsic, e.g.
// System.Int32 for int32, or nil when the domain does not define it.
func (t *Intrinsic) SystemType() *NamedType {
	return t.module.SystemType(t.kind.SystemName())
}
