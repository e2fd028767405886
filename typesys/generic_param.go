package typesys

import (
	"clr-typesys/internal/diagnostic"
	"clr-typesys/options"
	"clr-typesys/platform"
)

// GenericParameter references a type-level (!n) or method-level (!!n)
// generic parameter by ordinal.
type GenericParameter struct {
	module  *Module
	kind    GenericKind
	ordinal int
}

// NewGenericParameter returns a reference to parameter ordinal of kind.
func NewGenericParameter(m *Module, kind GenericKind, ordinal int) *GenericParameter {
	if m == nil {
		panic(diagnostic.InvalidArgument("NewGenericParameter", "nil module"))
	}

	if ordinal < 0 {
		panic(diagnostic.OutOfRange("NewGenericParameter", "negative ordinal %d", ordinal))
	}

	return &GenericParameter{module: m, kind: kind, ordinal: ordinal}
}

func (*GenericParameter) sealed() {}

func (t *GenericParameter) Kind() TypeKind                   { return TypeKindGenericParameter }
func (t *GenericParameter) Module() *Module                  { return t.module }
func (t *GenericParameter) ElementType() Type                { return nil }
func (t *GenericParameter) ParameterKind() GenericKind       { return t.kind }
func (t *GenericParameter) Ordinal() int                     { return t.ordinal }
func (t *GenericParameter) ContainsGenericArguments() bool   { return true }
func (t *GenericParameter) NakedType(options.NakedEnum) Type { return t }
func (t *GenericParameter) Classification() Classification   { return ClassGenericParameter }
func (t *GenericParameter) Hash() uint64                     { return hashOf(t, options.NakedDefault) }
func (t *GenericParameter) String() string                   { return ILReference(t) }

// MapGenericArguments returns the argument gm binds to the parameter. It
// panics when gm does not cover the parameter.
func (t *GenericParameter) MapGenericArguments(gm GenericMap) Type {
	return gm.MustParameter(t.kind, t.ordinal)
}

func (t *GenericParameter) ValueSize(platform.Info) (int, error) {
	return 0, diagnostic.NotSupported("GenericParameter.ValueSize", "size of open parameter %s", t)
}

func (t *GenericParameter) IsAssignableTo(target Type, gm GenericMap, opts options.AssignEnum) bool {
	return isAssignable(t, target, gm, opts)
}

// Translate re-homes t in target so composites built over it report target
// as their module.
func (t *GenericParameter) Translate(target *Module) (Type, error) {
	if t.module == target {
		return t, nil
	}

	if err := checkTranslation("GenericParameter.Translate", t.module, target); err != nil {
		return nil, err
	}

	return NewGenericParameter(target, t.kind, t.ordinal), nil
}
