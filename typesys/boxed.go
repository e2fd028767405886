package typesys

import (
	"clr-typesys/internal/diagnostic"
	"clr-typesys/options"
	"clr-typesys/platform"
)

// Boxed is the reference-type form of a value type.
type Boxed struct {
	inner Type
}

// NewBoxed boxes inner, which must be a value type or a generic parameter.
func NewBoxed(inner Type) *Boxed {
	if inner == nil {
		panic(diagnostic.InvalidArgument("NewBoxed", "nil inner type"))
	}

	if c := inner.Classification(); c != ClassValue && c != ClassGenericParameter {
		panic(diagnostic.InvalidArgument("NewBoxed", "cannot box %s type %s", c, inner))
	}

	return &Boxed{inner: inner}
}

func (*Boxed) sealed() {}

func (t *Boxed) Kind() TypeKind                 { return TypeKindBoxed }
func (t *Boxed) Module() *Module                { return t.inner.Module() }
func (t *Boxed) ElementType() Type              { return t.inner }
func (t *Boxed) ContainsGenericArguments() bool { return t.inner.ContainsGenericArguments() }
func (t *Boxed) Classification() Classification { return ClassReference }
func (t *Boxed) Hash() uint64                   { return hashOf(t, options.NakedDefault) }
func (t *Boxed) String() string                 { return ILReference(t) }

func (t *Boxed) MapGenericArguments(gm GenericMap) Type {
	if !t.ContainsGenericArguments() {
		return t
	}

	return &Boxed{inner: t.inner.MapGenericArguments(gm)}
}

func (t *Boxed) NakedType(opts options.NakedEnum) Type {
	if opts.Has(options.NakedIgnoreBoxing) {
		return t.inner.NakedType(opts)
	}

	return t
}

func (t *Boxed) ValueSize(p platform.Info) (int, error) {
	return p.PointerSize, nil
}

func (t *Boxed) IsAssignableTo(target Type, gm GenericMap, opts options.AssignEnum) bool {
	return isAssignable(t, target, gm, opts)
}

func (t *Boxed) Translate(target *Module) (Type, error) {
	if t.Module() == target {
		return t, nil
	}

	if err := checkTranslation("Boxed.Translate", t.Module(), target); err != nil {
		return nil, err
	}

	inner, err := t.inner.Translate(target)
	if err != nil {
		return nil, err
	}

	return &Boxed{inner: inner}, nil
}
