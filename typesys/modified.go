package typesys

import (
	"clr-typesys/internal/diagnostic"
	"clr-typesys/options"
	"clr-typesys/platform"
)

// CustomModifier tags a type with modreq (Required) or modopt. Consumers
// that do not understand a required modifier must not ignore it.
type CustomModifier struct {
	Required bool
	Type     Type
}

// Modified is a type carrying a custom modifier, e.g.
// int32 modopt(IsConst). It is transparent for every query except equality,
// hashing and naked-type stripping.
type Modified struct {
	modifier CustomModifier
	inner    Type
}

// NewModified attaches modifier to inner.
func NewModified(inner Type, modifier CustomModifier) *Modified {
	if inner == nil || modifier.Type == nil {
		panic(diagnostic.InvalidArgument("NewModified", "nil inner or modifier type"))
	}

	if !inner.Module().SameDomain(modifier.Type.Module()) {
		panic(diagnostic.DomainMismatch("NewModified", "modifier %s belongs to module %s", modifier.Type, modifier.Type.Module()))
	}

	return &Modified{modifier: modifier, inner: inner}
}

// NewRequiredModifier returns inner modreq(modifier).
func NewRequiredModifier(inner, modifier Type) *Modified {
	return NewModified(inner, CustomModifier{Required: true, Type: modifier})
}

// NewOptionalModifier returns inner modopt(modifier).
func NewOptionalModifier(inner, modifier Type) *Modified {
	return NewModified(inner, CustomModifier{Type: modifier})
}

func (*Modified) sealed() {}

func (t *Modified) Kind() TypeKind                 { return TypeKindModified }
func (t *Modified) Module() *Module                { return t.inner.Module() }
func (t *Modified) ElementType() Type              { return t.inner }
func (t *Modified) Modifier() CustomModifier       { return t.modifier }
func (t *Modified) IsRequired() bool               { return t.modifier.Required }
func (t *Modified) ContainsGenericArguments() bool { return t.inner.ContainsGenericArguments() }
func (t *Modified) Classification() Classification { return t.inner.Classification() }
func (t *Modified) Hash() uint64                   { return hashOf(t, options.NakedDefault) }
func (t *Modified) String() string                 { return ILReference(t) }

// MapGenericArguments substitutes inside the modified type only. The
// modifier type is a metadata tag and is kept as is.
func (t *Modified) MapGenericArguments(gm GenericMap) Type {
	if !t.ContainsGenericArguments() {
		return t
	}

	return &Modified{modifier: t.modifier, inner: t.inner.MapGenericArguments(gm)}
}

func (t *Modified) NakedType(opts options.NakedEnum) Type {
	flag := options.NakedIgnoreOptionalCustomModifiers
	if t.modifier.Required {
		flag = options.NakedIgnoreRequiredCustomModifiers
	}

	if opts.Has(flag) {
		return t.inner.NakedType(opts)
	}

	return t
}

func (t *Modified) ValueSize(p platform.Info) (int, error) {
	return t.inner.ValueSize(p)
}

func (t *Modified) IsAssignableTo(target Type, gm GenericMap, opts options.AssignEnum) bool {
	return isAssignable(t, target, gm, opts)
}

func (t *Modified) Translate(target *Module) (Type, error) {
	if t.Module() == target {
		return t, nil
	}

	if err := checkTranslation("Modified.Translate", t.Module(), target); err != nil {
		return nil, err
	}

	inner, err := t.inner.Translate(target)
	if err != nil {
		return nil, err
	}

	modType, err := t.modifier.Type.Translate(target)
	if err != nil {
		return nil, err
	}

	return &Modified{modifier: CustomModifier{Required: t.modifier.Required, Type: modType}, inner: inner}, nil
}
