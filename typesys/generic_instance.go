package typesys

import (
	"slices"

	"clr-typesys/internal/common"
	"clr-typesys/internal/diagnostic"
	"clr-typesys/options"
	"clr-typesys/platform"
)

// GenericInstance is a generic type definition closed over type arguments,
// e.g. List`1<int32>.
type GenericInstance struct {
	definition *NamedType
	args       []Type
}

// NewGenericInstance instantiates definition with args. It panics when the
// definition is not generic or the argument count differs from its arity.
func NewGenericInstance(definition *NamedType, args ...Type) *GenericInstance {
	const op = "NewGenericInstance"

	if definition == nil {
		panic(diagnostic.InvalidArgument(op, "nil definition"))
	}

	arity := len(definition.decl.GenericParameters())
	if arity == 0 {
		panic(diagnostic.InvalidArgument(op, "%s is not a generic type definition", definition.FullName()))
	}

	if len(args) != arity {
		panic(diagnostic.InvalidArgument(op, "%s takes %d arguments, got %d", definition.FullName(), arity, len(args)))
	}

	for i, a := range args {
		if a == nil {
			panic(diagnostic.InvalidArgument(op, "nil argument %d", i))
		}

		if !a.Module().SameDomain(definition.Module()) {
			panic(diagnostic.DomainMismatch(op, "argument %d belongs to module %s", i, a.Module()))
		}
	}

	return &GenericInstance{definition: definition, args: slices.Clone(args)}
}

func (*GenericInstance) sealed() {}

func (t *GenericInstance) Kind() TypeKind                   { return TypeKindGenericInstance }
func (t *GenericInstance) Module() *Module                  { return t.definition.Module() }
func (t *GenericInstance) ElementType() Type                { return nil }
func (t *GenericInstance) Definition() *NamedType           { return t.definition }
func (t *GenericInstance) Arguments() []Type                { return slices.Clone(t.args) }
func (t *GenericInstance) NakedType(options.NakedEnum) Type { return t }
func (t *GenericInstance) Classification() Classification   { return t.definition.Classification() }
func (t *GenericInstance) Hash() uint64                     { return hashOf(t, options.NakedDefault) }
func (t *GenericInstance) String() string                   { return ILReference(t) }

// GenericMap returns the map binding the definition's parameters to the
// instance's arguments.
func (t *GenericInstance) GenericMap() GenericMap {
	return GenericMap{typeArgs: t.args}
}

func (t *GenericInstance) ContainsGenericArguments() bool {
	return slices.ContainsFunc(t.args, Type.ContainsGenericArguments)
}

func (t *GenericInstance) MapGenericArguments(gm GenericMap) Type {
	args, changed := common.MapSame(t.args, func(a Type) Type { return a.MapGenericArguments(gm) })
	if !changed {
		return t
	}

	return &GenericInstance{definition: t.definition, args: args}
}

func (t *GenericInstance) ValueSize(p platform.Info) (int, error) {
	if t.Classification() != ClassValue {
		return p.PointerSize, nil
	}

	return t.definition.decl.ValueSize(p, t.GenericMap())
}

func (t *GenericInstance) IsAssignableTo(target Type, gm GenericMap, opts options.AssignEnum) bool {
	return isAssignable(t, target, gm, opts)
}

func (t *GenericInstance) Translate(target *Module) (Type, error) {
	if t.Module() == target {
		return t, nil
	}

	if err := checkTranslation("GenericInstance.Translate", t.Module(), target); err != nil {
		return nil, err
	}

	def, err := t.definition.Translate(target)
	if err != nil {
		return nil, err
	}

	args, err := translateAll(t.args, target)
	if err != nil {
		return nil, err
	}

	return &GenericInstance{definition: def.(*NamedType), args: args}, nil
}
