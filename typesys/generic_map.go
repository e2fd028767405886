package typesys

import (
	"slices"

	"clr-typesys/internal/diagnostic"
	"clr-typesys/utils"
)

// GenericMap substitutes generic parameters by (kind, ordinal). Type-level
// and method-level arguments are kept apart and never resolve each other.
// The zero value is the empty map.
type GenericMap struct {
	typeArgs   []Type
	methodArgs []Type
}

// EmptyGenericMap maps nothing.
var EmptyGenericMap = GenericMap{}

// NewGenericMap builds a map from type-level and method-level arguments.
// It panics on a nil argument.
func NewGenericMap(typeArgs, methodArgs []Type) GenericMap {
	for i, a := range typeArgs {
		if a == nil {
			panic(diagnostic.InvalidArgument("NewGenericMap", "nil type argument %d", i))
		}
	}

	for i, a := range methodArgs {
		if a == nil {
			panic(diagnostic.InvalidArgument("NewGenericMap", "nil method argument %d", i))
		}
	}

	return GenericMap{
		typeArgs:   slices.Clip(typeArgs),
		methodArgs: slices.Clip(methodArgs),
	}
}

// IdentityMap maps the first typeCount type parameters and methodCount method
// parameters of m onto themselves.
func IdentityMap(m *Module, typeCount, methodCount int) GenericMap {
	gm := GenericMap{}

	for i := range typeCount {
		gm.typeArgs = append(gm.typeArgs, NewGenericParameter(m, GenericKindType, i))
	}

	for i := range methodCount {
		gm.methodArgs = append(gm.methodArgs, NewGenericParameter(m, GenericKindMethod, i))
	}

	return gm
}

func (gm GenericMap) args(kind GenericKind) []Type {
	if kind == GenericKindMethod {
		return gm.methodArgs
	}

	return gm.typeArgs
}

// Parameter returns the argument for (kind, ordinal). An ordinal outside the
// map is an ErrOutOfRange error, never a default.
func (gm GenericMap) Parameter(kind GenericKind, ordinal int) (Type, error) {
	args := gm.args(kind)
	if !utils.IsIndex(ordinal, len(args)) {
		return nil, diagnostic.OutOfRange("GenericMap.Parameter",
			"%s parameter %s%d, map has %d", kind, kind.ILPrefix(), ordinal, len(args))
	}

	return args[ordinal], nil
}

// MustParameter is Parameter that panics when out of range.
func (gm GenericMap) MustParameter(kind GenericKind, ordinal int) Type {
	t, err := gm.Parameter(kind, ordinal)
	if err != nil {
		panic(err)
	}

	return t
}

// Covers reports whether (kind, ordinal) is inside the map.
func (gm GenericMap) Covers(kind GenericKind, ordinal int) bool {
	return utils.IsIndex(ordinal, len(gm.args(kind)))
}

func (gm GenericMap) TypeArguments() []Type   { return slices.Clone(gm.typeArgs) }
func (gm GenericMap) MethodArguments() []Type { return slices.Clone(gm.methodArgs) }

// Count returns the number of arguments of kind.
func (gm GenericMap) Count(kind GenericKind) int { return len(gm.args(kind)) }

func (gm GenericMap) IsEmpty() bool {
	return len(gm.typeArgs) == 0 && len(gm.methodArgs) == 0
}

// WithTypeArguments replaces the type-level arguments, keeping method-level ones.
func (gm GenericMap) WithTypeArguments(args []Type) GenericMap {
	return NewGenericMap(args, gm.methodArgs)
}

// WithMethodArguments replaces the method-level arguments, keeping type-level ones.
func (gm GenericMap) WithMethodArguments(args []Type) GenericMap {
	return NewGenericMap(gm.typeArgs, args)
}

// Apply substitutes every argument of gm through outer. Ordinals and kinds
// are preserved: gm's type arguments stay type arguments.
func (gm GenericMap) Apply(outer GenericMap) GenericMap {
	mapAll := func(args []Type) []Type {
		out := make([]Type, len(args))
		for i, a := range args {
			out[i] = a.MapGenericArguments(outer)
		}

		return out
	}

	return GenericMap{
		typeArgs:   mapAll(gm.typeArgs),
		methodArgs: mapAll(gm.methodArgs),
	}
}

// ContainsGenericArguments reports whether any argument is open.
func (gm GenericMap) ContainsGenericArguments() bool {
	for _, a := range gm.typeArgs {
		if a.ContainsGenericArguments() {
			return true
		}
	}

	for _, a := range gm.methodArgs {
		if a.ContainsGenericArguments() {
			return true
		}
	}

	return false
}

// Translate moves every argument into target.
func (gm GenericMap) Translate(target *Module) (GenericMap, error) {
	typeArgs, err := translateAll(gm.typeArgs, target)
	if err != nil {
		return GenericMap{}, err
	}

	methodArgs, err := translateAll(gm.methodArgs, target)
	if err != nil {
		return GenericMap{}, err
	}

	return GenericMap{typeArgs: typeArgs, methodArgs: methodArgs}, nil
}

// String renders the map as "<T0, T1><M0>".
func (gm GenericMap) String() string {
	return "<" + joinTypes(gm.typeArgs, ILReference) + "><" + joinTypes(gm.methodArgs, ILReference) + ">"
}
