package reflection

import (
	"github.com/hashicorp/go-set/v3"

	"clr-typesys/internal/common"
	"clr-typesys/internal/diagnostic"
	"clr-typesys/options"
	"clr-typesys/primitive"
	"clr-typesys/typesys"
)

// reflected are the layers reflection never shows.
const reflected = options.NakedIgnorePinned | options.NakedIgnoreCustomModifiers | options.NakedIgnoreBoxing

// Type is the reflection view of a type signature.
type Type struct {
	sig typesys.Type
}

// TypeOf returns the reflection view of t, or nil for nil.
func TypeOf(t typesys.Type) *Type {
	if t == nil {
		return nil
	}

	return &Type{sig: t.NakedType(reflected)}
}

func typesOf(ts []typesys.Type) []*Type { return common.Map(ts, TypeOf) }

// Signature returns the underlying type node.
func (t *Type) Signature() typesys.Type { return t.sig }

func (t *Type) Module() *typesys.Module { return t.sig.Module() }

// Declaration returns the declaration behind a named type or generic
// instance, or nil.
func (t *Type) Declaration() typesys.TypeDeclaration {
	switch x := t.sig.(type) {
	case *typesys.NamedType:
		return x.Declaration()
	case *typesys.GenericInstance:
		return x.Definition().Declaration()
	default:
		return nil
	}
}

// Name returns the simple name; generic instances report their
// definition's name, e.g. "List`1".
func (t *Type) Name() string {
	if gi, ok := t.sig.(*typesys.GenericInstance); ok {
		return typesys.ReflectionName(gi.Definition(), options.NameOmitNamespace)
	}

	return typesys.ReflectionName(t.sig, options.NameOmitNamespace)
}

// Namespace returns the namespace of the outermost named type, or "" for
// generic parameters.
func (t *Type) Namespace() string {
	for cur := t.sig; cur != nil; cur = cur.ElementType() {
		if decl := TypeOf(cur).Declaration(); decl != nil {
			outer := typesys.Definition(decl)
			for outer.DeclaringType() != nil {
				outer = outer.DeclaringType()
			}

			return outer.Namespace()
		}

		switch cur.(type) {
		case *typesys.Intrinsic, *typesys.MethodPointer:
			return primitive.SystemNamespace
		}
	}

	return ""
}

// FullName returns the namespace-qualified name with assembly-qualified
// generic arguments. It is empty for types that still contain generic
// parameters, except generic type definitions.
func (t *Type) FullName() string {
	if t.sig.ContainsGenericArguments() {
		return ""
	}

	return typesys.ReflectionName(t.sig, options.NameQualifyArguments)
}

// AssemblyQualifiedName is FullName followed by the defining module.
func (t *Type) AssemblyQualifiedName() string {
	if t.sig.ContainsGenericArguments() {
		return ""
	}

	return typesys.ReflectionName(t.sig, options.NameQualifyArguments|options.NameAssemblyQualified)
}

// String returns the name without argument scopes, e.g.
// "System.Collections.Generic.List`1[System.Int32]".
func (t *Type) String() string {
	return typesys.ReflectionName(t.sig, options.NameNone)
}

// Equals reports whether both views denote the same type.
func (t *Type) Equals(other *Type) bool {
	return other != nil && typesys.Equal(t.sig, other.sig)
}

func (t *Type) IsArray() bool {
	_, ok := t.sig.(*typesys.Array)
	return ok
}

// IsSZArray reports whether t is a single-dimension, zero-based vector.
func (t *Type) IsSZArray() bool {
	a, ok := t.sig.(*typesys.Array)
	return ok && a.IsVector()
}

func (t *Type) IsPointer() bool {
	p, ok := t.sig.(*typesys.Pointer)
	return ok && !p.IsManaged()
}

func (t *Type) IsByRef() bool {
	p, ok := t.sig.(*typesys.Pointer)
	return ok && p.IsManaged()
}

func (t *Type) IsFunctionPointer() bool {
	_, ok := t.sig.(*typesys.MethodPointer)
	return ok
}

// HasElementType reports whether t is an array, pointer or byref.
func (t *Type) HasElementType() bool {
	return t.IsArray() || t.IsPointer() || t.IsByRef()
}

// IsGenericType reports whether t is a generic definition or instance.
func (t *Type) IsGenericType() bool {
	return t.IsGenericTypeDefinition() || t.IsConstructedGenericType()
}

func (t *Type) IsGenericTypeDefinition() bool {
	n, ok := t.sig.(*typesys.NamedType)
	return ok && n.IsGenericDefinition()
}

func (t *Type) IsConstructedGenericType() bool {
	_, ok := t.sig.(*typesys.GenericInstance)
	return ok
}

// ContainsGenericParameters reports whether t still refers to an unbound
// generic parameter or is a generic definition.
func (t *Type) ContainsGenericParameters() bool {
	return t.sig.ContainsGenericArguments() || t.IsGenericTypeDefinition()
}

func (t *Type) IsGenericParameter() bool {
	_, ok := t.sig.(*typesys.GenericParameter)
	return ok
}

func (t *Type) IsGenericMethodParameter() bool {
	p, ok := t.sig.(*typesys.GenericParameter)
	return ok && p.ParameterKind() == typesys.GenericKindMethod
}

// GenericParameterPosition returns the ordinal of a generic parameter, or
// -1.
func (t *Type) GenericParameterPosition() int {
	if p, ok := t.sig.(*typesys.GenericParameter); ok {
		return p.Ordinal()
	}

	return -1
}

func (t *Type) IsValueType() bool { return typesys.IsValueType(t.sig) }

func (t *Type) IsInterface() bool {
	decl := t.Declaration()
	return decl != nil && decl.Kind() == typesys.DeclInterface
}

// IsClass reports whether t is a reference type other than an interface.
func (t *Type) IsClass() bool {
	return typesys.IsReferenceType(t.sig) && !t.IsInterface()
}

func (t *Type) IsEnum() bool { return typesys.IsEnum(t.sig) }

// IsPrimitive reports whether t is a numeric, boolean or character
// intrinsic, or the core library type standing for one.
func (t *Type) IsPrimitive() bool {
	switch k := intrinsicOf(t.sig); k {
	case 0, primitive.IntrinsicVoid, primitive.IntrinsicString, primitive.IntrinsicObject, primitive.IntrinsicTypedReference:
		return false
	default:
		return true
	}
}

// intrinsicOf returns the intrinsic t is or aliases, or zero.
func intrinsicOf(t typesys.Type) primitive.IntrinsicEnum {
	switch x := t.(type) {
	case *typesys.Intrinsic:
		return x.IntrinsicKind()
	case *typesys.NamedType:
		decl := typesys.Definition(x.Declaration())
		if decl.Module().IsCoreLibrary() && decl.DeclaringType() == nil {
			return primitive.FromReflectionName(typesys.FullName(decl))
		}
	}

	return 0
}

// ElementType returns the element of an array, pointer or byref, or nil.
func (t *Type) ElementType() *Type {
	if !t.HasElementType() {
		return nil
	}

	return TypeOf(t.sig.ElementType())
}

// ArrayRank returns the number of dimensions, or 0 for non-arrays.
func (t *Type) ArrayRank() int {
	if a, ok := t.sig.(*typesys.Array); ok {
		return a.Rank()
	}

	return 0
}

// GenericArguments returns the arguments of an instance, or the formal
// parameters of a definition.
func (t *Type) GenericArguments() []*Type {
	switch x := t.sig.(type) {
	case *typesys.GenericInstance:
		return typesOf(x.Arguments())
	case *typesys.NamedType:
		n := len(x.Declaration().GenericParameters())
		if n == 0 {
			return nil
		}

		return typesOf(typesys.IdentityMap(x.Module(), n, 0).TypeArguments())
	default:
		return nil
	}
}

// GenericTypeDefinition returns the definition of a generic type, or nil.
func (t *Type) GenericTypeDefinition() *Type {
	switch x := t.sig.(type) {
	case *typesys.GenericInstance:
		return TypeOf(x.Definition())
	case *typesys.NamedType:
		if x.IsGenericDefinition() {
			return t
		}
	}

	return nil
}

// DeclaringType returns the enclosing type of a nested type, or nil.
func (t *Type) DeclaringType() *Type {
	decl := t.Declaration()
	if decl == nil || decl.DeclaringType() == nil {
		return nil
	}

	return TypeOf(typesys.NewNamed(decl.DeclaringType()))
}

// declaringNode returns the named type or generic instance whose members
// t exposes: arrays expose System.Array and intrinsics their System type.
func (t *Type) declaringNode() typesys.Type {
	switch x := t.sig.(type) {
	case *typesys.NamedType, *typesys.GenericInstance:
		return x
	case *typesys.Array:
		if a := t.Module().SystemArray(); a != nil {
			return a
		}
	case *typesys.Intrinsic:
		if s := x.SystemType(); s != nil {
			return s
		}
	}

	return nil
}

// declarationOf returns the declaration behind node and the map closing its
// generic parameters. Generic definitions map their parameters to
// themselves.
func declarationOf(node typesys.Type) (typesys.TypeDeclaration, typesys.GenericMap, bool) {
	switch x := node.(type) {
	case *typesys.NamedType:
		decl := x.Declaration()
		if n := len(decl.GenericParameters()); n > 0 {
			return decl, typesys.IdentityMap(decl.Module(), n, 0), true
		}

		return decl, typesys.EmptyGenericMap, true
	case *typesys.GenericInstance:
		return x.Definition().Declaration(), x.GenericMap(), true
	default:
		return nil, typesys.GenericMap{}, false
	}
}

func resolve(t typesys.Type, gm typesys.GenericMap) typesys.Type {
	if t == nil || !t.ContainsGenericArguments() {
		return t
	}

	return t.MapGenericArguments(gm)
}

// BaseType returns the direct base type with generic arguments substituted,
// or nil for interfaces, System.Object, pointers and generic parameters.
func (t *Type) BaseType() *Type {
	if t.IsArray() {
		return TypeOf(t.declaringNode())
	}

	decl, gm, ok := declarationOf(t.declaringNode())
	if !ok || decl.BaseType() == nil {
		return nil
	}

	return TypeOf(resolve(decl.BaseType(), gm))
}

// IsSubclassOf reports whether other is a proper base type of t.
func (t *Type) IsSubclassOf(other *Type) bool {
	visited := set.New[typesys.TypeDeclaration](4)

	for base := t.BaseType(); base != nil; base = base.BaseType() {
		if base.Equals(other) {
			return true
		}

		if decl := base.Declaration(); decl == nil || !visited.Insert(typesys.Definition(decl)) {
			return false
		}
	}

	return false
}

// Interfaces returns every implemented interface with generic arguments
// substituted. Vectors also implement IList`1 of their element type.
func (t *Type) Interfaces() []*Type {
	var out []typesys.Type

	if decl, gm, ok := declarationOf(t.declaringNode()); ok {
		out = typesys.FlattenInterfaces(decl, gm)
	}

	if a, ok := t.sig.(*typesys.Array); ok && a.IsVector() {
		if list := t.Module().GenericListDefinition(); list != nil {
			inst := typesys.NewGenericInstance(list, a.ElementType())
			out = append(out, inst)
			out = append(out, typesys.FlattenInterfaces(list.Declaration(), inst.GenericMap())...)
		}
	}

	return typesOf(out)
}

// Interface returns the implemented interface with the given name or full
// name.
func (t *Type) Interface(name string, ignoreCase bool) (*Type, error) {
	var names []string

	for _, iface := range t.Interfaces() {
		if nameMatches(name, iface.Name(), ignoreCase) || nameMatches(name, iface.String(), ignoreCase) {
			return iface, nil
		}

		names = append(names, iface.Name())
	}

	return nil, notFound("Type.Interface", name, names)
}

// IsAssignableFrom reports whether a value of type c can be stored in a
// location of type t. Value types are boxed when t is not a value type.
func (t *Type) IsAssignableFrom(c *Type) bool {
	if c == nil {
		return false
	}

	src := c.sig
	if typesys.IsValueType(src) && !typesys.IsValueType(t.sig) {
		src = typesys.NewBoxed(src)
	}

	return typesys.IsAssignable(src, t.sig, typesys.EmptyGenericMap, options.AssignNone)
}

func (t *Type) MakeArrayType() *Type { return TypeOf(typesys.NewVector(t.sig)) }

// MakeArrayTypeOfRank returns a multi-dimensional array type without
// bounds.
func (t *Type) MakeArrayTypeOfRank(rank int) (*Type, error) {
	if rank < 1 {
		return nil, diagnostic.OutOfRange("Type.MakeArrayTypeOfRank", "rank %d", rank)
	}

	return TypeOf(typesys.NewArrayOfRank(t.sig, rank)), nil
}

func (t *Type) MakePointerType() *Type { return TypeOf(typesys.NewPointer(t.sig)) }
func (t *Type) MakeByRefType() *Type   { return TypeOf(typesys.NewByRef(t.sig)) }

// MakeGenericType instantiates a generic type definition.
func (t *Type) MakeGenericType(args ...*Type) (inst *Type, err error) {
	const op = "Type.MakeGenericType"

	def, ok := t.sig.(*typesys.NamedType)
	if !ok || !def.IsGenericDefinition() {
		return nil, diagnostic.InvalidOperation(op, "%s is not a generic type definition", t)
	}

	if n := len(def.Declaration().GenericParameters()); n != len(args) {
		return nil, diagnostic.InvalidArgument(op, "%s takes %d type arguments, got %d", t, n, len(args))
	}

	sigs := make([]typesys.Type, len(args))
	for i, a := range args {
		if a == nil {
			return nil, diagnostic.InvalidArgument(op, "nil type argument %d", i)
		}

		sigs[i] = a.sig
	}

	defer diagnostic.Recover(&err)

	return TypeOf(typesys.NewGenericInstance(def, sigs...)), nil
}
