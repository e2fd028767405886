package typesys

import (
	"clr-typesys/internal/diagnostic"
	"clr-typesys/options"
	"clr-typesys/platform"
)

// NamedType is a lightweight node over a type declaration owned elsewhere.
type NamedType struct {
	decl TypeDeclaration
}

// NewNamed wraps decl. It panics on nil.
func NewNamed(decl TypeDeclaration) *NamedType {
	if decl == nil {
		panic(diagnostic.InvalidArgument("NewNamed", "nil declaration"))
	}

	return &NamedType{decl: decl}
}

func (*NamedType) sealed() {}

func (t *NamedType) Kind() TypeKind                      { return TypeKindNamed }
func (t *NamedType) Module() *Module                     { return t.decl.Module() }
func (t *NamedType) ElementType() Type                   { return nil }
func (t *NamedType) Declaration() TypeDeclaration        { return t.decl }
func (t *NamedType) Name() string                        { return t.decl.Name() }
func (t *NamedType) Namespace() string                   { return t.decl.Namespace() }
func (t *NamedType) FullName() string                    { return FullName(t.decl) }
func (t *NamedType) ContainsGenericArguments() bool      { return false }
func (t *NamedType) MapGenericArguments(GenericMap) Type { return t }
func (t *NamedType) NakedType(options.NakedEnum) Type    { return t }
func (t *NamedType) Hash() uint64                        { return hashOf(t, options.NakedDefault) }
func (t *NamedType) String() string                      { return ILReference(t) }

func (t *NamedType) IsInterface() bool { return t.decl.Kind() == DeclInterface }
func (t *NamedType) IsEnum() bool      { return t.decl.Kind() == DeclEnum }

// IsGenericDefinition reports whether the declaration has type parameters.
func (t *NamedType) IsGenericDefinition() bool {
	return IsGenericDefinition(t.decl)
}

func (t *NamedType) Classification() Classification {
	if t.decl.Kind().IsValueType() {
		return ClassValue
	}

	return ClassReference
}

func (t *NamedType) ValueSize(p platform.Info) (int, error) {
	if t.Classification() != ClassValue {
		return p.PointerSize, nil
	}

	if u := t.decl.EnumUnderlyingType(); u != nil {
		return u.ValueSize(p)
	}

	return t.decl.ValueSize(p, EmptyGenericMap)
}

func (t *NamedType) IsAssignableTo(target Type, gm GenericMap, opts options.AssignEnum) bool {
	return isAssignable(t, target, gm, opts)
}

func (t *NamedType) Translate(target *Module) (Type, error) {
	if t.Module() == target {
		return t, nil
	}

	if err := checkTranslation("NamedType.Translate", t.Module(), target); err != nil {
		return nil, err
	}

	return &NamedType{decl: target.importDeclaration(t.decl)}, nil
}
