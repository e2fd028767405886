package typesys

import (
	"strings"

	"clr-typesys/platform"
	"clr-typesys/utils"
)

// Variance of a generic type parameter.
type Variance int

const (
	VarianceNone Variance = iota
	VarianceCovariant
	VarianceContravariant
)

// String returns the IL keyword of the variance ("+", "-" or "").
func (v Variance) String() string {
	switch v {
	case VarianceCovariant:
		return "+"
	case VarianceContravariant:
		return "-"
	default:
		return ""
	}
}

// TypeDeclaration is a named type owned by a module. Implementations live
// outside this package (see package metadata); the algebra only reads them.
type TypeDeclaration interface {
	Module() *Module
	Name() string
	Namespace() string
	// DeclaringType is the enclosing type of a nested type, or nil.
	DeclaringType() TypeDeclaration
	Kind() DeclarationKind
	Visibility() Visibility
	Token() uint32

	// BaseType is nil for interfaces and for System.Object.
	BaseType() Type
	// Interfaces lists the directly implemented interfaces.
	Interfaces() []Type
	// EnumUnderlyingType is the underlying intrinsic of an enum, nil otherwise.
	EnumUnderlyingType() Type
	GenericParameters() []GenericParameterDeclaration

	// ValueSize is the layout size of a value-type instance. gm closes the
	// type's own generic parameters.
	ValueSize(p platform.Info, gm GenericMap) (int, error)

	Fields() []FieldDeclaration
	Methods() []MethodDeclaration
	Properties() []PropertyDeclaration
	Events() []EventDeclaration
	NestedTypes() []TypeDeclaration
}

// GenericParameterDeclaration describes one formal generic parameter.
type GenericParameterDeclaration interface {
	Name() string
	Ordinal() int
	Kind() GenericKind
	Variance() Variance
	Constraints() []Type
	HasReferenceTypeConstraint() bool
	HasValueTypeConstraint() bool
	HasDefaultConstructorConstraint() bool
}

// MemberDeclaration is the part shared by fields, methods, properties and events.
type MemberDeclaration interface {
	Name() string
	DeclaringType() TypeDeclaration
	Visibility() Visibility
	IsStatic() bool
	Token() uint32
}

type FieldDeclaration interface {
	MemberDeclaration
	FieldType() Type
	IsLiteral() bool
	IsInitOnly() bool
}

type ParameterDeclaration interface {
	Name() string
	// Ordinal is zero-based; the return parameter has ordinal -1.
	Ordinal() int
	ParameterType() Type
	IsIn() bool
	IsOut() bool
	IsOptional() bool
}

type MethodDeclaration interface {
	MemberDeclaration
	Signature() MethodSignature
	Parameters() []ParameterDeclaration
	ReturnParameter() ParameterDeclaration
	GenericParameters() []GenericParameterDeclaration
	IsConstructor() bool
	IsVirtual() bool
	IsAbstract() bool
}

type PropertyDeclaration interface {
	MemberDeclaration
	PropertyType() Type
	Getter() MethodDeclaration
	Setter() MethodDeclaration
}

type EventDeclaration interface {
	MemberDeclaration
	EventType() Type
	Adder() MethodDeclaration
	Remover() MethodDeclaration
}

// FullName returns the namespace-qualified name of decl, nested types
// separated from their enclosing type by '/'.
func FullName(decl TypeDeclaration) string {
	nesting := nestingOf(decl)

	var b strings.Builder

	if ns := nesting[0].Namespace(); ns != "" {
		b.WriteString(ns)
		b.WriteByte('.')
	}

	for i, d := range nesting {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(d.Name())
	}

	return b.String()
}

// nestingOf lists decl and its enclosing types, outermost first.
func nestingOf(decl TypeDeclaration) []TypeDeclaration {
	var chain []TypeDeclaration
	for d := decl; d != nil; d = d.DeclaringType() {
		chain = append(chain, d)
	}

	return utils.Reversed(chain)
}

// IsGenericDefinition reports whether decl declares type parameters.
func IsGenericDefinition(decl TypeDeclaration) bool {
	return len(decl.GenericParameters()) > 0
}

// IsSystemType reports whether decl is System.<name> at the top level.
func IsSystemType(decl TypeDeclaration, name string) bool {
	return decl.DeclaringType() == nil && decl.Namespace() == "System" && decl.Name() == name
}
