package reflection

import (
	"clr-typesys/internal/common"
	"clr-typesys/internal/diagnostic"
	"clr-typesys/typesys"
)

// MemberKind tells which wrapper a MemberInfo is.
type MemberKind int

const (
	MemberField MemberKind = iota + 1
	MemberMethod
	MemberConstructor
	MemberProperty
	MemberEvent
)

func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberMethod:
		return "method"
	case MemberConstructor:
		return "constructor"
	case MemberProperty:
		return "property"
	case MemberEvent:
		return "event"
	default:
		return common.UnknownStr
	}
}

// MemberInfo is the part every member wrapper shares.
type MemberInfo interface {
	Name() string
	MemberKind() MemberKind
	DeclaringType() *Type
	ReflectedType() *Type
	Visibility() typesys.Visibility
	IsStatic() bool
}

// member holds the declaring view shared by all wrappers. declaring is the
// type that declares the member with generic arguments substituted,
// reflected the type the query started from.
type member struct {
	decl      typesys.MemberDeclaration
	declaring *Type
	reflected *Type
	gm        typesys.GenericMap
}

func (m *member) Name() string                   { return m.decl.Name() }
func (m *member) DeclaringType() *Type           { return m.declaring }
func (m *member) ReflectedType() *Type           { return m.reflected }
func (m *member) Visibility() typesys.Visibility { return m.decl.Visibility() }
func (m *member) IsStatic() bool                 { return m.decl.IsStatic() }
func (m *member) IsPublic() bool                 { return m.decl.Visibility() == typesys.VisibilityPublic }
func (m *member) IsPrivate() bool                { return m.decl.Visibility() == typesys.VisibilityPrivate }
func (m *member) IsFamily() bool                 { return m.decl.Visibility() == typesys.VisibilityFamily }
func (m *member) IsAssembly() bool               { return m.decl.Visibility() == typesys.VisibilityAssembly }

func (m *member) resolve(t typesys.Type) *Type { return TypeOf(resolve(t, m.gm)) }

// FieldInfo describes a field.
type FieldInfo struct {
	member
	field typesys.FieldDeclaration
}

func (f *FieldInfo) MemberKind() MemberKind                { return MemberField }
func (f *FieldInfo) Declaration() typesys.FieldDeclaration { return f.field }
func (f *FieldInfo) FieldType() *Type                      { return f.resolve(f.field.FieldType()) }
func (f *FieldInfo) IsLiteral() bool                       { return f.field.IsLiteral() }
func (f *FieldInfo) IsInitOnly() bool                      { return f.field.IsInitOnly() }

// ParameterInfo describes a method parameter or return value.
type ParameterInfo struct {
	param typesys.ParameterDeclaration
	gm    typesys.GenericMap
}

func (p *ParameterInfo) Name() string { return p.param.Name() }

// Position is the zero-based ordinal; the return value is at -1.
func (p *ParameterInfo) Position() int        { return p.param.Ordinal() }
func (p *ParameterInfo) ParameterType() *Type { return TypeOf(resolve(p.param.ParameterType(), p.gm)) }
func (p *ParameterInfo) IsIn() bool           { return p.param.IsIn() }
func (p *ParameterInfo) IsOut() bool          { return p.param.IsOut() }
func (p *ParameterInfo) IsOptional() bool     { return p.param.IsOptional() }

// MethodBase is the part of methods and constructors that describes a
// callable.
type MethodBase struct {
	member
	method typesys.MethodDeclaration
}

func newMethodBase(decl typesys.MethodDeclaration, declaring, reflected *Type, gm typesys.GenericMap) MethodBase {
	if n := len(decl.GenericParameters()); n > 0 && gm.Count(typesys.GenericKindMethod) != n {
		owner := decl.DeclaringType().Module()
		gm = gm.WithMethodArguments(typesys.IdentityMap(owner, 0, n).MethodArguments())
	}

	return MethodBase{
		member: member{decl: decl, declaring: declaring, reflected: reflected, gm: gm},
		method: decl,
	}
}

func (m *MethodBase) Declaration() typesys.MethodDeclaration { return m.method }
func (m *MethodBase) IsVirtual() bool                        { return m.method.IsVirtual() }
func (m *MethodBase) IsAbstract() bool                       { return m.method.IsAbstract() }

// Signature returns the method signature with generic arguments
// substituted.
func (m *MethodBase) Signature() typesys.MethodSignature {
	sig := m.method.Signature()
	if sig.ContainsGenericArguments() {
		sig, _ = sig.MapGenericArguments(m.gm)
	}

	return sig
}

func (m *MethodBase) Parameters() []*ParameterInfo {
	return common.Map(m.method.Parameters(), func(p typesys.ParameterDeclaration) *ParameterInfo {
		return &ParameterInfo{param: p, gm: m.gm}
	})
}

// parameterTypesMatch reports whether the parameter types equal types.
func (m *MethodBase) parameterTypesMatch(types []*Type) bool {
	params := m.Signature().Parameters
	if len(params) != len(types) {
		return false
	}

	for i, p := range params {
		if !TypeOf(p).Equals(types[i]) {
			return false
		}
	}

	return true
}

// MethodInfo describes a method other than a constructor.
type MethodInfo struct {
	MethodBase
}

func (m *MethodInfo) MemberKind() MemberKind { return MemberMethod }

func (m *MethodInfo) ReturnType() *Type { return m.resolve(m.method.Signature().ReturnType) }

func (m *MethodInfo) ReturnParameter() *ParameterInfo {
	return &ParameterInfo{param: m.method.ReturnParameter(), gm: m.gm}
}

// IsGenericMethodDefinition reports whether the method declares generic
// parameters that are not yet bound.
func (m *MethodInfo) IsGenericMethodDefinition() bool {
	n := len(m.method.GenericParameters())
	if n == 0 {
		return false
	}

	for i, arg := range m.gm.MethodArguments() {
		p, ok := arg.(*typesys.GenericParameter)
		if !ok || p.ParameterKind() != typesys.GenericKindMethod || p.Ordinal() != i {
			return false
		}
	}

	return true
}

// GenericArguments returns the bound method arguments, or the formal
// parameters of a generic method definition.
func (m *MethodInfo) GenericArguments() []*Type {
	if len(m.method.GenericParameters()) == 0 {
		return nil
	}

	return typesOf(m.gm.MethodArguments())
}

// MakeGenericMethod binds the method's generic parameters.
func (m *MethodInfo) MakeGenericMethod(args ...*Type) (*MethodInfo, error) {
	const op = "MethodInfo.MakeGenericMethod"

	if !m.IsGenericMethodDefinition() {
		return nil, diagnostic.InvalidOperation(op, "%s is not a generic method definition", m.Name())
	}

	if n := len(m.method.GenericParameters()); n != len(args) {
		return nil, diagnostic.InvalidArgument(op, "%s takes %d type arguments, got %d", m.Name(), n, len(args))
	}

	sigs := make([]typesys.Type, len(args))
	for i, a := range args {
		if a == nil {
			return nil, diagnostic.InvalidArgument(op, "nil type argument %d", i)
		}

		sigs[i] = a.sig
	}

	bound := *m
	bound.gm = m.gm.WithMethodArguments(sigs)

	return &bound, nil
}

// ConstructorInfo describes an instance or static constructor.
type ConstructorInfo struct {
	MethodBase
}

func (c *ConstructorInfo) MemberKind() MemberKind { return MemberConstructor }

// PropertyInfo describes a property.
type PropertyInfo struct {
	member
	property typesys.PropertyDeclaration
}

func (p *PropertyInfo) MemberKind() MemberKind                   { return MemberProperty }
func (p *PropertyInfo) Declaration() typesys.PropertyDeclaration { return p.property }
func (p *PropertyInfo) PropertyType() *Type                      { return p.resolve(p.property.PropertyType()) }
func (p *PropertyInfo) CanRead() bool                            { return p.property.Getter() != nil }
func (p *PropertyInfo) CanWrite() bool                           { return p.property.Setter() != nil }
func (p *PropertyInfo) GetMethod() *MethodInfo                   { return p.accessor(p.property.Getter()) }
func (p *PropertyInfo) SetMethod() *MethodInfo                   { return p.accessor(p.property.Setter()) }

func (m *member) accessor(decl typesys.MethodDeclaration) *MethodInfo {
	if decl == nil {
		return nil
	}

	return &MethodInfo{newMethodBase(decl, m.declaring, m.reflected, m.gm)}
}

// EventInfo describes an event.
type EventInfo struct {
	member
	event typesys.EventDeclaration
}

func (e *EventInfo) MemberKind() MemberKind                { return MemberEvent }
func (e *EventInfo) Declaration() typesys.EventDeclaration { return e.event }
func (e *EventInfo) EventHandlerType() *Type               { return e.resolve(e.event.EventType()) }
func (e *EventInfo) AddMethod() *MethodInfo                { return e.accessor(e.event.Adder()) }
func (e *EventInfo) RemoveMethod() *MethodInfo             { return e.accessor(e.event.Remover()) }

var (
	_ MemberInfo = (*FieldInfo)(nil)
	_ MemberInfo = (*MethodInfo)(nil)
	_ MemberInfo = (*ConstructorInfo)(nil)
	_ MemberInfo = (*PropertyInfo)(nil)
	_ MemberInfo = (*EventInfo)(nil)
)
