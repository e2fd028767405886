package metadata

import (
	"clr-typesys/collections"
	"clr-typesys/internal/common"
	"clr-typesys/typesys"
)

// ConstructorName and StaticConstructorName are the reserved method names
// of instance and type initializers.
const (
	ConstructorName       = ".ctor"
	StaticConstructorName = ".cctor"
)

// Param is a method parameter. The return parameter has ordinal -1.
type Param struct {
	name      string
	ordinal   int
	paramType typesys.Type
	in        bool
	out       bool
	optional  bool
}

func (p *Param) Name() string                { return p.name }
func (p *Param) Ordinal() int                { return p.ordinal }
func (p *Param) ParameterType() typesys.Type { return p.paramType }
func (p *Param) IsIn() bool                  { return p.in }
func (p *Param) IsOut() bool                 { return p.out }
func (p *Param) IsOptional() bool            { return p.optional }

// SetFlags sets the [in], [out] and [opt] markers.
func (p *Param) SetFlags(in, out, optional bool) *Param {
	p.in, p.out, p.optional = in, out, optional
	return p
}

// Method is a method declaration. Its signature's HasThis follows IsStatic.
type Method struct {
	member

	signature typesys.MethodSignature
	params    []*Param
	ret       *Param
	generic   *collections.AppendingSortedList[int, *GenericParam]
	virtual   bool
	abstract  bool
}

func (m *Method) Signature() typesys.MethodSignature {
	sig := m.signature
	sig.HasThis = !m.static
	sig.GenericParameterCount = m.generic.Len()

	return sig
}

func (m *Method) Parameters() []typesys.ParameterDeclaration {
	return common.Map(m.params, func(p *Param) typesys.ParameterDeclaration { return p })
}

// Params returns the parameters with their concrete type.
func (m *Method) Params() []*Param { return append([]*Param(nil), m.params...) }

func (m *Method) ReturnParameter() typesys.ParameterDeclaration { return m.ret }

func (m *Method) GenericParameters() []typesys.GenericParameterDeclaration {
	return common.Map(m.generic.Values(), func(g *GenericParam) typesys.GenericParameterDeclaration { return g })
}

func (m *Method) IsConstructor() bool {
	return m.name == ConstructorName || m.name == StaticConstructorName
}

func (m *Method) IsVirtual() bool  { return m.virtual }
func (m *Method) IsAbstract() bool { return m.abstract }

// SetVirtual sets the virtual and abstract flags; abstract implies virtual.
func (m *Method) SetVirtual(virtual, abstract bool) *Method {
	m.virtual, m.abstract = virtual || abstract, abstract
	return m
}

// AddGenericParameter declares the next method-level generic parameter.
func (m *Method) AddGenericParameter(name string) *GenericParam {
	g := &GenericParam{name: name, ordinal: m.generic.Len(), kind: typesys.GenericKindMethod}
	m.generic.Add(g.ordinal, g)

	return g
}

// GenericParameter returns the parameter with the given ordinal.
func (m *Method) GenericParameter(ordinal int) (*GenericParam, bool) {
	return m.generic.Get(ordinal)
}

// Rename changes the method name and reindexes it in its declaring type.
func (m *Method) Rename(name string) error {
	old := m.name
	m.name = name

	if err := m.declaring.methods.NotifyKeyChanged(m, old); err != nil {
		m.name = old
		return err
	}

	return nil
}
