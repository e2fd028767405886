package metadata

import (
	"slices"

	"clr-typesys/typesys"
)

// GenericParam is a formal generic parameter of a type or a method.
type GenericParam struct {
	name     string
	ordinal  int
	kind     typesys.GenericKind
	variance typesys.Variance

	constraints   []typesys.Type
	referenceType bool
	valueType     bool
	defaultCtor   bool
}

func (g *GenericParam) Name() string                          { return g.name }
func (g *GenericParam) Ordinal() int                          { return g.ordinal }
func (g *GenericParam) Kind() typesys.GenericKind             { return g.kind }
func (g *GenericParam) Variance() typesys.Variance            { return g.variance }
func (g *GenericParam) Constraints() []typesys.Type           { return slices.Clone(g.constraints) }
func (g *GenericParam) HasReferenceTypeConstraint() bool      { return g.referenceType }
func (g *GenericParam) HasValueTypeConstraint() bool          { return g.valueType }
func (g *GenericParam) HasDefaultConstructorConstraint() bool { return g.defaultCtor }

func (g *GenericParam) SetVariance(v typesys.Variance) *GenericParam {
	g.variance = v
	return g
}

// AddConstraint requires arguments to be assignable to t.
func (g *GenericParam) AddConstraint(t typesys.Type) *GenericParam {
	g.constraints = append(g.constraints, t)
	return g
}

// SetSpecialConstraints sets the class, struct and new() constraints.
func (g *GenericParam) SetSpecialConstraints(referenceType, valueType, defaultCtor bool) *GenericParam {
	g.referenceType, g.valueType, g.defaultCtor = referenceType, valueType, defaultCtor
	return g
}
