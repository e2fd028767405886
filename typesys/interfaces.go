package typesys

import (
	"slices"

	"github.com/hashicorp/go-set/v3"
)

// dealer hands out types in the order they were first needed, each once.
// The hash set is a fast path only; a hash already present is confirmed
// with Equal against everything dealt so far.
type dealer struct {
	needs []Type
	dealt []Type
	done  *set.HashSet[Type, uint64]
}

func newDealer() *dealer {
	return &dealer{done: set.NewHashSet[Type, uint64](8)}
}

func (d *dealer) Needs(t Type) {
	if !d.done.Insert(t) && slices.ContainsFunc(d.dealt, func(x Type) bool { return Equal(x, t) }) {
		return
	}

	d.dealt = append(d.dealt, t)
	d.needs = append(d.needs, t)
}

func (d *dealer) NextNeeds() (Type, bool) {
	if len(d.needs) == 0 {
		return nil, false
	}

	t := d.needs[0]
	d.needs = d.needs[1:]

	return t, true
}

// declarationOf returns the declaration behind a named type or generic
// instance together with the map binding its parameters.
func declarationOf(t Type, gm GenericMap) (TypeDeclaration, GenericMap, bool) {
	switch x := t.(type) {
	case *NamedType:
		return x.decl, declarationMap(x.decl, gm), true
	case *GenericInstance:
		return x.definition.decl, gm.WithTypeArguments(x.args), true
	default:
		return nil, GenericMap{}, false
	}
}

// FlattenInterfaces returns every interface decl implements, directly, through
// other interfaces or through base types, in discovery order and without
// duplicates. gm closes decl's own generic parameters; an empty map leaves
// them open.
func FlattenInterfaces(decl TypeDeclaration, gm GenericMap) []Type {
	if decl == nil {
		return nil
	}

	if gm.Count(GenericKindType) == 0 {
		gm = declarationMap(decl, gm)
	}

	var out []Type

	d := newDealer()
	visited := set.New[TypeDeclaration](4)

	for cur, curMap := decl, gm; cur != nil && visited.Insert(Definition(cur)); {
		for _, iface := range cur.Interfaces() {
			d.Needs(iface.MapGenericArguments(curMap))
		}

		base := cur.BaseType()
		if base == nil {
			break
		}

		next, nextMap, ok := declarationOf(base.MapGenericArguments(curMap), curMap)
		if !ok {
			break
		}

		cur, curMap = next, nextMap
	}

	for iface, ok := d.NextNeeds(); ok; iface, ok = d.NextNeeds() {
		out = append(out, iface)

		inner, innerMap, ok := declarationOf(iface, EmptyGenericMap)
		if !ok {
			continue
		}

		for _, super := range inner.Interfaces() {
			d.Needs(super.MapGenericArguments(innerMap))
		}
	}

	return out
}

// Implements reports whether decl implements iface after flattening.
func Implements(decl TypeDeclaration, gm GenericMap, iface Type) bool {
	for _, t := range FlattenInterfaces(decl, gm) {
		if Equal(t, iface) {
			return true
		}
	}

	return false
}
