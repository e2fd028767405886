package typesys

import (
	"slices"
	"sync"

	"clr-typesys/collections"
	"clr-typesys/internal/diagnostic"
	"clr-typesys/internal/match"
	"clr-typesys/options"
	"clr-typesys/primitive"
)

const maxSuggestions = 3

// Module owns type declarations and the per-module intrinsic instances.
type Module struct {
	domain *Domain
	index  int
	name   string

	intrinsics [primitive.IntrinsicTotal]*Intrinsic

	types *collections.Index[string, TypeDeclaration]

	mu       sync.Mutex // guards imported
	imported map[TypeDeclaration]*typeReference
}

func newModule(d *Domain, index int, name string) *Module {
	m := &Module{
		domain:   d,
		index:    index,
		name:     name,
		types:    collections.NewIndex(FullName),
		imported: make(map[TypeDeclaration]*typeReference),
	}

	for k := primitive.IntrinsicVoid; int(k) < primitive.IntrinsicTotal; k++ {
		m.intrinsics[k] = &Intrinsic{module: m, kind: k}
	}

	return m
}

func (m *Module) Domain() *Domain { return m.domain }
func (m *Module) Index() int      { return m.index }
func (m *Module) Name() string    { return m.name }
func (m *Module) String() string  { return m.name }

// IsCoreLibrary reports whether m is its domain's core library.
func (m *Module) IsCoreLibrary() bool {
	return m.domain.CoreLibrary() == m
}

// SameDomain reports whether m and other belong to one domain.
func (m *Module) SameDomain(other *Module) bool {
	return other != nil && m.domain == other.domain
}

// Intrinsic returns the module's instance of kind. It panics on an invalid kind.
func (m *Module) Intrinsic(kind primitive.IntrinsicEnum) *Intrinsic {
	if !kind.IsValid() {
		panic(diagnostic.InvalidArgument("Module.Intrinsic", "invalid intrinsic %d", int(kind)))
	}

	return m.intrinsics[kind]
}

// Register indexes decl by its full name. decl must belong to m.
func (m *Module) Register(decl TypeDeclaration) error {
	if decl == nil {
		return diagnostic.InvalidArgument("Module.Register", "nil declaration")
	}

	if decl.Module() != m {
		return diagnostic.InvalidArgument("Module.Register", "%s belongs to module %s", FullName(decl), decl.Module())
	}

	return m.types.Add(decl)
}

// NotifyTypeRenamed reindexes decl after its name, namespace or enclosing
// type changed.
func (m *Module) NotifyTypeRenamed(decl TypeDeclaration, oldFullName string) error {
	return m.types.NotifyKeyChanged(decl, oldFullName)
}

// Types returns the registered declarations in registration order.
func (m *Module) Types() []TypeDeclaration {
	return m.types.Slice()
}

// FindType resolves a full name ("NS.Outer/Inner") to a named type.
//
// With LookupOnlyExisting a miss yields (nil, nil); otherwise a miss is an
// ErrNotFound error carrying the closest names. LookupGenericDefinition
// requires the result to declare generic parameters.
func (m *Module) FindType(fullName string, lookup options.LookupEnum) (*NamedType, error) {
	const op = "Module.FindType"

	decl, ok := m.types.Get(fullName)
	if !ok && lookup.Has(options.LookupIgnoreCase) {
		for _, candidate := range m.types.Keys() {
			if match.EqualName(candidate, fullName, true) {
				decl, ok = m.types.Get(candidate)
				break
			}
		}
	}

	if !ok {
		if lookup.Has(options.LookupOnlyExisting) {
			return nil, nil
		}

		return nil, diagnostic.NotFound(op, fullName, match.Suggest(fullName, m.types.Keys(), maxSuggestions))
	}

	if lookup.Has(options.LookupGenericDefinition) && !IsGenericDefinition(decl) {
		return nil, diagnostic.InvalidArgument(op, "%s is not a generic type definition", fullName)
	}

	return NewNamed(decl), nil
}

// MustFindType is FindType that panics on failure.
func (m *Module) MustFindType(fullName string) *NamedType {
	t, err := m.FindType(fullName, options.LookupDefault)
	if err != nil {
		panic(err)
	}

	return t
}

// SystemType resolves System.<name> in m, then in the domain's core library.
// The result belongs to m. It returns nil when neither defines the type.
func (m *Module) SystemType(name string) *NamedType {
	fullName := primitive.SystemNamespace + "." + name
	if decl, ok := m.types.Get(fullName); ok {
		return NewNamed(decl)
	}

	corlib := m.domain.CoreLibrary()
	if corlib == nil || corlib == m {
		return nil
	}

	decl, ok := corlib.types.Get(fullName)
	if !ok {
		return nil
	}

	return NewNamed(m.importDeclaration(decl))
}

func (m *Module) Object() *NamedType          { return m.SystemType("Object") }
func (m *Module) SystemArray() *NamedType     { return m.SystemType("Array") }
func (m *Module) SystemValueType() *NamedType { return m.SystemType("ValueType") }
func (m *Module) SystemEnum() *NamedType      { return m.SystemType("Enum") }

// GenericListDefinition returns System.Collections.Generic.IList`1, or nil.
func (m *Module) GenericListDefinition() *NamedType {
	const fullName = "System.Collections.Generic.IList`1"
	if decl, ok := m.types.Get(fullName); ok {
		return NewNamed(decl)
	}

	if corlib := m.domain.CoreLibrary(); corlib != nil && corlib != m {
		if decl, ok := corlib.types.Get(fullName); ok {
			return NewNamed(m.importDeclaration(decl))
		}
	}

	return nil
}

// importDeclaration returns a declaration valid in m for decl, caching the
// reference so repeated imports share an instance.
func (m *Module) importDeclaration(decl TypeDeclaration) TypeDeclaration {
	def := Definition(decl)
	if def.Module() == m {
		return def
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ref, ok := m.imported[def]
	if !ok {
		ref = &typeReference{TypeDeclaration: def, module: m}
		m.imported[def] = ref
	}

	return ref
}

// ImportedTypes returns the full names of declarations referenced from other
// modules.
func (m *Module) ImportedTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.imported))
	for def := range m.imported {
		out = append(out, FullName(def))
	}

	slices.Sort(out)

	return out
}
