package reflection

import (
	"github.com/hashicorp/go-set/v3"

	"clr-typesys/internal/diagnostic"
	"clr-typesys/internal/match"
	"clr-typesys/options"
	"clr-typesys/typesys"
)

const maxSuggestions = 3

// level is one type of the inheritance chain a member query walks.
type level struct {
	decl      typesys.TypeDeclaration
	gm        typesys.GenericMap
	owner     *Type
	inherited bool
}

// levels returns t's declaration followed by its base declarations, unless
// flags has BindingDeclaredOnly.
func (t *Type) levels(flags options.BindingEnum) []level {
	var out []level

	visited := set.New[typesys.TypeDeclaration](4)

	for node, inherited := t.declaringNode(), false; node != nil; inherited = true {
		decl, gm, ok := declarationOf(node)
		if !ok || !visited.Insert(typesys.Definition(decl)) {
			break
		}

		out = append(out, level{decl: decl, gm: gm, owner: TypeOf(node), inherited: inherited})

		if flags.Has(options.BindingDeclaredOnly) || decl.BaseType() == nil {
			break
		}

		node = resolve(decl.BaseType(), gm)
	}

	return out
}

// bindable applies the binding flags to a member found on a level.
func bindable(flags options.BindingEnum, m typesys.MemberDeclaration, inherited bool) bool {
	static := m.IsStatic()
	public := m.Visibility() == typesys.VisibilityPublic

	switch {
	case static && !flags.Has(options.BindingStatic), !static && !flags.Has(options.BindingInstance):
		return false
	case public && !flags.Has(options.BindingPublic), !public && !flags.Has(options.BindingNonPublic):
		return false
	}

	if inherited {
		if m.Visibility() == typesys.VisibilityPrivate {
			return false
		}

		if static && !flags.Has(options.BindingFlattenHierarchy) {
			return false
		}
	}

	return true
}

func nameMatches(want, name string, ignoreCase bool) bool {
	return match.EqualName(want, name, ignoreCase)
}

func notFound(op, name string, candidates []string) error {
	return diagnostic.NotFound(op, name, match.Suggest(name, candidates, maxSuggestions))
}

func (t *Type) newMember(l level, decl typesys.MemberDeclaration) member {
	return member{decl: decl, declaring: l.owner, reflected: t, gm: l.gm}
}

// Fields returns the fields selected by flags, most derived first.
func (t *Type) Fields(flags options.BindingEnum) []*FieldInfo {
	var out []*FieldInfo

	for _, l := range t.levels(flags) {
		for _, f := range l.decl.Fields() {
			if bindable(flags, f, l.inherited) {
				out = append(out, &FieldInfo{member: t.newMember(l, f), field: f})
			}
		}
	}

	return out
}

// Field returns the first field called name. A miss is ErrNotFound with
// the closest names.
func (t *Type) Field(name string, flags options.BindingEnum) (*FieldInfo, error) {
	fields := t.Fields(flags)

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if nameMatches(name, f.Name(), flags.Has(options.BindingIgnoreCase)) {
			return f, nil
		}

		names = append(names, f.Name())
	}

	return nil, notFound("Type.Field", name, names)
}

// methods collects methods or constructors. Inherited methods with the
// name and signature of a more derived one are hidden.
func (t *Type) methods(flags options.BindingEnum, constructors bool) []MethodBase {
	var out []MethodBase

	for _, l := range t.levels(flags) {
		if constructors && l.inherited {
			break
		}

		for _, m := range l.decl.Methods() {
			if m.IsConstructor() != constructors || !bindable(flags, m, l.inherited) {
				continue
			}

			mb := newMethodBase(m, l.owner, t, l.gm)
			if l.inherited && hidden(out, &mb) {
				continue
			}

			out = append(out, mb)
		}
	}

	return out
}

func hidden(found []MethodBase, m *MethodBase) bool {
	for i := range found {
		if found[i].Name() == m.Name() && found[i].Signature().Equal(m.Signature()) {
			return true
		}
	}

	return false
}

// Methods returns the non-constructor methods selected by flags.
func (t *Type) Methods(flags options.BindingEnum) []*MethodInfo {
	bases := t.methods(flags, false)

	out := make([]*MethodInfo, len(bases))
	for i := range bases {
		out[i] = &MethodInfo{bases[i]}
	}

	return out
}

// Method returns the method called name. When parameterTypes is non-nil
// only methods with exactly those parameter types match. More than one
// match is ErrInvalidOperation.
func (t *Type) Method(name string, flags options.BindingEnum, parameterTypes ...*Type) (*MethodInfo, error) {
	const op = "Type.Method"

	var (
		found *MethodInfo
		names []string
	)

	for _, m := range t.Methods(flags) {
		names = append(names, m.Name())

		if !nameMatches(name, m.Name(), flags.Has(options.BindingIgnoreCase)) {
			continue
		}

		if parameterTypes != nil && !m.parameterTypesMatch(parameterTypes) {
			continue
		}

		if found != nil {
			return nil, diagnostic.InvalidOperation(op, "ambiguous match for %s on %s", name, t)
		}

		found = m
	}

	if found == nil {
		return nil, notFound(op, name, names)
	}

	return found, nil
}

// Constructors returns the constructors declared by t itself.
func (t *Type) Constructors(flags options.BindingEnum) []*ConstructorInfo {
	bases := t.methods(flags, true)

	out := make([]*ConstructorInfo, len(bases))
	for i := range bases {
		out[i] = &ConstructorInfo{bases[i]}
	}

	return out
}

// Constructor returns the constructor with exactly the given parameter
// types.
func (t *Type) Constructor(flags options.BindingEnum, parameterTypes ...*Type) (*ConstructorInfo, error) {
	for _, c := range t.Constructors(flags) {
		if c.parameterTypesMatch(parameterTypes) {
			return c, nil
		}
	}

	return nil, diagnostic.NotFound("Type.Constructor", t.String()+".ctor", nil)
}

// Properties returns the properties selected by flags. Inherited
// properties with the name of a more derived one are hidden.
func (t *Type) Properties(flags options.BindingEnum) []*PropertyInfo {
	var out []*PropertyInfo

	seen := set.New[string](4)

	for _, l := range t.levels(flags) {
		for _, p := range l.decl.Properties() {
			if !bindable(flags, p, l.inherited) || (l.inherited && seen.Contains(p.Name())) {
				continue
			}

			out = append(out, &PropertyInfo{member: t.newMember(l, p), property: p})
		}

		for _, p := range out {
			seen.Insert(p.Name())
		}
	}

	return out
}

// Property returns the property called name.
func (t *Type) Property(name string, flags options.BindingEnum) (*PropertyInfo, error) {
	props := t.Properties(flags)

	names := make([]string, 0, len(props))
	for _, p := range props {
		if nameMatches(name, p.Name(), flags.Has(options.BindingIgnoreCase)) {
			return p, nil
		}

		names = append(names, p.Name())
	}

	return nil, notFound("Type.Property", name, names)
}

// Events returns the events selected by flags.
func (t *Type) Events(flags options.BindingEnum) []*EventInfo {
	var out []*EventInfo

	for _, l := range t.levels(flags) {
		for _, e := range l.decl.Events() {
			if bindable(flags, e, l.inherited) {
				out = append(out, &EventInfo{member: t.newMember(l, e), event: e})
			}
		}
	}

	return out
}

// Event returns the event called name.
func (t *Type) Event(name string, flags options.BindingEnum) (*EventInfo, error) {
	events := t.Events(flags)

	names := make([]string, 0, len(events))
	for _, e := range events {
		if nameMatches(name, e.Name(), flags.Has(options.BindingIgnoreCase)) {
			return e, nil
		}

		names = append(names, e.Name())
	}

	return nil, notFound("Type.Event", name, names)
}

// Members returns fields, methods, constructors, properties and events in
// that order.
func (t *Type) Members(flags options.BindingEnum) []MemberInfo {
	var out []MemberInfo

	for _, f := range t.Fields(flags) {
		out = append(out, f)
	}

	for _, m := range t.Methods(flags) {
		out = append(out, m)
	}

	for _, c := range t.Constructors(flags) {
		out = append(out, c)
	}

	for _, p := range t.Properties(flags) {
		out = append(out, p)
	}

	for _, e := range t.Events(flags) {
		out = append(out, e)
	}

	return out
}
