package metadata

import (
	"strconv"

	"clr-typesys/collections"
	"clr-typesys/internal/common"
	"clr-typesys/internal/diagnostic"
	"clr-typesys/platform"
	"clr-typesys/primitive"
	"clr-typesys/typesys"
)

// TypeDef is a type declaration owned by a module.
type TypeDef struct {
	module     *typesys.Module
	name       string
	namespace  string
	declaring  *TypeDef
	kind       typesys.DeclarationKind
	visibility typesys.Visibility
	token      uint32

	base       typesys.Type
	interfaces []typesys.Type
	underlying *collections.Singleton[typesys.Type]

	generic    *collections.AppendingSortedList[int, *GenericParam]
	fields     *collections.Index[string, *Field]
	methods    *collections.Index[string, *Method]
	properties *collections.Index[string, *Property]
	events     *collections.Index[string, *Event]
	nested     *collections.Index[string, *TypeDef]

	classSize int
	packing   int
}

var (
	_ typesys.TypeDeclaration             = (*TypeDef)(nil)
	_ typesys.GenericParameterDeclaration = (*GenericParam)(nil)
	_ typesys.FieldDeclaration            = (*Field)(nil)
	_ typesys.MethodDeclaration           = (*Method)(nil)
	_ typesys.ParameterDeclaration        = (*Param)(nil)
	_ typesys.PropertyDeclaration         = (*Property)(nil)
	_ typesys.EventDeclaration            = (*Event)(nil)
)

// Define declares a top-level type in m and registers it. Classes, value
// types, enums and delegates get their implicit System base type when the
// domain defines it.
func Define(m *typesys.Module, namespace, name string, kind typesys.DeclarationKind) (*TypeDef, error) {
	if m == nil {
		return nil, diagnostic.InvalidArgument("Define", "nil module")
	}

	t := newTypeDef(m, namespace, name, kind, nil)
	if err := m.Register(t); err != nil {
		return nil, err
	}

	return t, nil
}

// MustDefine is Define that panics on failure.
func MustDefine(m *typesys.Module, namespace, name string, kind typesys.DeclarationKind) *TypeDef {
	t, err := Define(m, namespace, name, kind)
	if err != nil {
		panic(err)
	}

	return t
}

// DefineNested declares a type nested in t.
func (t *TypeDef) DefineNested(name string, kind typesys.DeclarationKind) (*TypeDef, error) {
	n := newTypeDef(t.module, "", name, kind, t)
	if err := t.nested.Add(n); err != nil {
		return nil, err
	}

	if err := t.module.Register(n); err != nil {
		t.nested.Remove(n)
		return nil, err
	}

	return n, nil
}

func newTypeDef(m *typesys.Module, namespace, name string, kind typesys.DeclarationKind, declaring *TypeDef) *TypeDef {
	t := &TypeDef{
		module:     m,
		name:       name,
		namespace:  namespace,
		declaring:  declaring,
		kind:       kind,
		visibility: typesys.VisibilityPublic,
		underlying: collections.NewEmptySingleton[typesys.Type](),
		generic:    collections.NewAppendingSortedList[int, *GenericParam](0),
		fields:     collections.NewIndex(nameOf[*Field]),
		methods:    collections.NewMultiIndex(nameOf[*Method]),
		properties: collections.NewMultiIndex(nameOf[*Property]),
		events:     collections.NewIndex(nameOf[*Event]),
		nested:     collections.NewIndex(nameOf[*TypeDef]),
	}

	if !t.isSystem("Object") {
		t.base = implicitBase(m, kind)
	}

	return t
}

func implicitBase(m *typesys.Module, kind typesys.DeclarationKind) typesys.Type {
	var base *typesys.NamedType

	switch kind {
	case typesys.DeclClass:
		base = m.Object()
	case typesys.DeclValueType:
		base = m.SystemValueType()
	case typesys.DeclEnum:
		base = m.SystemEnum()
	case typesys.DeclDelegate:
		base = m.SystemType("MulticastDelegate")
	}

	if base == nil {
		return nil
	}

	return base
}

// Intrinsic returns the intrinsic t is the System type of, e.g.
// IntrinsicInt32 for System.Int32, or zero.
func (t *TypeDef) Intrinsic() primitive.IntrinsicEnum {
	if t.declaring != nil || t.namespace != primitive.SystemNamespace {
		return 0
	}

	return primitive.FromReflectionName(primitive.SystemNamespace + "." + t.name)
}

func (t *TypeDef) isSystem(name string) bool {
	return t.declaring == nil && t.namespace == "System" && t.name == name
}

func (t *TypeDef) Module() *typesys.Module            { return t.module }
func (t *TypeDef) Name() string                       { return t.name }
func (t *TypeDef) Namespace() string                  { return t.namespace }
func (t *TypeDef) Kind() typesys.DeclarationKind      { return t.kind }
func (t *TypeDef) Visibility() typesys.Visibility     { return t.visibility }
func (t *TypeDef) Token() uint32                      { return t.token }
func (t *TypeDef) BaseType() typesys.Type             { return t.base }
func (t *TypeDef) Interfaces() []typesys.Type         { return append([]typesys.Type(nil), t.interfaces...) }
func (t *TypeDef) FullName() string                   { return typesys.FullName(t) }
func (t *TypeDef) String() string                     { return typesys.FullName(t) }
func (t *TypeDef) ClassSize() int                     { return t.classSize }
func (t *TypeDef) Packing() int                       { return t.packing }
func (t *TypeDef) SetVisibility(v typesys.Visibility) { t.visibility = v }
func (t *TypeDef) SetToken(token uint32)              { t.token = token }

func (t *TypeDef) DeclaringType() typesys.TypeDeclaration {
	if t.declaring == nil {
		return nil
	}

	return t.declaring
}

// Type returns the named type node of the declaration.
func (t *TypeDef) Type() *typesys.NamedType {
	return typesys.NewNamed(t)
}

// Instantiate closes the generic definition over args.
func (t *TypeDef) Instantiate(args ...typesys.Type) *typesys.GenericInstance {
	return typesys.NewGenericInstance(t.Type(), args...)
}

// SetBaseType replaces the base type; nil removes it.
func (t *TypeDef) SetBaseType(base typesys.Type) *TypeDef {
	t.base = base
	return t
}

// AddInterface appends a directly implemented interface.
func (t *TypeDef) AddInterface(iface typesys.Type) *TypeDef {
	t.interfaces = append(t.interfaces, iface)
	return t
}

// EnumUnderlyingType returns the underlying integer type of an enum, or nil.
func (t *TypeDef) EnumUnderlyingType() typesys.Type {
	if t.underlying.Len() == 0 {
		return nil
	}

	return t.underlying.At(0)
}

// SetEnumUnderlyingType sets the underlying integer type of an enum. It can
// be set once.
func (t *TypeDef) SetEnumUnderlyingType(underlying typesys.Type) error {
	if t.kind != typesys.DeclEnum {
		return diagnostic.InvalidOperation("TypeDef.SetEnumUnderlyingType", "%s is not an enum", t)
	}

	intrinsic, ok := underlying.(*typesys.Intrinsic)
	if !ok || !intrinsic.IntrinsicKind().IsInteger() {
		return diagnostic.InvalidArgument("TypeDef.SetEnumUnderlyingType", "enum underlying type must be an integer intrinsic, got %v", underlying)
	}

	return t.underlying.Add(underlying)
}

// SetLayout sets an explicit minimal instance size and field packing. Zero
// keeps the natural value.
func (t *TypeDef) SetLayout(classSize, packing int) error {
	if classSize < 0 || packing < 0 || packing&(packing-1) != 0 {
		return diagnostic.InvalidArgument("TypeDef.SetLayout", "class size %d, packing %d", classSize, packing)
	}

	t.classSize, t.packing = classSize, packing

	return nil
}

// AddGenericParameter declares the next type-level generic parameter.
func (t *TypeDef) AddGenericParameter(name string) *GenericParam {
	g := &GenericParam{name: name, ordinal: t.generic.Len(), kind: typesys.GenericKindType}
	t.generic.Add(g.ordinal, g)

	return g
}

func (t *TypeDef) GenericParameters() []typesys.GenericParameterDeclaration {
	return common.Map(t.generic.Values(), func(g *GenericParam) typesys.GenericParameterDeclaration { return g })
}

// GenericParameter returns the parameter with the given ordinal.
func (t *TypeDef) GenericParameter(ordinal int) (*GenericParam, bool) {
	return t.generic.Get(ordinal)
}

// GenericParameterType returns the !ordinal reference of t's module.
func (t *TypeDef) GenericParameterType(ordinal int) *typesys.GenericParameter {
	return typesys.NewGenericParameter(t.module, typesys.GenericKindType, ordinal)
}

// Rename changes the simple name and reindexes t in its module and its
// enclosing type.
func (t *TypeDef) Rename(name string) error {
	return t.reindex(func() { t.name = name }, func(old *TypeDef) { t.name = old.name })
}

// SetNamespace moves a top-level type to another namespace.
func (t *TypeDef) SetNamespace(namespace string) error {
	if t.declaring != nil {
		return diagnostic.InvalidOperation("TypeDef.SetNamespace", "nested type %s has no namespace of its own", t)
	}

	return t.reindex(func() { t.namespace = namespace }, func(old *TypeDef) { t.namespace = old.namespace })
}

func (t *TypeDef) reindex(apply func(), undo func(old *TypeDef)) error {
	old := *t
	oldFullName := typesys.FullName(t)
	descendants := t.descendantNames()

	apply()
	newName := t.name

	if t.declaring != nil {
		if err := t.declaring.nested.NotifyKeyChanged(t, old.name); err != nil {
			undo(&old)
			return err
		}
	}

	if err := t.module.NotifyTypeRenamed(t, oldFullName); err != nil {
		undo(&old)

		if t.declaring != nil {
			_ = t.declaring.nested.NotifyKeyChanged(t, newName)
		}

		return err
	}

	// nested types carry the new prefix in their full names
	for d, name := range descendants {
		if err := t.module.NotifyTypeRenamed(d, name); err != nil {
			return err
		}
	}

	return nil
}

func (t *TypeDef) descendantNames() map[*TypeDef]string {
	names := make(map[*TypeDef]string)

	var walk func(*TypeDef)
	walk = func(n *TypeDef) {
		for c := range n.nested.All() {
			names[c] = typesys.FullName(c)
			walk(c)
		}
	}
	walk(t)

	return names
}

// AddField declares a field.
func (t *TypeDef) AddField(name string, fieldType typesys.Type, static bool) (*Field, error) {
	if fieldType == nil {
		return nil, diagnostic.InvalidArgument("TypeDef.AddField", "nil type for field %s", name)
	}

	f := &Field{
		member:    member{name: name, declaring: t, visibility: typesys.VisibilityPublic, static: static},
		fieldType: fieldType,
	}

	if err := t.fields.Add(f); err != nil {
		return nil, err
	}

	return f, nil
}

// AddMethod declares a method. The method is static when sig.HasThis is
// false. paramNames name the parameters in order; missing names stay empty.
func (t *TypeDef) AddMethod(name string, sig typesys.MethodSignature, paramNames ...string) (*Method, error) {
	if sig.ReturnType == nil {
		return nil, diagnostic.InvalidArgument("TypeDef.AddMethod", "nil return type for method %s", name)
	}

	m := &Method{
		member:    member{name: name, declaring: t, visibility: typesys.VisibilityPublic, static: !sig.HasThis},
		signature: sig,
		ret:       &Param{ordinal: -1, paramType: sig.ReturnType},
		generic:   collections.NewAppendingSortedList[int, *GenericParam](sig.GenericParameterCount),
	}

	m.signature.Parameters = append([]typesys.Type(nil), sig.Parameters...)

	for i, pt := range sig.Parameters {
		if pt == nil {
			return nil, diagnostic.InvalidArgument("TypeDef.AddMethod", "nil type for parameter %d of %s", i, name)
		}

		p := &Param{ordinal: i, paramType: pt}
		if i < len(paramNames) {
			p.name = paramNames[i]
		}

		m.params = append(m.params, p)
	}

	for i := range sig.GenericParameterCount {
		m.AddGenericParameter("M" + strconv.Itoa(i))
	}

	if err := t.methods.Add(m); err != nil {
		return nil, err
	}

	return m, nil
}

// AddProperty declares a property; attach accessors with SetAccessors.
func (t *TypeDef) AddProperty(name string, propertyType typesys.Type) (*Property, error) {
	p := &Property{
		member:       member{name: name, declaring: t, visibility: typesys.VisibilityPublic},
		propertyType: propertyType,
	}

	if err := t.properties.Add(p); err != nil {
		return nil, err
	}

	return p, nil
}

// AddEvent declares an event; attach accessors with SetAccessors.
func (t *TypeDef) AddEvent(name string, eventType typesys.Type) (*Event, error) {
	e := &Event{
		member:    member{name: name, declaring: t, visibility: typesys.VisibilityPublic},
		eventType: eventType,
	}

	if err := t.events.Add(e); err != nil {
		return nil, err
	}

	return e, nil
}

func (t *TypeDef) Fields() []typesys.FieldDeclaration {
	return common.Map(t.fields.Slice(), func(f *Field) typesys.FieldDeclaration { return f })
}

func (t *TypeDef) Methods() []typesys.MethodDeclaration {
	return common.Map(t.methods.Slice(), func(m *Method) typesys.MethodDeclaration { return m })
}

func (t *TypeDef) Properties() []typesys.PropertyDeclaration {
	return common.Map(t.properties.Slice(), func(p *Property) typesys.PropertyDeclaration { return p })
}

func (t *TypeDef) Events() []typesys.EventDeclaration {
	return common.Map(t.events.Slice(), func(e *Event) typesys.EventDeclaration { return e })
}

func (t *TypeDef) NestedTypes() []typesys.TypeDeclaration {
	return common.Map(t.nested.Slice(), func(n *TypeDef) typesys.TypeDeclaration { return n })
}

func (t *TypeDef) FindField(name string) (*Field, bool)    { return t.fields.Get(name) }
func (t *TypeDef) FindMethods(name string) []*Method       { return t.methods.GetAll(name) }
func (t *TypeDef) FindProperties(name string) []*Property  { return t.properties.GetAll(name) }
func (t *TypeDef) FindEvent(name string) (*Event, bool)    { return t.events.Get(name) }
func (t *TypeDef) FindNested(name string) (*TypeDef, bool) { return t.nested.Get(name) }

// ValueSize returns the instance size of a value type, the underlying size
// of an enum and the pointer size of a reference type.
func (t *TypeDef) ValueSize(p platform.Info, gm typesys.GenericMap) (int, error) {
	switch k := t.Intrinsic(); {
	case k.IsValid():
		return k.SizeOn(p.PointerSize), nil
	case t.underlying.Len() > 0:
		return t.underlying.At(0).ValueSize(p)
	case !t.kind.IsValueType():
		return p.PointerSize, nil
	}

	l, err := ComputeLayout(t, p, gm)
	if err != nil {
		return 0, err
	}

	return l.Size, nil
}

// Close releases the member indexes. The declaration must not be used
// afterwards.
func (t *TypeDef) Close() {
	t.fields.Close()
	t.methods.Close()
	t.properties.Close()
	t.events.Close()
	t.nested.Close()
}
