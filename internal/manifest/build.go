package manifest

import (
	"fmt"

	"clr-typesys/metadata"
	"clr-typesys/platform"
	"clr-typesys/typesys"
)

// Result is a materialized manifest.
type Result struct {
	Domain      *typesys.Domain
	CoreLibrary *metadata.CoreLibrary

	types map[*typesys.Module]map[string]*metadata.TypeDef
}

// Module returns the named module, or nil.
func (r *Result) Module(name string) *typesys.Module {
	return r.Domain.ModuleByName(name)
}

// TypeDef returns a declared type by module name and full name
// ("NS.Outer/Inner").
func (r *Result) TypeDef(module, fullName string) (*metadata.TypeDef, bool) {
	m := r.Module(module)
	if m == nil {
		return nil, false
	}

	t, ok := r.types[m][fullName]

	return t, ok
}

// MustType returns the named type node of a declared type and panics when
// it does not exist.
func (r *Result) MustType(module, fullName string) *typesys.NamedType {
	t, ok := r.TypeDef(module, fullName)
	if !ok {
		panic(fmt.Sprintf("manifest: type %s not declared in module %s", fullName, module))
	}

	return t.Type()
}

type pending struct {
	module *typesys.Module
	def    *metadata.TypeDef
	spec   *Type
}

// Build creates the domain a manifest describes. Types are declared in a
// first pass so that references may point forward. Defaults are filled in
// mf before it is validated.
func Build(mf *Manifest) (*Result, error) {
	applyDefaults(mf)

	if err := Validate(mf); err != nil {
		return nil, err
	}

	p, err := resolvePlatform(mf)
	if err != nil {
		return nil, err
	}

	d, err := typesys.NewDomain(mf.Name, p)
	if err != nil {
		return nil, err
	}

	r := &Result{Domain: d, types: make(map[*typesys.Module]map[string]*metadata.TypeDef)}

	modules := make([]*typesys.Module, len(mf.Modules))
	for i := range mf.Modules {
		if modules[i], err = d.NewModule(mf.Modules[i].Name); err != nil {
			return nil, err
		}

		r.types[modules[i]] = make(map[string]*metadata.TypeDef)
	}

	for i := range mf.Modules {
		if !mf.Modules[i].CoreLibrary {
			continue
		}

		if r.CoreLibrary, err = metadata.DefineCoreLibrary(modules[i]); err != nil {
			return nil, err
		}

		for _, decl := range modules[i].Types() {
			if td, ok := decl.(*metadata.TypeDef); ok {
				r.types[modules[i]][td.FullName()] = td
			}
		}
	}

	var work []pending

	for i := range mf.Modules {
		for j := range mf.Modules[i].Types {
			declared, err := r.declare(modules[i], nil, &mf.Modules[i].Types[j])
			if err != nil {
				return nil, fmt.Errorf("module %s: %w", modules[i].Name(), err)
			}

			work = append(work, declared...)
		}
	}

	for _, w := range work {
		if err := define(w); err != nil {
			return nil, fmt.Errorf("module %s: type %s: %w", w.module.Name(), w.def.FullName(), err)
		}
	}

	return r, nil
}

func resolvePlatform(mf *Manifest) (platform.Info, error) {
	if mf.PlatformSpec != nil {
		return *mf.PlatformSpec, mf.PlatformSpec.Validate()
	}

	p, ok := platform.Lookup(mf.Platform)
	if !ok {
		return platform.Info{}, fmt.Errorf("unknown platform %q", mf.Platform)
	}

	return p, nil
}

// declare creates spec and its nested types without resolving any type
// reference.
func (r *Result) declare(m *typesys.Module, parent *metadata.TypeDef, spec *Type) ([]pending, error) {
	kind, ok := typesys.ParseDeclarationKind(spec.Kind)
	if !ok {
		return nil, fmt.Errorf("type %s: unknown kind %q", spec.Name, spec.Kind)
	}

	var (
		def *metadata.TypeDef
		err error
	)

	if parent == nil {
		def, err = metadata.Define(m, spec.Namespace, spec.Name, kind)
	} else {
		def, err = parent.DefineNested(spec.Name, kind)
	}

	if err != nil {
		return nil, err
	}

	if spec.Visibility != "" {
		v, ok := typesys.ParseVisibility(spec.Visibility)
		if !ok {
			return nil, fmt.Errorf("type %s: unknown visibility %q", spec.Name, spec.Visibility)
		}

		def.SetVisibility(v)
	}

	if err := def.SetLayout(spec.ClassSize, spec.Packing); err != nil {
		return nil, err
	}

	for _, g := range spec.GenericParameters {
		gp := def.AddGenericParameter(g.Name)
		if err := applyGenericParameter(gp, &g, nil); err != nil {
			return nil, err
		}
	}

	r.types[m][def.FullName()] = def

	out := []pending{{module: m, def: def, spec: spec}}

	for i := range spec.Nested {
		nested, err := r.declare(m, def, &spec.Nested[i])
		if err != nil {
			return nil, err
		}

		out = append(out, nested...)
	}

	return out, nil
}

func applyGenericParameter(gp *metadata.GenericParam, spec *GenericParameter, m *typesys.Module) error {
	switch spec.Variance {
	case "":
	case "+":
		gp.SetVariance(typesys.VarianceCovariant)
	case "-":
		gp.SetVariance(typesys.VarianceContravariant)
	default:
		return fmt.Errorf("generic parameter %s: unknown variance %q", spec.Name, spec.Variance)
	}

	gp.SetSpecialConstraints(spec.Class, spec.Struct, spec.New)

	if m == nil {
		return nil
	}

	for _, c := range spec.Constraints {
		t, err := ParseType(m, c)
		if err != nil {
			return err
		}

		gp.AddConstraint(t)
	}

	return nil
}

// define resolves every type reference of a declared type and adds its
// members.
func define(w pending) error {
	m, def, spec := w.module, w.def, w.spec

	if spec.Base != "" {
		base, err := ParseType(m, spec.Base)
		if err != nil {
			return err
		}

		def.SetBaseType(base)
	}

	for _, text := range spec.Interfaces {
		iface, err := ParseType(m, text)
		if err != nil {
			return err
		}

		def.AddInterface(iface)
	}

	if spec.Underlying != "" {
		u, err := ParseType(m, spec.Underlying)
		if err != nil {
			return err
		}

		if err := def.SetEnumUnderlyingType(u); err != nil {
			return err
		}
	}

	for i := range spec.GenericParameters {
		gp, _ := def.GenericParameter(i)
		for _, c := range spec.GenericParameters[i].Constraints {
			t, err := ParseType(m, c)
			if err != nil {
				return err
			}

			gp.AddConstraint(t)
		}
	}

	for _, f := range spec.Fields {
		if err := defineField(m, def, &f); err != nil {
			return err
		}
	}

	for i := range spec.Methods {
		if err := defineMethod(m, def, &spec.Methods[i]); err != nil {
			return err
		}
	}

	for _, p := range spec.Properties {
		if err := defineProperty(m, def, &p); err != nil {
			return err
		}
	}

	for _, e := range spec.Events {
		if err := defineEvent(m, def, &e); err != nil {
			return err
		}
	}

	return nil
}

func parseVisibility(s string) (typesys.Visibility, error) {
	if s == "" {
		return typesys.VisibilityPublic, nil
	}

	v, ok := typesys.ParseVisibility(s)
	if !ok {
		return 0, fmt.Errorf("unknown visibility %q", s)
	}

	return v, nil
}

func defineField(m *typesys.Module, def *metadata.TypeDef, spec *Field) error {
	ft, err := ParseType(m, spec.Type)
	if err != nil {
		return fmt.Errorf("field %s: %w", spec.Name, err)
	}

	v, err := parseVisibility(spec.Visibility)
	if err != nil {
		return fmt.Errorf("field %s: %w", spec.Name, err)
	}

	f, err := def.AddField(spec.Name, ft, spec.Static)
	if err != nil {
		return err
	}

	f.SetVisibility(v)
	f.SetLiteral(spec.Literal).SetInitOnly(spec.InitOnly)

	return nil
}

var conventionNames = map[string]typesys.CallingConvention{
	"":         typesys.CallingConventionDefault,
	"default":  typesys.CallingConventionDefault,
	"vararg":   typesys.CallingConventionVarArg,
	"cdecl":    typesys.CallingConventionC,
	"stdcall":  typesys.CallingConventionStdCall,
	"thiscall": typesys.CallingConventionThisCall,
	"fastcall": typesys.CallingConventionFastCall,
}

func defineMethod(m *typesys.Module, def *metadata.TypeDef, spec *Method) error {
	conv, ok := conventionNames[spec.CallingConvention]
	if !ok {
		return fmt.Errorf("method %s: unknown calling convention %q", spec.Name, spec.CallingConvention)
	}

	ret, err := ParseType(m, spec.Return)
	if err != nil {
		return fmt.Errorf("method %s: %w", spec.Name, err)
	}

	sig := typesys.MethodSignature{
		CallingConvention: conv,
		HasThis:           !spec.Static,
		ReturnType:        ret,
	}

	names := make([]string, len(spec.Parameters))
	for i, p := range spec.Parameters {
		pt, err := ParseType(m, p.Type)
		if err != nil {
			return fmt.Errorf("method %s: parameter %s: %w", spec.Name, p.Name, err)
		}

		sig.Parameters = append(sig.Parameters, pt)
		names[i] = p.Name
	}

	v, err := parseVisibility(spec.Visibility)
	if err != nil {
		return fmt.Errorf("method %s: %w", spec.Name, err)
	}

	method, err := def.AddMethod(spec.Name, sig, names...)
	if err != nil {
		return err
	}

	method.SetVisibility(v)
	method.SetVirtual(spec.Virtual, spec.Abstract)

	for i, p := range method.Params() {
		p.SetFlags(spec.Parameters[i].In, spec.Parameters[i].Out, spec.Parameters[i].Optional)
	}

	for _, g := range spec.GenericParameters {
		gp := method.AddGenericParameter(g.Name)
		if err := applyGenericParameter(gp, &g, m); err != nil {
			return fmt.Errorf("method %s: %w", spec.Name, err)
		}
	}

	return nil
}

// accessor finds the single method called name, or nil for an empty name.
func accessor(def *metadata.TypeDef, member, name string) (*metadata.Method, error) {
	if name == "" {
		return nil, nil
	}

	methods := def.FindMethods(name)
	if len(methods) != 1 {
		return nil, fmt.Errorf("%s: accessor %s matches %d methods", member, name, len(methods))
	}

	return methods[0], nil
}

func defineProperty(m *typesys.Module, def *metadata.TypeDef, spec *Property) error {
	pt, err := ParseType(m, spec.Type)
	if err != nil {
		return fmt.Errorf("property %s: %w", spec.Name, err)
	}

	getter, err := accessor(def, spec.Name, spec.Getter)
	if err != nil {
		return err
	}

	setter, err := accessor(def, spec.Name, spec.Setter)
	if err != nil {
		return err
	}

	p, err := def.AddProperty(spec.Name, pt)
	if err != nil {
		return err
	}

	p.SetAccessors(getter, setter)

	return nil
}

func defineEvent(m *typesys.Module, def *metadata.TypeDef, spec *Event) error {
	et, err := ParseType(m, spec.Type)
	if err != nil {
		return fmt.Errorf("event %s: %w", spec.Name, err)
	}

	adder, err := accessor(def, spec.Name, spec.Add)
	if err != nil {
		return err
	}

	remover, err := accessor(def, spec.Name, spec.Remove)
	if err != nil {
		return err
	}

	e, err := def.AddEvent(spec.Name, et)
	if err != nil {
		return err
	}

	e.SetAccessors(adder, remover)

	return nil
}
