package manifest

import (
	"fmt"

	"clr-typesys/metadata"
	"clr-typesys/platform"
	"clr-typesys/typesys"
)

// Export describes a domain as a manifest. Types must be metadata.TypeDef
// declarations. The core library module is exported as a bare core_library
// flag; Build recreates its standard types.
func Export(d *typesys.Domain) (*Manifest, error) {
	mf := &Manifest{Version: "1", Name: d.Name()}

	if p, ok := platform.Lookup(d.Platform().Name); ok && p == d.Platform() {
		mf.Platform = p.Name
	} else {
		spec := d.Platform()
		mf.PlatformSpec = &spec
	}

	for _, m := range d.Modules() {
		mod := Module{Name: m.Name(), CoreLibrary: m.IsCoreLibrary()}

		if !mod.CoreLibrary {
			for _, decl := range m.Types() {
				def, ok := decl.(*metadata.TypeDef)
				if !ok {
					return nil, fmt.Errorf("module %s: type %s: unsupported declaration %T",
						m.Name(), typesys.FullName(decl), decl)
				}

				if def.DeclaringType() != nil {
					continue
				}

				mod.Types = append(mod.Types, exportType(typesys.NewILWriter(m), def))
			}
		}

		mf.Modules = append(mf.Modules, mod)
	}

	return mf, nil
}

func exportType(w *typesys.ILWriter, def *metadata.TypeDef) Type {
	t := Type{
		Name:      def.Name(),
		Kind:      def.Kind().String(),
		ClassSize: def.ClassSize(),
		Packing:   def.Packing(),
	}

	if def.DeclaringType() == nil {
		t.Namespace = def.Namespace()
	}

	if v := def.Visibility(); v != typesys.VisibilityPublic {
		t.Visibility = v.String()
	}

	if base := def.BaseType(); base != nil {
		t.Base = render(w, base)
	}

	for _, iface := range def.Interfaces() {
		t.Interfaces = append(t.Interfaces, render(w, iface))
	}

	if u := def.EnumUnderlyingType(); u != nil {
		t.Underlying = render(w, u)
	}

	for _, g := range def.GenericParameters() {
		t.GenericParameters = append(t.GenericParameters, exportGenericParameter(w, g))
	}

	for _, decl := range def.Fields() {
		f := decl.(*metadata.Field)
		t.Fields = append(t.Fields, Field{
			Name:       f.Name(),
			Type:       render(w, f.FieldType()),
			Visibility: visibility(f.Visibility()),
			Static:     f.IsStatic(),
			Literal:    f.IsLiteral(),
			InitOnly:   f.IsInitOnly(),
		})
	}

	for _, decl := range def.Methods() {
		t.Methods = append(t.Methods, exportMethod(w, decl.(*metadata.Method)))
	}

	for _, decl := range def.Properties() {
		t.Properties = append(t.Properties, Property{
			Name:   decl.Name(),
			Type:   render(w, decl.PropertyType()),
			Getter: accessorName(decl.Getter()),
			Setter: accessorName(decl.Setter()),
		})
	}

	for _, decl := range def.Events() {
		t.Events = append(t.Events, Event{
			Name:   decl.Name(),
			Type:   render(w, decl.EventType()),
			Add:    accessorName(decl.Adder()),
			Remove: accessorName(decl.Remover()),
		})
	}

	for _, decl := range def.NestedTypes() {
		t.Nested = append(t.Nested, exportType(w, decl.(*metadata.TypeDef)))
	}

	return t
}

func exportMethod(w *typesys.ILWriter, m *metadata.Method) Method {
	sig := m.Signature()

	out := Method{
		Name:              m.Name(),
		Return:            render(w, sig.ReturnType),
		Visibility:        visibility(m.Visibility()),
		Static:            m.IsStatic(),
		Virtual:           m.IsVirtual(),
		Abstract:          m.IsAbstract(),
		CallingConvention: conventionName(sig.CallingConvention),
	}

	for _, g := range m.GenericParameters() {
		out.GenericParameters = append(out.GenericParameters, exportGenericParameter(w, g))
	}

	for _, p := range m.Params() {
		out.Parameters = append(out.Parameters, Parameter{
			Name:     p.Name(),
			Type:     render(w, p.ParameterType()),
			In:       p.IsIn(),
			Out:      p.IsOut(),
			Optional: p.IsOptional(),
		})
	}

	return out
}

func exportGenericParameter(w *typesys.ILWriter, g typesys.GenericParameterDeclaration) GenericParameter {
	out := GenericParameter{
		Name:     g.Name(),
		Variance: g.Variance().String(),
		Class:    g.HasReferenceTypeConstraint(),
		Struct:   g.HasValueTypeConstraint(),
		New:      g.HasDefaultConstructorConstraint(),
	}

	for _, c := range g.Constraints() {
		out.Constraints = append(out.Constraints, render(w, c))
	}

	return out
}

func render(w *typesys.ILWriter, t typesys.Type) string {
	w.Reset()
	w.WriteType(t)

	return w.String()
}

func visibility(v typesys.Visibility) string {
	if v == typesys.VisibilityPublic {
		return ""
	}

	return v.String()
}

func accessorName(m typesys.MethodDeclaration) string {
	if m == nil {
		return ""
	}

	return m.Name()
}

func conventionName(c typesys.CallingConvention) string {
	for name, v := range conventionNames {
		if v == c && name != "" && name != "default" {
			return name
		}
	}

	return ""
}
