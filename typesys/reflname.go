package typesys

import (
	"strconv"
	"strings"

	"clr-typesys/options"
)

// DefaultCoreLibraryName scopes intrinsics when the domain has no core library.
const DefaultCoreLibraryName = "mscorlib"

const reflectionSpecialChars = `\,+&*[]`

// ReflectionNameWriter renders types in the reflection type-name grammar,
// e.g. "System.Collections.Generic.List`1[System.Int32][]". Nested types are
// joined with '+'.
type ReflectionNameWriter struct {
	opts options.NameEnum
	// ParameterName names generic parameters; "!n" and "!!n" are written
	// when it is nil or reports false.
	ParameterName func(p *GenericParameter) (string, bool)

	b strings.Builder
}

func NewReflectionNameWriter(opts options.NameEnum) *ReflectionNameWriter {
	return &ReflectionNameWriter{opts: opts}
}

// ReflectionName returns the reflection-style name of t.
func ReflectionName(t Type, opts options.NameEnum) string {
	w := NewReflectionNameWriter(opts)
	w.WriteType(t)

	return w.String()
}

func (w *ReflectionNameWriter) String() string { return w.b.String() }

func (w *ReflectionNameWriter) Reset() { w.b.Reset() }

// WriteType appends the name of t, followed by ", scope" when the writer is
// assembly-qualified.
func (w *ReflectionNameWriter) WriteType(t Type) {
	w.writeType(t, w.opts.Has(options.NameOmitNamespace))

	if w.opts.Has(options.NameAssemblyQualified) && t != nil {
		w.b.WriteString(", ")
		w.b.WriteString(Scope(t))
	}
}

func (w *ReflectionNameWriter) writeType(t Type, omitNamespace bool) {
	switch x := t.(type) {
	case nil:
		w.b.WriteString("<nil>")

	case *Intrinsic:
		if omitNamespace {
			w.b.WriteString(x.kind.SystemName())
		} else {
			w.b.WriteString(x.kind.ReflectionName())
		}

	case *NamedType:
		w.writeDeclarationName(x.decl, omitNamespace)

	case *GenericInstance:
		w.writeDeclarationName(x.definition.decl, omitNamespace)
		w.b.WriteByte('[')

		for i, arg := range x.args {
			if i > 0 {
				w.b.WriteByte(',')
			}

			if w.opts.Has(options.NameQualifyArguments) {
				w.b.WriteByte('[')
				w.writeType(arg, false)
				w.b.WriteString(", ")
				w.b.WriteString(Scope(arg))
				w.b.WriteByte(']')
			} else {
				w.writeType(arg, false)
			}
		}

		w.b.WriteByte(']')

	case *GenericParameter:
		if w.ParameterName != nil {
			if name, ok := w.ParameterName(x); ok {
				w.b.WriteString(name)
				return
			}
		}

		w.b.WriteString(x.kind.ILPrefix())
		w.b.WriteString(strconv.Itoa(x.ordinal))

	case *Pointer:
		w.writeType(x.elem, omitNamespace)
		if x.managed {
			w.b.WriteByte('&')
		} else {
			w.b.WriteByte('*')
		}

	case *Array:
		w.writeType(x.elem, omitNamespace)

		switch {
		case x.IsVector():
			w.b.WriteString("[]")
		case x.Rank() == 1:
			w.b.WriteString("[*]")
		default:
			w.b.WriteByte('[')
			w.b.WriteString(strings.Repeat(",", x.Rank()-1))
			w.b.WriteByte(']')
		}

	case *Modified:
		w.writeType(x.inner, omitNamespace)

	case *Pinned:
		w.writeType(x.elem, omitNamespace)

	case *Boxed:
		w.writeType(x.inner, omitNamespace)

	case *MethodPointer:
		if omitNamespace {
			w.b.WriteString("IntPtr")
		} else {
			w.b.WriteString("System.IntPtr")
		}
	}
}

func (w *ReflectionNameWriter) writeDeclarationName(decl TypeDeclaration, omitNamespace bool) {
	nesting := nestingOf(Definition(decl))
	if omitNamespace {
		w.b.WriteString(escapeReflectionName(nesting[len(nesting)-1].Name()))
		return
	}

	if ns := nesting[0].Namespace(); ns != "" {
		w.b.WriteString(escapeReflectionName(ns))
		w.b.WriteByte('.')
	}

	for i, d := range nesting {
		if i > 0 {
			w.b.WriteByte('+')
		}
		w.b.WriteString(escapeReflectionName(d.Name()))
	}
}

func escapeReflectionName(s string) string {
	if !strings.ContainsAny(s, reflectionSpecialChars) {
		return s
	}

	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(reflectionSpecialChars, r) {
			b.WriteByte('\\')
		}

		b.WriteRune(r)
	}

	return b.String()
}

// Scope returns the name of the module defining t's outermost named type, or
// the core library for intrinsics and constructed types over them.
func Scope(t Type) string {
	for t != nil {
		switch x := t.(type) {
		case *NamedType:
			return Definition(x.decl).Module().name
		case *GenericInstance:
			return Definition(x.definition.decl).Module().name
		case *Modified:
			t = x.inner
		case *Boxed:
			t = x.inner
		default:
			if e := t.ElementType(); e != nil {
				t = e
				continue
			}

			return coreLibraryName(t.Module())
		}
	}

	return DefaultCoreLibraryName
}

func coreLibraryName(m *Module) string {
	if m == nil {
		return DefaultCoreLibraryName
	}

	if corlib := m.domain.CoreLibrary(); corlib != nil {
		return corlib.name
	}

	return DefaultCoreLibraryName
}
