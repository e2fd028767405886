package typesys

import (
	"strconv"
	"strings"
	"unicode"
)

// ILWriter renders types in IL assembler syntax, e.g.
// "class [mscorlib]System.Collections.Generic.List`1<int32>[]".
// Named types defined outside the context module get a "[scope]" prefix.
type ILWriter struct {
	context *Module
	b       strings.Builder
}

// NewILWriter creates a writer resolving scopes relative to context. A nil
// context writes every scope.
func NewILWriter(context *Module) *ILWriter {
	return &ILWriter{context: context}
}

// ILReference returns the IL reference of t relative to its own module.
func ILReference(t Type) string {
	if t == nil {
		return "<nil>"
	}

	w := NewILWriter(t.Module())
	w.WriteType(t)

	return w.String()
}

func (w *ILWriter) String() string { return w.b.String() }

// Reset discards everything written so far.
func (w *ILWriter) Reset() { w.b.Reset() }

// WriteType appends the IL reference of t.
func (w *ILWriter) WriteType(t Type) {
	switch x := t.(type) {
	case nil:
		w.b.WriteString("<nil>")

	case *Intrinsic:
		w.b.WriteString(x.kind.ILName())

	case *NamedType:
		if x.Classification() == ClassValue {
			w.b.WriteString("valuetype ")
		} else {
			w.b.WriteString("class ")
		}

		w.writeTypeName(x.decl)

	case *GenericInstance:
		w.WriteType(x.definition)
		w.b.WriteByte('<')
		w.writeList(x.args)
		w.b.WriteByte('>')

	case *GenericParameter:
		w.b.WriteString(x.kind.ILPrefix())
		w.b.WriteString(strconv.Itoa(x.ordinal))

	case *Pointer:
		w.WriteType(x.elem)
		if x.managed {
			w.b.WriteByte('&')
		} else {
			w.b.WriteByte('*')
		}

	case *Pinned:
		w.WriteType(x.elem)
		w.b.WriteString(" pinned")

	case *Modified:
		w.WriteType(x.inner)
		if x.modifier.Required {
			w.b.WriteString(" modreq(")
		} else {
			w.b.WriteString(" modopt(")
		}

		if named, ok := x.modifier.Type.(*NamedType); ok {
			w.writeTypeName(named.decl)
		} else {
			w.WriteType(x.modifier.Type)
		}

		w.b.WriteByte(')')

	case *Array:
		w.WriteType(x.elem)
		w.writeDimensions(x)

	case *Boxed:
		w.b.WriteString("boxed(")
		w.WriteType(x.inner)
		w.b.WriteByte(')')

	case *MethodPointer:
		w.b.WriteString("method ")
		writeSignature(&w.b, w, x.signature, "*")
	}
}

func (w *ILWriter) writeList(ts []Type) {
	for i, t := range ts {
		if i > 0 {
			w.b.WriteByte(',')
		}

		w.WriteType(t)
	}
}

// writeTypeName writes "[scope]NS.Outer/Inner" without the class keyword.
func (w *ILWriter) writeTypeName(decl TypeDeclaration) {
	def := Definition(decl)
	if scope := def.Module(); scope != w.context {
		w.b.WriteByte('[')
		w.b.WriteString(quoteILDotted(scope.name))
		w.b.WriteByte(']')
	}

	nesting := nestingOf(def)
	if ns := nesting[0].Namespace(); ns != "" {
		w.b.WriteString(quoteILDotted(ns))
		w.b.WriteByte('.')
	}

	for i, d := range nesting {
		if i > 0 {
			w.b.WriteByte('/')
		}
		w.b.WriteString(quoteILName(d.Name()))
	}
}

func (w *ILWriter) writeDimensions(a *Array) {
	if a.IsVector() {
		w.b.WriteString("[]")
		return
	}

	w.b.WriteByte('[')

	if len(a.dims) == 1 && a.dims[0] == UnboundedDimension {
		w.b.WriteString("...")
	}

	for i, d := range a.dims {
		if i > 0 {
			w.b.WriteByte(',')
		}

		switch {
		case !d.HasLowerBound() && !d.HasSize():
		case !d.HasSize():
			w.b.WriteString(strconv.Itoa(d.LowerBound))
			w.b.WriteString("...")
		case !d.HasLowerBound() || d.LowerBound == 0:
			w.b.WriteString(strconv.Itoa(d.Size))
		default:
			w.b.WriteString(strconv.Itoa(d.LowerBound))
			w.b.WriteString("...")
			w.b.WriteString(strconv.Itoa(d.LowerBound + d.Size - 1))
		}
	}

	w.b.WriteByte(']')
}

// writeSignature writes "[instance ][explicit ][conv ]ret name(params)". A
// nil writer renders nested types relative to their own modules.
func writeSignature(b *strings.Builder, w *ILWriter, s MethodSignature, name string) {
	if s.HasThis {
		b.WriteString("instance ")
	}

	if s.ExplicitThis {
		b.WriteString("explicit ")
	}

	if conv := s.CallingConvention.String(); conv != "" {
		b.WriteString(conv)
		b.WriteByte(' ')
	}

	typeRef := func(t Type) string {
		if w == nil {
			return ILReference(t)
		}

		nested := NewILWriter(w.context)
		nested.WriteType(t)

		return nested.String()
	}

	b.WriteString(typeRef(s.ReturnType))

	if name != "" {
		b.WriteByte(' ')
		b.WriteString(name)
	}

	b.WriteByte('(')

	for i, p := range s.Parameters {
		if i > 0 {
			b.WriteByte(',')
		}

		b.WriteString(typeRef(p))
	}

	b.WriteByte(')')
}

func joinTypes(ts []Type, render func(Type) string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = render(t)
	}

	return strings.Join(parts, ",")
}

func isILIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' || r == '$' || r == '@' || r == '`' || r == '?':
		case unicode.IsLetter(r):
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}

	return true
}

// quoteILName single-quotes an identifier that ilasm would not accept bare.
func quoteILName(s string) string {
	if isILIdentifier(s) {
		return s
	}

	return "'" + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), "'", `\'`) + "'"
}

func quoteILDotted(s string) string {
	parts := strings.Split(s, ".")
	for i, p := range parts {
		parts[i] = quoteILName(p)
	}

	return strings.Join(parts, ".")
}
