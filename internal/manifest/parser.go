package manifest

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"clr-typesys/internal/diagnostic"
	"clr-typesys/options"
	"clr-typesys/primitive"
	"clr-typesys/typesys"
)

// ParseType parses an IL type reference, as written by typesys.ILWriter,
// into a type owned by m. Named types without a "[scope]" resolve in m and
// then in the domain's core library.
func ParseType(m *typesys.Module, text string) (t typesys.Type, err error) {
	if m == nil {
		return nil, diagnostic.InvalidArgument("ParseType", "nil module")
	}

	defer diagnostic.Recover(&err)

	p := &parser{src: text, module: m}

	t, err = p.parseType()
	if err != nil {
		return nil, err
	}

	p.skipSpace()

	if !p.eof() {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}

	return t, nil
}

// MustParseType is ParseType that panics on failure.
func MustParseType(m *typesys.Module, text string) typesys.Type {
	t, err := ParseType(m, text)
	if err != nil {
		panic(err)
	}

	return t
}

type parser struct {
	src    string
	pos    int
	module *typesys.Module
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("parse type %q at %d: %s", p.src, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) skipSpace() {
	for !p.eof() && p.src[p.pos] == ' ' {
		p.pos++
	}
}

// peek returns the next non-space byte without consuming it.
func (p *parser) peek() byte {
	p.skipSpace()

	if p.eof() {
		return 0
	}

	return p.src[p.pos]
}

func (p *parser) accept(s string) bool {
	p.skipSpace()

	if strings.HasPrefix(p.src[p.pos:], s) {
		p.pos += len(s)
		return true
	}

	return false
}

func (p *parser) expect(s string) error {
	if !p.accept(s) {
		return p.errorf("expected %q", s)
	}

	return nil
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' || r == '@' || r == '`' || r == '?' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// acceptKeyword consumes kw when it is followed by a non-identifier rune.
func (p *parser) acceptKeyword(kw string) bool {
	p.skipSpace()

	rest := p.src[p.pos:]
	if !strings.HasPrefix(rest, kw) {
		return false
	}

	if len(rest) > len(kw) && isIdentRune(rune(rest[len(kw)])) {
		return false
	}

	p.pos += len(kw)

	return true
}

// ident reads a bare or single-quoted identifier.
func (p *parser) ident() (string, error) {
	p.skipSpace()

	if p.eof() {
		return "", p.errorf("expected identifier")
	}

	if p.src[p.pos] == '\'' {
		return p.quoted()
	}

	start := p.pos
	for _, r := range p.src[p.pos:] {
		if !isIdentRune(r) {
			break
		}

		p.pos += len(string(r))
	}

	if p.pos == start {
		return "", p.errorf("expected identifier")
	}

	return p.src[start:p.pos], nil
}

func (p *parser) quoted() (string, error) {
	var b strings.Builder

	p.pos++ // opening quote
	for !p.eof() {
		c := p.src[p.pos]
		p.pos++

		switch c {
		case '\\':
			if p.eof() {
				return "", p.errorf("unterminated escape")
			}

			b.WriteByte(p.src[p.pos])
			p.pos++
		case '\'':
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
	}

	return "", p.errorf("unterminated quoted identifier")
}

// dotted reads ident ('.' ident)*.
func (p *parser) dotted() (string, error) {
	first, err := p.ident()
	if err != nil {
		return "", err
	}

	parts := []string{first}
	for !p.eof() && p.src[p.pos] == '.' && !strings.HasPrefix(p.src[p.pos:], "...") {
		p.pos++

		next, err := p.ident()
		if err != nil {
			return "", err
		}

		parts = append(parts, next)
	}

	return strings.Join(parts, "."), nil
}

func (p *parser) number() (int, error) {
	p.skipSpace()

	start := p.pos
	if !p.eof() && p.src[p.pos] == '-' {
		p.pos++
	}

	for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}

	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, p.errorf("expected number")
	}

	return n, nil
}

func (p *parser) parseType() (typesys.Type, error) {
	t, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	return p.parseSuffixes(t)
}

func (p *parser) parsePrefix() (typesys.Type, error) {
	switch {
	case p.accept("!!"):
		n, err := p.number()
		if err != nil {
			return nil, err
		}

		return typesys.NewGenericParameter(p.module, typesys.GenericKindMethod, n), nil

	case p.accept("!"):
		n, err := p.number()
		if err != nil {
			return nil, err
		}

		return typesys.NewGenericParameter(p.module, typesys.GenericKindType, n), nil

	case p.acceptKeyword("class"), p.acceptKeyword("valuetype"):
		named, err := p.typeName()
		if err != nil {
			return nil, err
		}

		if p.peek() == '<' {
			return p.genericArguments(named)
		}

		return named, nil

	case p.acceptKeyword("boxed"):
		if err := p.expect("("); err != nil {
			return nil, err
		}

		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}

		if err := p.expect(")"); err != nil {
			return nil, err
		}

		return typesys.NewBoxed(inner), nil

	case p.acceptKeyword("method"):
		return p.methodPointer()

	case p.acceptKeyword("native"):
		word, err := p.ident()
		if err != nil {
			return nil, err
		}

		return p.intrinsic("native " + word)
	}

	word, err := p.ident()
	if err != nil {
		return nil, err
	}

	return p.intrinsic(word)
}

func (p *parser) intrinsic(name string) (typesys.Type, error) {
	k := primitive.FromILName(name)
	if !k.IsValid() {
		return nil, p.errorf("unknown type keyword %q", name)
	}

	return p.module.Intrinsic(k), nil
}

// typeName reads "[scope]NS.Name/Nested" and resolves it into p.module.
func (p *parser) typeName() (*typesys.NamedType, error) {
	scope := p.module

	if p.accept("[") {
		name, err := p.dotted()
		if err != nil {
			return nil, err
		}

		if err := p.expect("]"); err != nil {
			return nil, err
		}

		if scope = p.module.Domain().ModuleByName(name); scope == nil {
			return nil, p.errorf("unknown scope %q", name)
		}
	}

	fullName, err := p.dotted()
	if err != nil {
		return nil, err
	}

	for p.accept("/") {
		nested, err := p.ident()
		if err != nil {
			return nil, err
		}

		fullName += "/" + nested
	}

	named, err := scope.FindType(fullName, options.LookupOnlyExisting)
	if err == nil && named == nil && scope == p.module {
		if corlib := p.module.Domain().CoreLibrary(); corlib != nil && corlib != scope {
			named, err = corlib.FindType(fullName, options.LookupOnlyExisting)
		}
	}

	if err != nil {
		return nil, err
	}

	if named == nil {
		_, err = scope.FindType(fullName, options.LookupDefault)
		return nil, fmt.Errorf("parse type %q: %w", p.src, err)
	}

	t, err := named.Translate(p.module)
	if err != nil {
		return nil, err
	}

	return t.(*typesys.NamedType), nil
}

func (p *parser) typeList(closing string) ([]typesys.Type, error) {
	var out []typesys.Type

	if p.accept(closing) {
		return out, nil
	}

	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}

		out = append(out, t)

		if p.accept(closing) {
			return out, nil
		}

		if err := p.expect(","); err != nil {
			return nil, err
		}
	}
}

func (p *parser) genericArguments(def *typesys.NamedType) (t typesys.Type, err error) {
	p.accept("<")

	args, err := p.typeList(">")
	if err != nil {
		return nil, err
	}

	if n := len(def.Declaration().GenericParameters()); n != len(args) {
		return nil, p.errorf("%s takes %d type arguments, got %d", def.FullName(), n, len(args))
	}

	return typesys.NewGenericInstance(def, args...), nil
}

var callingConventions = map[string]typesys.CallingConvention{
	"cdecl":    typesys.CallingConventionC,
	"stdcall":  typesys.CallingConventionStdCall,
	"thiscall": typesys.CallingConventionThisCall,
	"fastcall": typesys.CallingConventionFastCall,
}

func (p *parser) methodPointer() (typesys.Type, error) {
	var sig typesys.MethodSignature

	sig.HasThis = p.acceptKeyword("instance")
	sig.ExplicitThis = p.acceptKeyword("explicit")

	switch {
	case p.acceptKeyword("vararg"):
		sig.CallingConvention = typesys.CallingConventionVarArg
	case p.acceptKeyword("unmanaged"):
		word, err := p.ident()
		if err != nil {
			return nil, err
		}

		conv, ok := callingConventions[word]
		if !ok {
			return nil, p.errorf("unknown calling convention %q", word)
		}

		sig.CallingConvention = conv
	}

	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}

	sig.ReturnType = ret

	if err := p.expect("*"); err != nil {
		return nil, err
	}

	if err := p.expect("("); err != nil {
		return nil, err
	}

	if sig.Parameters, err = p.typeList(")"); err != nil {
		return nil, err
	}

	return typesys.NewMethodPointer(p.module, sig), nil
}

func (p *parser) parseSuffixes(t typesys.Type) (typesys.Type, error) {
	for {
		switch {
		case p.peek() == '*' && !p.pointerIsMethodMarker():
			p.pos++
			t = typesys.NewPointer(t)

		case p.accept("&"):
			t = typesys.NewByRef(t)

		case p.accept("[]"):
			t = typesys.NewVector(t)

		case p.peek() == '[':
			dims, err := p.dimensions()
			if err != nil {
				return nil, err
			}

			t = typesys.NewArray(t, dims...)

		case p.acceptKeyword("pinned"):
			t = typesys.NewPinned(t)

		case p.acceptKeyword("modreq"):
			mod, err := p.modifierType()
			if err != nil {
				return nil, err
			}

			t = typesys.NewRequiredModifier(t, mod)

		case p.acceptKeyword("modopt"):
			mod, err := p.modifierType()
			if err != nil {
				return nil, err
			}

			t = typesys.NewOptionalModifier(t, mod)

		default:
			return t, nil
		}
	}
}

// pointerIsMethodMarker reports whether the '*' at the cursor is the
// "*(" of a method pointer rather than a pointer suffix.
func (p *parser) pointerIsMethodMarker() bool {
	rest := strings.TrimLeft(p.src[p.pos+1:], " ")
	return strings.HasPrefix(rest, "(")
}

func (p *parser) modifierType() (typesys.Type, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}

	var (
		t   typesys.Type
		err error
	)

	if p.startsTypeKeyword() {
		t, err = p.parseType()
	} else {
		t, err = p.typeName()
	}

	if err != nil {
		return nil, err
	}

	if err := p.expect(")"); err != nil {
		return nil, err
	}

	return t, nil
}

var typeKeywords = map[string]bool{
	"class": true, "valuetype": true, "boxed": true, "method": true, "native": true,
}

// startsTypeKeyword reports whether the cursor is at a full type reference
// rather than at a bare type name.
func (p *parser) startsTypeKeyword() bool {
	if c := p.peek(); c == '!' || c == '[' || c == '\'' {
		return c == '!'
	}

	save := p.pos
	defer func() { p.pos = save }()

	word, err := p.ident()
	if err != nil {
		return false
	}

	return typeKeywords[word] || primitive.FromILName(word).IsValid()
}

func (p *parser) dimensions() ([]typesys.ArrayDimension, error) {
	p.accept("[")

	if p.accept("...]") {
		return []typesys.ArrayDimension{typesys.UnboundedDimension}, nil
	}

	var dims []typesys.ArrayDimension

	for {
		d, err := p.dimension()
		if err != nil {
			return nil, err
		}

		dims = append(dims, d)

		if p.accept("]") {
			return dims, nil
		}

		if err := p.expect(","); err != nil {
			return nil, err
		}
	}
}

func (p *parser) dimension() (typesys.ArrayDimension, error) {
	if c := p.peek(); c == ',' || c == ']' {
		return typesys.UnboundedDimension, nil
	}

	lower, err := p.number()
	if err != nil {
		return typesys.ArrayDimension{}, err
	}

	if !p.accept("...") {
		return typesys.ArrayDimension{LowerBound: 0, Size: lower}, nil
	}

	if c := p.peek(); c == ',' || c == ']' {
		return typesys.ArrayDimension{LowerBound: lower, Size: typesys.Unlimited}, nil
	}

	upper, err := p.number()
	if err != nil {
		return typesys.ArrayDimension{}, err
	}

	if upper < lower {
		return typesys.ArrayDimension{}, p.errorf("upper bound %d below lower bound %d", upper, lower)
	}

	return typesys.ArrayDimension{LowerBound: lower, Size: upper - lower + 1}, nil
}
