package metadata

import (
	"github.com/hashicorp/go-set/v3"
	"modernc.org/mathutil"

	"clr-typesys/internal/diagnostic"
	"clr-typesys/options"
	"clr-typesys/platform"
	"clr-typesys/typesys"
)

// Layout is the sequential layout of a value type's instance fields.
type Layout struct {
	Size  int
	Align int
	// Offsets maps every instance field name to its byte offset.
	Offsets map[string]int
}

// ComputeLayout lays out t's instance fields with natural alignment, capped
// by the type's packing. gm closes t's generic parameters. The size is at
// least one byte and at least the explicit class size.
func ComputeLayout(t *TypeDef, p platform.Info, gm typesys.GenericMap) (layout Layout, err error) {
	defer diagnostic.Recover(&err)

	return newLayouter(p).layout(t, gm)
}

type layouter struct {
	platform platform.Info
	active   *set.Set[*TypeDef]
}

func newLayouter(p platform.Info) *layouter {
	return &layouter{platform: p, active: set.New[*TypeDef](4)}
}

func (l *layouter) layout(t *TypeDef, gm typesys.GenericMap) (Layout, error) {
	if !l.active.Insert(t) {
		return Layout{}, diagnostic.InvalidOperation("ComputeLayout", "%s contains itself", t)
	}
	defer l.active.Remove(t)

	out := Layout{Align: 1, Offsets: make(map[string]int)}
	offset := 0

	for f := range t.fields.All() {
		if !f.IsInstance() {
			continue
		}

		ft := f.fieldType
		if ft.ContainsGenericArguments() {
			ft = ft.MapGenericArguments(gm)
		}

		size, align, err := l.sizeAlign(ft)
		if err != nil {
			return Layout{}, err
		}

		if t.packing > 0 {
			align = mathutil.Min(align, t.packing)
		}

		offset = alignUp(offset, align)
		out.Offsets[f.name] = offset
		offset += size
		out.Align = mathutil.Max(out.Align, align)
	}

	out.Size = mathutil.Max(alignUp(offset, out.Align), 1)
	out.Size = mathutil.Max(out.Size, t.classSize)

	return out, nil
}

func (l *layouter) sizeAlign(ft typesys.Type) (size, align int, err error) {
	ft = ft.NakedType(options.NakedIgnoreCustomModifiers)

	if typesys.Classify(ft) == typesys.ClassValue {
		var (
			decl typesys.TypeDeclaration
			gm   typesys.GenericMap
		)

		switch x := ft.(type) {
		case *typesys.NamedType:
			decl = typesys.Definition(x.Declaration())
		case *typesys.GenericInstance:
			decl, gm = typesys.Definition(x.Definition().Declaration()), x.GenericMap()
		}

		if td, ok := decl.(*TypeDef); ok && td.EnumUnderlyingType() == nil && !td.Intrinsic().IsValid() {
			inner, err := l.layout(td, gm)
			if err != nil {
				return 0, 0, err
			}

			return inner.Size, inner.Align, nil
		}
	}

	size, err = ft.ValueSize(l.platform)
	if err != nil {
		return 0, 0, err
	}

	return size, mathutil.Max(mathutil.Min(size, l.platform.PointerSize), 1), nil
}

// alignUp rounds x up to a multiple of the power of two a.
func alignUp(x, a int) int {
	return (x + a - 1) &^ (a - 1)
}
