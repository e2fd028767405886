package typesys

import (
	"clr-typesys/internal/diagnostic"
	"clr-typesys/options"
	"clr-typesys/platform"
)

// Pinned marks a local whose referent the garbage collector must not move.
// It is transparent to equality and is never a valid assignability operand.
type Pinned struct {
	elem Type
}

func NewPinned(elem Type) *Pinned {
	if elem == nil {
		panic(diagnostic.InvalidArgument("NewPinned", "nil element type"))
	}

	return &Pinned{elem: elem}
}

func (*Pinned) sealed() {}

func (t *Pinned) Kind() TypeKind                 { return TypeKindPinned }
func (t *Pinned) Module() *Module                { return t.elem.Module() }
func (t *Pinned) ElementType() Type              { return t.elem }
func (t *Pinned) ContainsGenericArguments() bool { return t.elem.ContainsGenericArguments() }
func (t *Pinned) Classification() Classification { return t.elem.Classification() }
func (t *Pinned) Hash() uint64                   { return hashOf(t, options.NakedDefault) }
func (t *Pinned) String() string                 { return ILReference(t) }

func (t *Pinned) MapGenericArguments(gm GenericMap) Type {
	if !t.ContainsGenericArguments() {
		return t
	}

	return &Pinned{elem: t.elem.MapGenericArguments(gm)}
}

func (t *Pinned) NakedType(opts options.NakedEnum) Type {
	if opts.Has(options.NakedIgnorePinned) {
		return t.elem.NakedType(opts)
	}

	return t
}

func (t *Pinned) ValueSize(p platform.Info) (int, error) {
	return t.elem.ValueSize(p)
}

// IsAssignableTo panics with ErrNotSupported.
func (t *Pinned) IsAssignableTo(target Type, gm GenericMap, opts options.AssignEnum) bool {
	return isAssignable(t, target, gm, opts)
}

func (t *Pinned) Translate(target *Module) (Type, error) {
	if t.Module() == target {
		return t, nil
	}

	if err := checkTranslation("Pinned.Translate", t.Module(), target); err != nil {
		return nil, err
	}

	elem, err := t.elem.Translate(target)
	if err != nil {
		return nil, err
	}

	return &Pinned{elem: elem}, nil
}
