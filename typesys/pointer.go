package typesys

import (
	"clr-typesys/internal/diagnostic"
	"clr-typesys/options"
	"clr-typesys/platform"
)

// Pointer is an unmanaged pointer (T*) or a managed reference (T&).
type Pointer struct {
	elem    Type
	managed bool
}

// NewPointer returns the unmanaged pointer type elem*.
func NewPointer(elem Type) *Pointer {
	return newPointer("NewPointer", elem, false)
}

// NewByRef returns the managed reference type elem&.
func NewByRef(elem Type) *Pointer {
	return newPointer("NewByRef", elem, true)
}

func newPointer(op string, elem Type, managed bool) *Pointer {
	if elem == nil {
		panic(diagnostic.InvalidArgument(op, "nil element type"))
	}

	return &Pointer{elem: elem, managed: managed}
}

func (*Pointer) sealed() {}

func (t *Pointer) Kind() TypeKind                 { return TypeKindPointer }
func (t *Pointer) Module() *Module                { return t.elem.Module() }
func (t *Pointer) ElementType() Type              { return t.elem }
func (t *Pointer) IsManaged() bool                { return t.managed }
func (t *Pointer) ContainsGenericArguments() bool { return t.elem.ContainsGenericArguments() }
func (t *Pointer) Classification() Classification { return ClassPointer }
func (t *Pointer) Hash() uint64                   { return hashOf(t, options.NakedDefault) }
func (t *Pointer) String() string                 { return ILReference(t) }

func (t *Pointer) MapGenericArguments(gm GenericMap) Type {
	if !t.ContainsGenericArguments() {
		return t
	}

	return &Pointer{elem: t.elem.MapGenericArguments(gm), managed: t.managed}
}

func (t *Pointer) NakedType(opts options.NakedEnum) Type {
	if t.managed && opts.Has(options.NakedIgnoreManagedPointers) {
		return t.elem.NakedType(opts)
	}

	return t
}

func (t *Pointer) ValueSize(p platform.Info) (int, error) {
	return p.PointerSize, nil
}

func (t *Pointer) IsAssignableTo(target Type, gm GenericMap, opts options.AssignEnum) bool {
	return isAssignable(t, target, gm, opts)
}

func (t *Pointer) Translate(target *Module) (Type, error) {
	if t.Module() == target {
		return t, nil
	}

	if err := checkTranslation("Pointer.Translate", t.Module(), target); err != nil {
		return nil, err
	}

	elem, err := t.elem.Translate(target)
	if err != nil {
		return nil, err
	}

	return &Pointer{elem: elem, managed: t.managed}, nil
}
