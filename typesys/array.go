package typesys

import (
	"math"
	"slices"

	"clr-typesys/internal/diagnostic"
	"clr-typesys/options"
	"clr-typesys/platform"
)

// Unlimited marks an absent lower bound or size of an array dimension.
const Unlimited = math.MinInt

// ArrayDimension is the (lower bound, size) pair of one array dimension.
// Either field may be Unlimited.
type ArrayDimension struct {
	LowerBound int
	Size       int
}

func (d ArrayDimension) HasLowerBound() bool { return d.LowerBound != Unlimited }
func (d ArrayDimension) HasSize() bool       { return d.Size != Unlimited }

// UnboundedDimension has neither lower bound nor size.
var UnboundedDimension = ArrayDimension{LowerBound: Unlimited, Size: Unlimited}

var vectorDimension = ArrayDimension{LowerBound: 0, Size: Unlimited}

// Array is an array type with one or more dimensions.
type Array struct {
	elem Type
	dims []ArrayDimension
}

// NewVector returns the single-dimension, zero-based array elem[].
func NewVector(elem Type) *Array {
	return NewArray(elem, vectorDimension)
}

// NewArrayOfRank returns an array of rank dimensions without bounds.
func NewArrayOfRank(elem Type, rank int) *Array {
	if rank < 1 {
		panic(diagnostic.InvalidArgument("NewArrayOfRank", "rank %d", rank))
	}

	dims := make([]ArrayDimension, rank)
	for i := range dims {
		dims[i] = UnboundedDimension
	}

	return NewArray(elem, dims...)
}

// NewArray returns an array with the given dimensions. It panics when elem is
// nil or no dimension is given.
func NewArray(elem Type, dims ...ArrayDimension) *Array {
	if elem == nil {
		panic(diagnostic.InvalidArgument("NewArray", "nil element type"))
	}

	if len(dims) == 0 {
		panic(diagnostic.InvalidArgument("NewArray", "array needs at least one dimension"))
	}

	return &Array{elem: elem, dims: slices.Clone(dims)}
}

func (*Array) sealed() {}

func (t *Array) Kind() TypeKind                   { return TypeKindArray }
func (t *Array) Module() *Module                  { return t.elem.Module() }
func (t *Array) ElementType() Type                { return t.elem }
func (t *Array) Rank() int                        { return len(t.dims) }
func (t *Array) Dimensions() []ArrayDimension     { return slices.Clone(t.dims) }
func (t *Array) ContainsGenericArguments() bool   { return t.elem.ContainsGenericArguments() }
func (t *Array) NakedType(options.NakedEnum) Type { return t }
func (t *Array) Classification() Classification   { return ClassReference }
func (t *Array) Hash() uint64                     { return hashOf(t, options.NakedDefault) }
func (t *Array) String() string                   { return ILReference(t) }

// IsVector reports whether the array has rank 1, lower bound 0 and no size.
func (t *Array) IsVector() bool {
	return len(t.dims) == 1 && t.dims[0] == vectorDimension
}

func (t *Array) MapGenericArguments(gm GenericMap) Type {
	if !t.ContainsGenericArguments() {
		return t
	}

	return &Array{elem: t.elem.MapGenericArguments(gm), dims: t.dims}
}

func (t *Array) ValueSize(p platform.Info) (int, error) {
	return p.PointerSize, nil
}

func (t *Array) IsAssignableTo(target Type, gm GenericMap, opts options.AssignEnum) bool {
	return isAssignable(t, target, gm, opts)
}

func (t *Array) Translate(target *Module) (Type, error) {
	if t.Module() == target {
		return t, nil
	}

	if err := checkTranslation("Array.Translate", t.Module(), target); err != nil {
		return nil, err
	}

	elem, err := t.elem.Translate(target)
	if err != nil {
		return nil, err
	}

	return &Array{elem: elem, dims: t.dims}, nil
}
