package typesys

import (
	"slices"
	"strings"

	"clr-typesys/internal/common"
	"clr-typesys/internal/diagnostic"
	"clr-typesys/options"
)

// CallingConvention of a method signature.
type CallingConvention int

const (
	CallingConventionDefault CallingConvention = iota
	CallingConventionVarArg
	CallingConventionC
	CallingConventionStdCall
	CallingConventionThisCall
	CallingConventionFastCall
)

// String returns the IL keyword of the convention, empty for the default one.
func (c CallingConvention) String() string {
	switch c {
	case CallingConventionVarArg:
		return "vararg"
	case CallingConventionC:
		return "unmanaged cdecl"
	case CallingConventionStdCall:
		return "unmanaged stdcall"
	case CallingConventionThisCall:
		return "unmanaged thiscall"
	case CallingConventionFastCall:
		return "unmanaged fastcall"
	default:
		return ""
	}
}

// MethodSignature is the shape of a method: convention, instance flags,
// return type and parameter types.
type MethodSignature struct {
	CallingConvention     CallingConvention
	HasThis               bool
	ExplicitThis          bool
	GenericParameterCount int
	ReturnType            Type
	Parameters            []Type
}

func (s *MethodSignature) validate(op string) {
	if s.ReturnType == nil {
		panic(diagnostic.InvalidArgument(op, "nil return type"))
	}

	for i, p := range s.Parameters {
		if p == nil {
			panic(diagnostic.InvalidArgument(op, "nil parameter %d", i))
		}
	}
}

// Equal reports whether s and o are the same signature under default
// naked-type options.
func (s MethodSignature) Equal(o MethodSignature) bool {
	return s.equal(&o, options.NakedDefault)
}

func (s *MethodSignature) equal(o *MethodSignature, opts options.NakedEnum) bool {
	if s.CallingConvention != o.CallingConvention ||
		s.HasThis != o.HasThis ||
		s.ExplicitThis != o.ExplicitThis ||
		s.GenericParameterCount != o.GenericParameterCount ||
		len(s.Parameters) != len(o.Parameters) {
		return false
	}

	if !equal(s.ReturnType, o.ReturnType, opts) {
		return false
	}

	for i := range s.Parameters {
		if !equal(s.Parameters[i], o.Parameters[i], opts) {
			return false
		}
	}

	return true
}

func (s *MethodSignature) hash(opts options.NakedEnum) uint64 {
	h := common.NewHasher(uint64(s.CallingConvention)).
		MixBool(s.HasThis).
		MixBool(s.ExplicitThis).
		Mix(uint64(s.GenericParameterCount)).
		Mix(hashOf(s.ReturnType, opts))

	for _, p := range s.Parameters {
		h = h.Mix(hashOf(p, opts))
	}

	return h.Sum()
}

// Hash is consistent with Equal.
func (s MethodSignature) Hash() uint64 {
	return s.hash(options.NakedDefault)
}

func (s MethodSignature) ContainsGenericArguments() bool {
	return s.ReturnType.ContainsGenericArguments() ||
		slices.ContainsFunc(s.Parameters, Type.ContainsGenericArguments)
}

// MapGenericArguments substitutes through gm and reports whether anything
// changed.
func (s MethodSignature) MapGenericArguments(gm GenericMap) (MethodSignature, bool) {
	if !s.ContainsGenericArguments() {
		return s, false
	}

	out := s
	out.ReturnType = s.ReturnType.MapGenericArguments(gm)
	out.Parameters, _ = common.MapSame(s.Parameters, func(p Type) Type { return p.MapGenericArguments(gm) })

	return out, true
}

// Translate moves the return and parameter types into target.
func (s MethodSignature) Translate(target *Module) (MethodSignature, error) {
	ret, err := s.ReturnType.Translate(target)
	if err != nil {
		return MethodSignature{}, err
	}

	params, err := translateAll(s.Parameters, target)
	if err != nil {
		return MethodSignature{}, err
	}

	out := s
	out.ReturnType = ret
	out.Parameters = params

	return out, nil
}

// String returns the IL form "[instance ][explicit ][conv ]ret (params)".
func (s MethodSignature) String() string {
	var b strings.Builder
	writeSignature(&b, nil, s, "")

	return b.String()
}
