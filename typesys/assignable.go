package typesys

import (
	"clr-typesys/internal/diagnostic"
	"clr-typesys/options"
	"clr-typesys/primitive"
)

// maxAssignDepth bounds the recursion through variant generic arguments,
// which may expand without end on self-referencing declarations.
const maxAssignDepth = 64

type assigner struct {
	opts  options.AssignEnum
	naked options.NakedEnum
	depth int
}

func isAssignable(src, dst Type, gm GenericMap, opts options.AssignEnum) bool {
	const op = "IsAssignableTo"

	if src == nil || dst == nil {
		panic(diagnostic.InvalidArgument(op, "nil type"))
	}

	a := &assigner{opts: opts, naked: options.NakedDefault}
	if opts.Has(options.AssignIgnoreCustomModifiers) {
		a.naked |= options.NakedIgnoreRequiredCustomModifiers
	}

	return a.assignable(src, dst, gm)
}

func (a *assigner) assignable(src, dst Type, gm GenericMap) bool {
	// custom modifiers are transparent on the source side
	src = src.NakedType(options.NakedIgnoreCustomModifiers)

	if bare := dst.NakedType(options.NakedIgnoreCustomModifiers); src.Kind() == TypeKindPinned || bare.Kind() == TypeKindPinned {
		panic(diagnostic.NotSupported("IsAssignableTo", "pinned type %s is not an assignability operand", pinnedOperand(src, bare)))
	}

	if a.depth >= maxAssignDepth {
		return false
	}

	a.depth++
	defer func() { a.depth-- }()

	dst = dst.NakedType(a.naked)

	if EqualWith(src, dst, a.naked) {
		return true
	}

	switch s := src.(type) {
	case *Intrinsic:
		return a.intrinsic(s, dst, gm)
	case *Pointer:
		return a.pointer(s, dst, gm)
	case *Array:
		return a.array(s, dst, gm)
	case *GenericParameter:
		return a.genericParameter(s, dst, gm)
	case *GenericInstance:
		local := gm.WithTypeArguments(s.args)
		return a.named(s.definition.decl, local, s, dst, gm, false)
	case *NamedType:
		return a.named(s.decl, declarationMap(s.decl, gm), s, dst, gm, false)
	case *Boxed:
		return a.boxed(s, dst, gm)
	case *MethodPointer:
		return a.methodPointer(dst)
	default:
		return false
	}
}

func pinnedOperand(src, dst Type) Type {
	if src.Kind() == TypeKindPinned {
		return src
	}

	return dst
}

// declarationMap binds an open declaration's type parameters to themselves,
// keeping the method-level arguments of the context.
func declarationMap(decl TypeDeclaration, gm GenericMap) GenericMap {
	arity := len(decl.GenericParameters())
	if arity == 0 {
		return gm
	}

	return IdentityMap(decl.Module(), arity, 0).WithMethodArguments(gm.methodArgs)
}

func isObject(t Type) bool {
	switch x := t.(type) {
	case *Intrinsic:
		return x.kind == primitive.IntrinsicObject
	case *NamedType:
		return IsSystemType(Definition(x.decl), "Object")
	default:
		return false
	}
}

func isSystemNamed(t Type, name string) bool {
	n, ok := t.(*NamedType)
	return ok && IsSystemType(Definition(n.decl), name)
}

// isIntrinsicAlias reports whether named is the System type behind intrinsic.
func isIntrinsicAlias(named, intrinsic Type) bool {
	i, ok := intrinsic.(*Intrinsic)
	return ok && isSystemNamed(named, i.kind.SystemName())
}

func (a *assigner) intrinsic(s *Intrinsic, dst Type, gm GenericMap) bool {
	if d, ok := dst.(*Intrinsic); ok {
		if d.kind == primitive.IntrinsicObject {
			return !s.kind.IsValueType()
		}

		return s.module.domain.platform.IntrinsicOfOppositeSignAssignable &&
			s.kind.SignAlternative() != 0 &&
			s.kind.SignAlternative() == d.kind
	}

	if isIntrinsicAlias(dst, s) {
		return true
	}

	if u := EnumUnderlying(dst); u != nil && Equal(u, s) {
		return true
	}

	if s.kind.IsValueType() {
		return false
	}

	// string and object
	if isObject(dst) {
		return true
	}

	st := s.SystemType()
	if st == nil {
		return false
	}

	return a.named(st.decl, gm, st, dst, gm, false)
}

func (a *assigner) pointer(s *Pointer, dst Type, gm GenericMap) bool {
	if isObject(dst) {
		if a.opts.Has(options.AssignDisallowUnconditionalObjectAssignability) {
			return false
		}

		return !s.managed || s.Module().domain.platform.ManagedPointerAssignableToObject
	}

	d, ok := dst.(*Pointer)
	if !ok || d.managed != s.managed {
		return false
	}

	se, de := s.elem.NakedType(a.naked), d.elem.NakedType(a.naked)
	if Classify(se) != Classify(de) {
		return false
	}

	return a.assignable(se, de, gm)
}

func (a *assigner) methodPointer(dst Type) bool {
	if isObject(dst) {
		return !a.opts.Has(options.AssignDisallowUnconditionalObjectAssignability)
	}

	if d, ok := dst.(*Intrinsic); ok {
		return d.kind == primitive.IntrinsicNativeInt || d.kind == primitive.IntrinsicNativeUInt
	}

	return isSystemNamed(dst, "IntPtr") || isSystemNamed(dst, "UIntPtr")
}

func (a *assigner) array(s *Array, dst Type, gm GenericMap) bool {
	if isObject(dst) || isSystemNamed(dst, "Array") {
		return true
	}

	if d, ok := dst.(*Array); ok {
		if s.Rank() != d.Rank() || s.IsVector() != d.IsVector() {
			return false
		}

		se, de := s.elem.NakedType(a.naked), d.elem.NakedType(a.naked)

		c := Classify(se)
		if c != Classify(de) {
			return false
		}

		if c == ClassReference {
			return a.assignable(se, de, gm)
		}

		// value, pointer and open element types are invariant
		return EqualWith(se, de, a.naked)
	}

	if s.IsVector() && isInterface(dst) {
		if list := s.Module().GenericListDefinition(); list != nil && len(list.decl.GenericParameters()) == 1 {
			if a.assignable(NewGenericInstance(list, s.elem), dst, gm) {
				return true
			}
		}
	}

	arr := s.Module().SystemArray()
	if arr == nil {
		return false
	}

	return a.named(arr.decl, gm, arr, dst, gm, false)
}

func isInterface(t Type) bool {
	switch x := t.(type) {
	case *NamedType:
		return x.IsInterface()
	case *GenericInstance:
		return x.definition.IsInterface()
	default:
		return false
	}
}

func (a *assigner) genericParameter(s *GenericParameter, dst Type, gm GenericMap) bool {
	resolved := gm.MustParameter(s.kind, s.ordinal)
	if _, open := resolved.(*GenericParameter); open {
		return EqualWith(resolved, dst, a.naked)
	}

	return a.assignable(resolved, dst, gm)
}

func (a *assigner) boxed(s *Boxed, dst Type, gm GenericMap) bool {
	if isObject(dst) {
		return true
	}

	switch inner := s.inner.NakedType(options.NakedIgnoreCustomModifiers).(type) {
	case *Intrinsic:
		st := inner.SystemType()
		if st == nil {
			return isSystemNamed(dst, "ValueType")
		}

		return a.named(st.decl, gm, st, dst, gm, true)
	case *NamedType:
		return a.named(inner.decl, declarationMap(inner.decl, gm), inner, dst, gm, true)
	case *GenericInstance:
		return a.named(inner.definition.decl, gm.WithTypeArguments(inner.args), inner, dst, gm, true)
	case *GenericParameter:
		resolved := gm.MustParameter(inner.kind, inner.ordinal)
		if _, open := resolved.(*GenericParameter); open {
			return false
		}

		if Classify(resolved) == ClassValue {
			return a.assignable(&Boxed{inner: resolved}, dst, gm)
		}

		return a.assignable(resolved, dst, gm)
	default:
		return false
	}
}

// named walks a declaration: enum and intrinsic aliases, variant generic
// instances of the same definition, then base type and interfaces with the
// declaration's arguments substituted through local. boxed lets a value
// type reach its reference-typed bases.
func (a *assigner) named(decl TypeDeclaration, local GenericMap, self, dst Type, gm GenericMap, boxed bool) bool {
	reference := boxed || Classify(self) != ClassValue

	if reference && isObject(dst) {
		return true
	}

	if u := decl.EnumUnderlyingType(); u != nil && !boxed {
		if Equal(u, dst) || isIntrinsicAlias(dst, u) {
			return true
		}
	}

	if !boxed && isIntrinsicAlias(self, dst) {
		return true
	}

	if d, ok := dst.(*GenericInstance); ok && SameDeclaration(decl, d.definition.decl) && local.Count(GenericKindType) == len(d.args) {
		if a.variantArguments(decl, local.typeArgs, d.args, gm) {
			return true
		}
	}

	if a.opts.Has(options.AssignNoBaseTypes) || !reference {
		return false
	}

	if base := decl.BaseType(); base != nil {
		if a.assignable(base.MapGenericArguments(local), dst, gm) {
			return true
		}
	}

	for _, iface := range decl.Interfaces() {
		if a.assignable(iface.MapGenericArguments(local), dst, gm) {
			return true
		}
	}

	return false
}

func (a *assigner) variantArguments(decl TypeDeclaration, src, dst []Type, gm GenericMap) bool {
	params := decl.GenericParameters()
	variant := decl.Kind() == DeclInterface || decl.Kind() == DeclDelegate

	for i := range src {
		if EqualWith(src[i], dst[i], a.naked) {
			continue
		}

		if !variant || i >= len(params) {
			return false
		}

		switch params[i].Variance() {
		case VarianceCovariant:
			if !IsReferenceType(src[i]) || !a.assignable(src[i], dst[i], gm) {
				return false
			}
		case VarianceContravariant:
			if !IsReferenceType(dst[i]) || !a.assignable(dst[i], src[i], gm) {
				return false
			}
		default:
			return false
		}
	}

	return true
}

// EnumUnderlying returns the underlying type of an enum type, or nil.
func EnumUnderlying(t Type) Type {
	n, ok := t.(*NamedType)
	if !ok || !n.IsEnum() {
		return nil
	}

	return n.decl.EnumUnderlyingType()
}

// IsEnum reports whether t is an enum type.
func IsEnum(t Type) bool {
	return EnumUnderlying(t) != nil
}
