package typesys

import (
	"fmt"

	"clr-typesys/internal/common"
	"clr-typesys/options"
)

// boxedInnerNaking is added to the caller's options when comparing the
// inner types of two boxed nodes.
const boxedInnerNaking = options.NakedIgnorePinned | options.NakedIgnoreCustomModifiers

func equal(a, b Type, opts options.NakedEnum) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a == b {
		return true
	}

	a, b = a.NakedType(opts), b.NakedType(opts)
	if a == b {
		return true
	}

	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case *Intrinsic:
		return x.kind == b.(*Intrinsic).kind

	case *Pointer:
		y := b.(*Pointer)
		return x.managed == y.managed && equal(x.elem, y.elem, opts)

	case *Array:
		y := b.(*Array)
		if len(x.dims) != len(y.dims) {
			return false
		}

		for i := range x.dims {
			if x.dims[i] != y.dims[i] {
				return false
			}
		}

		return equal(x.elem, y.elem, opts)

	case *GenericParameter:
		y := b.(*GenericParameter)
		return x.kind == y.kind && x.ordinal == y.ordinal

	case *GenericInstance:
		y := b.(*GenericInstance)
		if len(x.args) != len(y.args) || !equal(x.definition, y.definition, opts) {
			return false
		}

		for i := range x.args {
			if !equal(x.args[i], y.args[i], opts) {
				return false
			}
		}

		return true

	case *Modified:
		y := b.(*Modified)
		return x.modifier.Required == y.modifier.Required &&
			equal(x.modifier.Type, y.modifier.Type, opts) &&
			equal(x.inner, y.inner, opts)

	case *Boxed:
		return equal(x.inner, b.(*Boxed).inner, opts|boxedInnerNaking)

	case *Pinned:
		return equal(x.elem, b.(*Pinned).elem, opts)

	case *MethodPointer:
		return x.signature.equal(&b.(*MethodPointer).signature, opts)

	case *NamedType:
		return SameDeclaration(x.decl, b.(*NamedType).decl)

	default:
		panic(fmt.Sprintf("typesys: unhandled type variant %T", a))
	}
}

func hashOf(t Type, opts options.NakedEnum) uint64 {
	if t == nil {
		return 0
	}

	t = t.NakedType(opts)
	h := common.NewHasher(uint64(t.Kind()))

	switch x := t.(type) {
	case *Intrinsic:
		h = h.Mix(uint64(x.kind))

	case *Pointer:
		h = h.MixBool(x.managed).Mix(hashOf(x.elem, opts))

	case *Array:
		h = h.Mix(uint64(len(x.dims)))
		for _, d := range x.dims {
			h = h.Mix(uint64(d.LowerBound)).Mix(uint64(d.Size))
		}

		h = h.Mix(hashOf(x.elem, opts))

	case *GenericParameter:
		h = h.Mix(uint64(x.kind)).Mix(uint64(x.ordinal))

	case *GenericInstance:
		h = h.Mix(hashOf(x.definition, opts))
		for _, arg := range x.args {
			h = h.Mix(hashOf(arg, opts))
		}

	case *Modified:
		h = h.MixBool(x.modifier.Required).
			Mix(hashOf(x.modifier.Type, opts)).
			Mix(hashOf(x.inner, opts))

	case *Boxed:
		h = h.Mix(hashOf(x.inner, opts|boxedInnerNaking))

	case *Pinned:
		h = h.Mix(hashOf(x.elem, opts))

	case *MethodPointer:
		h = h.Mix(x.signature.hash(opts))

	case *NamedType:
		def := Definition(x.decl)
		h = h.Mix(uint64(def.Module().Index())).
			MixString(FullName(def)).
			Mix(uint64(len(def.GenericParameters())))

	default:
		panic(fmt.Sprintf("typesys: unhandled type variant %T", t))
	}

	return h.Sum()
}
