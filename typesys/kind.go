package typesys

import "clr-typesys/internal/common"

// TypeKind is the variant tag of a Type.
type TypeKind int

const (
	TypeKindUnknown TypeKind = iota
	TypeKindIntrinsic
	TypeKindPointer
	TypeKindArray
	TypeKindGenericParameter
	TypeKindGenericInstance
	TypeKindModified
	TypeKindBoxed
	TypeKindPinned
	TypeKindMethodPointer
	TypeKindNamed
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindIntrinsic:
		return "intrinsic"
	case TypeKindPointer:
		return "pointer"
	case TypeKindArray:
		return "array"
	case TypeKindGenericParameter:
		return "generic-parameter"
	case TypeKindGenericInstance:
		return "generic-instance"
	case TypeKindModified:
		return "modified"
	case TypeKindBoxed:
		return "boxed"
	case TypeKindPinned:
		return "pinned"
	case TypeKindMethodPointer:
		return "method-pointer"
	case TypeKindNamed:
		return "named"
	default:
		return common.UnknownStr
	}
}

// Classification tells how values of a type are stored.
type Classification int

const (
	ClassUnknown Classification = iota
	ClassValue
	ClassReference
	ClassPointer
	ClassGenericParameter
)

// String returns a human-readable classification name.
func (c Classification) String() string {
	switch c {
	case ClassValue:
		return "value"
	case ClassReference:
		return "reference"
	case ClassPointer:
		return "pointer"
	case ClassGenericParameter:
		return "generic-parameter"
	default:
		return common.UnknownStr
	}
}

// GenericKind tells whether a generic parameter belongs to a type or a method.
type GenericKind int

const (
	GenericKindType GenericKind = iota
	GenericKindMethod
)

// String returns "type" or "method".
func (k GenericKind) String() string {
	switch k {
	case GenericKindType:
		return "type"
	case GenericKindMethod:
		return "method"
	default:
		return common.UnknownStr
	}
}

// ILPrefix returns "!" for type parameters and "!!" for method parameters.
func (k GenericKind) ILPrefix() string {
	if k == GenericKindMethod {
		return "!!"
	}

	return "!"
}

// DeclarationKind is the shape of a type declaration.
type DeclarationKind int

const (
	DeclClass DeclarationKind = iota
	DeclValueType
	DeclInterface
	DeclEnum
	DeclDelegate
)

// String returns a human-readable declaration kind.
func (k DeclarationKind) String() string {
	switch k {
	case DeclClass:
		return "class"
	case DeclValueType:
		return "valuetype"
	case DeclInterface:
		return "interface"
	case DeclEnum:
		return "enum"
	case DeclDelegate:
		return "delegate"
	default:
		return common.UnknownStr
	}
}

// IsValueType reports whether instances are stored by value.
func (k DeclarationKind) IsValueType() bool {
	return k == DeclValueType || k == DeclEnum
}

// Visibility is the accessibility of a type or member.
type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityFamilyAndAssembly
	VisibilityAssembly
	VisibilityFamily
	VisibilityFamilyOrAssembly
	VisibilityPublic
)

// String returns the IL keyword of the visibility.
func (v Visibility) String() string {
	switch v {
	case VisibilityPrivate:
		return "private"
	case VisibilityFamilyAndAssembly:
		return "famandassem"
	case VisibilityAssembly:
		return "assembly"
	case VisibilityFamily:
		return "family"
	case VisibilityFamilyOrAssembly:
		return "famorassem"
	case VisibilityPublic:
		return "public"
	default:
		return common.UnknownStr
	}
}

// ParseVisibility is the inverse of Visibility.String.
func ParseVisibility(s string) (Visibility, bool) {
	for v := VisibilityPrivate; v <= VisibilityPublic; v++ {
		if v.String() == s {
			return v, true
		}
	}

	return 0, false
}

// ParseDeclarationKind is the inverse of DeclarationKind.String.
func ParseDeclarationKind(s string) (DeclarationKind, bool) {
	for k := DeclClass; k <= DeclDelegate; k++ {
		if k.String() == s {
			return k, true
		}
	}

	return 0, false
}
