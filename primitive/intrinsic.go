package primitive

import (
	"reflect"
	"unsafe"
)

//go:generate go tool stringer -type=IntrinsicEnum -output=intrinsic_string.go

// IntrinsicEnum enumerates the built-in types of the runtime that have a
// dedicated element type in metadata signatures.
type IntrinsicEnum int

const (
	_ IntrinsicEnum = iota // skip zero value, use it as a default (invalid) value for IntrinsicEnum

	IntrinsicVoid
	IntrinsicBoolean
	IntrinsicChar
	IntrinsicInt8
	IntrinsicUInt8
	IntrinsicInt16
	IntrinsicUInt16
	IntrinsicInt32
	IntrinsicUInt32
	IntrinsicInt64
	IntrinsicUInt64
	IntrinsicFloat32
	IntrinsicFloat64
	IntrinsicNativeInt
	IntrinsicNativeUInt
	IntrinsicString
	IntrinsicObject
	IntrinsicTypedReference

	// IntrinsicTotal is a constant that represents the total number of intrinsics defined
	IntrinsicTotal = int(iota)
)

// SizePlatformDependent is returned by FixedSize for intrinsics whose size
// is a multiple of the native pointer width.
const SizePlatformDependent = -1

type intrinsicInfo struct {
	ilName   string
	sysName  string
	size     int // bytes, or SizePlatformDependent
	words    int // native words when size is SizePlatformDependent
	signAlt  IntrinsicEnum
	value    bool
	signed   bool
	unsigned bool
	float    bool
}

var intrinsics = [IntrinsicTotal]intrinsicInfo{
	IntrinsicVoid:           {ilName: "void", sysName: "Void", size: 0, value: true},
	IntrinsicBoolean:        {ilName: "bool", sysName: "Boolean", size: 1, value: true},
	IntrinsicChar:           {ilName: "char", sysName: "Char", size: 2, value: true},
	IntrinsicInt8:           {ilName: "int8", sysName: "SByte", size: 1, signAlt: IntrinsicUInt8, value: true, signed: true},
	IntrinsicUInt8:          {ilName: "uint8", sysName: "Byte", size: 1, signAlt: IntrinsicInt8, value: true, unsigned: true},
	IntrinsicInt16:          {ilName: "int16", sysName: "Int16", size: 2, signAlt: IntrinsicUInt16, value: true, signed: true},
	IntrinsicUInt16:         {ilName: "uint16", sysName: "UInt16", size: 2, signAlt: IntrinsicInt16, value: true, unsigned: true},
	IntrinsicInt32:          {ilName: "int32", sysName: "Int32", size: 4, signAlt: IntrinsicUInt32, value: true, signed: true},
	IntrinsicUInt32:         {ilName: "uint32", sysName: "UInt32", size: 4, signAlt: IntrinsicInt32, value: true, unsigned: true},
	IntrinsicInt64:          {ilName: "int64", sysName: "Int64", size: 8, signAlt: IntrinsicUInt64, value: true, signed: true},
	IntrinsicUInt64:         {ilName: "uint64", sysName: "UInt64", size: 8, signAlt: IntrinsicInt64, value: true, unsigned: true},
	IntrinsicFloat32:        {ilName: "float32", sysName: "Single", size: 4, value: true, float: true},
	IntrinsicFloat64:        {ilName: "float64", sysName: "Double", size: 8, value: true, float: true},
	IntrinsicNativeInt:      {ilName: "native int", sysName: "IntPtr", size: SizePlatformDependent, words: 1, signAlt: IntrinsicNativeUInt, value: true, signed: true},
	IntrinsicNativeUInt:     {ilName: "native uint", sysName: "UIntPtr", size: SizePlatformDependent, words: 1, signAlt: IntrinsicNativeInt, value: true, unsigned: true},
	IntrinsicString:         {ilName: "string", sysName: "String", size: SizePlatformDependent, words: 1},
	IntrinsicObject:         {ilName: "object", sysName: "Object", size: SizePlatformDependent, words: 1},
	IntrinsicTypedReference: {ilName: "typedref", sysName: "TypedReference", size: SizePlatformDependent, words: 2, value: true},
}

// SystemNamespace is the namespace of every intrinsic's system type.
const SystemNamespace = "System"

// IsValid reports whether k is one of the defined intrinsics.
func (k IntrinsicEnum) IsValid() bool {
	return k > 0 && int(k) < IntrinsicTotal
}

func (k IntrinsicEnum) info() intrinsicInfo {
	if !k.IsValid() {
		panic("invalid intrinsic requested: " + k.String())
	}

	return intrinsics[k]
}

// ILName returns the IL assembler keyword of the intrinsic.
func (k IntrinsicEnum) ILName() string {
	return k.info().ilName
}

// SystemName returns the simple name of the intrinsic's system type, e.g. "Int32".
func (k IntrinsicEnum) SystemName() string {
	return k.info().sysName
}

// ReflectionName returns the namespace-qualified system type name, e.g. "System.Int32".
func (k IntrinsicEnum) ReflectionName() string {
	return SystemNamespace + "." + k.info().sysName
}

// FixedSize returns the size in bytes, or SizePlatformDependent.
func (k IntrinsicEnum) FixedSize() int {
	return k.info().size
}

// SizeOn returns the size in bytes on a platform with the given pointer width.
func (k IntrinsicEnum) SizeOn(pointerSize int) int {
	info := k.info()
	if info.size == SizePlatformDependent {
		return info.words * pointerSize
	}

	return info.size
}

// SignAlternative returns the intrinsic of the same width and opposite
// signedness, or zero when there is none.
func (k IntrinsicEnum) SignAlternative() IntrinsicEnum {
	return k.info().signAlt
}

func (k IntrinsicEnum) IsValueType() bool {
	return k.info().value
}

func (k IntrinsicEnum) IsReferenceType() bool {
	return k.IsValid() && !k.info().value
}

func (k IntrinsicEnum) IsInteger() bool {
	info := k.info()
	return info.signed || info.unsigned
}

func (k IntrinsicEnum) IsSigned() bool {
	return k.info().signed
}

func (k IntrinsicEnum) IsUnsigned() bool {
	return k.info().unsigned
}

func (k IntrinsicEnum) IsFloat() bool {
	return k.info().float
}

// IsPointerSized reports whether the intrinsic is exactly one native word wide.
func (k IntrinsicEnum) IsPointerSized() bool {
	info := k.info()
	return info.size == SizePlatformDependent && info.words == 1
}

// FromILName returns the intrinsic with the given IL keyword, or zero.
func FromILName(name string) IntrinsicEnum {
	for k := IntrinsicEnum(1); int(k) < IntrinsicTotal; k++ {
		if intrinsics[k].ilName == name {
			return k
		}
	}

	return 0
}

// FromReflectionName returns the intrinsic whose system type has the given
// namespace-qualified name, or zero.
func FromReflectionName(name string) IntrinsicEnum {
	for k := IntrinsicEnum(1); int(k) < IntrinsicTotal; k++ {
		if k.ReflectionName() == name {
			return k
		}
	}

	return 0
}

// FromReflectType maps a Go type to the intrinsic with the same native
// representation. Go int and uint follow the host word size and map to the
// native integers.
func FromReflectType(rtype reflect.Type) IntrinsicEnum {
	if rtype == nil {
		return 0
	}

	switch rtype {
	case reflect.TypeFor[bool]():
		return IntrinsicBoolean
	case reflect.TypeFor[int8]():
		return IntrinsicInt8
	case reflect.TypeFor[uint8]():
		return IntrinsicUInt8
	case reflect.TypeFor[int16]():
		return IntrinsicInt16
	case reflect.TypeFor[uint16]():
		return IntrinsicUInt16
	case reflect.TypeFor[int32]():
		return IntrinsicInt32
	case reflect.TypeFor[uint32]():
		return IntrinsicUInt32
	case reflect.TypeFor[int64]():
		return IntrinsicInt64
	case reflect.TypeFor[uint64]():
		return IntrinsicUInt64
	case reflect.TypeFor[float32]():
		return IntrinsicFloat32
	case reflect.TypeFor[float64]():
		return IntrinsicFloat64
	case reflect.TypeFor[int](), reflect.TypeFor[unsafe.Pointer]():
		return IntrinsicNativeInt
	case reflect.TypeFor[uint](), reflect.TypeFor[uintptr]():
		return IntrinsicNativeUInt
	case reflect.TypeFor[string]():
		return IntrinsicString
	case reflect.TypeFor[any]():
		return IntrinsicObject
	}

	return 0
}

// ReflectType returns the Go type with the intrinsic's native
// representation, or nil for intrinsics without one (void, typedref).
func (k IntrinsicEnum) ReflectType() reflect.Type {
	switch k {
	default:
		return nil
	case IntrinsicBoolean:
		return reflect.TypeFor[bool]()
	case IntrinsicChar, IntrinsicUInt16:
		return reflect.TypeFor[uint16]()
	case IntrinsicInt8:
		return reflect.TypeFor[int8]()
	case IntrinsicUInt8:
		return reflect.TypeFor[uint8]()
	case IntrinsicInt16:
		return reflect.TypeFor[int16]()
	case IntrinsicInt32:
		return reflect.TypeFor[int32]()
	case IntrinsicUInt32:
		return reflect.TypeFor[uint32]()
	case IntrinsicInt64:
		return reflect.TypeFor[int64]()
	case IntrinsicUInt64:
		return reflect.TypeFor[uint64]()
	case IntrinsicFloat32:
		return reflect.TypeFor[float32]()
	case IntrinsicFloat64:
		return reflect.TypeFor[float64]()
	case IntrinsicNativeInt:
		return reflect.TypeFor[int]()
	case IntrinsicNativeUInt:
		return reflect.TypeFor[uintptr]()
	case IntrinsicString:
		return reflect.TypeFor[string]()
	case IntrinsicObject:
		return reflect.TypeFor[any]()
	}
}
