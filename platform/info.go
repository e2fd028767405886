// Package platform describes the target platforms a type system is
// evaluated against: native pointer width and the assignability laxity the
// platform's runtime tolerates.
package platform

import (
	"fmt"

	"clr-typesys/internal/diagnostic"
)

// Info is a platform descriptor.
type Info struct {
	// Name identifies the platform, e.g. "x64".
	Name string `yaml:"name"`
	// PointerSize is the native pointer width in bytes (4 or 8).
	PointerSize int `yaml:"pointer_size"`
	// IntrinsicOfOppositeSignAssignable lets an integer intrinsic be
	// assigned to its same-width opposite-sign alternative.
	IntrinsicOfOppositeSignAssignable bool `yaml:"opposite_sign_assignable"`
	// ManagedPointerAssignableToObject lets managed pointers (byrefs) be
	// assigned to object, unless the caller disallows it explicitly.
	ManagedPointerAssignableToObject bool `yaml:"managed_pointer_to_object"`
}

var (
	// X86 is a 32-bit platform that tolerates opposite-sign intrinsics.
	X86 = Info{Name: "x86", PointerSize: 4, IntrinsicOfOppositeSignAssignable: true}
	// X64 is a 64-bit platform that tolerates opposite-sign intrinsics.
	X64 = Info{Name: "x64", PointerSize: 8, IntrinsicOfOppositeSignAssignable: true}
	// Strict is a 64-bit platform without any laxity.
	Strict = Info{Name: "strict", PointerSize: 8}
)

// Default is the descriptor used when none is given.
var Default = X64

// Validate checks that the descriptor is usable.
func (p Info) Validate() error {
	if p.PointerSize != 4 && p.PointerSize != 8 {
		return diagnostic.InvalidArgument("platform.Validate",
			"platform %q: pointer size must be 4 or 8, got %d", p.Name, p.PointerSize)
	}

	return nil
}

// String returns a short description.
func (p Info) String() string {
	return fmt.Sprintf("%s(%d-bit)", p.Name, p.PointerSize*8)
}
