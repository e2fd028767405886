package options

// BindingEnum filters members in the reflection adapter.
type BindingEnum int

const (
	BindingInstance BindingEnum = 1 << iota
	BindingStatic
	BindingPublic
	BindingNonPublic
	BindingDeclaredOnly     // do not walk the base type chain
	BindingIgnoreCase       // member names compare case-insensitively
	BindingFlattenHierarchy // include public and protected static members of base types

	BindingAll  = (1 << iota) - 1
	BindingNone = 0

	// BindingDefault matches the filter used when none is given.
	BindingDefault = BindingInstance | BindingStatic | BindingPublic
)

func (b BindingEnum) Has(f BindingEnum) bool {
	return b&f == f
}

// Any reports whether at least one flag of f is set in b.
func (b BindingEnum) Any(f BindingEnum) bool {
	return b&f != 0
}
