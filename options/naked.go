package options

// NakedEnum selects which wrapper layers are stripped when computing the
// naked form of a type signature.
type NakedEnum int

const (
	NakedIgnorePinned                  NakedEnum = 1 << iota // strip pinned markers
	NakedIgnoreOptionalCustomModifiers                       // strip modopt(...) wrappers
	NakedIgnoreRequiredCustomModifiers                       // strip modreq(...) wrappers
	NakedIgnoreManagedPointers                               // strip managed pointer (&) wrappers
	NakedIgnoreBoxing                                        // strip boxed wrappers

	NakedIgnoreAll             = (1 << iota) - 1 // every layer stripped
	NakedIgnoreCustomModifiers = NakedIgnoreOptionalCustomModifiers | NakedIgnoreRequiredCustomModifiers
	NakedNone                  = 0 // nothing stripped, exact structural comparison

	// NakedDefault is the normalization used by structural equality and hashing.
	NakedDefault = NakedIgnorePinned | NakedIgnoreOptionalCustomModifiers
)

// Has reports whether every flag of f is set in n.
func (n NakedEnum) Has(f NakedEnum) bool {
	return n&f == f
}
