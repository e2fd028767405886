package options

// LookupEnum selects the behavior of type lookup by name.
type LookupEnum int

const (
	LookupOnlyExisting      LookupEnum = 1 << iota // return nil instead of failing when missing
	LookupGenericDefinition                        // the result must be a generic type definition
	LookupIgnoreCase                               // compare names case-insensitively

	LookupAll     = (1 << iota) - 1
	LookupDefault = 0
)

func (l LookupEnum) Has(f LookupEnum) bool {
	return l&f == f
}
