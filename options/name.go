package options

// NameEnum controls the reflection-style type name writer.
type NameEnum int

const (
	NameAssemblyQualified NameEnum = 1 << iota // append ", <scope>" to the outermost name
	NameQualifyArguments                       // write generic arguments as [[name, scope]]
	NameOmitNamespace                          // write the simple name only

	NameAll  = (1 << iota) - 1
	NameNone = 0
)

func (n NameEnum) Has(f NameEnum) bool {
	return n&f == f
}
