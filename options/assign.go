package options

// AssignEnum tunes the assignability relation.
type AssignEnum int

const (
	// AssignDisallowUnconditionalObjectAssignability tightens the rule that
	// lets pointers be assigned to object.
	AssignDisallowUnconditionalObjectAssignability AssignEnum = 1 << iota
	// AssignIgnoreCustomModifiers makes required modifiers transparent as
	// well as optional ones.
	AssignIgnoreCustomModifiers
	// AssignNoBaseTypes stops delegation to base types and interfaces, only
	// identity and variant-local rules apply.
	AssignNoBaseTypes

	AssignAll  = (1 << iota) - 1
	AssignNone = 0
)

func (a AssignEnum) Has(f AssignEnum) bool {
	return a&f == f
}
