// Package reflection exposes type signatures through a reflection-style
// surface: names, predicates, element and generic navigation, base types
// and interfaces, and member queries filtered by binding flags.
//
// A *Type wraps a typesys.Type with pinned markers, custom modifiers and
// boxing stripped. Members of generic instances are reported with the
// instance's arguments substituted:
//
//	list := reflection.TypeOf(listOfInt32)
//	m, err := list.Method("Add", options.BindingPublic|options.BindingInstance)
//	m.Parameters()[0].ParameterType().FullName() // "System.Int32"
package reflection
