package metadata

import "clr-typesys/typesys"

// Property is a property declaration. Its static flag and visibility follow
// its accessors.
type Property struct {
	member

	propertyType typesys.Type
	getter       *Method
	setter       *Method
}

func (p *Property) PropertyType() typesys.Type { return p.propertyType }

func (p *Property) Getter() typesys.MethodDeclaration {
	if p.getter == nil {
		return nil
	}

	return p.getter
}

func (p *Property) Setter() typesys.MethodDeclaration {
	if p.setter == nil {
		return nil
	}

	return p.setter
}

// SetAccessors attaches get and set methods; either may be nil.
func (p *Property) SetAccessors(getter, setter *Method) *Property {
	p.getter, p.setter = getter, setter
	p.static, p.visibility = accessorFlags(getter, setter)

	return p
}

// Event is an event declaration.
type Event struct {
	member

	eventType typesys.Type
	adder     *Method
	remover   *Method
}

func (e *Event) EventType() typesys.Type { return e.eventType }

func (e *Event) Adder() typesys.MethodDeclaration {
	if e.adder == nil {
		return nil
	}

	return e.adder
}

func (e *Event) Remover() typesys.MethodDeclaration {
	if e.remover == nil {
		return nil
	}

	return e.remover
}

// SetAccessors attaches add and remove methods; either may be nil.
func (e *Event) SetAccessors(adder, remover *Method) *Event {
	e.adder, e.remover = adder, remover
	e.static, e.visibility = accessorFlags(adder, remover)

	return e
}

// accessorFlags derives the static flag and the widest visibility of a
// member's accessors.
func accessorFlags(accessors ...*Method) (static bool, visibility typesys.Visibility) {
	for _, m := range accessors {
		if m == nil {
			continue
		}

		static = static || m.static
		visibility = max(visibility, m.visibility)
	}

	return static, visibility
}
