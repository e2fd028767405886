package metadata

import "clr-typesys/typesys"

type member struct {
	name       string
	declaring  *TypeDef
	visibility typesys.Visibility
	static     bool
	token      uint32
}

func (m *member) Name() string                       { return m.name }
func (m *member) Visibility() typesys.Visibility     { return m.visibility }
func (m *member) IsStatic() bool                     { return m.static }
func (m *member) Token() uint32                      { return m.token }
func (m *member) SetVisibility(v typesys.Visibility) { m.visibility = v }
func (m *member) SetToken(token uint32)              { m.token = token }

// DeclaringType returns the owning type. The interface return keeps a nil
// owner comparable to nil.
func (m *member) DeclaringType() typesys.TypeDeclaration {
	if m.declaring == nil {
		return nil
	}

	return m.declaring
}

// Owner returns the owning type definition.
func (m *member) Owner() *TypeDef { return m.declaring }

func nameOf[T interface{ Name() string }](v T) string { return v.Name() }
