package metadata

import "clr-typesys/typesys"

// Field is a field declaration.
type Field struct {
	member

	fieldType typesys.Type
	literal   bool
	initOnly  bool
}

func (f *Field) FieldType() typesys.Type { return f.fieldType }
func (f *Field) IsLiteral() bool         { return f.literal }
func (f *Field) IsInitOnly() bool        { return f.initOnly }

// IsInstance reports whether the field takes space in every instance.
func (f *Field) IsInstance() bool { return !f.static && !f.literal }

// SetLiteral marks the field as a compile-time constant.
func (f *Field) SetLiteral(literal bool) *Field {
	f.literal = literal
	return f
}

func (f *Field) SetInitOnly(initOnly bool) *Field {
	f.initOnly = initOnly
	return f
}

// Rename changes the field name and reindexes it in its declaring type.
func (f *Field) Rename(name string) error {
	old := f.name
	f.name = name

	if err := f.declaring.fields.NotifyKeyChanged(f, old); err != nil {
		f.name = old
		return err
	}

	return nil
}
