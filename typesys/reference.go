package typesys

// typeReference is a declaration seen from another module of the same
// domain. It answers every query through its definition and only differs
// in the owning module.
type typeReference struct {
	TypeDeclaration
	module *Module
}

func (r *typeReference) Module() *Module { return r.module }

// Definition returns the declaration a reference points at, or decl itself.
func Definition(decl TypeDeclaration) TypeDeclaration {
	if decl == nil {
		return nil
	}

	if r, ok := decl.(*typeReference); ok {
		return r.TypeDeclaration
	}

	return decl
}

// SameDeclaration reports whether a and b resolve to one definition.
func SameDeclaration(a, b TypeDeclaration) bool {
	return Definition(a) == Definition(b)
}

// IsReference reports whether decl belongs to another module than its
// definition.
func IsReference(decl TypeDeclaration) bool {
	_, ok := decl.(*typeReference)
	return ok
}
