package metadata

import (
	"clr-typesys/primitive"
	"clr-typesys/typesys"
)

// CoreLibrary holds the System declarations DefineCoreLibrary creates.
type CoreLibrary struct {
	Module *typesys.Module

	Object            *TypeDef
	ValueType         *TypeDef
	Enum              *TypeDef
	Array             *TypeDef
	Delegate          *TypeDef
	MulticastDelegate *TypeDef
	IEnumerable       *TypeDef
	ICloneable        *TypeDef
	IEnumerableOfT    *TypeDef
	ICollectionOfT    *TypeDef
	IListOfT          *TypeDef
	IComparableOfT    *TypeDef

	// Intrinsics maps every intrinsic to its System type.
	Intrinsics map[primitive.IntrinsicEnum]*TypeDef
}

// DefineCoreLibrary declares the minimal System surface in m and makes m
// its domain's core library: Object, ValueType, Enum, Array, delegates,
// one struct or class per intrinsic, and the generic collection interfaces
// arrays project onto.
func DefineCoreLibrary(m *typesys.Module) (*CoreLibrary, error) {
	if err := m.Domain().SetCoreLibrary(m); err != nil {
		return nil, err
	}

	c := &CoreLibrary{Module: m, Intrinsics: make(map[primitive.IntrinsicEnum]*TypeDef)}

	var err error
	define := func(namespace, name string, kind typesys.DeclarationKind) *TypeDef {
		if err != nil {
			return nil
		}

		var t *TypeDef
		t, err = Define(m, namespace, name, kind)

		return t
	}

	const (
		system      = "System"
		collections = "System.Collections"
		generic     = "System.Collections.Generic"
	)

	c.Object = define(system, "Object", typesys.DeclClass)
	c.ValueType = define(system, "ValueType", typesys.DeclClass)
	c.Enum = define(system, "Enum", typesys.DeclClass)
	c.Delegate = define(system, "Delegate", typesys.DeclClass)
	c.MulticastDelegate = define(system, "MulticastDelegate", typesys.DeclClass)
	c.IEnumerable = define(collections, "IEnumerable", typesys.DeclInterface)
	c.ICloneable = define(system, "ICloneable", typesys.DeclInterface)
	c.IEnumerableOfT = define(generic, "IEnumerable`1", typesys.DeclInterface)
	c.ICollectionOfT = define(generic, "ICollection`1", typesys.DeclInterface)
	c.IListOfT = define(generic, "IList`1", typesys.DeclInterface)
	c.IComparableOfT = define(system, "IComparable`1", typesys.DeclInterface)
	c.Array = define(system, "Array", typesys.DeclClass)

	if err != nil {
		return nil, err
	}

	c.Enum.SetBaseType(c.ValueType.Type())
	c.MulticastDelegate.SetBaseType(c.Delegate.Type())

	c.IEnumerableOfT.AddGenericParameter("T").SetVariance(typesys.VarianceCovariant)
	c.IEnumerableOfT.AddInterface(c.IEnumerable.Type())

	c.ICollectionOfT.AddGenericParameter("T")
	c.ICollectionOfT.AddInterface(c.IEnumerableOfT.Instantiate(c.ICollectionOfT.GenericParameterType(0)))

	c.IListOfT.AddGenericParameter("T")
	c.IListOfT.AddInterface(c.ICollectionOfT.Instantiate(c.IListOfT.GenericParameterType(0)))

	c.IComparableOfT.AddGenericParameter("T").SetVariance(typesys.VarianceContravariant)

	c.Array.AddInterface(c.ICloneable.Type())
	c.Array.AddInterface(c.IEnumerable.Type())

	for k := primitive.IntrinsicVoid; int(k) < primitive.IntrinsicTotal; k++ {
		if k == primitive.IntrinsicObject {
			c.Intrinsics[k] = c.Object
			continue
		}

		kind := typesys.DeclValueType
		if k.IsReferenceType() {
			kind = typesys.DeclClass
		}

		t := define(system, k.SystemName(), kind)
		if err != nil {
			return nil, err
		}

		c.Intrinsics[k] = t

		if k.IsValueType() && k != primitive.IntrinsicVoid && k != primitive.IntrinsicTypedReference {
			t.AddInterface(c.IComparableOfT.Instantiate(m.Intrinsic(k)))
		}
	}

	str := c.Intrinsics[primitive.IntrinsicString]
	str.AddInterface(c.IComparableOfT.Instantiate(m.Intrinsic(primitive.IntrinsicString)))
	str.AddInterface(c.IEnumerableOfT.Instantiate(m.Intrinsic(primitive.IntrinsicChar)))

	return c, nil
}

// MustDefineCoreLibrary is DefineCoreLibrary that panics on failure.
func MustDefineCoreLibrary(m *typesys.Module) *CoreLibrary {
	c, err := DefineCoreLibrary(m)
	if err != nil {
		panic(err)
	}

	return c
}
