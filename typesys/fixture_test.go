package typesys_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"clr-typesys/metadata"
	"clr-typesys/platform"
	"clr-typesys/primitive"
	"clr-typesys/typesys"
)

// zoo is a small domain: a core library, an application module with a class
// hierarchy, a value type, an enum and a generic pair, and an empty plugin
// module to translate into.
type zoo struct {
	domain  *typesys.Domain
	corlib  *metadata.CoreLibrary
	app     *typesys.Module
	plugins *typesys.Module

	animal  *metadata.TypeDef
	dog     *metadata.TypeDef
	tag     *metadata.TypeDef
	point   *metadata.TypeDef
	color   *metadata.TypeDef
	pair    *metadata.TypeDef
	isConst *metadata.TypeDef
}

func newZoo(t *testing.T, p platform.Info) *zoo {
	t.Helper()

	d, err := typesys.NewDomain("zoo", p)
	require.NoError(t, err)

	core, err := d.NewModule("mscorlib")
	require.NoError(t, err)

	z := &zoo{domain: d}

	z.corlib, err = metadata.DefineCoreLibrary(core)
	require.NoError(t, err)

	z.app, err = d.NewModule("app")
	require.NoError(t, err)

	z.plugins, err = d.NewModule("plugins")
	require.NoError(t, err)

	z.isConst = metadata.MustDefine(z.app, "Zoo", "IsConst", typesys.DeclClass)

	z.animal = metadata.MustDefine(z.app, "Zoo", "Animal", typesys.DeclClass)
	z.animal.AddInterface(typesys.MustTranslate(z.corlib.IComparableOfT.Instantiate(z.animal.Type()), z.app))

	z.tag, err = z.animal.DefineNested("Tag", typesys.DeclClass)
	require.NoError(t, err)

	z.dog = metadata.MustDefine(z.app, "Zoo", "Dog", typesys.DeclClass)
	z.dog.SetBaseType(z.animal.Type())

	z.point = metadata.MustDefine(z.app, "Zoo", "Point", typesys.DeclValueType)
	_, err = z.point.AddField("X", z.i32(), false)
	require.NoError(t, err)
	_, err = z.point.AddField("Flag", z.intrinsic(primitive.IntrinsicUInt8), false)
	require.NoError(t, err)

	z.color = metadata.MustDefine(z.app, "Zoo", "Color", typesys.DeclEnum)
	require.NoError(t, z.color.SetEnumUnderlyingType(z.intrinsic(primitive.IntrinsicUInt8)))

	z.pair = metadata.MustDefine(z.app, "Zoo", "Pair`2", typesys.DeclClass)
	z.pair.AddGenericParameter("T")
	z.pair.AddGenericParameter("U")

	return z
}

func (z *zoo) intrinsic(k primitive.IntrinsicEnum) *typesys.Intrinsic {
	return z.app.Intrinsic(k)
}

func (z *zoo) i32() *typesys.Intrinsic    { return z.intrinsic(primitive.IntrinsicInt32) }
func (z *zoo) str() *typesys.Intrinsic    { return z.intrinsic(primitive.IntrinsicString) }
func (z *zoo) object() *typesys.Intrinsic { return z.intrinsic(primitive.IntrinsicObject) }

// generic returns the interface definition of the core library closed over
// args, as seen from the application module.
func (z *zoo) generic(def *metadata.TypeDef, args ...typesys.Type) typesys.Type {
	return typesys.MustTranslate(def.Instantiate(args...), z.app)
}

func (z *zoo) param(kind typesys.GenericKind, ordinal int) *typesys.GenericParameter {
	return typesys.NewGenericParameter(z.app, kind, ordinal)
}
