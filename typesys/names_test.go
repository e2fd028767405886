package typesys_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clr-typesys/internal/diagnostic"
	"clr-typesys/metadata"
	"clr-typesys/options"
	"clr-typesys/platform"
	"clr-typesys/primitive"
	"clr-typesys/typesys"
)

func TestILReference(t *testing.T) {
	t.Parallel()

	z := newZoo(t, platform.X64)
	i32, str := z.i32(), z.str()

	tests := []struct {
		typ  typesys.Type
		want string
	}{
		{typesys.NewVector(i32), "int32[]"},
		{typesys.NewArrayOfRank(i32, 1), "int32[...]"},
		{typesys.NewArrayOfRank(i32, 2), "int32[,]"},
		{typesys.NewArray(i32, typesys.ArrayDimension{LowerBound: 0, Size: 2}, typesys.ArrayDimension{LowerBound: 0, Size: 3}), "int32[2,3]"},
		{typesys.NewArray(i32, typesys.ArrayDimension{LowerBound: 1, Size: 4}), "int32[1...4]"},
		{typesys.NewArray(i32, typesys.ArrayDimension{LowerBound: 1, Size: typesys.Unlimited}, typesys.UnboundedDimension), "int32[1...,]"},
		{typesys.NewPointer(z.intrinsic(primitive.IntrinsicNativeUInt)), "native uint*"},
		{typesys.NewPinned(typesys.NewByRef(z.intrinsic(primitive.IntrinsicChar))), "char& pinned"},
		{typesys.NewOptionalModifier(i32, z.isConst.Type()), "int32 modopt(Zoo.IsConst)"},
		{typesys.NewRequiredModifier(i32, z.app.Object()), "int32 modreq([mscorlib]System.Object)"},
		{typesys.NewBoxed(z.point.Type()), "boxed(valuetype Zoo.Point)"},
		{z.dog.Type(), "class Zoo.Dog"},
		{z.tag.Type(), "class Zoo.Animal/Tag"},
		{z.color.Type(), "valuetype Zoo.Color"},
		{z.app.Object(), "class [mscorlib]System.Object"},
		{z.pair.Instantiate(i32, typesys.NewVector(str)), "class Zoo.Pair`2<int32,string[]>"},
		{z.generic(z.corlib.IListOfT, z.point.Type()), "class [mscorlib]System.Collections.Generic.IList`1<valuetype Zoo.Point>"},
		{z.param(typesys.GenericKindType, 1), "!1"},
		{typesys.NewVector(z.param(typesys.GenericKindMethod, 0)), "!!0[]"},
		{
			typesys.NewMethodPointer(z.app, typesys.MethodSignature{HasThis: true, ReturnType: z.intrinsic(primitive.IntrinsicVoid), Parameters: []typesys.Type{i32, str}}),
			"method instance void *(int32,string)",
		},
		{
			typesys.NewMethodPointer(z.app, typesys.MethodSignature{CallingConvention: typesys.CallingConventionStdCall, ReturnType: i32}),
			"method unmanaged stdcall int32 *()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, typesys.ILReference(tt.typ))
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}

	t.Run("writer context", func(t *testing.T) {
		w := typesys.NewILWriter(z.plugins)
		w.WriteType(typesys.NewVector(z.dog.Type()))
		assert.Equal(t, "class [app]Zoo.Dog[]", w.String())

		w.Reset()
		w.WriteType(z.i32())
		assert.Equal(t, "int32", w.String())

		assert.Equal(t, "<nil>", typesys.ILReference(nil))
	})
}

func TestReflectionName(t *testing.T) {
	t.Parallel()

	z := newZoo(t, platform.X64)
	i32, str := z.i32(), z.str()
	pair := z.pair.Instantiate(i32, str)

	tests := []struct {
		name string
		typ  typesys.Type
		opts options.NameEnum
		want string
	}{
		{"intrinsic", i32, options.NameNone, "System.Int32"},
		{"intrinsic short", i32, options.NameOmitNamespace, "Int32"},
		{"intrinsic qualified", i32, options.NameAssemblyQualified, "System.Int32, mscorlib"},
		{"class", z.dog.Type(), options.NameNone, "Zoo.Dog"},
		{"class qualified", z.dog.Type(), options.NameAssemblyQualified, "Zoo.Dog, app"},
		{"class short", z.dog.Type(), options.NameOmitNamespace, "Dog"},
		{"nested", z.tag.Type(), options.NameNone, "Zoo.Animal+Tag"},
		{"nested short", z.tag.Type(), options.NameOmitNamespace, "Tag"},
		{"byref", typesys.NewByRef(i32), options.NameNone, "System.Int32&"},
		{"pointer", typesys.NewPointer(i32), options.NameNone, "System.Int32*"},
		{"vector", typesys.NewVector(z.dog.Type()), options.NameNone, "Zoo.Dog[]"},
		{"rank 1", typesys.NewArrayOfRank(i32, 1), options.NameNone, "System.Int32[*]"},
		{"rank 3", typesys.NewArrayOfRank(i32, 3), options.NameNone, "System.Int32[,,]"},
		{"modifiers are dropped", typesys.NewRequiredModifier(i32, z.isConst.Type()), options.NameNone, "System.Int32"},
		{"instance", pair, options.NameNone, "Zoo.Pair`2[System.Int32,System.String]"},
		{"instance with qualified arguments", pair, options.NameQualifyArguments, "Zoo.Pair`2[[System.Int32, mscorlib],[System.String, mscorlib]]"},
		{"instance fully qualified", pair, options.NameQualifyArguments | options.NameAssemblyQualified, "Zoo.Pair`2[[System.Int32, mscorlib],[System.String, mscorlib]], app"},
		{"parameter", z.param(typesys.GenericKindMethod, 2), options.NameNone, "!!2"},
		{"method pointer", typesys.NewMethodPointer(z.app, typesys.MethodSignature{ReturnType: i32}), options.NameNone, "System.IntPtr"},
		{"core library type", z.corlib.IEnumerable.Type(), options.NameAssemblyQualified, "System.Collections.IEnumerable, mscorlib"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, typesys.ReflectionName(tt.typ, tt.opts))
		})
	}

	t.Run("escaping", func(t *testing.T) {
		odd := metadata.MustDefine(z.app, "Zoo", "Odd,Name", typesys.DeclClass)
		assert.Equal(t, `Zoo.Odd\,Name`, typesys.ReflectionName(odd.Type(), options.NameNone))
	})

	t.Run("parameter names", func(t *testing.T) {
		w := typesys.NewReflectionNameWriter(options.NameNone)
		w.ParameterName = func(p *typesys.GenericParameter) (string, bool) {
			return []string{"T", "U"}[p.Ordinal()], p.ParameterKind() == typesys.GenericKindType
		}

		w.WriteType(z.pair.Instantiate(z.param(typesys.GenericKindType, 1), z.param(typesys.GenericKindMethod, 0)))
		assert.Equal(t, "Zoo.Pair`2[U,!!0]", w.String())
	})

	t.Run("scope", func(t *testing.T) {
		assert.Equal(t, "mscorlib", typesys.Scope(typesys.NewVector(i32)))
		assert.Equal(t, "app", typesys.Scope(typesys.NewByRef(z.dog.Type())))
		assert.Equal(t, "app", typesys.Scope(typesys.MustTranslate(z.dog.Type(), z.plugins)))
		assert.Equal(t, "mscorlib", typesys.Scope(z.generic(z.corlib.IListOfT, z.dog.Type())))
		assert.Equal(t, typesys.DefaultCoreLibraryName, typesys.Scope(nil))

		bare := typesys.MustNewDomain("bare", platform.X86)
		m, err := bare.NewModule("lonely")
		require.NoError(t, err)
		assert.Equal(t, typesys.DefaultCoreLibraryName, typesys.Scope(m.Intrinsic(primitive.IntrinsicInt32)))
	})
}

func TestModule_FindType(t *testing.T) {
	t.Parallel()

	z := newZoo(t, platform.X64)

	got, err := z.app.FindType("Zoo.Animal/Tag", options.LookupDefault)
	require.NoError(t, err)
	assert.True(t, typesys.Equal(z.tag.Type(), got))

	got, err = z.app.FindType("zoo.dog", options.LookupIgnoreCase)
	require.NoError(t, err)
	assert.Equal(t, "Zoo.Dog", got.FullName())

	got, err = z.app.FindType("Zoo.Animl", options.LookupOnlyExisting)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = z.app.FindType("Zoo.Animl", options.LookupDefault)
	require.ErrorIs(t, err, diagnostic.ErrNotFound)
	assert.Contains(t, err.Error(), "did you mean Zoo.Animal")

	_, err = z.app.FindType("Zoo.Dog", options.LookupGenericDefinition)
	assert.ErrorIs(t, err, diagnostic.ErrInvalidArgument)

	got, err = z.app.FindType("Zoo.Pair`2", options.LookupGenericDefinition)
	require.NoError(t, err)
	assert.True(t, got.IsGenericDefinition())

	assert.Panics(t, func() { z.app.MustFindType("System.Object") })
	assert.NotNil(t, z.corlib.Module.MustFindType("System.Object"))

	t.Run("registration", func(t *testing.T) {
		_, err := metadata.Define(z.app, "Zoo", "Dog", typesys.DeclClass)
		assert.Error(t, err)

		assert.ErrorIs(t, z.plugins.Register(z.dog), diagnostic.ErrInvalidArgument)
		assert.ErrorIs(t, z.app.Register(nil), diagnostic.ErrInvalidArgument)
	})

	t.Run("system types", func(t *testing.T) {
		obj := z.app.Object()
		require.NotNil(t, obj)
		assert.Same(t, z.app, obj.Module())
		assert.Same(t, z.corlib.Object, typesys.Definition(obj.Declaration()))
		assert.True(t, typesys.IsReference(obj.Declaration()))
		assert.Same(t, obj.Declaration(), z.app.Object().Declaration())

		assert.Nil(t, z.app.SystemType("Missing"))
		assert.Equal(t, "System.Collections.Generic.IList`1", z.plugins.GenericListDefinition().FullName())
	})
}

func TestDomain(t *testing.T) {
	t.Parallel()

	_, err := typesys.NewDomain("broken", platform.Info{Name: "broken", PointerSize: 2})
	require.ErrorIs(t, err, diagnostic.ErrInvalidArgument)
	assert.Panics(t, func() { typesys.MustNewDomain("broken", platform.Info{}) })

	d := typesys.MustNewDomain("d", platform.X86)
	assert.Equal(t, platform.X86, d.Platform())
	assert.Nil(t, d.CoreLibrary())

	a, err := d.NewModule("a")
	require.NoError(t, err)
	b, err := d.NewModule("b")
	require.NoError(t, err)

	_, err = d.NewModule("a")
	assert.ErrorIs(t, err, diagnostic.ErrInvalidArgument)
	_, err = d.NewModule("")
	assert.ErrorIs(t, err, diagnostic.ErrInvalidArgument)

	assert.Equal(t, []*typesys.Module{a, b}, d.Modules())
	assert.Same(t, b, d.ModuleByName("b"))
	assert.Nil(t, d.ModuleByName("c"))
	assert.Equal(t, 1, b.Index())

	got, err := d.Module(0)
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = d.Module(2)
	assert.ErrorIs(t, err, diagnostic.ErrOutOfRange)

	other := typesys.MustNewDomain("other", platform.X86)
	foreign, err := other.NewModule("a")
	require.NoError(t, err)

	assert.ErrorIs(t, d.SetCoreLibrary(foreign), diagnostic.ErrDomainMismatch)
	assert.False(t, a.SameDomain(foreign))
	assert.True(t, a.SameDomain(b))

	require.NoError(t, d.SetCoreLibrary(a))
	assert.True(t, a.IsCoreLibrary())
	assert.False(t, b.IsCoreLibrary())

	assert.Same(t, a.Intrinsic(primitive.IntrinsicInt32), a.Intrinsic(primitive.IntrinsicInt32))
	assert.NotSame(t, a.Intrinsic(primitive.IntrinsicInt32), b.Intrinsic(primitive.IntrinsicInt32))
}

func TestFlattenInterfaces(t *testing.T) {
	t.Parallel()

	z := newZoo(t, platform.X64)

	render := func(ts []typesys.Type) []string {
		out := make([]string, len(ts))
		for i, t := range ts {
			out[i] = typesys.ReflectionName(t, options.NameNone)
		}

		return out
	}

	assert.Equal(t, []string{
		"System.Collections.Generic.ICollection`1[!0]",
		"System.Collections.Generic.IEnumerable`1[!0]",
		"System.Collections.IEnumerable",
	}, render(typesys.FlattenInterfaces(z.corlib.IListOfT, typesys.EmptyGenericMap)))

	closed := typesys.NewGenericMap([]typesys.Type{z.dog.Type()}, nil)
	assert.Equal(t, []string{
		"System.Collections.Generic.ICollection`1[Zoo.Dog]",
		"System.Collections.Generic.IEnumerable`1[Zoo.Dog]",
		"System.Collections.IEnumerable",
	}, render(typesys.FlattenInterfaces(z.corlib.IListOfT, closed)))

	assert.Equal(t, []string{"System.IComparable`1[Zoo.Animal]"}, render(typesys.FlattenInterfaces(z.dog, typesys.EmptyGenericMap)))
	assert.Equal(t, []string{
		"System.IComparable`1[System.String]",
		"System.Collections.Generic.IEnumerable`1[System.Char]",
		"System.Collections.IEnumerable",
	}, render(typesys.FlattenInterfaces(z.corlib.Intrinsics[primitive.IntrinsicString], typesys.EmptyGenericMap)))

	assert.True(t, typesys.Implements(z.dog, typesys.EmptyGenericMap, z.generic(z.corlib.IComparableOfT, z.animal.Type())))
	assert.False(t, typesys.Implements(z.dog, typesys.EmptyGenericMap, z.corlib.IEnumerable.Type()))
	assert.Empty(t, typesys.FlattenInterfaces(nil, typesys.EmptyGenericMap))
}

func TestFlattenInterfaces_SameNameAcrossModules(t *testing.T) {
	t.Parallel()

	z := newZoo(t, platform.X64)

	local := metadata.MustDefine(z.app, "Shared", "IFoo", typesys.DeclInterface).Type()
	remote := typesys.MustTranslate(metadata.MustDefine(z.plugins, "Shared", "IFoo", typesys.DeclInterface).Type(), z.app)

	require.False(t, typesys.Equal(local, remote))
	assert.NotEqual(t, local.Hash(), remote.Hash())

	both := metadata.MustDefine(z.app, "Zoo", "Both", typesys.DeclClass)
	both.AddInterface(local).AddInterface(remote)

	flat := typesys.FlattenInterfaces(both, typesys.EmptyGenericMap)
	require.Len(t, flat, 2)
	assert.Equal(t, []string{"class Shared.IFoo", "class [plugins]Shared.IFoo"}, []string{
		typesys.ILReference(flat[0]), typesys.ILReference(flat[1]),
	})

	for _, iface := range []typesys.Type{local, remote} {
		assert.True(t, typesys.Implements(both, typesys.EmptyGenericMap, iface), iface.String())
		assert.True(t, typesys.IsAssignable(both.Type(), iface, typesys.EmptyGenericMap, options.AssignNone), iface.String())
	}
}

func ExampleIsAssignable() {
	d := typesys.MustNewDomain("example", platform.Default)
	corlib, _ := d.NewModule("mscorlib")
	metadata.MustDefineCoreLibrary(corlib)

	app, _ := d.NewModule("app")
	strings := typesys.NewVector(app.Intrinsic(primitive.IntrinsicString))
	objects := typesys.NewVector(app.Intrinsic(primitive.IntrinsicObject))
	ints := typesys.NewVector(app.Intrinsic(primitive.IntrinsicInt32))
	uints := typesys.NewVector(app.Intrinsic(primitive.IntrinsicUInt32))

	for _, pair := range [][2]typesys.Type{{strings, objects}, {objects, strings}, {ints, uints}, {ints, app.SystemArray()}} {
		fmt.Println(pair[0], "->", pair[1], typesys.IsAssignable(pair[0], pair[1], typesys.EmptyGenericMap, options.AssignNone))
	}

	// Output:
	// string[] -> object[] true
	// object[] -> string[] false
	// int32[] -> uint32[] false
	// int32[] -> class [mscorlib]System.Array true
}
