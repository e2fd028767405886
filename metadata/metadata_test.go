package metadata_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clr-typesys/internal/diagnostic"
	"clr-typesys/metadata"
	"clr-typesys/options"
	"clr-typesys/platform"
	"clr-typesys/primitive"
	"clr-typesys/typesys"
)

func newModules(t *testing.T) (*metadata.CoreLibrary, *typesys.Module) {
	t.Helper()

	d := typesys.MustNewDomain("test", platform.X64)

	core, err := d.NewModule("mscorlib")
	require.NoError(t, err)

	corlib, err := metadata.DefineCoreLibrary(core)
	require.NoError(t, err)

	app, err := d.NewModule("app")
	require.NoError(t, err)

	return corlib, app
}

func intrinsic(m *typesys.Module, k primitive.IntrinsicEnum) typesys.Type {
	return m.Intrinsic(k)
}

func addFields(t *testing.T, def *metadata.TypeDef, fields ...any) {
	t.Helper()

	for i := 0; i < len(fields); i += 2 {
		_, err := def.AddField(fields[i].(string), fields[i+1].(typesys.Type), false)
		require.NoError(t, err)
	}
}

func TestDefineCoreLibrary(t *testing.T) {
	t.Parallel()

	corlib, app := newModules(t)
	core := corlib.Module

	assert.True(t, core.IsCoreLibrary())
	assert.Len(t, corlib.Intrinsics, primitive.IntrinsicTotal-1)
	assert.Same(t, corlib.Object, corlib.Intrinsics[primitive.IntrinsicObject])

	i32 := corlib.Intrinsics[primitive.IntrinsicInt32]
	assert.Equal(t, typesys.DeclValueType, i32.Kind())
	assert.Equal(t, primitive.IntrinsicInt32, i32.Intrinsic())
	assert.Equal(t, "System.Int32", i32.FullName())
	assert.Equal(t, typesys.DeclClass, corlib.Intrinsics[primitive.IntrinsicString].Kind())

	assert.Nil(t, corlib.Object.BaseType())
	assert.Equal(t, "class System.ValueType", typesys.ILReference(i32.BaseType()))
	assert.Equal(t, "class System.ValueType", typesys.ILReference(corlib.Enum.BaseType()))
	assert.Equal(t, "class System.Object", typesys.ILReference(corlib.Array.BaseType()))
	assert.Nil(t, corlib.IListOfT.BaseType())

	g, ok := corlib.IEnumerableOfT.GenericParameter(0)
	require.True(t, ok)
	assert.Equal(t, typesys.VarianceCovariant, g.Variance())

	g, ok = corlib.IComparableOfT.GenericParameter(0)
	require.True(t, ok)
	assert.Equal(t, typesys.VarianceContravariant, g.Variance())

	assert.Equal(t, "class System.Collections.Generic.ICollection`1<!0>", typesys.ILReference(corlib.IListOfT.Interfaces()[0]))

	_, err := metadata.DefineCoreLibrary(core)
	assert.ErrorIs(t, err, diagnostic.ErrInvalidArgument, "redefining System types")

	assert.Same(t, core, app.Domain().CoreLibrary())
	assert.Panics(t, func() { metadata.MustDefineCoreLibrary(core) })
}

func TestDefine_ImplicitBase(t *testing.T) {
	t.Parallel()

	_, app := newModules(t)

	tests := []struct {
		kind typesys.DeclarationKind
		base string
	}{
		{typesys.DeclClass, "class [mscorlib]System.Object"},
		{typesys.DeclValueType, "class [mscorlib]System.ValueType"},
		{typesys.DeclEnum, "class [mscorlib]System.Enum"},
		{typesys.DeclDelegate, "class [mscorlib]System.MulticastDelegate"},
		{typesys.DeclInterface, "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			def := metadata.MustDefine(app, "Kinds", tt.kind.String(), tt.kind)
			assert.Equal(t, tt.base, typesys.ILReference(def.BaseType()))
			assert.Equal(t, tt.kind.IsValueType(), typesys.IsValueType(def.Type()))
		})
	}

	_, err := metadata.Define(nil, "X", "Y", typesys.DeclClass)
	assert.ErrorIs(t, err, diagnostic.ErrInvalidArgument)
}

func TestTypeDef_Members(t *testing.T) {
	t.Parallel()

	_, app := newModules(t)
	i32 := intrinsic(app, primitive.IntrinsicInt32)
	str := intrinsic(app, primitive.IntrinsicString)
	void := intrinsic(app, primitive.IntrinsicVoid)

	def := metadata.MustDefine(app, "Members", "Widget", typesys.DeclClass)

	t.Run("fields", func(t *testing.T) {
		f, err := def.AddField("count", i32, false)
		require.NoError(t, err)
		f.SetVisibility(typesys.VisibilityPrivate)

		s, err := def.AddField("Zero", i32, true)
		require.NoError(t, err)
		s.SetLiteral(true).SetInitOnly(true)

		_, err = def.AddField("count", str, false)
		assert.ErrorIs(t, err, diagnostic.ErrInvalidArgument)

		_, err = def.AddField("broken", nil, false)
		assert.ErrorIs(t, err, diagnostic.ErrInvalidArgument)

		got, ok := def.FindField("count")
		require.True(t, ok)
		assert.Same(t, f, got)
		assert.True(t, got.IsInstance())
		assert.False(t, s.IsInstance())
		assert.True(t, s.IsLiteral())
		assert.Same(t, def, got.Owner())

		require.NoError(t, f.Rename("total"))
		_, ok = def.FindField("count")
		assert.False(t, ok)
		_, ok = def.FindField("total")
		assert.True(t, ok)

		assert.Error(t, f.Rename("Zero"))
		assert.Equal(t, "total", f.Name())
		assert.Len(t, def.Fields(), 2)
	})

	t.Run("methods", func(t *testing.T) {
		m1, err := def.AddMethod("Run", typesys.MethodSignature{HasThis: true, ReturnType: void})
		require.NoError(t, err)

		m2, err := def.AddMethod("Run", typesys.MethodSignature{HasThis: true, ReturnType: void, Parameters: []typesys.Type{i32, str}}, "times")
		require.NoError(t, err)

		assert.Equal(t, []*metadata.Method{m1, m2}, def.FindMethods("Run"))
		assert.False(t, m1.IsStatic())

		params := m2.Params()
		require.Len(t, params, 2)
		assert.Equal(t, "times", params[0].Name())
		assert.Empty(t, params[1].Name())
		assert.Equal(t, 1, params[1].Ordinal())
		assert.Equal(t, -1, m2.ReturnParameter().Ordinal())

		static, err := def.AddMethod("Make", typesys.MethodSignature{ReturnType: def.Type(), GenericParameterCount: 2})
		require.NoError(t, err)
		assert.True(t, static.IsStatic())
		assert.Len(t, static.GenericParameters(), 2)

		g, ok := static.GenericParameter(1)
		require.True(t, ok)
		assert.Equal(t, "M1", g.Name())
		assert.Equal(t, typesys.GenericKindMethod, g.Kind())

		sig := static.Signature()
		assert.False(t, sig.HasThis)
		assert.Equal(t, 2, sig.GenericParameterCount)

		static.AddGenericParameter("Extra")
		assert.Equal(t, 3, static.Signature().GenericParameterCount)

		assert.True(t, m1.SetVirtual(false, true).IsVirtual())

		ctor, err := def.AddMethod(metadata.ConstructorName, typesys.MethodSignature{HasThis: true, ReturnType: void})
		require.NoError(t, err)
		assert.True(t, ctor.IsConstructor())

		_, err = def.AddMethod("Broken", typesys.MethodSignature{})
		assert.ErrorIs(t, err, diagnostic.ErrInvalidArgument)

		_, err = def.AddMethod("Broken", typesys.MethodSignature{ReturnType: void, Parameters: []typesys.Type{nil}})
		assert.ErrorIs(t, err, diagnostic.ErrInvalidArgument)

		require.NoError(t, m2.Rename("Walk"))
		assert.Len(t, def.FindMethods("Run"), 1)
		assert.Len(t, def.FindMethods("Walk"), 1)
	})

	t.Run("properties and events", func(t *testing.T) {
		getter, err := def.AddMethod("get_Size", typesys.MethodSignature{ReturnType: i32})
		require.NoError(t, err)
		getter.SetVisibility(typesys.VisibilityFamily)

		setter, err := def.AddMethod("set_Size", typesys.MethodSignature{ReturnType: void, Parameters: []typesys.Type{i32}})
		require.NoError(t, err)
		setter.SetVisibility(typesys.VisibilityAssembly)

		p, err := def.AddProperty("Size", i32)
		require.NoError(t, err)
		p.SetAccessors(getter, setter)

		assert.True(t, p.IsStatic())
		assert.Equal(t, typesys.VisibilityFamily, p.Visibility())
		assert.Same(t, getter, p.Getter())
		assert.Equal(t, []*metadata.Property{p}, def.FindProperties("Size"))

		readOnly, err := def.AddProperty("Name", str)
		require.NoError(t, err)
		assert.Nil(t, readOnly.SetAccessors(nil, nil).Getter())

		add, err := def.AddMethod("add_Changed", typesys.MethodSignature{HasThis: true, ReturnType: void, Parameters: []typesys.Type{intrinsic(app, primitive.IntrinsicObject)}})
		require.NoError(t, err)

		e, err := def.AddEvent("Changed", intrinsic(app, primitive.IntrinsicObject))
		require.NoError(t, err)
		e.SetAccessors(add, nil)

		assert.False(t, e.IsStatic())
		assert.Equal(t, typesys.VisibilityPublic, e.Visibility())
		assert.Nil(t, e.Remover())

		_, err = def.AddEvent("Changed", str)
		assert.Error(t, err)

		found, ok := def.FindEvent("Changed")
		require.True(t, ok)
		assert.Same(t, e, found)
	})

	t.Run("close", func(t *testing.T) {
		closing := metadata.MustDefine(app, "Members", "Closing", typesys.DeclClass)
		closing.Close()
		closing.Close()

		assert.Panics(t, func() { closing.FindField("x") })
	})
}

func TestTypeDef_Settings(t *testing.T) {
	t.Parallel()

	_, app := newModules(t)

	enum := metadata.MustDefine(app, "Settings", "Mode", typesys.DeclEnum)
	assert.ErrorIs(t, enum.SetEnumUnderlyingType(intrinsic(app, primitive.IntrinsicFloat32)), diagnostic.ErrInvalidArgument)
	assert.ErrorIs(t, enum.SetEnumUnderlyingType(enum.Type()), diagnostic.ErrInvalidArgument)
	require.NoError(t, enum.SetEnumUnderlyingType(intrinsic(app, primitive.IntrinsicInt16)))
	assert.ErrorIs(t, enum.SetEnumUnderlyingType(intrinsic(app, primitive.IntrinsicInt32)), diagnostic.ErrInvalidOperation)
	assert.Equal(t, "int16", typesys.ILReference(enum.EnumUnderlyingType()))

	class := metadata.MustDefine(app, "Settings", "Plain", typesys.DeclClass)
	assert.ErrorIs(t, class.SetEnumUnderlyingType(intrinsic(app, primitive.IntrinsicInt32)), diagnostic.ErrInvalidOperation)

	assert.ErrorIs(t, class.SetLayout(-1, 0), diagnostic.ErrInvalidArgument)
	assert.ErrorIs(t, class.SetLayout(0, 3), diagnostic.ErrInvalidArgument)
	require.NoError(t, class.SetLayout(24, 4))
	assert.Equal(t, 24, class.ClassSize())
	assert.Equal(t, 4, class.Packing())

	class.SetToken(0x02000005)
	class.SetVisibility(typesys.VisibilityAssembly)
	assert.Equal(t, uint32(0x02000005), class.Token())
	assert.Equal(t, typesys.VisibilityAssembly, class.Visibility())

	pair := metadata.MustDefine(app, "Settings", "Pair`2", typesys.DeclClass)
	pair.AddGenericParameter("K").AddConstraint(intrinsic(app, primitive.IntrinsicObject)).SetSpecialConstraints(true, false, true)
	pair.AddGenericParameter("V")

	k, ok := pair.GenericParameter(0)
	require.True(t, ok)
	assert.True(t, k.HasReferenceTypeConstraint())
	assert.True(t, k.HasDefaultConstructorConstraint())
	assert.Len(t, k.Constraints(), 1)
	assert.Equal(t, typesys.GenericKindType, k.Kind())

	_, ok = pair.GenericParameter(2)
	assert.False(t, ok)
	assert.Equal(t, "!1", pair.GenericParameterType(1).String())
	assert.Equal(t, "class Settings.Pair`2<int32,string>", pair.Instantiate(intrinsic(app, primitive.IntrinsicInt32), intrinsic(app, primitive.IntrinsicString)).String())
}

func TestTypeDef_Rename(t *testing.T) {
	t.Parallel()

	_, app := newModules(t)

	outer := metadata.MustDefine(app, "Old", "Outer", typesys.DeclClass)
	inner, err := outer.DefineNested("Inner", typesys.DeclClass)
	require.NoError(t, err)
	deepest, err := inner.DefineNested("Deepest", typesys.DeclValueType)
	require.NoError(t, err)
	sibling, err := outer.DefineNested("Sibling", typesys.DeclClass)
	require.NoError(t, err)
	other := metadata.MustDefine(app, "Old", "Other", typesys.DeclClass)

	_, err = outer.DefineNested("Inner", typesys.DeclClass)
	assert.Error(t, err)

	find := func(name string) bool {
		got, err := app.FindType(name, options.LookupOnlyExisting)
		require.NoError(t, err)

		return got != nil
	}

	assert.True(t, find("Old.Outer/Inner/Deepest"))

	require.NoError(t, outer.Rename("Renamed"))
	assert.Equal(t, "Old.Renamed/Inner/Deepest", deepest.FullName())
	assert.True(t, find("Old.Renamed"))
	assert.True(t, find("Old.Renamed/Inner"))
	assert.True(t, find("Old.Renamed/Inner/Deepest"))
	assert.True(t, find("Old.Renamed/Sibling"))
	assert.False(t, find("Old.Outer"))
	assert.False(t, find("Old.Outer/Inner/Deepest"))

	require.NoError(t, outer.SetNamespace("New"))
	assert.True(t, find("New.Renamed/Inner/Deepest"))
	assert.False(t, find("Old.Renamed/Inner/Deepest"))

	t.Run("conflicts roll back", func(t *testing.T) {
		require.NoError(t, other.SetNamespace("New"))

		err := other.Rename("Renamed")
		assert.ErrorIs(t, err, diagnostic.ErrInvalidArgument)
		assert.Equal(t, "New.Other", other.FullName())
		assert.True(t, find("New.Other"))

		err = inner.Rename("Sibling")
		assert.ErrorIs(t, err, diagnostic.ErrInvalidArgument)
		assert.Equal(t, "Inner", inner.Name())
		assert.True(t, find("New.Renamed/Inner"))

		got, ok := outer.FindNested("Inner")
		require.True(t, ok)
		assert.Same(t, inner, got)

		got, ok = outer.FindNested("Sibling")
		require.True(t, ok)
		assert.Same(t, sibling, got)
	})

	assert.ErrorIs(t, inner.SetNamespace("X"), diagnostic.ErrInvalidOperation)
	assert.Equal(t, []string{"New.Renamed", "New.Renamed/Inner", "New.Renamed/Inner/Deepest", "New.Renamed/Sibling", "New.Other"},
		typeNames(app.Types()), spew.Sdump(app.Types()))
}

func typeNames(decls []typesys.TypeDeclaration) []string {
	out := make([]string, len(decls))
	for i, d := range decls {
		out[i] = typesys.FullName(d)
	}

	return out
}
