package manifest

import (
	"slices"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clr-typesys/internal/diagnostic"
	"clr-typesys/options"
	"clr-typesys/platform"
	"clr-typesys/typesys"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	r := buildShapes(t)

	assert.Equal(t, "shapes", r.Domain.Name())
	assert.Equal(t, platform.X64, r.Domain.Platform())
	require.NotNil(t, r.CoreLibrary)
	assert.Same(t, r.Module("mscorlib"), r.Domain.CoreLibrary())
	assert.Nil(t, r.Module("absent"))

	t.Run("value type layout", func(t *testing.T) {
		t.Parallel()

		point, ok := r.TypeDef("app", "Shapes.Point")
		require.True(t, ok)
		assert.Equal(t, typesys.DeclValueType, point.Kind())
		assert.Len(t, point.Fields(), 3)

		size, err := point.ValueSize(platform.X64, typesys.EmptyGenericMap)
		require.NoError(t, err)
		assert.Equal(t, 8, size)

		origin, ok := point.FindField("Origin")
		require.True(t, ok)
		assert.True(t, origin.IsStatic())
		assert.True(t, origin.IsInitOnly())
	})

	t.Run("enum", func(t *testing.T) {
		t.Parallel()

		color := r.MustType("app", "Shapes.Color")
		assert.Equal(t, "uint8", typesys.ILReference(typesys.EnumUnderlying(color)))

		size, err := color.ValueSize(platform.X64)
		require.NoError(t, err)
		assert.Equal(t, 1, size)
	})

	t.Run("members", func(t *testing.T) {
		t.Parallel()

		shape, ok := r.TypeDef("app", "Shapes.Shape")
		require.True(t, ok)
		assert.Equal(t, typesys.VisibilityAssembly, shape.Visibility())
		require.Len(t, shape.Interfaces(), 1)
		assert.Equal(t, "class [mscorlib]System.IComparable`1<class Shapes.Shape>",
			typesys.ILReference(shape.Interfaces()[0]))

		props := shape.FindProperties("Area")
		require.Len(t, props, 1)
		require.NotNil(t, props[0].Getter())
		assert.Equal(t, "get_Area", props[0].Getter().Name())
		assert.Nil(t, props[0].Setter())

		move := shape.FindMethods("Move")
		require.Len(t, move, 1)
		assert.False(t, move[0].IsStatic())
		require.Len(t, move[0].Params(), 2)
		assert.Equal(t, "result", move[0].Params()[1].Name())
		assert.True(t, move[0].Params()[1].IsOut())

		create := shape.FindMethods("Create")
		require.Len(t, create, 1)
		assert.True(t, create[0].IsStatic())
		assert.Equal(t, 1, create[0].Signature().GenericParameterCount)

		gp, ok := create[0].GenericParameter(0)
		require.True(t, ok)
		assert.Equal(t, "TShape", gp.Name())
		assert.True(t, gp.HasDefaultConstructorConstraint())
		require.Len(t, gp.Constraints(), 1)
		assert.True(t, typesys.Equal(shape.Type(), gp.Constraints()[0]))
	})

	t.Run("nested and generic", func(t *testing.T) {
		t.Parallel()

		visitor, ok := r.TypeDef("app", "Shapes.Shape/Visitor")
		require.True(t, ok)
		assert.Equal(t, typesys.DeclInterface, visitor.Kind())

		pair, ok := r.TypeDef("app", "Shapes.Pair`2")
		require.True(t, ok)
		require.Len(t, pair.GenericParameters(), 2)
		assert.Equal(t, typesys.VarianceNone, pair.GenericParameters()[0].Variance())
		assert.Equal(t, typesys.VarianceCovariant, pair.GenericParameters()[1].Variance())
	})

	t.Run("cross-module inheritance", func(t *testing.T) {
		t.Parallel()

		plugins := r.Module("plugins")
		circle := r.MustType("plugins", "Plugins.Circle")
		shape := MustParseType(plugins, "class [app]Shapes.Shape")

		assert.True(t, typesys.IsAssignable(circle, shape, typesys.EmptyGenericMap, options.AssignNone))
		assert.False(t, typesys.IsAssignable(shape, circle, typesys.EmptyGenericMap, options.AssignNone))

		want := MustParseType(plugins, "class [mscorlib]System.IComparable`1<class [app]Shapes.Shape>")
		ifaces := typesys.FlattenInterfaces(circle.Declaration(), typesys.EmptyGenericMap)
		assert.True(t, slices.ContainsFunc(ifaces, func(x typesys.Type) bool { return typesys.Equal(x, want) }),
			spew.Sdump(ifaces))
	})
}

func TestBuild_PlatformSpec(t *testing.T) {
	t.Parallel()

	mf, err := Parse([]byte(`
name: custom
platform_spec:
  name: tiny
  pointer_size: 4
modules:
  - {name: corlib, core_library: true}
`))
	require.NoError(t, err)
	assert.Empty(t, mf.Platform)

	r, err := Build(mf)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Domain.Platform().PointerSize)

	exported, err := Export(r.Domain)
	require.NoError(t, err)
	require.NotNil(t, exported.PlatformSpec)
	assert.Equal(t, "tiny", exported.PlatformSpec.Name)
	assert.Empty(t, exported.Platform)
}

func buildApp(types string) (*Result, error) {
	mf, err := Parse([]byte(`
name: t
modules:
  - {name: mscorlib, core_library: true}
  - name: app
    types:
` + types))
	if err != nil {
		return nil, err
	}

	return Build(mf)
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		types string
		want  string
		is    error
	}{
		{
			name:  "unknown kind",
			types: "      - {name: T, kind: struct}\n",
			want:  `unknown kind "struct"`,
		},
		{
			name:  "unknown visibility",
			types: "      - {name: T, visibility: friend}\n",
			want:  `unknown visibility "friend"`,
		},
		{
			name:  "duplicate type",
			types: "      - {namespace: N, name: T}\n      - {namespace: N, name: T}\n",
			want:  "module app",
		},
		{
			name:  "unresolved base",
			types: "      - {namespace: N, name: T, base: class N.Nope}\n",
			want:  "module app: type N.T",
			is:    diagnostic.ErrNotFound,
		},
		{
			name:  "non-integer underlying",
			types: "      - {name: E, kind: enum, underlying: string}\n",
			want:  "enum underlying type must be an integer intrinsic",
			is:    diagnostic.ErrInvalidArgument,
		},
		{
			name:  "bad packing",
			types: "      - {name: T, kind: valuetype, packing: 3}\n",
			want:  "packing 3",
		},
		{
			name: "missing accessor",
			types: `      - name: T
        properties:
          - {name: P, type: int32, getter: get_P}
`,
			want: "P: accessor get_P matches 0 methods",
		},
		{
			name: "calling convention",
			types: `      - name: T
        methods:
          - {name: M, calling_convention: pascal}
`,
			want: `method M: unknown calling convention "pascal"`,
		},
		{
			name: "field type",
			types: `      - name: T
        fields:
          - {name: F, type: int33}
`,
			want: "field F",
		},
		{
			name: "variance",
			types: `      - name: T
        generic_parameters:
          - {name: A, variance: "*"}
`,
			want: `unknown variance "*"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := buildApp(tt.types)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestBuild_InvalidPlatformSpec(t *testing.T) {
	t.Parallel()

	_, err := Build(&Manifest{Name: "x", PlatformSpec: &platform.Info{Name: "odd", PointerSize: 3}})
	assert.ErrorIs(t, err, diagnostic.ErrInvalidArgument)
}

func TestBuild_AppliesDefaults(t *testing.T) {
	t.Parallel()

	mf := &Manifest{
		Name: "direct",
		Modules: []Module{
			{Name: "corlib", CoreLibrary: true},
			{Name: "app", Types: []Type{{Name: "T", Methods: []Method{{Name: "M"}}}}},
		},
	}

	r, err := Build(mf)
	require.NoError(t, err)
	assert.Equal(t, platform.Default, r.Domain.Platform())

	def, ok := r.TypeDef("app", "T")
	require.True(t, ok)
	require.Len(t, def.FindMethods("M"), 1)
	assert.Equal(t, "void", typesys.ILReference(def.FindMethods("M")[0].Signature().ReturnType))
}

func TestExport_RoundTrip(t *testing.T) {
	t.Parallel()

	first, err := Export(buildShapes(t).Domain)
	require.NoError(t, err)

	assert.Equal(t, "x64", first.Platform)
	require.Len(t, first.Modules, 3)
	assert.True(t, first.Modules[0].CoreLibrary)
	assert.Empty(t, first.Modules[0].Types)
	assert.Equal(t, "class [mscorlib]System.ValueType", first.Modules[1].Types[1].Base)
	assert.Equal(t, "class [app]Shapes.Shape", first.Modules[2].Types[0].Base)
	assert.Equal(t, "assembly", first.Modules[1].Types[3].Visibility)
	require.Len(t, first.Modules[1].Types[3].Nested, 1)
	assert.Empty(t, first.Modules[1].Types[3].Nested[0].Namespace)

	data, err := Marshal(first)
	require.NoError(t, err)

	reparsed, err := Parse(data)
	require.NoError(t, err)

	rebuilt, err := Build(reparsed)
	require.NoError(t, err)

	second, err := Export(rebuilt.Domain)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
