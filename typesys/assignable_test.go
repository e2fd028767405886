package typesys_test

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

type assignCase struct {
	name   string
	source typesys.Type
	target typesys.Type
	want   bool
}

// assignFailure runs IsAssignable and returns the error it panics with.
func assignFailure(src, dst typesys.Type, gm typesys.GenericMap) (err error) {
	defer diagnostic.Recover(&err)
	typesys.IsAssignable(src, dst, gm, options.AssignNone)

	return nil
}

func checkAssignable(t *testing.T, tests []assignCase, gm typesys.GenericMap, opts options.AssignEnum) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := typesys.IsAssignable(tt.source, tt.target, gm, opts)
			assert.Equal(t, tt.want, got, "%s -> %s\n%s", tt.source, tt.target, spew.Sdump(gm))
		})
	}
}

func TestIsAssignable_Intrinsics(t *testing.T) {
	t.Parallel()

	z := newZoo(t, platform.X64)
	i32, u32 := z.i32(), z.intrinsic(primitive.IntrinsicUInt32)
	u8 := z.intrinsic(primitive.IntrinsicUInt8)

	checkAssignable(t, []assignCase{
		{"identity", i32, i32, true},
		{"opposite sign", i32, u32, true},
		{"different width", i32, z.intrinsic(primitive.IntrinsicInt64), false},
		{"float has no sign alternative", z.intrinsic(primitive.IntrinsicFloat32), i32, false},
		{"string to object", z.str(), z.object(), true},
		{"string to System.Object", z.str(), z.app.Object(), true},
		{"object to string", z.object(), z.str(), false},
		{"value type to object needs boxing", i32, z.object(), false},
		{"to enum over the same underlying", u8, z.color.Type(), true},
		{"enum to its underlying", z.color.Type(), u8, true},
		{"to enum over another underlying", i32, z.color.Type(), false},
		{"to System type", i32, z.app.SystemType("Int32"), true},
		{"System type to intrinsic", z.app.SystemType("Int32"), i32, true},
		{"string to IEnumerable`1<char>", z.str(), z.generic(z.corlib.IEnumerableOfT, z.intrinsic(primitive.IntrinsicChar)), true},
		{"string to IComparable`1<string>", z.str(), z.generic(z.corlib.IComparableOfT, z.str()), true},
		{"modopt source is transparent", typesys.NewOptionalModifier(i32, z.isConst.Type()), i32, true},
		{"modreq source is transparent", typesys.NewRequiredModifier(i32, z.isConst.Type()), i32, true},
		{"modreq target is not", i32, typesys.NewRequiredModifier(i32, z.isConst.Type()), false},
	}, typesys.EmptyGenericMap, options.AssignNone)

	t.Run("ignoring custom modifiers", func(t *testing.T) {
		target := typesys.NewRequiredModifier(i32, z.isConst.Type())
		assert.True(t, typesys.IsAssignable(i32, target, typesys.EmptyGenericMap, options.AssignIgnoreCustomModifiers))
	})

	t.Run("strict platform", func(t *testing.T) {
		strict := newZoo(t, platform.Strict)
		assert.False(t, typesys.IsAssignable(strict.i32(), strict.intrinsic(primitive.IntrinsicUInt32), typesys.EmptyGenericMap, options.AssignNone))
		assert.True(t, typesys.IsAssignable(strict.i32(), strict.i32(), typesys.EmptyGenericMap, options.AssignNone))
	})
}

func TestIsAssignable_Classes(t *testing.T) {
	t.Parallel()

	z := newZoo(t, platform.X64)
	animal, dog := z.animal.Type(), z.dog.Type()

	checkAssignable(t, []assignCase{
		{"derived to base", dog, animal, true},
		{"base to derived", animal, dog, false},
		{"class to object", dog, z.object(), true},
		{"class to System.Object", dog, z.app.Object(), true},
		{"inherited interface", dog, z.generic(z.corlib.IComparableOfT, animal), true},
		{"contravariant interface", dog, z.generic(z.corlib.IComparableOfT, dog), true},
		{"unrelated interface", dog, z.generic(z.corlib.IComparableOfT, z.str()), false},
		{"nested type is unrelated", z.tag.Type(), animal, false},
		{"across modules", typesys.MustTranslate(dog, z.plugins), animal, true},
	}, typesys.EmptyGenericMap, options.AssignNone)

	assert.False(t, typesys.IsAssignable(dog, animal, typesys.EmptyGenericMap, options.AssignNoBaseTypes))
	assert.True(t, dog.IsAssignableTo(animal, typesys.EmptyGenericMap, options.AssignNone))
}

func TestIsAssignable_ValueTypes(t *testing.T) {
	t.Parallel()

	z := newZoo(t, platform.X64)
	point := z.point.Type()

	checkAssignable(t, []assignCase{
		{"unboxed to object", point, z.object(), false},
		{"unboxed to ValueType", point, z.app.SystemValueType(), false},
		{"boxed to object", typesys.NewBoxed(point), z.object(), true},
		{"boxed to ValueType", typesys.NewBoxed(point), z.app.SystemValueType(), true},
		{"boxed enum to Enum", typesys.NewBoxed(z.color.Type()), z.app.SystemEnum(), true},
		{"boxed intrinsic to IComparable`1", typesys.NewBoxed(z.i32()), z.generic(z.corlib.IComparableOfT, z.i32()), true},
		{"boxed intrinsic to ValueType", typesys.NewBoxed(z.i32()), z.app.SystemValueType(), true},
		{"boxed to the value type", typesys.NewBoxed(point), point, false},
		{"boxed pair", typesys.NewBoxed(point), typesys.NewBoxed(typesys.NewOptionalModifier(point, z.isConst.Type())), true},
	}, typesys.EmptyGenericMap, options.AssignNone)
}

func TestIsAssignable_Arrays(t *testing.T) {
	t.Parallel()

	z := newZoo(t, platform.X64)
	i32, u32 := z.i32(), z.intrinsic(primitive.IntrinsicUInt32)
	animal, dog := z.animal.Type(), z.dog.Type()

	checkAssignable(t, []assignCase{
		{"reference covariance", typesys.NewVector(dog), typesys.NewVector(animal), true},
		{"no contravariance", typesys.NewVector(animal), typesys.NewVector(dog), false},
		{"string[] to object[]", typesys.NewVector(z.str()), typesys.NewVector(z.object()), true},
		{"rank 2 covariance", typesys.NewArrayOfRank(dog, 2), typesys.NewArrayOfRank(animal, 2), true},
		{"rank mismatch", typesys.NewArrayOfRank(dog, 2), typesys.NewVector(animal), false},
		{"vector vs rank 1", typesys.NewVector(dog), typesys.NewArrayOfRank(dog, 1), false},
		{"value elements are invariant", typesys.NewVector(i32), typesys.NewVector(u32), false},
		{"enum elements are invariant", typesys.NewVector(z.color.Type()), typesys.NewVector(z.intrinsic(primitive.IntrinsicUInt8)), false},
		{"value to reference elements", typesys.NewVector(i32), typesys.NewVector(z.object()), false},
		{"to object", typesys.NewVector(i32), z.object(), true},
		{"to System.Array", typesys.NewArrayOfRank(i32, 3), z.app.SystemArray(), true},
		{"to ICloneable", typesys.NewVector(i32), z.corlib.ICloneable.Type(), true},
		{"to IList`1", typesys.NewVector(i32), z.generic(z.corlib.IListOfT, i32), true},
		{"to ICollection`1", typesys.NewVector(i32), z.generic(z.corlib.ICollectionOfT, i32), true},
		{"covariant IEnumerable`1", typesys.NewVector(dog), z.generic(z.corlib.IEnumerableOfT, animal), true},
		{"IList`1 is invariant", typesys.NewVector(dog), z.generic(z.corlib.IListOfT, animal), false},
		{"IList`1 of another element", typesys.NewVector(i32), z.generic(z.corlib.IListOfT, u32), false},
		{"multi-dimensional has no IList`1", typesys.NewArrayOfRank(i32, 2), z.generic(z.corlib.IListOfT, i32), false},
		{"multi-dimensional to IEnumerable", typesys.NewArrayOfRank(i32, 2), z.corlib.IEnumerable.Type(), true},
		{"not to a class", typesys.NewVector(dog), animal, false},
	}, typesys.EmptyGenericMap, options.AssignNone)
}

func TestIsAssignable_Pointers(t *testing.T) {
	t.Parallel()

	z := newZoo(t, platform.X64)
	i32 := z.i32()
	animal, dog := z.animal.Type(), z.dog.Type()

	checkAssignable(t, []assignCase{
		{"unmanaged to object", typesys.NewPointer(i32), z.object(), true},
		{"managed to object", typesys.NewByRef(i32), z.object(), false},
		{"manageability differs", typesys.NewPointer(i32), typesys.NewByRef(i32), false},
		{"reference elements", typesys.NewByRef(dog), typesys.NewByRef(animal), true},
		{"classification differs", typesys.NewPointer(i32), typesys.NewPointer(dog), false},
		{"method pointer to native int", typesys.NewMethodPointer(z.app, typesys.MethodSignature{ReturnType: i32}), z.intrinsic(primitive.IntrinsicNativeInt), true},
		{"method pointer to IntPtr", typesys.NewMethodPointer(z.app, typesys.MethodSignature{ReturnType: i32}), z.app.SystemType("IntPtr"), true},
		{"method pointer to object", typesys.NewMethodPointer(z.app, typesys.MethodSignature{ReturnType: i32}), z.object(), true},
		{"method pointer to int32", typesys.NewMethodPointer(z.app, typesys.MethodSignature{ReturnType: i32}), i32, false},
	}, typesys.EmptyGenericMap, options.AssignNone)

	t.Run("disallowing object", func(t *testing.T) {
		checkAssignable(t, []assignCase{
			{"unmanaged", typesys.NewPointer(i32), z.object(), false},
			{"managed", typesys.NewByRef(i32), z.object(), false},
			{"method pointer", typesys.NewMethodPointer(z.app, typesys.MethodSignature{ReturnType: i32}), z.object(), false},
			{"pointer to pointer", typesys.NewPointer(i32), typesys.NewPointer(i32), true},
		}, typesys.EmptyGenericMap, options.AssignDisallowUnconditionalObjectAssignability)
	})

	t.Run("lax platform", func(t *testing.T) {
		lax := platform.X64
		lax.ManagedPointerAssignableToObject = true
		lz := newZoo(t, lax)

		byref := typesys.NewByRef(lz.i32())
		assert.True(t, typesys.IsAssignable(byref, lz.object(), typesys.EmptyGenericMap, options.AssignNone))
		assert.False(t, typesys.IsAssignable(byref, lz.object(), typesys.EmptyGenericMap, options.AssignDisallowUnconditionalObjectAssignability))
	})

	t.Run("pinned operands are rejected", func(t *testing.T) {
		pinned := typesys.NewPinned(typesys.NewByRef(i32))

		wrapped := typesys.NewOptionalModifier(pinned, z.isConst.Type())

		for _, pair := range [][2]typesys.Type{
			{pinned, z.object()},
			{typesys.NewByRef(i32), pinned},
			{wrapped, z.object()},
			{typesys.NewByRef(i32), wrapped},
		} {
			err := assignFailure(pair[0], pair[1], typesys.EmptyGenericMap)
			assert.ErrorIs(t, err, diagnostic.ErrNotSupported, pair[0].String()+" -> "+pair[1].String())
		}

		assert.Panics(t, func() { typesys.IsAssignable(nil, i32, typesys.EmptyGenericMap, options.AssignNone) })
	})
}

func TestIsAssignable_GenericParameters(t *testing.T) {
	t.Parallel()

	z := newZoo(t, platform.X64)
	i32 := z.i32()
	t0, t1 := z.param(typesys.GenericKindType, 0), z.param(typesys.GenericKindType, 1)
	m0 := z.param(typesys.GenericKindMethod, 0)

	t.Run("unresolved chain compares the resolved reference", func(t *testing.T) {
		gm := typesys.NewGenericMap([]typesys.Type{m0}, nil)

		assert.True(t, typesys.IsAssignable(t0, m0, gm, options.AssignNone))
		assert.False(t, typesys.IsAssignable(t0, t1, gm, options.AssignNone))
		assert.True(t, typesys.IsAssignable(t0, t0, gm, options.AssignNone))
	})

	t.Run("resolved parameter recurses", func(t *testing.T) {
		gm := typesys.NewGenericMap([]typesys.Type{z.dog.Type(), i32}, nil)

		assert.True(t, typesys.IsAssignable(t0, z.animal.Type(), gm, options.AssignNone))
		assert.False(t, typesys.IsAssignable(t1, z.animal.Type(), gm, options.AssignNone))
		assert.True(t, typesys.IsAssignable(typesys.NewBoxed(t1), z.object(), gm, options.AssignNone))
	})

	t.Run("uncovered parameter", func(t *testing.T) {
		assert.True(t, typesys.IsAssignable(t1, t1, typesys.EmptyGenericMap, options.AssignNone))

		short := typesys.NewGenericMap([]typesys.Type{i32}, nil)
		for _, src := range []typesys.Type{t1, typesys.NewBoxed(t1), z.param(typesys.GenericKindType, 3)} {
			err := assignFailure(src, z.animal.Type(), short)
			assert.ErrorIs(t, err, diagnostic.ErrOutOfRange, src.String())
		}
	})

	t.Run("instances carry their arguments", func(t *testing.T) {
		holder := metadata.MustDefine(z.app, "Zoo", "Holder`1", typesys.DeclClass)
		holder.AddGenericParameter("T")
		holder.AddInterface(z.generic(z.corlib.IEnumerableOfT, holder.GenericParameterType(0)))

		dogs := holder.Instantiate(z.dog.Type())
		require.False(t, dogs.ContainsGenericArguments())

		assert.True(t, typesys.IsAssignable(dogs, z.generic(z.corlib.IEnumerableOfT, z.dog.Type()), typesys.EmptyGenericMap, options.AssignNone))
		assert.True(t, typesys.IsAssignable(dogs, z.generic(z.corlib.IEnumerableOfT, z.animal.Type()), typesys.EmptyGenericMap, options.AssignNone))
		assert.False(t, typesys.IsAssignable(dogs, z.generic(z.corlib.IEnumerableOfT, z.str()), typesys.EmptyGenericMap, options.AssignNone))
		assert.False(t, typesys.IsAssignable(dogs, holder.Instantiate(z.animal.Type()), typesys.EmptyGenericMap, options.AssignNone))
		assert.True(t, typesys.IsAssignable(dogs, z.object(), typesys.EmptyGenericMap, options.AssignNone))
	})
}

func TestIsAssignable_Variance(t *testing.T) {
	t.Parallel()

	z := newZoo(t, platform.X64)
	i32 := z.i32()
	enumerable := func(arg typesys.Type) typesys.Type { return z.generic(z.corlib.IEnumerableOfT, arg) }
	comparable := func(arg typesys.Type) typesys.Type { return z.generic(z.corlib.IComparableOfT, arg) }

	checkAssignable(t, []assignCase{
		{"covariant up", enumerable(z.dog.Type()), enumerable(z.animal.Type()), true},
		{"covariant down", enumerable(z.animal.Type()), enumerable(z.dog.Type()), false},
		{"covariant to object", enumerable(z.str()), enumerable(z.object()), true},
		{"covariance needs references", enumerable(i32), enumerable(z.object()), false},
		{"contravariant down", comparable(z.animal.Type()), comparable(z.dog.Type()), true},
		{"contravariant up", comparable(z.dog.Type()), comparable(z.animal.Type()), false},
		{"contravariance needs references", comparable(z.object()), comparable(i32), false},
		{"to the non-generic base", enumerable(i32), z.corlib.IEnumerable.Type(), true},
	}, typesys.EmptyGenericMap, options.AssignNone)
}
