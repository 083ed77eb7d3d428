package types_test

import (
	"bytes"
	"math"
	"testing"
	"testing/quick"

	"github.com/chaisql/ordkey/internal/types"
	"github.com/stretchr/testify/require"
)

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

// checkLaws verifies, for a pair of values, that the key order matches Compare,
// that encoding is deterministic and that equal values hash the same.
func checkLaws[T types.Value](t *testing.T, b types.Behavior[T], x, y T) bool {
	t.Helper()

	kx, err := b.EncodeIndexKey(x)
	require.NoError(t, err)
	ky, err := b.EncodeIndexKey(y)
	require.NoError(t, err)

	again, err := b.EncodeIndexKey(x)
	require.NoError(t, err)
	if !bytes.Equal(kx, again) {
		t.Logf("non deterministic key for %v", x)
		return false
	}

	c := b.Compare(x, y)
	if sign(c) != bytes.Compare(kx, ky) {
		t.Logf("compare(%v, %v) = %d but keys compare %d", x, y, c, bytes.Compare(kx, ky))
		return false
	}
	if c == 0 && b.Hash(x) != b.Hash(y) {
		t.Logf("%v and %v are equal but hash differently", x, y)
		return false
	}

	return true
}

func TestOrderingLaws(t *testing.T) {
	t.Run("boolean", func(t *testing.T) {
		for _, x := range []bool{false, true} {
			for _, y := range []bool{false, true} {
				require.True(t, checkLaws[types.BooleanValue](t, types.Boolean(), types.NewBooleanValue(x), types.NewBooleanValue(y)))
			}
		}
	})

	t.Run("integer", func(t *testing.T) {
		err := quick.Check(func(x, y int64) bool {
			return checkLaws[types.IntegerValue](t, types.Integer(), types.NewIntegerValue(x), types.NewIntegerValue(y)) &&
				checkLaws[types.IntegerValue](t, types.Integer(), types.NewIntegerValue(x), types.NewIntegerValue(-x))
		}, nil)
		require.NoError(t, err)
	})

	t.Run("float", func(t *testing.T) {
		err := quick.Check(func(x, y float64) bool {
			return checkLaws[types.FloatValue](t, types.Float(), types.NewFloatValue(x), types.NewFloatValue(y)) &&
				checkLaws[types.FloatValue](t, types.Float(), types.NewFloatValue(x), types.NewFloatValue(-x))
		}, nil)
		require.NoError(t, err)

		specials := []float64{
			math.Inf(-1), -math.MaxFloat64, -1, -math.SmallestNonzeroFloat64,
			math.Copysign(0, -1), 0, math.SmallestNonzeroFloat64, 1, math.MaxFloat64, math.Inf(1),
		}
		for _, x := range specials {
			for _, y := range specials {
				require.True(t, checkLaws[types.FloatValue](t, types.Float(), types.NewFloatValue(x), types.NewFloatValue(y)))
			}
		}
	})

	t.Run("string", func(t *testing.T) {
		err := quick.Check(func(x, y string) bool {
			return checkLaws[types.StringValue](t, types.String(), types.NewStringValue(x), types.NewStringValue(y)) &&
				checkLaws[types.StringValue](t, types.String(), types.NewStringValue(x), types.NewStringValue(x+y))
		}, nil)
		require.NoError(t, err)
	})

	t.Run("timestamp", func(t *testing.T) {
		err := quick.Check(func(t1, t2 int64, n1, n2 uint8) bool {
			a, err := types.NewTimestamp(t1, int64(n1%100))
			require.NoError(t, err)
			b, err := types.NewTimestamp(t2, int64(n2%100))
			require.NoError(t, err)
			c, err := types.NewTimestamp(t1, int64(n2%100))
			require.NoError(t, err)

			return checkLaws[types.TimestampValue](t, types.Timestamp(), a, b) &&
				checkLaws[types.TimestampValue](t, types.Timestamp(), a, c)
		}, nil)
		require.NoError(t, err)
	})
}

func TestSingletons(t *testing.T) {
	require.Same(t, types.Nil(), types.Nil())
	require.Same(t, types.Boolean(), types.Boolean())
	require.Same(t, types.Integer(), types.Integer())
	require.Same(t, types.Float(), types.Float())
	require.Same(t, types.String(), types.String())
	require.Same(t, types.Timestamp(), types.Timestamp())
}

func TestTypeNames(t *testing.T) {
	tests := []struct {
		name string
		got  string
	}{
		{"nil", types.Nil().TypeName()},
		{"boolean", types.Boolean().TypeName()},
		{"integer", types.Integer().TypeName()},
		{"float", types.Float().TypeName()},
		{"string", types.String().TypeName()},
		{"timestamp", types.Timestamp().TypeName()},
	}

	for _, test := range tests {
		require.Equal(t, test.name, test.got)
	}
}

func requireAscendingKeys[T types.Value](t *testing.T, b types.Behavior[T], values ...T) {
	t.Helper()

	var prev []byte
	for i, v := range values {
		k, err := b.EncodeIndexKey(v)
		require.NoError(t, err)
		if i > 0 {
			require.Equal(t, -1, bytes.Compare(prev, k), "key of %v should sort before key of %v", values[i-1], v)
			require.Equal(t, -1, b.Compare(values[i-1], v))
		}
		prev = k
	}
}

func TestNil(t *testing.T) {
	b := types.Nil()

	k, err := b.EncodeIndexKey(types.NewNilValue())
	require.NoError(t, err)
	require.NotNil(t, k)
	require.Empty(t, k)

	require.Equal(t, 0, b.Compare(types.NewNilValue(), types.NewNilValue()))
	require.True(t, b.IsValid(types.NewNilValue()))
	require.Equal(t, uint64(0), b.Hash(types.NewNilValue()))

	_, err = b.DecodeIndexKey(k)
	require.NoError(t, err)
	_, err = b.DecodeIndexKey([]byte{0})
	require.ErrorIs(t, err, types.ErrInvalidKey)
}

func TestBoolean(t *testing.T) {
	b := types.Boolean()

	requireAscendingKeys[types.BooleanValue](t, b, false, true)

	k, err := b.EncodeIndexKey(false)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00}, k)
	k, err = b.EncodeIndexKey(true)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, k)

	v, err := b.DecodeIndexKey(k)
	require.NoError(t, err)
	require.Equal(t, types.NewBooleanValue(true), v)

	_, err = b.DecodeIndexKey([]byte{0x01, 0x00})
	require.ErrorIs(t, err, types.ErrInvalidKey)
	require.NotEqual(t, b.Hash(true), b.Hash(false))
}

func TestInteger(t *testing.T) {
	b := types.Integer()

	requireAscendingKeys[types.IntegerValue](t, b, math.MinInt64, -100, -1, 0, 1, 100, math.MaxInt64)

	for _, x := range []int64{math.MinInt64, -42, 0, 42, math.MaxInt64} {
		k, err := b.EncodeIndexKey(types.NewIntegerValue(x))
		require.NoError(t, err)
		require.Len(t, k, 8)

		got, err := b.DecodeIndexKey(k)
		require.NoError(t, err)
		require.Equal(t, types.NewIntegerValue(x), got)
	}

	tests := []struct {
		a, b int64
		want int
	}{
		{-10, 5, -1},
		{5, -10, 1},
		{42, 42, 0},
		{math.MinInt64, math.MaxInt64, -1},
		{math.MaxInt64, math.MinInt64, 1},
	}
	for _, test := range tests {
		require.Equal(t, test.want, b.Compare(types.NewIntegerValue(test.a), types.NewIntegerValue(test.b)))
	}

	_, err := b.DecodeIndexKey([]byte{1})
	require.ErrorIs(t, err, types.ErrInvalidKey)
}

func TestFloat(t *testing.T) {
	b := types.Float()
	negZero := math.Copysign(0, -1)

	requireAscendingKeys[types.FloatValue](t, b, types.FloatValue(math.Inf(-1)), -42.5, 0, 100, types.FloatValue(math.Inf(1)))

	t.Run("NaN", func(t *testing.T) {
		nan := types.NewFloatValue(math.NaN())
		require.False(t, b.IsValid(nan))

		_, err := b.EncodeIndexKey(nan)
		require.ErrorIs(t, err, types.ErrInvalidValue)
		require.True(t, types.IsContractViolation(err))

		require.Equal(t, 0, b.Compare(nan, nan))
		require.Equal(t, -1, b.Compare(nan, types.FloatValue(math.Inf(-1))))
		require.Equal(t, b.Hash(nan), b.Hash(types.NewFloatValue(-math.NaN())))
	})

	t.Run("valid values", func(t *testing.T) {
		for _, x := range []float64{0, negZero, 42.5, -42.5, math.MaxFloat64, -math.MaxFloat64, math.Inf(1), math.Inf(-1)} {
			require.True(t, b.IsValid(types.NewFloatValue(x)), "%v", x)

			k, err := b.EncodeIndexKey(types.NewFloatValue(x))
			require.NoError(t, err)
			require.Len(t, k, 8)
		}
	})

	t.Run("negative zero", func(t *testing.T) {
		pos, err := b.EncodeIndexKey(0)
		require.NoError(t, err)
		neg, err := b.EncodeIndexKey(types.NewFloatValue(negZero))
		require.NoError(t, err)

		require.Equal(t, 0, b.Compare(0, types.NewFloatValue(negZero)))
		require.Equal(t, pos, neg)
		require.Equal(t, b.Hash(0), b.Hash(types.NewFloatValue(negZero)))

		got, err := b.DecodeIndexKey(neg)
		require.NoError(t, err)
		require.False(t, math.Signbit(float64(got)))
	})

	t.Run("decode", func(t *testing.T) {
		for _, x := range []float64{-42.5, 1e-300, math.Inf(-1)} {
			k, err := b.EncodeIndexKey(types.NewFloatValue(x))
			require.NoError(t, err)
			got, err := b.DecodeIndexKey(k)
			require.NoError(t, err)
			require.Equal(t, types.NewFloatValue(x), got)
		}

		_, err := b.DecodeIndexKey([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
		require.ErrorIs(t, err, types.ErrInvalidKey)
	})
}

func TestString(t *testing.T) {
	b := types.String()

	k, err := b.EncodeIndexKey("")
	require.NoError(t, err)
	require.Equal(t, []byte{}, k)

	requireAscendingKeys[types.StringValue](t, b, "", "A", "Z", "a", "apple", "apples", "banana", "é", "日本", "😀")

	// byte-wise, not UTF-16 code unit order
	require.Equal(t, -1, b.Compare("\uFFFD", "\U0001F600"))

	invalid := types.NewStringValue("\xff\xfe")
	require.False(t, b.IsValid(invalid))
	_, err = b.EncodeIndexKey(invalid)
	require.ErrorIs(t, err, types.ErrInvalidValue)

	got, err := b.DecodeIndexKey([]byte("héllo"))
	require.NoError(t, err)
	require.Equal(t, types.NewStringValue("héllo"), got)

	_, err = b.DecodeIndexKey([]byte{0xC3})
	require.ErrorIs(t, err, types.ErrInvalidKey)

	require.Equal(t, b.Hash("abc"), b.Hash(types.NewStringValue("ab"+"c")))
}

func TestKeysAreNotShared(t *testing.T) {
	b := types.Integer()

	k1, err := b.EncodeIndexKey(1)
	require.NoError(t, err)
	k1[0] = 0

	k2, err := b.EncodeIndexKey(1)
	require.NoError(t, err)
	require.NotEqual(t, k1, k2)
}

func TestErase(t *testing.T) {
	b := types.Erase[types.IntegerValue](types.Integer())

	require.Equal(t, "integer", b.TypeName())
	require.Equal(t, types.TypeInteger, b.Type())

	c, err := b.Compare(types.NewIntegerValue(-1), types.NewIntegerValue(1))
	require.NoError(t, err)
	require.Equal(t, -1, c)

	k, err := b.EncodeIndexKey(types.NewIntegerValue(7))
	require.NoError(t, err)
	want, err := types.Integer().EncodeIndexKey(7)
	require.NoError(t, err)
	require.Equal(t, want, k)

	h, err := b.Hash(types.NewIntegerValue(7))
	require.NoError(t, err)
	require.Equal(t, types.Integer().Hash(7), h)

	_, err = b.EncodeIndexKey(types.NewStringValue("7"))
	require.ErrorIs(t, err, types.ErrShapeMismatch)
	require.True(t, types.IsContractViolation(err))

	_, err = b.EncodeIndexKey(nil)
	require.ErrorIs(t, err, types.ErrNullArgument)
	require.True(t, types.IsContractViolation(err))

	_, err = b.Compare(types.NewIntegerValue(1), types.NewFloatValue(1))
	require.ErrorIs(t, err, types.ErrShapeMismatch)

	require.False(t, b.IsValid(nil))
	require.True(t, b.IsValid(types.NewIntegerValue(0)))
}
