package column_test

import (
	"math"
	"testing"

	"github.com/chaisql/ordkey/internal/column"
	"github.com/chaisql/ordkey/internal/kv"
	"github.com/chaisql/ordkey/internal/registry"
	"github.com/chaisql/ordkey/internal/serializer"
	"github.com/chaisql/ordkey/internal/types"
	"github.com/stretchr/testify/require"
)

func engine(t testing.TB) *kv.Engine {
	t.Helper()

	ng, err := kv.Open("", &kv.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, ng.Close())
	})

	return ng
}

func newColumn[T types.Value](t *testing.T, ng *kv.Engine, name string, opts *column.Options) *column.Column[T] {
	t.Helper()

	c, err := column.New[T](ng, registry.NewDefault(), name, opts)
	require.NoError(t, err)
	return c
}

func collect[T types.Value](t *testing.T, c *column.Column[T]) ([]uint64, []T) {
	t.Helper()

	var ids []uint64
	var values []T
	err := c.Ascend(func(id uint64, v T) error {
		ids = append(ids, id)
		values = append(values, v)
		return nil
	})
	require.NoError(t, err)

	return ids, values
}

func TestIntegerOrder(t *testing.T) {
	c := newColumn[types.IntegerValue](t, engine(t), "ints", nil)

	in := []int64{100, -1, 0, math.MinInt64, 1, -100, math.MaxInt64}
	for i, n := range in {
		require.NoError(t, c.Insert(uint64(i), types.NewIntegerValue(n)))
	}

	ids, values := collect(t, c)
	require.Equal(t, []uint64{3, 5, 1, 2, 4, 0, 6}, ids)
	require.Equal(t, []types.IntegerValue{math.MinInt64, -100, -1, 0, 1, 100, math.MaxInt64}, values)
}

func TestFloatOrder(t *testing.T) {
	c := newColumn[types.FloatValue](t, engine(t), "floats", nil)

	in := []float64{100, math.Inf(1), -42.5, 0, math.Inf(-1), math.Copysign(0, -1), 1e-300}
	for i, f := range in {
		require.NoError(t, c.Insert(uint64(i), types.NewFloatValue(f)))
	}

	ids, values := collect(t, c)
	// -0 and +0 share an index key and are visited by id
	require.Equal(t, []uint64{4, 2, 3, 5, 6, 0, 1}, ids)
	require.True(t, math.IsInf(float64(values[0]), -1))
	require.True(t, math.IsInf(float64(values[6]), 1))

	err := c.Insert(10, types.NewFloatValue(math.NaN()))
	require.ErrorIs(t, err, types.ErrInvalidValue)
	require.True(t, types.IsContractViolation(err))

	_, err = c.Get(10)
	require.ErrorIs(t, err, kv.ErrKeyNotFound)
}

func TestStringOrder(t *testing.T) {
	c := newColumn[types.StringValue](t, engine(t), "strings", &column.Options{
		Serializer: serializer.Config{Plugin: "snappy+msgpack"},
	})
	require.Equal(t, "snappy+msgpack", c.Plugin())

	in := []string{"banana", "", "apple", "a", "apple pie", "é", "z"}
	for i, s := range in {
		require.NoError(t, c.Insert(uint64(i), types.NewStringValue(s)))
	}

	_, values := collect(t, c)
	require.Equal(t, []types.StringValue{"", "a", "apple", "apple pie", "banana", "z", "é"}, values)

	err := c.Insert(100, types.NewStringValue("\xff"))
	require.ErrorIs(t, err, types.ErrInvalidValue)
}

func TestTimestampOrder(t *testing.T) {
	c := newColumn[types.TimestampValue](t, engine(t), "ts", &column.Options{
		Serializer: serializer.Config{Plugin: "json"},
	})

	mk := func(ticks, nanos int64) types.TimestampValue {
		ts, err := types.NewTimestamp(ticks, nanos)
		require.NoError(t, err)
		return ts
	}

	in := []types.TimestampValue{mk(200, 0), mk(100, 50), mk(-1, 0), mk(100, 30)}
	for i, v := range in {
		require.NoError(t, c.Insert(uint64(i), v))
	}

	_, values := collect(t, c)
	require.Equal(t, []types.TimestampValue{mk(-1, 0), mk(100, 30), mk(100, 50), mk(200, 0)}, values)
}

func TestUpdateAndDelete(t *testing.T) {
	c := newColumn[types.IntegerValue](t, engine(t), "ints", nil)

	require.NoError(t, c.Insert(1, 10))
	require.NoError(t, c.Insert(2, 20))
	require.NoError(t, c.Insert(3, 10))

	ids, _ := collect(t, c)
	require.Equal(t, []uint64{1, 3, 2}, ids)

	// moving 1 after 2
	require.NoError(t, c.Insert(1, 30))
	ids, values := collect(t, c)
	require.Equal(t, []uint64{3, 2, 1}, ids)
	require.Equal(t, []types.IntegerValue{10, 20, 30}, values)

	// same value, same position
	require.NoError(t, c.Insert(2, 20))
	ids, _ = collect(t, c)
	require.Equal(t, []uint64{3, 2, 1}, ids)

	v, err := c.Get(1)
	require.NoError(t, err)
	require.Equal(t, types.IntegerValue(30), v)

	require.NoError(t, c.Delete(3))
	ids, _ = collect(t, c)
	require.Equal(t, []uint64{2, 1}, ids)

	err = c.Delete(3)
	require.ErrorIs(t, err, kv.ErrKeyNotFound)
}

func TestColumnsAreIsolated(t *testing.T) {
	ng := engine(t)

	a := newColumn[types.BooleanValue](t, ng, "a", nil)
	b := newColumn[types.BooleanValue](t, ng, "b", nil)

	require.NoError(t, a.Insert(1, true))
	require.NoError(t, b.Insert(1, false))
	require.NoError(t, a.Insert(2, false))

	_, values := collect(t, a)
	require.Equal(t, []types.BooleanValue{false, true}, values)

	_, values = collect(t, b)
	require.Equal(t, []types.BooleanValue{false}, values)
}

func TestNilColumn(t *testing.T) {
	c := newColumn[types.NilValue](t, engine(t), "nils", nil)

	require.NoError(t, c.Insert(2, types.NewNilValue()))
	require.NoError(t, c.Insert(1, types.NewNilValue()))

	ids, _ := collect(t, c)
	require.Equal(t, []uint64{1, 2}, ids)
}

func TestNew(t *testing.T) {
	ng := engine(t)

	_, err := column.New[types.IntegerValue](ng, registry.New(nil), "x", nil)
	require.ErrorIs(t, err, registry.ErrNotRegistered)

	_, err = column.New[types.IntegerValue](ng, registry.NewDefault(), "x", &column.Options{
		Serializer: serializer.Config{Plugin: "xml"},
	})
	require.ErrorIs(t, err, serializer.ErrPluginNotFound)

	c, err := column.New[types.IntegerValue](ng, registry.NewDefault(), "x", nil)
	require.NoError(t, err)
	require.Equal(t, "msgpack", c.Plugin())
	require.Equal(t, "x", c.Name())
}

func TestReopen(t *testing.T) {
	ng := engine(t)

	c := newColumn[types.IntegerValue](t, ng, "ints", &column.Options{
		Serializer: serializer.Config{Plugin: "json"},
	})
	require.NoError(t, c.Insert(1, 5))
	require.NoError(t, c.Insert(2, -3))

	// an empty config selects the plugin the column was created with
	c = newColumn[types.IntegerValue](t, ng, "ints", nil)
	require.Equal(t, "json", c.Plugin())

	ids, values := collect(t, c)
	require.Equal(t, []uint64{2, 1}, ids)
	require.Equal(t, []types.IntegerValue{-3, 5}, values)

	require.NoError(t, c.Insert(1, 7))
	_, values = collect(t, c)
	require.Equal(t, []types.IntegerValue{-3, 7}, values)

	_, err := column.New[types.IntegerValue](ng, registry.NewDefault(), "ints", &column.Options{
		Serializer: serializer.Config{Plugin: "msgpack"},
	})
	require.ErrorIs(t, err, column.ErrPluginMismatch)

	c = newColumn[types.IntegerValue](t, ng, "ints", &column.Options{
		Serializer: serializer.Config{Plugin: "json"},
	})
	require.Equal(t, "json", c.Plugin())

	_, err = column.New[types.FloatValue](ng, registry.NewDefault(), "ints", nil)
	require.ErrorIs(t, err, column.ErrTypeMismatch)
}

func TestInvalidName(t *testing.T) {
	_, err := column.New[types.IntegerValue](engine(t), registry.NewDefault(), "a\x1Fb", nil)
	require.ErrorIs(t, err, kv.ErrInvalidStoreName)
}

func TestFailedInsertLeavesColumnUnchanged(t *testing.T) {
	ng := engine(t)
	c := newColumn[types.IntegerValue](t, ng, "ints", nil)
	require.NoError(t, c.Insert(1, 10))

	// drop the posting list of 10 behind the column's back
	index, err := ng.Store("ints.index")
	require.NoError(t, err)
	k, err := types.Integer().EncodeIndexKey(10)
	require.NoError(t, err)
	require.NoError(t, index.Delete(k))

	err = c.Insert(1, 20)
	require.ErrorIs(t, err, kv.ErrKeyNotFound)

	// neither the payload nor the posting list of 20 were written
	v, err := c.Get(1)
	require.NoError(t, err)
	require.Equal(t, types.IntegerValue(10), v)

	k, err = types.Integer().EncodeIndexKey(20)
	require.NoError(t, err)
	_, err = index.Get(k)
	require.ErrorIs(t, err, kv.ErrKeyNotFound)

	ids, _ := collect(t, c)
	require.Empty(t, ids)
}
