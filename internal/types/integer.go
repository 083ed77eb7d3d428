package types

import (
	"cmp"
	"strconv"

	"github.com/chaisql/ordkey/internal/encoding"
)

var (
	_ Behavior[IntegerValue]   = (*IntegerTypeDef)(nil)
	_ KeyDecoder[IntegerValue] = (*IntegerTypeDef)(nil)
)

// IntegerTypeDef is the behavior of IntegerValue.
type IntegerTypeDef struct{}

var integerDef = &IntegerTypeDef{}

// Integer returns the behavior of IntegerValue. Every call returns the same instance.
func Integer() *IntegerTypeDef {
	return integerDef
}

func (*IntegerTypeDef) TypeName() string {
	return "integer"
}

func (*IntegerTypeDef) Compare(a, b IntegerValue) int {
	return cmp.Compare(a, b)
}

func (*IntegerTypeDef) IsValid(v IntegerValue) bool {
	return true
}

// EncodeIndexKey returns the 8 byte big-endian representation of v
// with the sign bit flipped, so that negative values sort first.
func (*IntegerTypeDef) EncodeIndexKey(v IntegerValue) ([]byte, error) {
	return encoding.EncodeInt64(make([]byte, 0, encoding.Int64Size), int64(v)), nil
}

func (*IntegerTypeDef) DecodeIndexKey(key []byte) (IntegerValue, error) {
	x, err := encoding.DecodeInt64(key)
	if err != nil {
		return 0, invalidKey(err)
	}

	return IntegerValue(x), nil
}

func (*IntegerTypeDef) Hash(v IntegerValue) uint64 {
	return hashUint64(uint64(v))
}

var _ Value = NewIntegerValue(0)

// IntegerValue is a 64-bit signed integer domain value.
type IntegerValue int64

// NewIntegerValue returns an integer value.
func NewIntegerValue(x int64) IntegerValue {
	return IntegerValue(x)
}

func (v IntegerValue) V() any {
	return int64(v)
}

func (v IntegerValue) Type() Type {
	return TypeInteger
}

func (v IntegerValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v IntegerValue) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(v), 10), nil
}
