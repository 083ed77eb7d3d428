package types

import (
	"strconv"

	"github.com/chaisql/ordkey/internal/encoding"
)

var (
	_ Behavior[BooleanValue]   = (*BooleanTypeDef)(nil)
	_ KeyDecoder[BooleanValue] = (*BooleanTypeDef)(nil)
)

// BooleanTypeDef is the behavior of BooleanValue. False sorts before true.
type BooleanTypeDef struct{}

var booleanDef = &BooleanTypeDef{}

// Boolean returns the behavior of BooleanValue. Every call returns the same instance.
func Boolean() *BooleanTypeDef {
	return booleanDef
}

func (*BooleanTypeDef) TypeName() string {
	return "boolean"
}

func (*BooleanTypeDef) Compare(a, b BooleanValue) int {
	switch {
	case a == b:
		return 0
	case !bool(a):
		return -1
	default:
		return 1
	}
}

func (*BooleanTypeDef) IsValid(v BooleanValue) bool {
	return true
}

func (*BooleanTypeDef) EncodeIndexKey(v BooleanValue) ([]byte, error) {
	return encoding.EncodeBoolean(make([]byte, 0, encoding.BooleanSize), bool(v)), nil
}

func (*BooleanTypeDef) DecodeIndexKey(key []byte) (BooleanValue, error) {
	b, err := encoding.DecodeBoolean(key)
	if err != nil {
		return false, invalidKey(err)
	}

	return BooleanValue(b), nil
}

func (*BooleanTypeDef) Hash(v BooleanValue) uint64 {
	if v {
		return hashUint64(1)
	}

	return hashUint64(0)
}

var _ Value = NewBooleanValue(false)

// BooleanValue is a boolean domain value.
type BooleanValue bool

// NewBooleanValue returns a boolean value.
func NewBooleanValue(x bool) BooleanValue {
	return BooleanValue(x)
}

func (v BooleanValue) V() any {
	return bool(v)
}

func (v BooleanValue) Type() Type {
	return TypeBoolean
}

func (v BooleanValue) String() string {
	return strconv.FormatBool(bool(v))
}

func (v BooleanValue) MarshalJSON() ([]byte, error) {
	return strconv.AppendBool(nil, bool(v)), nil
}
