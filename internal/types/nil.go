package types

import (
	"github.com/cockroachdb/errors"
)

var (
	_ Behavior[NilValue]   = (*NilTypeDef)(nil)
	_ KeyDecoder[NilValue] = (*NilTypeDef)(nil)
)

// NilTypeDef is the behavior of NilValue.
type NilTypeDef struct{}

var nilDef = &NilTypeDef{}

// Nil returns the behavior of NilValue. Every call returns the same instance.
func Nil() *NilTypeDef {
	return nilDef
}

func (*NilTypeDef) TypeName() string {
	return "nil"
}

func (*NilTypeDef) Compare(a, b NilValue) int {
	return 0
}

func (*NilTypeDef) IsValid(v NilValue) bool {
	return true
}

// EncodeIndexKey returns an empty key: there is only one nil.
func (*NilTypeDef) EncodeIndexKey(v NilValue) ([]byte, error) {
	return []byte{}, nil
}

func (*NilTypeDef) DecodeIndexKey(key []byte) (NilValue, error) {
	if len(key) != 0 {
		return NilValue{}, errors.Wrapf(ErrInvalidKey, "nil key must be empty, got %d bytes", len(key))
	}

	return NilValue{}, nil
}

func (*NilTypeDef) Hash(v NilValue) uint64 {
	return 0
}

var _ Value = NewNilValue()

// NilValue is the unit value. All nil values are equal.
type NilValue struct{}

// NewNilValue returns the nil value.
func NewNilValue() NilValue {
	return NilValue{}
}

func (v NilValue) V() any {
	return nil
}

func (v NilValue) Type() Type {
	return TypeNil
}

func (v NilValue) String() string {
	return "nil"
}

func (v NilValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}
