package types

import (
	"cmp"
	"math"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/chaisql/ordkey/internal/encoding"
)

var (
	_ Behavior[FloatValue]   = (*FloatTypeDef)(nil)
	_ KeyDecoder[FloatValue] = (*FloatTypeDef)(nil)
)

// canonicalNaN is the bit pattern every NaN is hashed as.
const canonicalNaN = 0x7FF8000000000001

// FloatTypeDef is the behavior of FloatValue.
//
// Compare follows cmp.Compare: -0 equals +0, NaN equals NaN and sorts before
// every other value. NaN is not a valid value and cannot be encoded.
// -0 is encoded and hashed as +0 so that equal values share a key.
type FloatTypeDef struct{}

var floatDef = &FloatTypeDef{}

// Float returns the behavior of FloatValue. Every call returns the same instance.
func Float() *FloatTypeDef {
	return floatDef
}

func (*FloatTypeDef) TypeName() string {
	return "float"
}

func (*FloatTypeDef) Compare(a, b FloatValue) int {
	return cmp.Compare(a, b)
}

func (*FloatTypeDef) IsValid(v FloatValue) bool {
	return !math.IsNaN(float64(v))
}

func (*FloatTypeDef) EncodeIndexKey(v FloatValue) ([]byte, error) {
	x := float64(v)
	if math.IsNaN(x) {
		return nil, errors.Wrap(ErrInvalidValue, "NaN cannot be used as an index key")
	}
	if x == 0 {
		x = 0
	}

	return encoding.EncodeFloat64(make([]byte, 0, encoding.Float64Size), x), nil
}

func (*FloatTypeDef) DecodeIndexKey(key []byte) (FloatValue, error) {
	x, err := encoding.DecodeFloat64(key)
	if err != nil {
		return 0, invalidKey(err)
	}
	if math.IsNaN(x) {
		return 0, errors.Wrap(ErrInvalidKey, "key decodes to NaN")
	}
	if x == 0 {
		x = 0
	}

	return FloatValue(x), nil
}

func (*FloatTypeDef) Hash(v FloatValue) uint64 {
	x := float64(v)
	switch {
	case math.IsNaN(x):
		return hashUint64(canonicalNaN)
	case x == 0:
		return hashUint64(0)
	}

	return hashUint64(math.Float64bits(x))
}

var _ Value = NewFloatValue(0)

// FloatValue is an IEEE-754 double precision domain value.
type FloatValue float64

// NewFloatValue returns a float value.
func NewFloatValue(x float64) FloatValue {
	return FloatValue(x)
}

func (v FloatValue) V() any {
	return float64(v)
}

func (v FloatValue) Type() Type {
	return TypeFloat
}

func (v FloatValue) String() string {
	f := float64(v)
	abs := math.Abs(f)
	fmt := byte('f')
	if abs != 0 && !math.IsInf(f, 0) {
		if abs < 1e-6 || abs >= 1e15 {
			fmt = 'e'
		}
	}

	// By default the precision is -1 to use the smallest number of digits.
	// See https://pkg.go.dev/strconv#FormatFloat
	prec := -1
	// if the number is round, add .0
	if !math.IsInf(f, 0) && !math.IsNaN(f) && float64(int64(f)) == f {
		prec = 1
	}
	return strconv.FormatFloat(f, fmt, prec, 64)
}

// MarshalJSON fails for NaN and infinities, which JSON cannot represent.
func (v FloatValue) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errors.Wrapf(ErrInvalidValue, "cannot marshal %s to JSON", v)
	}

	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}
