package types

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"
)

// NewValue creates a Value from a Go value.
// Integer kinds become IntegerValue, floats become FloatValue and
// time.Time becomes a TimestampValue with its sub-tick remainder kept.
func NewValue(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return NewNilValue(), nil
	case Value:
		return v, nil
	case bool:
		return NewBooleanValue(v), nil
	case int:
		return NewIntegerValue(int64(v)), nil
	case int8:
		return NewIntegerValue(int64(v)), nil
	case int16:
		return NewIntegerValue(int64(v)), nil
	case int32:
		return NewIntegerValue(int64(v)), nil
	case int64:
		return NewIntegerValue(v), nil
	case uint8:
		return NewIntegerValue(int64(v)), nil
	case uint16:
		return NewIntegerValue(int64(v)), nil
	case uint32:
		return NewIntegerValue(int64(v)), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, errors.Wrapf(ErrOutOfRange, "cannot convert unsigned integer %d to int64", v)
		}
		return NewIntegerValue(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, errors.Wrapf(ErrOutOfRange, "cannot convert unsigned integer %d to int64", v)
		}
		return NewIntegerValue(int64(v)), nil
	case float32:
		return NewFloatValue(float64(v)), nil
	case float64:
		return NewFloatValue(v), nil
	case string:
		return NewStringValue(v), nil
	case time.Time:
		ts, err := timestampFromTime(v)
		if err != nil {
			return nil, err
		}
		return ts, nil
	}

	return nil, errors.Errorf("unsupported type %T", x)
}
