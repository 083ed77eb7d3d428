package encoding

import (
	"math"

	"github.com/cockroachdb/errors"
)

const signBit = 1 << 63

// EncodeUint64 appends n in big-endian order.
func EncodeUint64(dst []byte, n uint64) []byte {
	return write8(dst, n)
}

// DecodeUint64 decodes a big-endian uint64.
func DecodeUint64(b []byte) (uint64, error) {
	if len(b) != Uint64Size {
		return 0, errors.Wrapf(ErrInvalidLength, "cannot decode %d bytes to uint64", len(b))
	}

	return read8(b), nil
}

// EncodeInt64 appends n with its sign bit flipped, in big-endian order.
// Raw two's-complement would place negative numbers after positive ones.
func EncodeInt64(dst []byte, n int64) []byte {
	return write8(dst, uint64(n)+math.MaxInt64+1)
}

// DecodeInt64 decodes a buffer produced by EncodeInt64.
func DecodeInt64(b []byte) (int64, error) {
	if len(b) != Int64Size {
		return 0, errors.Wrapf(ErrInvalidLength, "cannot decode %d bytes to int64", len(b))
	}

	x := read8(b)
	x -= math.MaxInt64 + 1
	return int64(x), nil
}

// EncodeFloat64 appends the IEEE-754 representation of x, transformed so that it sorts
// numerically: positive values have their sign bit flipped, negative values have every bit flipped.
// The sign bit is tested directly, so -0 sorts immediately before +0.
// NaN has no place in that order and must be rejected by the caller.
func EncodeFloat64(dst []byte, x float64) []byte {
	fb := math.Float64bits(x)
	if fb&signBit == 0 {
		fb ^= signBit
	} else {
		fb ^= 1<<64 - 1
	}
	return write8(dst, fb)
}

// DecodeFloat64 decodes a buffer produced by EncodeFloat64.
func DecodeFloat64(b []byte) (float64, error) {
	if len(b) != Float64Size {
		return 0, errors.Wrapf(ErrInvalidLength, "cannot decode %d bytes to float64", len(b))
	}

	x := read8(b)
	if x&signBit != 0 {
		x ^= signBit
	} else {
		x ^= 1<<64 - 1
	}
	return math.Float64frombits(x), nil
}
