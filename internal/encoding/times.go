package encoding

import (
	"github.com/cockroachdb/errors"
)

// EncodeTimestamp appends the two-field timestamp key: ticks first, encoded like EncodeInt64,
// then the sub-tick remainder as a raw big-endian int64.
// The remainder is never negative, so its raw form already sorts.
func EncodeTimestamp(dst []byte, ticks, nanos int64) []byte {
	dst = EncodeInt64(dst, ticks)
	return write8(dst, uint64(nanos))
}

// DecodeTimestamp decodes a buffer produced by EncodeTimestamp.
func DecodeTimestamp(b []byte) (ticks, nanos int64, err error) {
	if len(b) != TimestampSize {
		return 0, 0, errors.Wrapf(ErrInvalidLength, "cannot decode %d bytes to timestamp", len(b))
	}

	ticks, err = DecodeInt64(b[:Int64Size])
	if err != nil {
		return 0, 0, err
	}

	return ticks, int64(read8(b[Int64Size:])), nil
}
