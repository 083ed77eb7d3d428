// Package encoding provides types and functions to encode primitive values into naturally sorted
// binary representations. That way, if vA < vB, where vA and vB are two unencoded values of the same type,
// then eA < eB under unsigned byte-wise comparison, where eA and eB are the respective encoded values
// of vA and vB.
//
// Encoded values carry no type tag and, except for text, have a fixed width.
package encoding

import (
	"github.com/cockroachdb/errors"
)

// Widths of the fixed-size encodings.
const (
	BooleanSize   = 1
	Int64Size     = 8
	Uint64Size    = 8
	Float64Size   = 8
	TimestampSize = Int64Size + Int64Size
)

// ErrInvalidLength is returned by decoders when the buffer doesn't have
// the exact width of the encoded type.
var ErrInvalidLength = errors.New("invalid encoded length")

// EncodeBoolean appends 0x00 for false and 0x01 for true.
func EncodeBoolean(dst []byte, x bool) []byte {
	if x {
		return append(dst, 1)
	}

	return append(dst, 0)
}

// DecodeBoolean decodes a buffer produced by EncodeBoolean.
func DecodeBoolean(b []byte) (bool, error) {
	if len(b) != BooleanSize {
		return false, errors.Wrapf(ErrInvalidLength, "cannot decode %d bytes to bool", len(b))
	}

	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}

	return false, errors.Newf("invalid encoded bool %#x", b[0])
}

// EncodeText appends the raw UTF-8 bytes of s.
// UTF-8 byte order matches codepoint order, so no transformation is needed.
func EncodeText(dst []byte, s string) []byte {
	return append(dst, s...)
}

// DecodeText returns the text stored in b.
func DecodeText(b []byte) string {
	return string(b)
}
