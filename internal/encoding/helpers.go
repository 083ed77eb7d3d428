package encoding

import (
	"bytes"
)

func write8(dst []byte, n uint64) []byte {
	return append(
		dst,
		byte(n>>56),
		byte(n>>48),
		byte(n>>40),
		byte(n>>32),
		byte(n>>24),
		byte(n>>16),
		byte(n>>8),
		byte(n),
	)
}

func read8(b []byte) uint64 {
	return (uint64(b[0]) << 56) |
		(uint64(b[1]) << 48) |
		(uint64(b[2]) << 40) |
		(uint64(b[3]) << 32) |
		(uint64(b[4]) << 24) |
		(uint64(b[5]) << 16) |
		(uint64(b[6]) << 8) |
		uint64(b[7])
}

// Compare compares two encoded keys using unsigned byte-wise lexicographic order.
// This is the only comparison under which the encodings of this package sort.
func Compare(k1, k2 []byte) int {
	return bytes.Compare(k1, k2)
}

// Equal reports whether two encoded keys are identical.
func Equal(k1, k2 []byte) bool {
	return bytes.Equal(k1, k2)
}
