package types

import (
	"github.com/cespare/xxhash/v2"

	"github.com/chaisql/ordkey/internal/encoding"
)

func hashUint64(x uint64) uint64 {
	var b [encoding.Uint64Size]byte
	return xxhash.Sum64(encoding.EncodeUint64(b[:0], x))
}

func hashString(s string) uint64 {
	return xxhash.Sum64String(s)
}

func hashTimestamp(ticks, nanos int64) uint64 {
	var b [encoding.TimestampSize]byte
	return xxhash.Sum64(encoding.EncodeTimestamp(b[:0], ticks, nanos))
}
