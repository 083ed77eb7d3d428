package column

import (
	"sort"

	"github.com/chaisql/ordkey/internal/encoding"
)

// a posting list is the sorted concatenation of the ids
// sharing the same index key, each encoded on 8 bytes.

func postingLen(list []byte) int {
	return len(list) / encoding.Uint64Size
}

func postingAt(list []byte, i int) uint64 {
	id, _ := encoding.DecodeUint64(list[i*encoding.Uint64Size : (i+1)*encoding.Uint64Size])
	return id
}

func postingSearch(list []byte, id uint64) (int, bool) {
	n := postingLen(list)
	i := sort.Search(n, func(i int) bool {
		return postingAt(list, i) >= id
	})

	return i, i < n && postingAt(list, i) == id
}

// postingAdd returns a new list containing id.
func postingAdd(list []byte, id uint64) []byte {
	i, ok := postingSearch(list, id)
	if ok {
		return list
	}

	off := i * encoding.Uint64Size
	out := make([]byte, 0, len(list)+encoding.Uint64Size)
	out = append(out, list[:off]...)
	out = encoding.EncodeUint64(out, id)
	return append(out, list[off:]...)
}

// postingRemove returns a new list without id.
func postingRemove(list []byte, id uint64) []byte {
	i, ok := postingSearch(list, id)
	if !ok {
		return list
	}

	off := i * encoding.Uint64Size
	out := make([]byte, 0, len(list)-encoding.Uint64Size)
	out = append(out, list[:off]...)
	return append(out, list[off+encoding.Uint64Size:]...)
}
