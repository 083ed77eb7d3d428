package kv

import (
	"bytes"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

const (
	separator   byte = 0x1F
	storePrefix      = 's'
)

// A Store is a namespace of keys in the engine.
type Store struct {
	ng     *Engine
	Prefix []byte
}

// Store returns the store with the given name.
// Names must not contain the byte 0x1F.
func (e *Engine) Store(name string) (*Store, error) {
	if strings.IndexByte(name, separator) >= 0 {
		return nil, errors.Wrapf(ErrInvalidStoreName, "%q contains the byte 0x%X", name, separator)
	}

	return &Store{
		ng:     e,
		Prefix: buildStorePrefixKey([]byte(name)),
	}, nil
}

func buildStorePrefixKey(name []byte) []byte {
	prefix := make([]byte, 0, len(name)+2)
	prefix = append(prefix, storePrefix)
	prefix = append(prefix, separator)
	prefix = append(prefix, name...)

	return prefix
}

// build a long key for each key of a store
// in the form: storePrefix + <sep> + name + <sep> + 0 + key.
// the 0 is used to separate the actual key
// from the rest of the prefix and to ensure
// we can bound iteration on the store by replacing 0 by 1.
func BuildKey(prefix, k []byte) []byte {
	key := make([]byte, 0, len(prefix)+len(k)+2)
	key = append(key, prefix...)
	key = append(key, separator)
	key = append(key, 0)
	key = append(key, k...)
	return key
}

func TrimPrefix(k []byte, prefix []byte) []byte {
	return k[len(prefix)+2:]
}

// Put stores a key value pair. If it already exists, it overrides it.
// The key may be empty.
func (s *Store) Put(k, v []byte) error {
	if len(v) == 0 {
		return errors.New("cannot store empty value")
	}

	return s.ng.DB.Set(BuildKey(s.Prefix, k), v, s.ng.writeOpts)
}

// Get returns a value associated with the given key. If not found, returns ErrKeyNotFound.
func (s *Store) Get(k []byte) ([]byte, error) {
	return get(s.ng.DB, BuildKey(s.Prefix, k))
}

func get(r pebble.Reader, key []byte) ([]byte, error) {
	value, closer, err := r.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, errors.WithStack(ErrKeyNotFound)
		}

		return nil, err
	}

	cp := make([]byte, len(value))
	copy(cp, value)

	err = closer.Close()
	if err != nil {
		return nil, err
	}

	return cp, nil
}

// Delete a record by key. If not found, returns ErrKeyNotFound.
func (s *Store) Delete(k []byte) error {
	key := BuildKey(s.Prefix, k)

	if err := exists(s.ng.DB, key); err != nil {
		return err
	}

	return s.ng.DB.Delete(key, s.ng.writeOpts)
}

// exists returns ErrKeyNotFound if key is not in r.
func exists(r pebble.Reader, key []byte) error {
	_, closer, err := r.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return errors.WithStack(ErrKeyNotFound)
		}

		return err
	}

	return closer.Close()
}

// Ascend calls fn for every key of the store, in ascending order.
// The key and value are only valid until fn returns.
// Iteration stops at the first error returned by fn.
func (s *Store) Ascend(fn func(k, v []byte) error) error {
	lower := BuildKey(s.Prefix, nil)
	upper := bytes.Clone(lower)
	upper[len(upper)-1] = 1

	it := s.ng.DB.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: upper,
	})

	for it.First(); it.Valid(); it.Next() {
		if err := fn(TrimPrefix(it.Key(), s.Prefix), it.Value()); err != nil {
			_ = it.Close()
			return err
		}
	}

	if err := it.Error(); err != nil {
		_ = it.Close()
		return err
	}

	return it.Close()
}
