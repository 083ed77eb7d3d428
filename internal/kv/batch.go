package kv

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

// A Batch groups writes to any number of stores and applies them atomically.
// Reads made through the batch see its pending writes.
// A Batch is not safe for concurrent use.
type Batch struct {
	ng    *Engine
	Batch *pebble.Batch
}

// NewBatch returns an empty batch. It must be closed after use.
func (e *Engine) NewBatch() *Batch {
	return &Batch{
		ng:    e,
		Batch: e.DB.NewIndexedBatch(),
	}
}

// Get returns the value of k in s. If not found, returns ErrKeyNotFound.
func (b *Batch) Get(s *Store, k []byte) ([]byte, error) {
	return get(b.Batch, BuildKey(s.Prefix, k))
}

// Put stores a key value pair in s. If it already exists, it overrides it.
func (b *Batch) Put(s *Store, k, v []byte) error {
	if len(v) == 0 {
		return errors.New("cannot store empty value")
	}

	return b.Batch.Set(BuildKey(s.Prefix, k), v, nil)
}

// Delete removes k from s. If not found, returns ErrKeyNotFound.
func (b *Batch) Delete(s *Store, k []byte) error {
	key := BuildKey(s.Prefix, k)

	if err := exists(b.Batch, key); err != nil {
		return err
	}

	return b.Batch.Delete(key, nil)
}

// Commit applies the writes of the batch.
func (b *Batch) Commit() error {
	return b.Batch.Commit(b.ng.writeOpts)
}

// Close releases the batch. Writes not committed are discarded.
func (b *Batch) Close() error {
	return b.Batch.Close()
}
