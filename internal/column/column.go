// Package column stores the values of one typed column in a kv engine.
//
// Each column uses three stores: the data store maps ids to serialized
// payloads, the index store maps index keys to the ids holding
// that value, and the meta store records the value type and the
// serializer plugin the column was created with.
// Walking the index store visits the values in their order.
package column

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/chaisql/ordkey/internal/encoding"
	"github.com/chaisql/ordkey/internal/kv"
	"github.com/chaisql/ordkey/internal/registry"
	"github.com/chaisql/ordkey/internal/serializer"
	"github.com/chaisql/ordkey/internal/serializer/json"
	"github.com/chaisql/ordkey/internal/serializer/msgpack"
	"github.com/chaisql/ordkey/internal/serializer/snappy"
	"github.com/chaisql/ordkey/internal/types"
)

var (
	// ErrTypeMismatch is returned when opening a column with another value type than it was created with.
	ErrTypeMismatch = errors.New("column holds another type")

	// ErrPluginMismatch is returned when opening a column with another plugin than it was created with.
	ErrPluginMismatch = errors.New("column uses another plugin")
)

var (
	metaType   = []byte("type")
	metaPlugin = []byte("plugin")
)

// Options of a Column.
type Options struct {
	// Plugins available to serialize payloads. Defaults to DefaultPlugins().
	Plugins *serializer.Set
	// Serializer selects the plugin among Plugins.
	// An existing column keeps the plugin it was created with:
	// an empty Config selects it, any other plugin is rejected.
	Serializer serializer.Config
}

// DefaultPlugins returns a set holding the msgpack, json and snappy+msgpack plugins,
// in that order.
func DefaultPlugins() *serializer.Set {
	mp := msgpack.New()
	s, err := serializer.NewSet(mp, json.New(), snappy.Wrap(mp))
	if err != nil {
		panic(err)
	}

	return s
}

// A Column holds values of type T, identified by a uint64.
type Column[T types.Value] struct {
	name     string
	behavior types.Behavior[T]
	plugin   serializer.Plugin
	ng       *kv.Engine
	data     *kv.Store
	index    *kv.Store

	// serializes writes, so that posting lists are updated atomically
	mu sync.RWMutex
}

// New returns the column with the given name, creating it if needed.
// The behavior of T must be registered in reg.
func New[T types.Value](ng *kv.Engine, reg *registry.Registry, name string, opts *Options) (*Column[T], error) {
	if opts == nil {
		opts = &Options{}
	}

	b, err := registry.Get[T](reg)
	if err != nil {
		return nil, err
	}

	plugins := opts.Plugins
	if plugins == nil {
		plugins = DefaultPlugins()
	}

	stores := make([]*kv.Store, 3)
	for i, suffix := range []string{".data", ".index", ".meta"} {
		stores[i], err = ng.Store(name + suffix)
		if err != nil {
			return nil, errors.Wrapf(err, "column %s", name)
		}
	}

	var zero T
	p, err := selectPlugin(ng, stores[2], name, zero.Type(), plugins, opts.Serializer)
	if err != nil {
		return nil, err
	}

	return &Column[T]{
		name:     name,
		behavior: b,
		plugin:   p,
		ng:       ng,
		data:     stores[0],
		index:    stores[1],
	}, nil
}

// selectPlugin returns the plugin recorded in the meta store of the column.
// If the column is new, the plugin chosen by cfg is recorded with the value type.
func selectPlugin(ng *kv.Engine, meta *kv.Store, name string, t types.Type, plugins *serializer.Set, cfg serializer.Config) (serializer.Plugin, error) {
	stored, err := meta.Get(metaType)
	switch {
	case errors.Is(err, kv.ErrKeyNotFound):
		p, err := plugins.Select(cfg, t)
		if err != nil {
			return nil, err
		}

		b := ng.NewBatch()
		defer func() {
			_ = b.Close()
		}()

		if err := b.Put(meta, metaType, []byte(t.String())); err != nil {
			return nil, err
		}
		if err := b.Put(meta, metaPlugin, []byte(p.Name())); err != nil {
			return nil, err
		}

		return p, b.Commit()
	case err != nil:
		return nil, err
	}

	if string(stored) != t.String() {
		return nil, errors.Wrapf(ErrTypeMismatch, "column %s holds %s values, not %s", name, stored, t)
	}

	stored, err = meta.Get(metaPlugin)
	if err != nil {
		return nil, errors.Wrapf(err, "column %s: plugin", name)
	}

	if cfg.Plugin != "" && cfg.Plugin != string(stored) {
		return nil, errors.Wrapf(ErrPluginMismatch, "column %s is serialized with %s, not %s", name, stored, cfg.Plugin)
	}

	return plugins.Select(serializer.Config{Plugin: string(stored)}, t)
}

// Name of the column.
func (c *Column[T]) Name() string {
	return c.name
}

// Plugin returns the name of the plugin used to serialize payloads.
func (c *Column[T]) Plugin() string {
	return c.plugin.Name()
}

func idKey(id uint64) []byte {
	return encoding.EncodeUint64(make([]byte, 0, encoding.Uint64Size), id)
}

// Insert stores v under id, replacing the previous value if any.
// Values rejected by the behavior fail with types.ErrInvalidValue.
// The payload and the index are updated atomically.
func (c *Column[T]) Insert(id uint64, v T) error {
	if !c.behavior.IsValid(v) {
		return errors.Wrapf(types.ErrInvalidValue, "column %s: cannot store %s", c.name, v)
	}

	key, err := c.behavior.EncodeIndexKey(v)
	if err != nil {
		return err
	}

	payload, err := serializer.Serialize(c.plugin, v)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	b := c.ng.NewBatch()
	defer func() {
		_ = b.Close()
	}()

	old, err := c.decode(id)(b.Get(c.data, idKey(id)))
	switch {
	case err == nil:
		oldKey, err := c.behavior.EncodeIndexKey(old)
		if err != nil {
			return err
		}
		if !encoding.Equal(oldKey, key) {
			if err := c.post(b, key, id); err != nil {
				return err
			}
			if err := c.unpost(b, oldKey, id); err != nil {
				return err
			}
		}
	case errors.Is(err, kv.ErrKeyNotFound):
		if err := c.post(b, key, id); err != nil {
			return err
		}
	default:
		return err
	}

	if err := b.Put(c.data, idKey(id), payload); err != nil {
		return err
	}

	return b.Commit()
}

// Get returns the value stored under id.
// It returns kv.ErrKeyNotFound if there is none.
func (c *Column[T]) Get(id uint64) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.get(id)
}

func (c *Column[T]) get(id uint64) (T, error) {
	return c.decode(id)(c.data.Get(idKey(id)))
}

// decode returns a function deserializing the payload of id,
// so that it can be applied to the results of a read.
func (c *Column[T]) decode(id uint64) func([]byte, error) (T, error) {
	return func(payload []byte, err error) (T, error) {
		if err != nil {
			var zero T
			return zero, errors.Wrapf(err, "column %s: id %d", c.name, id)
		}

		return serializer.Deserialize[T](c.plugin, payload)
	}
}

// Delete removes the value stored under id.
// It returns kv.ErrKeyNotFound if there is none.
func (c *Column[T]) Delete(id uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	b := c.ng.NewBatch()
	defer func() {
		_ = b.Close()
	}()

	old, err := c.decode(id)(b.Get(c.data, idKey(id)))
	if err != nil {
		return err
	}

	key, err := c.behavior.EncodeIndexKey(old)
	if err != nil {
		return err
	}

	if err := c.unpost(b, key, id); err != nil {
		return err
	}

	if err := b.Delete(c.data, idKey(id)); err != nil {
		return err
	}

	return b.Commit()
}

// Ascend calls fn for every value of the column, in the order of the behavior.
// Values that compare equal are visited by ascending id.
// fn must not modify the column.
func (c *Column[T]) Ascend(fn func(id uint64, v T) error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.index.Ascend(func(_, list []byte) error {
		for i := 0; i < postingLen(list); i++ {
			id := postingAt(list, i)

			v, err := c.get(id)
			if err != nil {
				return err
			}

			if err := fn(id, v); err != nil {
				return err
			}
		}

		return nil
	})
}

func (c *Column[T]) postings(b *kv.Batch, key []byte) ([]byte, error) {
	list, err := b.Get(c.index, key)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return nil, nil
	}

	return list, err
}

func (c *Column[T]) post(b *kv.Batch, key []byte, id uint64) error {
	list, err := c.postings(b, key)
	if err != nil {
		return err
	}

	return b.Put(c.index, key, postingAdd(list, id))
}

func (c *Column[T]) unpost(b *kv.Batch, key []byte, id uint64) error {
	list, err := c.postings(b, key)
	if err != nil {
		return err
	}

	list = postingRemove(list, id)
	if len(list) == 0 {
		return b.Delete(c.index, key)
	}

	return b.Put(c.index, key, list)
}
