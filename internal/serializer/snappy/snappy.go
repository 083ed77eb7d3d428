// Package snappy implements a serializer plugin that compresses
// the payload of another plugin.
package snappy

import (
	"github.com/golang/snappy"

	"github.com/chaisql/ordkey/internal/serializer"
	"github.com/chaisql/ordkey/internal/types"
)

// Prefix of the plugin names.
const Prefix = "snappy+"

var _ serializer.Plugin = (*Plugin)(nil)

// Plugin compresses the payloads of an inner plugin with Snappy.
type Plugin struct {
	inner serializer.Plugin
	name  string
}

// Wrap returns a plugin compressing the payloads of inner.
func Wrap(inner serializer.Plugin) *Plugin {
	return &Plugin{
		inner: inner,
		name:  Prefix + inner.Name(),
	}
}

func (p *Plugin) Name() string {
	return p.name
}

func (p *Plugin) CanSerialize(t types.Type) bool {
	return p.inner.CanSerialize(t)
}

func (p *Plugin) Serialize(v types.Value) ([]byte, error) {
	data, err := p.inner.Serialize(v)
	if err != nil {
		return nil, err
	}

	return snappy.Encode(nil, data), nil
}

func (p *Plugin) Deserialize(t types.Type, data []byte) (types.Value, error) {
	if !p.inner.CanSerialize(t) {
		return nil, serializer.Unsupported(p, t)
	}

	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, serializer.Corrupt(err, t)
	}

	return p.inner.Deserialize(t, raw)
}
