// Package serializer defines the codecs used to persist values.
//
// A serialized payload is independent of the index key of the value:
// plugins may pick any compact or compressed format, and index keys are
// always produced by the type behaviors.
package serializer

import (
	"github.com/cockroachdb/errors"

	"github.com/chaisql/ordkey/internal/types"
)

var (
	// ErrUnsupported is returned when a plugin cannot handle a value type.
	ErrUnsupported = errors.New("unsupported value type")

	// ErrCorrupt is returned when a payload is structurally invalid for the requested type.
	ErrCorrupt = errors.New("corrupt payload")

	// ErrPluginExists is returned when registering two plugins with the same name.
	ErrPluginExists = errors.New("plugin already exists")

	// ErrPluginNotFound is returned when no plugin has the requested name.
	ErrPluginNotFound = errors.New("plugin not found")
)

// A Plugin converts values to and from a byte payload.
// Implementations must be safe for concurrent use.
type Plugin interface {
	// Name uniquely identifies the plugin.
	Name() string
	// CanSerialize reports whether values of type t are supported.
	CanSerialize(t types.Type) bool
	// Serialize returns the payload of v.
	Serialize(v types.Value) ([]byte, error)
	// Deserialize decodes a payload holding a value of type t.
	// The whole payload must be consumed.
	Deserialize(t types.Type, data []byte) (types.Value, error)
}

// Serialize returns the payload of v.
func Serialize[T types.Value](p Plugin, v T) ([]byte, error) {
	return p.Serialize(v)
}

// Deserialize decodes a payload holding a T.
func Deserialize[T types.Value](p Plugin, data []byte) (T, error) {
	var zero T

	v, err := p.Deserialize(zero.Type(), data)
	if err != nil {
		return zero, err
	}

	x, ok := v.(T)
	if !ok {
		return zero, errors.Wrapf(ErrUnsupported, "plugin %s decoded %T", p.Name(), v)
	}

	return x, nil
}

// CanSerialize reports whether p supports values of type T.
func CanSerialize[T types.Value](p Plugin) bool {
	var zero T
	return p.CanSerialize(zero.Type())
}

// Unsupported returns the error a plugin returns for a type it cannot handle.
func Unsupported(p Plugin, t types.Type) error {
	return errors.Wrapf(ErrUnsupported, "plugin %s cannot serialize %s", p.Name(), t)
}

// Corrupt returns an ErrCorrupt for a payload of type t.
// The decoding error err, if any, is kept as a secondary error.
func Corrupt(err error, t types.Type) error {
	if err == nil {
		return errors.Wrapf(ErrCorrupt, "invalid %s payload", t)
	}

	return errors.WithSecondaryError(errors.Wrapf(ErrCorrupt, "invalid %s payload: %v", t, err), err)
}
