// Package msgpack implements a MessagePack serializer plugin.
package msgpack

import (
	"bytes"
	"math"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/chaisql/ordkey/internal/serializer"
	"github.com/chaisql/ordkey/internal/types"
)

// Name of the plugin.
const Name = "msgpack"

var _ serializer.Plugin = (*Plugin)(nil)

// Plugin encodes values in MessagePack.
//   - nil -> nil
//   - boolean -> bool
//   - integer -> int, using the smallest representation
//   - float -> float64
//   - string -> str
//   - timestamp -> [ticks, nanos]
type Plugin struct{}

// New creates a MessagePack plugin.
func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string {
	return Name
}

func (p *Plugin) CanSerialize(t types.Type) bool {
	switch t {
	case types.TypeNil, types.TypeBoolean, types.TypeInteger, types.TypeFloat, types.TypeString, types.TypeTimestamp:
		return true
	}

	return false
}

func (p *Plugin) Serialize(v types.Value) ([]byte, error) {
	if v == nil {
		return nil, errors.Wrap(types.ErrNullArgument, "cannot serialize an absent value")
	}

	var buf bytes.Buffer

	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)
	enc.Reset(&buf)
	enc.UseCompactInts(true)

	var err error
	switch x := v.(type) {
	case types.NilValue:
		err = enc.EncodeNil()
	case types.BooleanValue:
		err = enc.EncodeBool(bool(x))
	case types.IntegerValue:
		err = enc.EncodeInt(int64(x))
	case types.FloatValue:
		err = enc.EncodeFloat64(float64(x))
	case types.StringValue:
		err = enc.EncodeString(string(x))
	case types.TimestampValue:
		err = enc.EncodeArrayLen(2)
		if err == nil {
			err = enc.EncodeInt(x.Ticks())
		}
		if err == nil {
			err = enc.EncodeInt(x.Nanos())
		}
	default:
		return nil, serializer.Unsupported(p, v.Type())
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return buf.Bytes(), nil
}

func (p *Plugin) Deserialize(t types.Type, data []byte) (types.Value, error) {
	if !p.CanSerialize(t) {
		return nil, serializer.Unsupported(p, t)
	}

	r := bytes.NewReader(data)
	dec := msgpack.GetDecoder()
	defer msgpack.PutDecoder(dec)
	dec.Reset(r)

	v, err := decodeValue(dec, t)
	if err != nil {
		return nil, serializer.Corrupt(err, t)
	}

	if r.Len() != 0 {
		return nil, serializer.Corrupt(errors.Newf("%d trailing bytes", r.Len()), t)
	}

	return v, nil
}

func decodeValue(dec *msgpack.Decoder, t types.Type) (types.Value, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return nil, err
	}

	switch t {
	case types.TypeNil:
		if c != msgpcode.Nil {
			return nil, errors.Newf("unexpected code %x", c)
		}
		return types.NewNilValue(), dec.DecodeNil()
	case types.TypeBoolean:
		if c != msgpcode.True && c != msgpcode.False {
			return nil, errors.Newf("unexpected code %x", c)
		}
		b, err := dec.DecodeBool()
		if err != nil {
			return nil, err
		}
		return types.NewBooleanValue(b), nil
	case types.TypeInteger:
		n, err := decodeInt(dec, c)
		if err != nil {
			return nil, err
		}
		return types.NewIntegerValue(n), nil
	case types.TypeFloat:
		if c != msgpcode.Double && c != msgpcode.Float {
			return nil, errors.Newf("unexpected code %x", c)
		}
		f, err := dec.DecodeFloat64()
		if err != nil {
			return nil, err
		}
		return types.NewFloatValue(f), nil
	case types.TypeString:
		if !msgpcode.IsString(c) {
			return nil, errors.Newf("unexpected code %x", c)
		}
		s, err := dec.DecodeString()
		if err != nil {
			return nil, err
		}
		if !utf8.ValidString(s) {
			return nil, errors.New("invalid UTF-8")
		}
		return types.NewStringValue(s), nil
	case types.TypeTimestamp:
		return decodeTimestamp(dec)
	}

	return nil, errors.Newf("unexpected type %s", t)
}

func decodeInt(dec *msgpack.Decoder, c byte) (int64, error) {
	// fixnum is the msgpack size optimization to encode small integers
	if msgpcode.IsFixedNum(c) {
		return dec.DecodeInt64()
	}

	switch c {
	case msgpcode.Int8, msgpcode.Int16, msgpcode.Int32, msgpcode.Int64,
		msgpcode.Uint8, msgpcode.Uint16, msgpcode.Uint32:
		return dec.DecodeInt64()
	case msgpcode.Uint64:
		n, err := dec.DecodeUint64()
		if err != nil {
			return 0, err
		}
		if n > math.MaxInt64 {
			return 0, errors.Newf("integer %d overflows int64", n)
		}
		return int64(n), nil
	}

	return 0, errors.Newf("unexpected code %x", c)
}

func decodeTimestamp(dec *msgpack.Decoder) (types.Value, error) {
	l, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, err
	}
	if l != 2 {
		return nil, errors.Newf("expected 2 elements, got %d", l)
	}

	var parts [2]int64
	for i := range parts {
		c, err := dec.PeekCode()
		if err != nil {
			return nil, err
		}
		parts[i], err = decodeInt(dec, c)
		if err != nil {
			return nil, err
		}
	}

	return types.NewTimestamp(parts[0], parts[1])
}
