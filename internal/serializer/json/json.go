// Package json implements a JSON serializer plugin.
// Timestamps are serialized as {"ticks":<ticks>,"nanos":<nanos>}.
package json

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"

	"github.com/chaisql/ordkey/internal/serializer"
	"github.com/chaisql/ordkey/internal/types"
)

// Name of the plugin.
const Name = "json"

var _ serializer.Plugin = (*Plugin)(nil)

// Plugin encodes values as JSON text.
// NaN and infinite floats cannot be serialized.
type Plugin struct{}

// New creates a JSON plugin.
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

	switch x := v.(type) {
	case types.NilValue, types.BooleanValue, types.IntegerValue, types.StringValue:
		return x.MarshalJSON()
	case types.FloatValue:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errors.Wrapf(serializer.ErrUnsupported, "plugin %s cannot serialize %s", Name, x)
		}
		return x.MarshalJSON()
	case types.TimestampValue:
		buf := make([]byte, 0, 48)
		buf = append(buf, `{"ticks":`...)
		buf = strconv.AppendInt(buf, x.Ticks(), 10)
		buf = append(buf, `,"nanos":`...)
		buf = strconv.AppendInt(buf, x.Nanos(), 10)
		return append(buf, '}'), nil
	}

	return nil, serializer.Unsupported(p, v.Type())
}

func (p *Plugin) Deserialize(t types.Type, data []byte) (types.Value, error) {
	if !p.CanSerialize(t) {
		return nil, serializer.Unsupported(p, t)
	}

	value, dt, offset, err := jsonparser.Get(data)
	if err != nil {
		return nil, serializer.Corrupt(err, t)
	}
	for _, c := range data[offset:] {
		if !isSpace(c) {
			return nil, serializer.Corrupt(errors.New("trailing data"), t)
		}
	}

	v, err := decodeValue(t, value, dt)
	if err != nil {
		return nil, serializer.Corrupt(err, t)
	}

	return v, nil
}

// jsonTypes maps each value type to the JSON type of its payload.
var jsonTypes = map[types.Type]jsonparser.ValueType{
	types.TypeNil:       jsonparser.Null,
	types.TypeBoolean:   jsonparser.Boolean,
	types.TypeInteger:   jsonparser.Number,
	types.TypeFloat:     jsonparser.Number,
	types.TypeString:    jsonparser.String,
	types.TypeTimestamp: jsonparser.Object,
}

func decodeValue(t types.Type, value []byte, dt jsonparser.ValueType) (types.Value, error) {
	want := jsonTypes[t]
	if dt != want {
		return nil, errors.Newf("expected %s, got %s", want, dt)
	}

	switch t {
	case types.TypeNil:
		return types.NewNilValue(), nil
	case types.TypeBoolean:
		b, err := jsonparser.ParseBoolean(value)
		if err != nil {
			return nil, err
		}
		return types.NewBooleanValue(b), nil
	case types.TypeInteger:
		n, err := jsonparser.ParseInt(value)
		if err != nil {
			return nil, err
		}
		return types.NewIntegerValue(n), nil
	case types.TypeFloat:
		f, err := jsonparser.ParseFloat(value)
		if err != nil {
			return nil, err
		}
		return types.NewFloatValue(f), nil
	case types.TypeString:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return nil, err
		}
		if !utf8.ValidString(s) {
			return nil, errors.New("invalid UTF-8")
		}
		return types.NewStringValue(s), nil
	}

	ticks, err := jsonparser.GetInt(value, "ticks")
	if err != nil {
		return nil, errors.Wrap(err, "ticks")
	}
	nanos, err := jsonparser.GetInt(value, "nanos")
	if err != nil {
		return nil, errors.Wrap(err, "nanos")
	}

	return types.NewTimestamp(ticks, nanos)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
