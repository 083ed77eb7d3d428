package types

import (
	"fmt"
)

// Type represents one of the primitive value shapes supported by the index layer.
type Type uint8

// List of supported types.
const (
	TypeNil Type = iota + 1
	TypeBoolean
	TypeInteger
	TypeFloat
	TypeString
	TypeTimestamp
)

func (t Type) String() string {
	switch t {
	case TypeNil:
		return "nil"
	case TypeBoolean:
		return "boolean"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeTimestamp:
		return "timestamp"
	}

	return fmt.Sprintf("type(%d)", uint8(t))
}

// A Value is an immutable domain value. The set of implementations is closed:
// NilValue, BooleanValue, IntegerValue, FloatValue, StringValue and TimestampValue.
// Values of different types are never compared with each other.
type Value interface {
	Type() Type
	// V returns the underlying Go value.
	V() any
	String() string
	MarshalJSON() ([]byte, error)
}
