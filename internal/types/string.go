package types

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/chaisql/ordkey/internal/encoding"
)

var (
	_ Behavior[StringValue]   = (*StringTypeDef)(nil)
	_ KeyDecoder[StringValue] = (*StringTypeDef)(nil)
)

// StringTypeDef is the behavior of StringValue.
// Strings are compared byte-wise over their UTF-8 encoding, without
// any locale or normalization rule. Only valid UTF-8 is accepted.
type StringTypeDef struct{}

var stringDef = &StringTypeDef{}

// String returns the behavior of StringValue. Every call returns the same instance.
func String() *StringTypeDef {
	return stringDef
}

func (*StringTypeDef) TypeName() string {
	return "string"
}

func (*StringTypeDef) Compare(a, b StringValue) int {
	return strings.Compare(string(a), string(b))
}

func (*StringTypeDef) IsValid(v StringValue) bool {
	return utf8.ValidString(string(v))
}

// EncodeIndexKey returns the raw UTF-8 bytes of v. The key has no terminator,
// the empty string encodes to an empty key.
func (*StringTypeDef) EncodeIndexKey(v StringValue) ([]byte, error) {
	if !utf8.ValidString(string(v)) {
		return nil, errors.Wrap(ErrInvalidValue, "string is not valid UTF-8")
	}

	return encoding.EncodeText(make([]byte, 0, len(v)), string(v)), nil
}

func (*StringTypeDef) DecodeIndexKey(key []byte) (StringValue, error) {
	if !utf8.Valid(key) {
		return "", errors.Wrap(ErrInvalidKey, "string key is not valid UTF-8")
	}

	return StringValue(encoding.DecodeText(key)), nil
}

func (*StringTypeDef) Hash(v StringValue) uint64 {
	return hashString(string(v))
}

var _ Value = NewStringValue("")

// StringValue is a UTF-8 text domain value.
type StringValue string

// NewStringValue returns a string value.
func NewStringValue(x string) StringValue {
	return StringValue(x)
}

func (v StringValue) V() any {
	return string(v)
}

func (v StringValue) Type() Type {
	return TypeString
}

func (v StringValue) String() string {
	return strconv.Quote(string(v))
}

func (v StringValue) MarshalJSON() ([]byte, error) {
	if !utf8.ValidString(string(v)) {
		return nil, errors.Wrap(ErrInvalidValue, "cannot marshal invalid UTF-8 to JSON")
	}

	return json.Marshal(string(v))
}
