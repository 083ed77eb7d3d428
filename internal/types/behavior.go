package types

import (
	"github.com/cockroachdb/errors"
)

// A Behavior bundles the ordering, validation, key encoding and hashing rules
// of one value type. Implementations hold no per-value state and are safe for
// concurrent use.
type Behavior[T Value] interface {
	// TypeName returns a stable identifier, unique among registered behaviors.
	TypeName() string
	// Compare returns -1, 0 or +1. It defines a total order consistent with EncodeIndexKey.
	Compare(a, b T) int
	// IsValid reports whether v may be stored. It never fails.
	IsValid(v T) bool
	// EncodeIndexKey returns a freshly allocated key such that unsigned byte-wise
	// comparison of two keys matches Compare on the values.
	// It returns ErrInvalidValue for values that cannot be encoded.
	EncodeIndexKey(v T) ([]byte, error)
	// Hash is consistent with Compare: equal values have equal hashes.
	Hash(v T) uint64
}

// A KeyDecoder reverses EncodeIndexKey.
type KeyDecoder[T Value] interface {
	DecodeIndexKey(key []byte) (T, error)
}

// AnyBehavior is a Behavior operating on Value instead of a concrete type.
// It is obtained with Erase and used by callers that only hold a Value.
type AnyBehavior interface {
	TypeName() string
	// Type returns the type of the values accepted by the behavior.
	Type() Type
	Compare(a, b Value) (int, error)
	IsValid(v Value) bool
	EncodeIndexKey(v Value) ([]byte, error)
	Hash(v Value) (uint64, error)
}

// Erase wraps a typed behavior into an AnyBehavior.
// Values of another type are rejected with ErrShapeMismatch,
// nil values with ErrNullArgument.
func Erase[T Value](b Behavior[T]) AnyBehavior {
	return erased[T]{b: b}
}

type erased[T Value] struct {
	b Behavior[T]
}

func (e erased[T]) cast(v Value) (T, error) {
	var zero T

	if v == nil {
		return zero, errors.Wrapf(ErrNullArgument, "%s behavior", e.b.TypeName())
	}

	x, ok := v.(T)
	if !ok {
		return zero, errors.Wrapf(ErrShapeMismatch, "%s behavior got %s", e.b.TypeName(), v.Type())
	}

	return x, nil
}

func (e erased[T]) TypeName() string {
	return e.b.TypeName()
}

func (e erased[T]) Type() Type {
	var zero T
	return zero.Type()
}

func (e erased[T]) Compare(a, b Value) (int, error) {
	x, err := e.cast(a)
	if err != nil {
		return 0, err
	}
	y, err := e.cast(b)
	if err != nil {
		return 0, err
	}

	return e.b.Compare(x, y), nil
}

func (e erased[T]) IsValid(v Value) bool {
	x, err := e.cast(v)
	if err != nil {
		return false
	}

	return e.b.IsValid(x)
}

func (e erased[T]) EncodeIndexKey(v Value) ([]byte, error) {
	x, err := e.cast(v)
	if err != nil {
		return nil, err
	}

	return e.b.EncodeIndexKey(x)
}

func (e erased[T]) Hash(v Value) (uint64, error) {
	x, err := e.cast(v)
	if err != nil {
		return 0, err
	}

	return e.b.Hash(x), nil
}
