package types

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidValue is returned when a value cannot be order-preservingly encoded,
	// for example a NaN float or a string that isn't valid UTF-8.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNullArgument is returned when an absent value is passed where a value is required.
	ErrNullArgument = errors.New("value is absent")

	// ErrShapeMismatch is returned when a behavior receives a value of another type.
	ErrShapeMismatch = errors.New("value type mismatch")

	// ErrOutOfRange is returned when a timestamp is built from out of bounds components.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidKey is returned when decoding an index key that doesn't have the layout of its type.
	ErrInvalidKey = errors.New("invalid index key")
)

// IsContractViolation reports whether err was caused by a caller passing
// a value that should have been rejected before reaching the behavior.
// These errors are deterministic and must never be retried.
func IsContractViolation(err error) bool {
	return errors.IsAny(err, ErrInvalidValue, ErrNullArgument, ErrShapeMismatch)
}

// IsRangeError reports whether err was caused by out of bounds input at construction.
func IsRangeError(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

// invalidKey classifies err as ErrInvalidKey, keeping err as its detail.
func invalidKey(err error) error {
	return errors.WithSecondaryError(errors.Wrapf(ErrInvalidKey, "%v", err), err)
}
