package registry

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrAlreadyRegistered is returned when registering a behavior for a value
	// type that already has one.
	ErrAlreadyRegistered = errors.New("behavior already registered")

	// ErrNotRegistered is returned when looking up a value type that has no behavior.
	ErrNotRegistered = errors.New("behavior not registered")

	// ErrDuplicateName is returned when two behaviors share the same type name.
	ErrDuplicateName = errors.New("duplicate type name")
)

// IsConfigurationError reports whether err was caused by a misuse of the registry.
func IsConfigurationError(err error) bool {
	return errors.IsAny(err, ErrAlreadyRegistered, ErrNotRegistered, ErrDuplicateName)
}
