package registry

import (
	"github.com/chaisql/ordkey/internal/types"
)

// RegisterBuiltins binds the six built-in behaviors.
// It fails if any of them is already registered.
func RegisterBuiltins(r *Registry) error {
	for _, reg := range []func(*Registry) error{
		func(r *Registry) error { return Register[types.NilValue](r, types.Nil()) },
		func(r *Registry) error { return Register[types.BooleanValue](r, types.Boolean()) },
		func(r *Registry) error { return Register[types.IntegerValue](r, types.Integer()) },
		func(r *Registry) error { return Register[types.FloatValue](r, types.Float()) },
		func(r *Registry) error { return Register[types.StringValue](r, types.String()) },
		func(r *Registry) error { return Register[types.TimestampValue](r, types.Timestamp()) },
	} {
		if err := reg(r); err != nil {
			return err
		}
	}

	return nil
}

// NewDefault returns a registry holding the built-in behaviors.
func NewDefault() *Registry {
	r := New(nil)
	if err := RegisterBuiltins(r); err != nil {
		panic(err)
	}

	return r
}
