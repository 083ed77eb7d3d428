// Package registry binds value types to their behavior.
// A Registry is populated once at startup, usually with RegisterBuiltins,
// and then passed to the layers that need type lookup.
package registry

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/chaisql/ordkey/internal/types"
)

// Options of a Registry.
type Options struct {
	// Logger receives a debug record for each registration.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

type binding struct {
	name   string
	typed  any
	erased types.AnyBehavior
}

// A Registry maps value types to behaviors. Bindings can only be added.
// Registrations are serialized: a concurrent registration of the same type
// waits for the first one and then fails with ErrAlreadyRegistered.
// Lookups can run concurrently with each other and with registrations.
type Registry struct {
	mu      sync.RWMutex
	byShape map[reflect.Type]binding
	byName  map[string]reflect.Type
	byKind  map[types.Type]types.AnyBehavior
	logger  *slog.Logger
}

// New creates an empty registry.
func New(opts *Options) *Registry {
	if opts == nil {
		opts = &Options{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Registry{
		byShape: make(map[reflect.Type]binding),
		byName:  make(map[string]reflect.Type),
		byKind:  make(map[types.Type]types.AnyBehavior),
		logger:  logger,
	}
}

func shapeOf[T types.Value]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Register binds b to the value type T.
func Register[T types.Value](r *Registry, b types.Behavior[T]) error {
	if b == nil {
		return errors.Wrap(types.ErrNullArgument, "cannot register a nil behavior")
	}

	shape := shapeOf[T]()
	if shape.Kind() == reflect.Interface {
		return errors.Wrapf(types.ErrShapeMismatch, "cannot register a behavior for interface %s", shape)
	}

	name := b.TypeName()

	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.byShape[shape]; ok {
		return errors.Wrapf(ErrAlreadyRegistered, "%s is bound to %q", shape, cur.name)
	}
	if other, ok := r.byName[name]; ok {
		return errors.Wrapf(ErrDuplicateName, "%q is already used by %s", name, other)
	}

	erased := types.Erase[T](b)
	r.byShape[shape] = binding{name: name, typed: b, erased: erased}
	r.byName[name] = shape
	if _, ok := r.byKind[erased.Type()]; !ok {
		r.byKind[erased.Type()] = erased
	}

	r.logger.Debug("registered type behavior", "type", shape.String(), "name", name)
	return nil
}

// Get returns the behavior bound to T.
func Get[T types.Value](r *Registry) (types.Behavior[T], error) {
	b, ok := TryGet[T](r)
	if !ok {
		return nil, errors.Wrapf(ErrNotRegistered, "%s", shapeOf[T]())
	}

	return b, nil
}

// TryGet returns the behavior bound to T, if any.
func TryGet[T types.Value](r *Registry) (types.Behavior[T], bool) {
	r.mu.RLock()
	bd, ok := r.byShape[shapeOf[T]()]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}

	return bd.typed.(types.Behavior[T]), true
}

// IsRegistered reports whether T has a behavior.
func IsRegistered[T types.Value](r *Registry) bool {
	_, ok := TryGet[T](r)
	return ok
}

// Lookup returns the behavior of the dynamic type of v.
func (r *Registry) Lookup(v types.Value) (types.AnyBehavior, error) {
	if v == nil {
		return nil, errors.Wrap(types.ErrNullArgument, "cannot look up the behavior of an absent value")
	}

	shape := reflect.TypeOf(v)

	r.mu.RLock()
	bd, ok := r.byShape[shape]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrNotRegistered, "%s", shape)
	}

	return bd.erased, nil
}

// LookupType returns the first behavior registered for values of type t.
func (r *Registry) LookupType(t types.Type) (types.AnyBehavior, error) {
	r.mu.RLock()
	b, ok := r.byKind[t]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrNotRegistered, "type %s", t)
	}

	return b, nil
}

// Names returns the sorted list of registered type names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := maps.Keys(r.byName)
	r.mu.RUnlock()

	slices.Sort(names)
	return names
}
