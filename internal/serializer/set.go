package serializer

import (
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/chaisql/ordkey/internal/types"
)

// Config selects the plugin used to persist values.
type Config struct {
	// Plugin is the name of the plugin. If empty, the first
	// plugin of the set able to serialize the value type is used.
	Plugin string
}

// A Set holds plugins by name, in registration order.
type Set struct {
	mu      sync.RWMutex
	byName  map[string]Plugin
	plugins []Plugin
}

// NewSet creates a set holding the given plugins.
func NewSet(plugins ...Plugin) (*Set, error) {
	s := Set{
		byName: make(map[string]Plugin),
	}

	for _, p := range plugins {
		if err := s.Register(p); err != nil {
			return nil, err
		}
	}

	return &s, nil
}

// Register adds p to the set.
func (s *Set) Register(p Plugin) error {
	if p == nil {
		return errors.Wrap(types.ErrNullArgument, "cannot register a nil plugin")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[p.Name()]; ok {
		return errors.Wrapf(ErrPluginExists, "%q", p.Name())
	}

	s.byName[p.Name()] = p
	s.plugins = append(s.plugins, p)
	return nil
}

// ByName returns the plugin with the given name.
func (s *Set) ByName(name string) (Plugin, error) {
	s.mu.RLock()
	p, ok := s.byName[name]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrPluginNotFound, "%q", name)
	}

	return p, nil
}

// For returns the first registered plugin able to serialize values of type t.
func (s *Set) For(t types.Type) (Plugin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.plugins {
		if p.CanSerialize(t) {
			return p, nil
		}
	}

	return nil, errors.Wrapf(ErrUnsupported, "no plugin can serialize %s", t)
}

// Select returns the plugin chosen by cfg for values of type t.
func (s *Set) Select(cfg Config, t types.Type) (Plugin, error) {
	if cfg.Plugin == "" {
		return s.For(t)
	}

	p, err := s.ByName(cfg.Plugin)
	if err != nil {
		return nil, err
	}
	if !p.CanSerialize(t) {
		return nil, Unsupported(p, t)
	}

	return p, nil
}

// Names returns the sorted names of the plugins.
func (s *Set) Names() []string {
	s.mu.RLock()
	names := maps.Keys(s.byName)
	s.mu.RUnlock()

	slices.Sort(names)
	return names
}
