package forecaster

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Factory builds an unfitted backend model from a hyperparameter set.
type Factory func(params Params) (Model, error)

// Registry maps backend names to factories. Backends register themselves
// from an init function, so a backend is available only in programs that
// import its package. A Registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register makes a backend available under name. It panics if name is
// registered twice or factory is nil.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if factory == nil {
		panic("forecaster: Register factory is nil")
	}
	if _, dup := r.factories[name]; dup {
		panic(fmt.Sprintf("forecaster: Register called twice for backend %q", name))
	}
	r.factories[name] = factory
}

// Lookup returns the factory registered under name. A missing backend yields
// a *MissingDependencyError.
func (r *Registry) Lookup(name string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[name]
	if !ok {
		return nil, &MissingDependencyError{Name: name}
	}
	return f, nil
}

// New looks up name and builds a model from params. Factory errors are
// returned unchanged.
func (r *Registry) New(name string, params Params) (Model, error) {
	f, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return f(params.Clone())
}

// Names returns the registered backend names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.factories))
}

// DefaultRegistry is the registry used by the package-level helpers and by
// estimators that are not given one explicitly.
var DefaultRegistry = NewRegistry()

// Register registers a backend with DefaultRegistry.
func Register(name string, factory Factory) {
	DefaultRegistry.Register(name, factory)
}

// Lookup looks up a backend in DefaultRegistry.
func Lookup(name string) (Factory, error) {
	return DefaultRegistry.Lookup(name)
}
