package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps provider-type keys to adapter factories. It is populated at
// process start by adapter packages registering themselves in init(), and is
// read-mostly afterwards; Unregister exists for test isolation.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry. Most code uses the package-level
// default registry instead.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds a factory to a provider-type key. It fails with
// ErrDuplicateKey if the key is already bound.
func (r *Registry) Register(key string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	r.factories[key] = factory
	return nil
}

// Get returns the factory bound to key, if any.
func (r *Registry) Get(key string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[key]
	return f, ok
}

// Unregister removes a binding. Missing keys are ignored.
func (r *Registry) Unregister(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.factories, key)
}

// Keys returns all registered provider-type keys, sorted. The configuration
// form and the providers CLI command use this to present the available
// adapter types.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// defaultRegistry is the process-wide registry adapter packages register into.
var defaultRegistry = NewRegistry()

// Register binds a factory in the default registry. Adapter packages call
// this from init(); a duplicate key panics because it is a programming error
// that must surface at startup, before any run.
func Register(key string, factory Factory) {
	if err := defaultRegistry.Register(key, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the factory bound to key in the default registry.
func Lookup(key string) (Factory, bool) {
	return defaultRegistry.Get(key)
}

// RegisteredKeys returns the sorted keys of the default registry.
func RegisteredKeys() []string {
	return defaultRegistry.Keys()
}
