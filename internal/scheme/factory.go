package scheme

import (
	"fmt"
	"sort"
	"sync"
)

// Factory looks engines up by name.
type Factory interface {
	// Get returns the engine registered under name.
	Get(name string) (Engine, error)
	// List returns the registered names in sorted order.
	List() []string
}

// Registry is the default, concurrency-safe Factory.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]Engine
}

// NewRegistry returns a registry holding the built-in engines.
func NewRegistry() *Registry {
	r := &Registry{engines: make(map[string]Engine)}
	r.Register(RangePartition{})
	r.Register(DivisorSplitting{})
	return r
}

// Register adds or replaces an engine under its Name.
func (r *Registry) Register(e Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engines[e.Name()] = e
}

// Get implements Factory.
func (r *Registry) Get(name string) (Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown scheme %q", name)
	}
	return e, nil
}

// List implements Factory.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	globalRegistry     *Registry
	globalRegistryOnce sync.Once
)

// GlobalRegistry returns the process-wide registry of built-in engines.
func GlobalRegistry() *Registry {
	globalRegistryOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}
