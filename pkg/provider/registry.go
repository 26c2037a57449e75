package provider

import (
	"fmt"
	"sort"
)

// Registry maps provider names to adapter instances. Dispatch is a
// plain map lookup; no runtime type inspection is involved. Adapters
// are registered once at startup, after which the registry is
// read-only, so no synchronization is needed.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register adds an adapter under its own name. Registering two
// adapters with the same name is a configuration bug and returns an
// error.
func (r *Registry) Register(a Adapter) error {
	name := a.Name()
	if name == "" {
		return fmt.Errorf("provider: adapter has empty name")
	}
	if _, exists := r.adapters[name]; exists {
		return fmt.Errorf("provider: adapter %q already registered", name)
	}
	r.adapters[name] = a
	return nil
}

// Get returns the adapter registered under name.
func (r *Registry) Get(name string) (Adapter, bool) {
	a, ok := r.adapters[name]
	return a, ok
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
