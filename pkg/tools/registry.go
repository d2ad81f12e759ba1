package tools

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the tool capabilities available to the action phase.
// Safe for concurrent use; sessions share a read-only view.
type Registry struct {
	mu           sync.RWMutex
	capabilities map[string]ToolCapability
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		capabilities: make(map[string]ToolCapability),
	}
}

// Register adds a capability. Re-registering a name is an error: tool sets
// are fixed at agent construction.
func (r *Registry) Register(capability ToolCapability) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := capability.GetName()
	if name == "" {
		return fmt.Errorf("tool capability has no name")
	}
	if _, exists := r.capabilities[name]; exists {
		return fmt.Errorf("tool already registered: %s", name)
	}
	r.capabilities[name] = capability
	return nil
}

// Get retrieves a capability by name.
func (r *Registry) Get(name string) (ToolCapability, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	capability, ok := r.capabilities[name]
	return capability, ok
}

// List returns all capabilities sorted by name.
func (r *Registry) List() []ToolCapability {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.capabilities))
	for name := range r.capabilities {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]ToolCapability, 0, len(names))
	for _, name := range names {
		out = append(out, r.capabilities[name])
	}
	return out
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.capabilities)
}
