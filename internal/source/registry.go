package source

import (
	"context"
	"fmt"
	"sync"
)

// Registry is an in-memory Provider. Sources are returned in registration
// order, so sync passes process them deterministically.
type Registry struct {
	mu      sync.RWMutex
	sources []Source
	byID    map[string]Source
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]Source),
	}
}

// Register adds a source. Registering a duplicate ID is an error.
func (r *Registry) Register(src Source) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[src.ID()]; exists {
		return fmt.Errorf("source %q already registered", src.ID())
	}
	r.byID[src.ID()] = src
	r.sources = append(r.sources, src)
	return nil
}

// Sources implements Provider. It returns a snapshot, so callers can iterate
// without holding the registry lock.
func (r *Registry) Sources(_ context.Context) ([]Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]Source, len(r.sources))
	copy(snapshot, r.sources)
	return snapshot, nil
}

// Get returns the source with the given ID, or nil if not registered.
func (r *Registry) Get(id string) Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id]
}
