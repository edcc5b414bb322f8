package harness

import (
	"errors"
	"sync"
)

// Registry maps adapter ids to adapter instances. A host constructs one at
// startup, registers its adapters, and closes it at shutdown; lookups happen
// during steady-state traffic.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
	order    []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register adds an adapter under its own id, replacing any previous
// registration for that id.
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := a.ID()
	if _, ok := r.adapters[id]; !ok {
		r.order = append(r.order, id)
	}
	r.adapters[id] = a
}

// Unregister removes an adapter. It returns a *NotFoundError if the id is
// not registered.
func (r *Registry) Unregister(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.adapters[id]; !ok {
		return &NotFoundError{ID: id}
	}
	delete(r.adapters, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the adapter registered under id, or a *NotFoundError.
func (r *Registry) Get(id string) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return a, nil
}

// Has reports whether an adapter is registered under id.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.adapters[id]
	return ok
}

// List returns all registered adapters in registration order.
func (r *Registry) List() []Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	adapters := make([]Adapter, 0, len(r.order))
	for _, id := range r.order {
		adapters = append(adapters, r.adapters[id])
	}
	return adapters
}

// Close closes every registered adapter and empties the registry. All close
// errors are joined.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for _, id := range r.order {
		if err := r.adapters[id].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.adapters = make(map[string]Adapter)
	r.order = nil
	return errors.Join(errs...)
}
