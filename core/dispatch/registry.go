package dispatch

// Registry holds the constructed adapters for a session, keyed by provider
// id, and remembers registration order for default selections.
type Registry struct {
	adapters map[string]Adapter
	order    []string
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{adapters: map[string]Adapter{}}
}

// Register adds an adapter under its own ID, replacing any previous adapter
// with the same ID while preserving the original position.
func (r *Registry) Register(adapter Adapter) {
	id := adapter.ID()
	if _, exists := r.adapters[id]; !exists {
		r.order = append(r.order, id)
	}
	r.adapters[id] = adapter
}

// Get returns the adapter registered under id.
func (r *Registry) Get(id string) (Adapter, bool) {
	adapter, ok := r.adapters[id]
	return adapter, ok
}

// IDs returns the provider ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Adapters returns a copy of the id -> adapter mapping, suitable for passing
// to [Dispatch].
func (r *Registry) Adapters() map[string]Adapter {
	adapters := make(map[string]Adapter, len(r.adapters))
	for id, adapter := range r.adapters {
		adapters[id] = adapter
	}
	return adapters
}
