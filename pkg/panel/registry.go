package panel

import (
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
)

// Registry holds panel plugins in registration order. Builtin and
// declarative plugins are registered at process start; declarative plugins
// may be replaced later when their definition files change.
type Registry struct {
	mu      sync.RWMutex
	entries map[types.PluginID]*Plugin
	order   []types.PluginID // preserves registration order
}

// NewRegistry creates a new empty Registry
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[types.PluginID]*Plugin),
	}
}

// Register adds a plugin to the registry
func (r *Registry) Register(p *Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[p.ID]; exists {
		return goerr.Wrap(ErrDuplicatePlugin, "plugin already registered",
			goerr.V(PluginIDKey, p.ID))
	}
	r.order = append(r.order, p.ID)
	r.entries[p.ID] = p
	return nil
}

// Replace adds a plugin or replaces the registered one with the same ID,
// keeping its position
func (r *Registry) Replace(p *Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.entries[p.ID] = p
}

// Get retrieves a plugin by ID
func (r *Registry) Get(id types.PluginID) (*Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.entries[id]
	if !ok {
		return nil, goerr.Wrap(ErrPluginNotFound, "plugin not found",
			goerr.V(PluginIDKey, id))
	}
	return p, nil
}

// List returns all registered plugins in registration order
func (r *Registry) List() []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Plugin, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.entries[id])
	}
	return result
}
