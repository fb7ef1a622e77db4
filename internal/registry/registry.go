package registry

import (
	"fmt"
	"log/slog"

	"github.com/vk/stepforge/internal/capacity"
)

// Module is the interface that all connector modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the ordered capacity catalogs for a single compiler
// instance, one catalog per step shape. It is populated once at bootstrap
// and read-only afterwards.
type Registry struct {
	extractors capacity.Catalog
	loaders    capacity.Catalog
	lookups    capacity.Catalog

	names map[string]struct{}
}

// New creates and initializes a new Registry instance.
func New(modules ...Module) *Registry {
	r := &Registry{names: make(map[string]struct{})}
	for _, mod := range modules {
		mod.Register(r)
	}
	return r
}

// RegisterExtractor appends an extract capacity to the catalog. Catalog
// order is registration order; first match wins during resolution.
func (r *Registry) RegisterExtractor(entry capacity.Entry) {
	r.reserve(entry)
	slog.Debug("Registering extract capacity.", "name", entry.Name())
	r.extractors = append(r.extractors, entry)
}

// RegisterLoader appends a load capacity to the catalog.
func (r *Registry) RegisterLoader(entry capacity.Entry) {
	r.reserve(entry)
	slog.Debug("Registering load capacity.", "name", entry.Name())
	r.loaders = append(r.loaders, entry)
}

// RegisterLookup appends a lookup capacity to the catalog.
func (r *Registry) RegisterLookup(entry capacity.Entry) {
	r.reserve(entry)
	slog.Debug("Registering lookup capacity.", "name", entry.Name())
	r.lookups = append(r.lookups, entry)
}

// Extractors returns the extract catalog in registration order.
func (r *Registry) Extractors() capacity.Catalog { return r.extractors }

// Loaders returns the load catalog in registration order.
func (r *Registry) Loaders() capacity.Catalog { return r.loaders }

// Lookups returns the lookup catalog in registration order.
func (r *Registry) Lookups() capacity.Catalog { return r.lookups }

// reserve panics on duplicate capacity names. Re-registering a name is a
// programmer error in module wiring, not a recoverable condition.
func (r *Registry) reserve(entry capacity.Entry) {
	name := entry.Name()
	if _, exists := r.names[name]; exists {
		panic(fmt.Sprintf("capacity with name '%s' already registered", name))
	}
	r.names[name] = struct{}{}
}
