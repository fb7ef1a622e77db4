// Package pim is the built-in connector for PIM-style resource APIs. It
// contributes one ordered capacity catalog per step shape: bulk extraction,
// upserting loads, and per-record lookups over the catalog resources the
// remote API exposes.
package pim

import (
	"github.com/vk/stepforge/internal/capacity"
	"github.com/vk/stepforge/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// packages every pim capacity pulls into the compiled unit.
var connectorPackages = []string{
	"stepforge/pim-client",
}

// namespaces every pim capacity imports in generated source.
var connectorNamespaces = []string{
	"github.com/vk/stepforge/runtime/pim",
}

// Register registers the connector's capacities. Order matters: the
// resolver takes the first applicable entry, so more specific capacities
// must be registered before broader ones.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterExtractor(capacity.Entry{
		Descriptor: &allCapacity{},
		Packages:   connectorPackages,
		Namespaces: connectorNamespaces,
	})
	r.RegisterLoader(capacity.Entry{
		Descriptor: &upsertCapacity{},
		Packages:   connectorPackages,
		Namespaces: connectorNamespaces,
	})
	r.RegisterLookup(capacity.Entry{
		Descriptor: &getCapacity{},
		Packages:   connectorPackages,
		Namespaces: connectorNamespaces,
	})
}
