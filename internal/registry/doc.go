// Package registry wires connector modules into the compiler. A connector
// implements Module and registers its capacity entries at bootstrap; the
// resulting catalogs are ordered, read-only collections consumed by the
// orchestrator's sub-factories.
package registry
