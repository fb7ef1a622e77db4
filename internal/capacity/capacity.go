// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package capacity defines the operation-strategy plugin contract and the
// resolver that maps a validated step section onto exactly one strategy.
//
// A capacity is a named operation strategy applicable to a specific
// resource-type/method combination. Connectors register descriptors into an
// ordered catalog at bootstrap; the catalog is read-only afterwards, which
// is what makes compilation re-entrant. Applies and Build are the sole
// capability surface so connectors stay decoupled from the resolver.
package capacity

import (
	"github.com/vk/stepforge/internal/config"
	"github.com/vk/stepforge/internal/ir"
)

// Descriptor is one immutable operation strategy. Applies is a pure
// structural predicate combining an allow-list membership test on the
// resource type and an exact match on the operation method; it never
// errors. Build synthesizes the fragment and may fail on missing required
// configuration.
type Descriptor interface {
	Name() string
	Applies(section *config.Section) bool
	Build(section *config.Section) (*ir.Fragment, error)
}

// Entry pairs a descriptor with the dependency metadata the compiled unit
// inherits when this capacity is selected.
type Entry struct {
	Descriptor
	Packages   []string
	Namespaces []string
}

// Catalog is an ordered collection of capacity entries. Registration order
// is significant: resolution takes the first applicable entry with no
// fallback, so overlapping applicability is only legal when the override
// order is intentional.
type Catalog []Entry

// Resolve scans the catalog in registration order and returns the first
// entry whose predicate holds for the section. No match is fatal for the
// step being compiled; no partial result is produced.
func Resolve(section *config.Section, catalog Catalog) (Entry, error) {
	for _, entry := range catalog {
		if entry.Applies(section) {
			return entry, nil
		}
	}
	resourceType, _ := section.StaticString("type")
	method, _ := section.StaticString("method")
	return Entry{}, &UnresolvedCapacityError{Type: resourceType, Method: method}
}

// TypeMethodPredicate builds the standard applicability predicate: the
// section's resource type is a member of the allow-list and its method
// matches exactly. Both must be compile-time string literals.
func TypeMethodPredicate(types []string, method string) func(*config.Section) bool {
	allowed := make(map[string]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}
	return func(section *config.Section) bool {
		resourceType, ok := section.StaticString("type")
		if !ok {
			return false
		}
		if _, ok := allowed[resourceType]; !ok {
			return false
		}
		m, ok := section.StaticString("method")
		return ok && m == method
	}
}
