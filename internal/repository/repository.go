// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package repository bundles one compiled fragment with the dependency,
// namespace-import and file metadata accumulated for it. A repository lives
// for exactly one compile invocation; an out-of-scope printer/serializer
// consumes its surface afterwards.
package repository

import (
	"github.com/vk/stepforge/internal/ir"
)

// Repository owns a fragment plus its accumulated metadata lists.
type Repository struct {
	fragment   *ir.Fragment
	packages   []string
	namespaces []string
	files      []string
}

// New creates a repository around a fragment, transferring ownership of
// the fragment to it.
func New(fragment *ir.Fragment) *Repository {
	return &Repository{fragment: fragment}
}

// Fragment returns the owned fragment.
func (r *Repository) Fragment() *ir.Fragment { return r.fragment }

// Packages returns the accumulated package dependency list, in append order.
func (r *Repository) Packages() []string { return r.packages }

// Namespaces returns the accumulated namespace-import list, in append order.
func (r *Repository) Namespaces() []string { return r.namespaces }

// Files returns the accumulated file list, in append order.
func (r *Repository) Files() []string { return r.files }

// AddPackages appends package dependencies.
func (r *Repository) AddPackages(packages ...string) *Repository {
	r.packages = append(r.packages, packages...)
	return r
}

// AddNamespaces appends namespace imports.
func (r *Repository) AddNamespaces(namespaces ...string) *Repository {
	r.namespaces = append(r.namespaces, namespaces...)
	return r
}

// AddFiles appends file entries.
func (r *Repository) AddFiles(files ...string) *Repository {
	r.files = append(r.files, files...)
	return r
}

// Merge destructively appends other's package, namespace and file lists
// onto the receiver, preserving order and duplicates, and returns the
// receiver. The receiver's fragment is untouched and other is never
// mutated. Merge cannot fail; only the ordering of its side effect is
// significant.
//
// Duplicates are deliberately not collapsed: deduplicating would change
// the observable output of existing catalogs, so set semantics would have
// to be introduced as an explicit, documented change.
func (r *Repository) Merge(other *Repository) *Repository {
	if other == nil {
		return r
	}
	r.packages = append(r.packages, other.packages...)
	r.namespaces = append(r.namespaces, other.namespaces...)
	r.files = append(r.files, other.files...)
	return r
}
