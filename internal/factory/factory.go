// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package factory is the top-level dispatcher of the step compiler. It
// determines the shape of a step, delegates to the matching sub-factory,
// compiles and attaches the optional client, and merges the resulting
// repositories into one compiled unit.
package factory

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/stepforge/internal/capacity"
	"github.com/vk/stepforge/internal/config"
	"github.com/vk/stepforge/internal/ctxlog"
	"github.com/vk/stepforge/internal/ir"
	"github.com/vk/stepforge/internal/registry"
	"github.com/vk/stepforge/internal/repository"
)

// AmbiguousStepConfigurationError reports a step declaring zero or more
// than one of the extractor/loader/lookup sections.
type AmbiguousStepConfigurationError struct {
	Step    string
	Present []string
}

func (e *AmbiguousStepConfigurationError) Error() string {
	if len(e.Present) == 0 {
		return fmt.Sprintf("step %q: none of extractor, loader or lookup is configured", e.Step)
	}
	return fmt.Sprintf("step %q: exactly one of extractor, loader or lookup must be configured, found %s",
		e.Step, strings.Join(e.Present, ", "))
}

// Factory compiles validated step configurations against the catalogs of a
// registry. Compilation is pure and re-entrant; the registry is the only
// shared state and is read-only after bootstrap.
type Factory struct {
	reg *registry.Registry
}

// New creates a factory over a populated registry.
func New(reg *registry.Registry) *Factory {
	return &Factory{reg: reg}
}

// Compile turns one step configuration into a compiled unit. The step
// shape is checked before any capacity resolution is attempted; compile
// errors propagate unchanged so failures stay attributable to the
// offending field, capacity and step.
func (f *Factory) Compile(ctx context.Context, step *config.Step) (*repository.Repository, error) {
	logger := ctxlog.FromContext(ctx)

	section, catalog, shape, err := f.dispatch(step)
	if err != nil {
		return nil, err
	}
	logger.Debug("Step shape determined.", "step", step.Name, "shape", shape)

	repo, err := compileSection(ctx, shape, section, catalog)
	if err != nil {
		return nil, fmt.Errorf("step %q: %w", step.Name, err)
	}

	if step.Client != nil {
		clientRepo, clientNode := compileClient(ctx, step.Client)
		ir.AttachClient(repo.Fragment(), clientNode)
		repo.Merge(clientRepo)
		logger.Debug("Client compiled and attached.", "step", step.Name)
	}

	return repo, nil
}

// dispatch picks the one configured section and its catalog. The shape
// check runs before any capacity resolution is attempted.
func (f *Factory) dispatch(step *config.Step) (*config.Section, capacity.Catalog, string, error) {
	type candidate struct {
		shape   string
		section *config.Section
		catalog capacity.Catalog
	}

	var present []candidate
	if step.Extractor != nil {
		present = append(present, candidate{"extractor", step.Extractor, f.reg.Extractors()})
	}
	if step.Loader != nil {
		present = append(present, candidate{"loader", step.Loader, f.reg.Loaders()})
	}
	if step.Lookup != nil {
		present = append(present, candidate{"lookup", step.Lookup, f.reg.Lookups()})
	}

	if len(present) != 1 {
		names := make([]string, 0, len(present))
		for _, c := range present {
			names = append(names, c.shape)
		}
		return nil, nil, "", &AmbiguousStepConfigurationError{Step: step.Name, Present: names}
	}

	c := present[0]
	return c.section, c.catalog, c.shape, nil
}

// compileSection is the shared sub-factory body: resolve the capacity,
// build the fragment, wrap it with the capacity's dependency metadata.
func compileSection(ctx context.Context, shape string, section *config.Section, catalog capacity.Catalog) (*repository.Repository, error) {
	logger := ctxlog.FromContext(ctx)

	entry, err := capacity.Resolve(section, catalog)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", shape, err)
	}
	logger.Debug("Capacity resolved.", "shape", shape, "capacity", entry.Name())

	fragment, err := entry.Build(section)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", shape, err)
	}

	repo := repository.New(fragment)
	repo.AddPackages(entry.Packages...)
	repo.AddNamespaces(entry.Namespaces...)
	return repo, nil
}
