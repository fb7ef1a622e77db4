package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/stepforge/internal/ctxlog"
	"github.com/vk/stepforge/internal/emit"
)

// Run executes the full compile path: load the pipeline, compile every
// step into a repository, and emit one source unit per step. Compilation
// itself is pure; all I/O happens here at the edge.
func (a *App) Run() error {
	logger := ctxlog.FromContext(a.ctx)

	if err := a.LoadPipeline(); err != nil {
		return fmt.Errorf("failed to load pipeline: %w", err)
	}

	for _, step := range a.model.Pipeline.Steps {
		repo, err := a.factory.Compile(a.ctx, step)
		if err != nil {
			return fmt.Errorf("compilation failed: %w", err)
		}
		logger.Info("Step compiled.",
			"step", step.Name,
			"packages", len(repo.Packages()),
			"namespaces", len(repo.Namespaces()),
		)

		source, err := emit.Render(repo, step.Name)
		if err != nil {
			return fmt.Errorf("emission failed for step %q: %w", step.Name, err)
		}
		if err := a.writeUnit(step.Name, source); err != nil {
			return err
		}
	}

	logger.Info("Pipeline compiled successfully.", "steps", len(a.model.Pipeline.Steps))
	return nil
}

// writeUnit places one emitted source unit: into the output directory when
// one is configured, onto the application writer otherwise.
func (a *App) writeUnit(stepName string, source []byte) error {
	if a.config.OutputDir == "" {
		_, err := a.outW.Write(source)
		return err
	}
	if err := os.MkdirAll(a.config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(a.config.OutputDir, stepName+".go")
	if err := os.WriteFile(path, source, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
