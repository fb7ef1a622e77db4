package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/stepforge/internal/config"
	"github.com/vk/stepforge/internal/ctxlog"
	"github.com/vk/stepforge/internal/factory"
	"github.com/vk/stepforge/internal/hcl"
	"github.com/vk/stepforge/internal/registry"
)

// App encapsulates the compiler's dependencies, configuration, and lifecycle.
type App struct {
	ctx    context.Context
	outW   io.Writer
	logger *slog.Logger
	config *Config

	registry *registry.Registry
	loader   *hcl.Loader
	factory  *factory.Factory
	model    *config.Model
}

// NewApp is the constructor for the compiler application. It returns a
// fully initialized App with its own isolated logger and a registry
// populated from the given connector modules (the built-in set when none
// are provided).
func NewApp(ctx context.Context, outW io.Writer, appConfig *Config, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules()
	}
	reg := registry.New(modules...)
	logger.Debug("All connector modules registered.", "count", len(modules))

	return &App{
		ctx:      ctx,
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		registry: reg,
		loader:   hcl.NewLoader(),
		factory:  factory.New(reg),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the loaded pipeline model. Nil before LoadPipeline runs.
func (a *App) Model() *config.Model {
	return a.model
}

// LoadPipeline parses the configured pipeline path into the model.
func (a *App) LoadPipeline() error {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Loading pipeline...", "pipeline_path", a.config.PipelinePath)

	model, err := a.loader.Load(a.ctx, a.config.PipelinePath)
	if err != nil {
		return err
	}
	a.model = model
	return nil
}
