package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/viewbind/internal/binding"
	"github.com/vk/viewbind/internal/config"
	"github.com/vk/viewbind/internal/ctxlog"
	"github.com/vk/viewbind/internal/diagnostics"
	"github.com/vk/viewbind/internal/discovery"
	"github.com/vk/viewbind/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// binding passes.
type App struct {
	logger   *slog.Logger
	config   *config.Model
	registry *registry.Registry
	scanner  *discovery.Scanner
	pipeline *binding.Pipeline
	history  *diagnostics.History
}

// NewApp is the constructor for the main application. It loads and
// validates the configuration, registers the types contributed by modules
// and prepares the scanner and the binder pipeline. Logs go to logW.
func NewApp(logW io.Writer, appConfig *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := buildModel(ctx, appConfig)
	if err != nil {
		return nil, err
	}
	logger.Debug("Configuration loaded.",
		"root", model.Templates.Root,
		"extensions", model.Templates.Extensions,
		"workers", model.Binding.Workers,
		"view_overrides", len(model.Views),
	)

	reg := registry.New()
	if err := reg.Load(modules...); err != nil {
		return nil, fmt.Errorf("failed to register module types: %w", err)
	}
	logger.Debug("All Go modules registered.", "count", len(modules), "types", reg.Len())

	history := appConfig.History
	if history == nil {
		history = diagnostics.NewHistory(diagnostics.DefaultCapacity)
	}

	return &App{
		logger:   logger,
		config:   model,
		registry: reg,
		scanner: discovery.NewScanner(
			discovery.WithExtensions(model.Templates.Extensions...),
			discovery.WithSkipDirs(model.Templates.Ignore...),
		),
		pipeline: binding.NewPipeline(
			binding.WithFallbackMaster(model.Binding.MasterFallback),
			binding.WithBindingsFile(model.Binding.BindingsFile),
			binding.WithSharedDirs(model.Binding.SharedDirs...),
		),
		history: history,
	}, nil
}

// Registry returns the application's type registry.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Config returns the effective configuration.
func (a *App) Config() *config.Model {
	return a.config
}

// History returns the history the App records its reports in.
func (a *App) History() *diagnostics.History {
	return a.history
}
