package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/camrig/internal/ctxlog"
	"github.com/specialistvlad/camrig/internal/registry"
	"github.com/specialistvlad/camrig/internal/rigload"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	loader   *rigload.Loader
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Registering conflicting node types is a programming error and panics.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.New(modules...)
	logger.Debug("All node modules registered.", "count", len(modules), "node_types", reg.Names())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		loader:   rigload.NewLoader(reg),
		config:   cfg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
