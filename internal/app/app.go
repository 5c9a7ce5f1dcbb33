package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/dashgrid/internal/ctxlog"
	"github.com/vk/dashgrid/internal/dashboard"
	"github.com/vk/dashgrid/internal/engine"
	"github.com/vk/dashgrid/internal/hcl"
	"github.com/vk/dashgrid/internal/hclexpr"
	"github.com/vk/dashgrid/internal/httpquery"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	dashboard *dashboard.Config
	source    *httpquery.Source
	engine    *engine.Engine
}

// NewApp constructs a fully initialized App: it builds the logger, loads the
// dashboard definition through the loader, applies variable substitution
// when variables are declared or provided, and assembles the engine with
// the default HTTP query source and HCL evaluator.
func NewApp(outW io.Writer, errW io.Writer, appConfig *Config, loader *hcl.Loader) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	cfg, err := loader.Load(ctx, appConfig.DashboardPath)
	if err != nil {
		return nil, fmt.Errorf("loading dashboard: %w", err)
	}

	vars := map[string]string{}
	if appConfig.VarsPath != "" {
		vars, err = loadVariables(appConfig.VarsPath)
		if err != nil {
			return nil, err
		}
	}
	if appConfig.VarsPath != "" || len(cfg.Variables) > 0 {
		cfg, err = cfg.Substitute(vars)
		if err != nil {
			return nil, fmt.Errorf("substituting variables: %w", err)
		}
		logger.Debug("Variables substituted.", "count", len(vars))
	}

	source := httpquery.New()
	eng := engine.New(source, hclexpr.New(), engine.WithConcurrency(appConfig.Concurrency))

	return &App{
		outW:      outW,
		logger:    logger,
		config:    appConfig,
		dashboard: cfg,
		source:    source,
		engine:    eng,
	}, nil
}

// Close releases the App's resources.
func (a *App) Close() error {
	return a.source.Close()
}
