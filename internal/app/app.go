package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/gridtask/internal/config"
	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/env"
	"github.com/specialistvlad/gridtask/internal/registry"
	"github.com/specialistvlad/gridtask/internal/runner"
	"golang.org/x/term"
)

// bannerPrefix starts every line the runner echoes to the terminal.
const bannerPrefix = "gridtask"

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own logger, runner, virtualenv
// provisioner and registry.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	colored := colorEnabled(outW, appConfig.NoColor)
	banner := runner.NewBanner(outW, bannerPrefix, colored)
	exec := runner.New(outW, outW, banner)

	return newApp(outW, appConfig, loader, func(model *config.Model) (env.Provisioner, runner.Runner, *runner.Banner) {
		return env.NewVenv(appConfig.EnvDir, model.Tools.Interpreter, exec, appConfig.KeepEnvs), exec, banner
	}, modules...)
}

// collaborators builds the provisioner, runner and banner once the model
// is known.
type collaborators func(model *config.Model) (env.Provisioner, runner.Runner, *runner.Banner)

func newApp(outW io.Writer, appConfig *Config, loader config.Loader, build collaborators, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var configPaths []string
	if appConfig.TaskfilePath != "" {
		configPaths = append(configPaths, appConfig.TaskfilePath)
	}

	// Load all configuration into the format-agnostic model first.
	cfgModel, err := loader.Load(ctx, configPaths...)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded and translated into unified model.")

	prov, run, banner := build(cfgModel)
	reg := registry.New(prov, run, banner)
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	reg.PopulateTasksFromModel(cfgModel)
	logger.Debug("Registry tasks populated from config model.")

	if err := reg.ValidateRegistry(ctx); err != nil {
		// This is a programmer error (mismatch between code and config), so we panic.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   appConfig,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// colorEnabled reports whether banner lines should carry colour codes: only
// when writing to a terminal and not disabled by flag.
func colorEnabled(w io.Writer, disabled bool) bool {
	if disabled {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
