// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/invowk/ctrun/internal/config"
	"github.com/invowk/ctrun/internal/container"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer: every Cobra handler receives an App reference and builds
	// its facade through it.
	App struct {
		Config  ConfigProvider
		Engines EngineFactory
		stdout  io.Writer
		stderr  io.Writer

		// Set by the root command's persistent pre-run.
		flags   globalFlags
		verbose bool
		logger  *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config  ConfigProvider
		Engines EngineFactory
		Stdout  io.Writer
		Stderr  io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		LoadWithSource(ctx context.Context, opts config.LoadOptions) (*config.Config, string, error)
	}

	// EngineFactory resolves the container engine for a loaded configuration.
	// engineOverride is the --engine flag value ("" when unset).
	EngineFactory func(cfg *config.Config, engineOverride string, logger *log.Logger) (container.Engine, error)

	globalFlags struct {
		configPath string
		engine     string
		verbose    bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Engines == nil {
		deps.Engines = newEngine
	}
	return &App{
		Config:  deps.Config,
		Engines: deps.Engines,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
		logger:  newLogger(deps.Stderr, false),
	}
}

// newLogger returns the CLI logger: stderr, prefixed, debug level when verbose.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "ctrun"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// newEngine is the production EngineFactory. An explicit binary_path skips
// detection; otherwise the preferred engine is tried first, then the other.
func newEngine(cfg *config.Config, engineOverride string, logger *log.Logger) (container.Engine, error) {
	inv := container.NewInvoker(
		container.WithShell(cfg.Shell...),
		container.WithLogger(logger),
	)
	opts := []container.BaseCLIEngineOption{container.WithInvoker(inv)}

	if cfg.BinaryPath != "" && engineOverride == "" {
		return container.NewEngineFromPath(cfg.BinaryPath, opts...)
	}

	preferred := cfg.ContainerEngine.String()
	if engineOverride != "" {
		preferred = engineOverride
	}
	engineType, err := container.ParseEngineType(preferred)
	if err != nil {
		return nil, err
	}
	return container.NewEngine(engineType, opts...)
}

// loadConfig loads configuration honoring --config and applies ui.verbose
// when --verbose was not given.
func (a *App) loadConfig(ctx context.Context) (*config.Config, string, error) {
	cfg, path, err := a.Config.LoadWithSource(ctx, config.LoadOptions{ConfigFilePath: a.flags.configPath})
	if err != nil {
		return nil, "", err
	}
	if !a.flags.verbose && cfg.UI.Verbose {
		a.setVerbose(true)
	}
	return cfg, path, nil
}

func (a *App) setVerbose(v bool) {
	a.verbose = v
	if v {
		a.logger.SetLevel(log.DebugLevel)
	} else {
		a.logger.SetLevel(log.InfoLevel)
	}
}

// facade loads configuration and builds the container facade it describes.
func (a *App) facade(ctx context.Context) (*container.Facade, *config.Config, error) {
	cfg, _, err := a.loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	engine, err := a.Engines(cfg, a.flags.engine, a.logger)
	if err != nil {
		return nil, nil, classifyError(err, "select container engine", a.flags.engine)
	}
	a.logger.Debug("using container engine", "engine", engine.Name(), "binary", engine.BinaryPath())
	if a.verbose {
		if v, verr := engine.Version(ctx); verr == nil {
			a.logger.Debug("container engine version", "engine", engine.Name(), "version", v)
		} else {
			a.logger.Debug("container engine version unavailable", "engine", engine.Name(), "error", verr)
		}
	}

	f, err := container.NewFacade(engine,
		container.WithImage(cfg.Image),
		container.WithTimeout(cfg.Timeout),
		container.WithListColumns(cfg.ListColumns...),
	)
	if err != nil {
		return nil, nil, classifyError(err, "configure container facade", "")
	}
	return f, cfg, nil
}
