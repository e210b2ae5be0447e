package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/bookconnect/internal/components"
	"github.com/alexisbeaulieu97/bookconnect/internal/config"
	"github.com/alexisbeaulieu97/bookconnect/internal/domain/catalog"
	"github.com/alexisbeaulieu97/bookconnect/internal/infrastructure/catalogdata"
	logginginfra "github.com/alexisbeaulieu97/bookconnect/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
)

// AppContext bundles the configuration and services shared by commands.
// Entries logged before Setup completes are held by the boot logger and
// replayed into the configured logger.
type AppContext struct {
	flags         *rootFlags
	bootLogger    *logginginfra.BootLogger
	config        *config.Config
	logger        ports.Logger
	logFile       io.Closer
	correlationID string

	// detectDark reports whether the terminal has a dark background.
	detectDark func() bool
}

func newAppContext(flags *rootFlags) *AppContext {
	return &AppContext{
		flags:      flags,
		bootLogger: logginginfra.NewBootLogger(256),
		detectDark: lipgloss.HasDarkBackground,
	}
}

// Setup loads the configuration, applies flag overrides and builds the
// logger. Interactive commands never log to the terminal.
func (a *AppContext) Setup(cmd *cobra.Command, interactive bool) error {
	a.correlationID = ports.GenerateCorrelationID()
	ctx := ports.WithCorrelationID(commandBaseContext(cmd), a.correlationID)

	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return newCommandError("start", "loading configuration", err, "Fix the configuration file or pass --config with a valid path.")
	}

	cfg.Apply(config.Overrides{
		PageSize: a.flags.pageSize,
		Theme:    a.flags.theme,
		DataPath: a.flags.dataPath,
		LogLevel: a.flags.logLevel,
		LogFile:  a.flags.logFile,
	})
	if err := config.ValidateConfig(cfg); err != nil {
		return newCommandError("start", "validating options", err, "Check the values passed on the command line.")
	}
	a.config = cfg

	writer := io.Writer(cmd.ErrOrStderr())
	if interactive {
		writer = io.Discard
	}
	if cfg.Log.File != "" {
		file, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return newCommandError("start", "opening log file", err, "Choose a writable --log-file location.")
		}
		a.logFile = file
		writer = file
	}

	logger, err := logginginfra.New(logginginfra.Options{
		Writer:        writer,
		Level:         cfg.Log.Level,
		HumanReadable: cfg.Log.Human,
		Layer:         "presentation",
		Component:     "cli",
	})
	if err != nil {
		return newCommandError("start", "configuring logging", err, "Use one of: debug, info, warn, error, disabled.")
	}
	a.logger = logger
	a.bootLogger.Replay(logger)
	return nil
}

func (a *AppContext) loadConfig(ctx context.Context) (*config.Config, error) {
	if a.flags.configPath != "" {
		a.bootLogger.Debug(ctx, "loading configuration", "path", a.flags.configPath)
		return config.Load(a.flags.configPath, false)
	}

	path, err := config.DefaultPath()
	if err != nil {
		a.bootLogger.Warn(ctx, "user config dir unavailable, using defaults", "error", err)
		return config.Default(), nil
	}
	a.bootLogger.Debug(ctx, "loading configuration", "path", path, "optional", true)
	return config.Load(path, true)
}

// Config returns the effective configuration. Setup must run first.
func (a *AppContext) Config() *config.Config {
	return a.config
}

// CommandContext returns the command context carrying the invocation's
// correlation id and a logger scoped to name.
func (a *AppContext) CommandContext(cmd *cobra.Command, name string) (context.Context, ports.Logger) {
	ctx := ports.WithCorrelationID(commandBaseContext(cmd), a.correlationID)
	logger := a.logger
	if logger == nil {
		logger = a.bootLogger
	}
	return ctx, logger.With("command", name)
}

// LoadCatalog reads the configured dataset, or the bundled sample when no
// data path is set.
func (a *AppContext) LoadCatalog(ctx context.Context, logger ports.Logger) (*ports.Catalog, error) {
	loader := catalogdata.NewEmbeddedLoader(logger)
	if a.config.DataPath != "" {
		loader = catalogdata.NewFileLoader(a.config.DataPath, logger)
	}

	result, err := loader.Load(ctx)
	switch {
	case err == nil:
		return result, nil
	case catalogdata.IsNotFound(err):
		return nil, newCommandError("load catalog", fmt.Sprintf("reading %s", loader.Source()), err, "Check the --data path or the data_path setting.")
	default:
		return nil, newCommandError("load catalog", fmt.Sprintf("parsing %s", loader.Source()), err, "Fix the dataset errors shown above and try again.")
	}
}

// NewStore builds a catalog store over entries using the configured page size.
func (a *AppContext) NewStore(entries []catalog.Entry) (*catalog.Store, error) {
	store, err := catalog.NewStore(a.config.PageSize)
	if err != nil {
		return nil, err
	}
	if err := store.Initialize(entries); err != nil && !errors.Is(err, catalog.ErrEmptyCatalog) {
		return nil, err
	}
	return store, nil
}

// ThemeMode resolves the configured theme, asking the terminal when set to
// auto.
func (a *AppContext) ThemeMode() components.ThemeMode {
	return resolveTheme(a.config.Theme, a.detectDark)
}

func resolveTheme(setting string, detectDark func() bool) components.ThemeMode {
	if mode, err := components.ParseThemeMode(setting); err == nil {
		return mode
	}
	if detectDark != nil && detectDark() {
		return components.ThemeNight
	}
	return components.ThemeDay
}

// Close releases the log file, if any.
func (a *AppContext) Close() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}

func commandBaseContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
