package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/bookconnect/internal/components"
	"github.com/alexisbeaulieu97/bookconnect/internal/config"
	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
)

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{Use: "test"}
	stderr := &bytes.Buffer{}
	cmd.SetErr(stderr)
	cmd.SetContext(context.Background())
	return cmd, stderr
}

func TestSetupUsesDefaultsWithoutConfigFile(t *testing.T) {
	isolateConfig(t)
	app := newAppContext(&rootFlags{})
	cmd, _ := newTestCommand()

	require.NoError(t, app.Setup(cmd, false))
	t.Cleanup(app.Close)

	assert.Equal(t, config.DefaultPageSize, app.Config().PageSize)
	assert.Equal(t, config.ThemeAuto, app.Config().Theme)
}

func TestSetupFlagsOverrideConfigFile(t *testing.T) {
	home := isolateConfig(t)
	path := writeFile(t, home, "config.yaml", "page_size: 12\ntheme: night\nlog:\n  level: warn\n")

	app := newAppContext(&rootFlags{configPath: path, pageSize: 3})
	cmd, _ := newTestCommand()

	require.NoError(t, app.Setup(cmd, false))
	t.Cleanup(app.Close)

	assert.Equal(t, 3, app.Config().PageSize)
	assert.Equal(t, "night", app.Config().Theme)
	assert.Equal(t, "warn", app.Config().Log.Level)
	assert.Equal(t, components.ThemeNight, app.ThemeMode())
}

func TestSetupReadsUserConfigDir(t *testing.T) {
	home := isolateConfig(t)
	dir := filepath.Join(home, ".config", "bookconnect")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writeFile(t, dir, "config.yaml", "page_size: 7\n")

	app := newAppContext(&rootFlags{})
	cmd, _ := newTestCommand()

	require.NoError(t, app.Setup(cmd, false))
	t.Cleanup(app.Close)

	assert.Equal(t, 7, app.Config().PageSize)
}

func TestSetupRejectsMissingExplicitConfig(t *testing.T) {
	home := isolateConfig(t)
	app := newAppContext(&rootFlags{configPath: filepath.Join(home, "nope.yaml")})
	cmd, _ := newTestCommand()

	err := app.Setup(cmd, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading configuration")
}

func TestSetupRejectsInvalidOverride(t *testing.T) {
	isolateConfig(t)
	app := newAppContext(&rootFlags{theme: "sepia"})
	cmd, _ := newTestCommand()

	err := app.Setup(cmd, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating options")
}

func TestSetupWritesLogsToFileWhenInteractive(t *testing.T) {
	home := isolateConfig(t)
	logPath := filepath.Join(home, "bookconnect.log")

	app := newAppContext(&rootFlags{logFile: logPath, logLevel: "debug"})
	cmd, stderr := newTestCommand()

	require.NoError(t, app.Setup(cmd, true))
	ctx, logger := app.CommandContext(cmd, "command.test")
	logger.Info(ctx, "hello from test")
	app.Close()

	assert.Empty(t, stderr.String())
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), "command.test")
	assert.Contains(t, string(data), "loading configuration", "boot entries are replayed")
}

func TestCommandContextCarriesCorrelationID(t *testing.T) {
	isolateConfig(t)
	app := newAppContext(&rootFlags{logLevel: "disabled"})
	cmd, _ := newTestCommand()
	require.NoError(t, app.Setup(cmd, false))

	ctx, _ := app.CommandContext(cmd, "command.test")

	assert.NotEmpty(t, ports.GetCorrelationID(ctx))
}

func TestResolveTheme(t *testing.T) {
	t.Parallel()

	dark := func() bool { return true }
	light := func() bool { return false }

	assert.Equal(t, components.ThemeDay, resolveTheme("day", dark))
	assert.Equal(t, components.ThemeNight, resolveTheme("night", light))
	assert.Equal(t, components.ThemeNight, resolveTheme("auto", dark))
	assert.Equal(t, components.ThemeDay, resolveTheme("auto", light))
	assert.Equal(t, components.ThemeDay, resolveTheme("auto", nil))
}

func TestNewBrowserModelStartsOnFirstPage(t *testing.T) {
	home := isolateConfig(t)
	data := writeFile(t, home, "books.yaml", fixtureDataset)

	app := newAppContext(&rootFlags{dataPath: data, pageSize: 2, theme: "day", logLevel: "disabled"})
	cmd, _ := newTestCommand()
	require.NoError(t, app.Setup(cmd, true))

	ctx, logger := app.CommandContext(cmd, "command.browse")
	model, closeFn, err := newBrowserModel(ctx, app, logger)
	require.NoError(t, err)
	t.Cleanup(closeFn)

	status := model.Status()
	assert.Equal(t, 3, status.Total)
	assert.Equal(t, 2, status.Visible)
	assert.Equal(t, "Show more (1)", status.LoadMoreLabel)
	assert.Contains(t, model.View(), "Kindred")
}

func TestNewBrowserModelReportsSkippedRecords(t *testing.T) {
	home := isolateConfig(t)
	data := writeFile(t, home, "books.yaml", fixtureDataset+`
  - id: broken
    author: a
`)

	app := newAppContext(&rootFlags{dataPath: data, pageSize: 2, theme: "day", logLevel: "disabled"})
	cmd, _ := newTestCommand()
	require.NoError(t, app.Setup(cmd, true))

	ctx, logger := app.CommandContext(cmd, "command.browse")
	model, closeFn, err := newBrowserModel(ctx, app, logger)
	require.NoError(t, err)
	t.Cleanup(closeFn)

	assert.Equal(t, 3, model.Status().Total)
	notice, ok := model.Notice()
	require.True(t, ok)
	assert.Equal(t, ports.NoticeWarning, notice.Level)
	assert.Equal(t, "Skipped 1 malformed entries", notice.Message)
}
