package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/bookconnect/internal/application/browse"
	"github.com/alexisbeaulieu97/bookconnect/internal/components"
	"github.com/alexisbeaulieu97/bookconnect/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
	"github.com/alexisbeaulieu97/bookconnect/internal/surface"
	"github.com/alexisbeaulieu97/bookconnect/internal/tui/browser"
)

func newBrowseCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Launch the interactive catalog browser",
		Long:  `Launch the interactive browser: page through the catalog, search by title, author or genre, and open a book for details.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowseCommand(cmd, app)
		},
	}

	return cmd
}

func runBrowseCommand(cmd *cobra.Command, app *AppContext) error {
	if err := app.Setup(cmd, true); err != nil {
		return err
	}
	defer app.Close()

	ctx, logger := app.CommandContext(cmd, "command.browse")
	logger.Info(ctx, "launching browser")

	model, closeFn, err := newBrowserModel(ctx, app, logger)
	if err != nil {
		logger.Error(ctx, "browser setup failed", "error", err)
		return err
	}
	defer closeFn()

	if err := browser.Run(ctx, model); err != nil {
		logger.Error(ctx, "browser execution failed", "error", err)
		return fmt.Errorf("failed to run browser: %w", err)
	}

	logger.Info(ctx, "browser closed")
	return nil
}

// newBrowserModel wires the catalog core to a browser model. The returned
// function releases the controller's subscription.
func newBrowserModel(ctx context.Context, app *AppContext, logger ports.Logger) (browser.Model, func(), error) {
	result, err := app.LoadCatalog(ctx, logger)
	if err != nil {
		return browser.Model{}, nil, err
	}

	store, err := app.NewStore(result.Entries)
	if err != nil {
		return browser.Model{}, nil, newCommandError("browse", "preparing the catalog", err, "Use a page size of at least 1.")
	}

	bridge := browser.NewBridge()
	surf := surface.New(logger)
	controller, err := browse.NewController(store, surf, browse.Options{
		Authors:   result.Authors,
		Details:   bridge,
		Notices:   bridge,
		Overlay:   bridge,
		Publisher: events.NewLoggingPublisher(logger),
		Logger:    logger,
	})
	if err != nil {
		return browser.Model{}, nil, fmt.Errorf("create controller: %w", err)
	}

	if result.Skipped > 0 {
		bridge.Notify(ctx, ports.Notice{Level: ports.NoticeWarning, Message: browse.SkippedMessage(result.Skipped)})
	}

	model := browser.NewModel(browser.Config{
		Context:    ctx,
		Controller: controller,
		Surface:    surf,
		Bridge:     bridge,
		Authors:    result.Authors,
		Genres:     result.Genres,
		Themes:     components.NewThemeManager(app.ThemeMode()),
		Logger:     logger,
	})
	return model, controller.Close, nil
}
