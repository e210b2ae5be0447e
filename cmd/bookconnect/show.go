package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/bookconnect/internal/domain/catalog"
	"github.com/alexisbeaulieu97/bookconnect/internal/domain/reference"
	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
)

const descriptionWidth = 72

type showOptions struct {
	jsonOutput bool
}

func newShowCmd(app *AppContext) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show <book-id>",
		Short: "Show the full record of one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Setup(cmd, false); err != nil {
				return err
			}
			defer app.Close()

			ctx, logger := app.CommandContext(cmd, "command.show")
			err := runShow(ctx, cmd, app, logger, args[0], opts)
			if err != nil {
				logger.Error(ctx, "show command failed", "entry_id", args[0], "error", err)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output book details as JSON")

	return cmd
}

func runShow(ctx context.Context, cmd *cobra.Command, app *AppContext, logger ports.Logger, id string, opts *showOptions) error {
	result, err := app.LoadCatalog(ctx, logger)
	if err != nil {
		return err
	}

	store, err := app.NewStore(result.Entries)
	if err != nil {
		return newCommandError("show", "preparing the catalog", err, "Use a page size of at least 1.")
	}

	entry, err := store.Lookup(strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, catalog.ErrEntryNotFound) {
			return newCommandError("show", fmt.Sprintf("finding book %q", id), err, "Run 'bookconnect list' to see the available ids.")
		}
		return newCommandError("show", fmt.Sprintf("finding book %q", id), err, "")
	}
	logger.Debug(ctx, "entry resolved", "entry_id", entry.ID)

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(jsonBook(entry, result.Authors))
	}

	renderShowText(cmd.OutOrStdout(), entry, result.Authors, result.Genres, time.Now())
	return nil
}

func renderShowText(out io.Writer, entry catalog.Entry, authors, genres *reference.Table, now time.Time) {
	entry = entry.Clean()
	fmt.Fprintln(out, entry.Title)
	fmt.Fprintf(out, "  ID:        %s\n", entry.ID)
	fmt.Fprintf(out, "  Author:    %s\n", catalog.CleanLine(reference.AuthorName(authors, entry.AuthorID)))
	if !entry.Published.IsZero() {
		fmt.Fprintf(out, "  Published: %s (%s)\n",
			entry.Published.Format("2 January 2006"),
			humanize.RelTime(entry.Published, now, "ago", "from now"),
		)
	}
	if len(entry.Genres) > 0 {
		fmt.Fprintf(out, "  Genres:    %s\n", strings.Join(genreNames(genres, entry.Genres), ", "))
	}
	if entry.Image != "" {
		fmt.Fprintf(out, "  Cover:     %s\n", entry.Image)
	}
	if entry.Description != "" {
		fmt.Fprintf(out, "\n%s\n", wordwrap.String(entry.Description, descriptionWidth))
	}
}
