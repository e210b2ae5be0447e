package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/bookconnect/internal/application/browse"
	"github.com/alexisbeaulieu97/bookconnect/internal/domain/catalog"
	"github.com/alexisbeaulieu97/bookconnect/internal/domain/reference"
	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
)

const (
	noResultsMessage = "No results found. Your filters might be too narrow."
	maxTitleColumn   = 40
)

type listOptions struct {
	title      string
	author     string
	genre      string
	page       int
	jsonOutput bool
}

func newListCmd(app *AppContext) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the catalog",
		Long: `Print one page of the catalog, optionally filtered.

Author and genre accept either an id or a display name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Setup(cmd, false); err != nil {
				return err
			}
			defer app.Close()

			ctx, logger := app.CommandContext(cmd, "command.list")
			err := runList(ctx, cmd, app, logger, opts)
			if err != nil {
				logger.Error(ctx, "list command failed", "error", err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "Only books whose title contains this text")
	cmd.Flags().StringVarP(&opts.author, "author", "a", "", "Only books by this author")
	cmd.Flags().StringVarP(&opts.genre, "genre", "g", "", "Only books in this genre")
	cmd.Flags().IntVarP(&opts.page, "page", "p", 1, "Page number to print")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

// listPage is one page of a filtered listing.
type listPage struct {
	Number   int
	Size     int
	Matches  int
	Total    int
	Offset   int
	Entries  []catalog.Entry
	Authors  *reference.Table
	Genres   *reference.Table
	Criteria catalog.FilterCriteria
}

// Remaining counts matches after this page.
func (p listPage) Remaining() int {
	return max(p.Matches-p.Offset-len(p.Entries), 0)
}

func runList(ctx context.Context, cmd *cobra.Command, app *AppContext, logger ports.Logger, opts *listOptions) error {
	if opts.page < 1 {
		return newCommandError("list", "reading --page", fmt.Errorf("page must be at least 1, got %d", opts.page), "Pages are numbered from 1.")
	}

	result, err := app.LoadCatalog(ctx, logger)
	if err != nil {
		return err
	}

	store, err := app.NewStore(result.Entries)
	if err != nil {
		return newCommandError("list", "preparing the catalog", err, "Use a page size of at least 1.")
	}

	criteria := catalog.NewFilterCriteria(
		opts.title,
		resolveReference(result.Authors, opts.author),
		resolveReference(result.Genres, opts.genre),
	)
	page, err := fetchPage(store, criteria, opts.page)
	if err != nil {
		return newCommandError("list", fmt.Sprintf("reading page %d", opts.page), err, "Ask for a lower --page or widen the filters.")
	}
	page.Authors = result.Authors
	page.Genres = result.Genres

	logger.Info(ctx, "catalog page listed",
		"page_index", page.Number,
		"entries", len(page.Entries),
		"matches", page.Matches,
		"remaining", page.Remaining(),
	)

	if opts.jsonOutput {
		return renderListJSON(cmd.OutOrStdout(), page)
	}
	return renderListTable(cmd.OutOrStdout(), page)
}

// fetchPage filters store and advances its cursor to number. Asking for a
// page past the end of a non-empty result set yields ErrNoMoreResults.
func fetchPage(store *catalog.Store, criteria catalog.FilterCriteria, number int) (listPage, error) {
	matches := store.ApplyFilter(criteria)
	page := listPage{
		Number:   number,
		Size:     store.PageSize(),
		Matches:  len(matches),
		Total:    store.Total(),
		Criteria: criteria,
	}
	if len(matches) == 0 {
		return page, nil
	}

	for i := 1; i <= number; i++ {
		page.Offset = store.RenderedCount()
		page.Entries = store.NextPage()
		if len(page.Entries) == 0 {
			return page, catalog.ErrNoMoreResults
		}
	}
	return page, nil
}

// resolveReference maps a display name to its id. Unknown values pass
// through unchanged so plain ids keep working.
func resolveReference(table *reference.Table, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return catalog.AnyID
	}
	for _, item := range table.Items() {
		if item.ID == value || strings.EqualFold(item.Name, value) {
			return item.ID
		}
	}
	return value
}

func renderListTable(out io.Writer, page listPage) error {
	if page.Matches == 0 {
		fmt.Fprintln(out, noResultsMessage)
		return nil
	}

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tTITLE\tAUTHOR\tPUBLISHED\tGENRES")

	ellipsis := "..."
	if supportsUnicode(out) {
		ellipsis = "…"
	}

	for _, entry := range page.Entries {
		entry = entry.Clean()
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
			entry.ID,
			truncate.StringWithTail(entry.Title, maxTitleColumn, ellipsis),
			catalog.CleanLine(reference.AuthorName(page.Authors, entry.AuthorID)),
			publishedYear(entry),
			strings.Join(genreNames(page.Genres, entry.Genres), ", "),
		)
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	first := page.Offset + 1
	last := page.Offset + len(page.Entries)
	fmt.Fprintf(out, "\nPage %d: books %s-%s of %s. %s\n",
		page.Number,
		humanize.Comma(int64(first)),
		humanize.Comma(int64(last)),
		humanize.Comma(int64(page.Matches)),
		browse.LoadMoreLabel(page.Remaining()),
	)
	return nil
}

type listJSONBook struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	AuthorID    string   `json:"author_id"`
	Author      string   `json:"author"`
	Published   string   `json:"published,omitempty"`
	Genres      []string `json:"genres"`
	Image       string   `json:"image,omitempty"`
	Description string   `json:"description,omitempty"`
}

type listJSONPayload struct {
	Version   string         `json:"version"`
	Page      int            `json:"page"`
	PageSize  int            `json:"page_size"`
	Matches   int            `json:"matches"`
	Total     int            `json:"total"`
	Remaining int            `json:"remaining"`
	Books     []listJSONBook `json:"books"`
}

func renderListJSON(out io.Writer, page listPage) error {
	payload := listJSONPayload{
		Version:   "1.0",
		Page:      page.Number,
		PageSize:  page.Size,
		Matches:   page.Matches,
		Total:     page.Total,
		Remaining: page.Remaining(),
		Books:     make([]listJSONBook, len(page.Entries)),
	}

	for i, entry := range page.Entries {
		payload.Books[i] = jsonBook(entry, page.Authors)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func jsonBook(entry catalog.Entry, authors *reference.Table) listJSONBook {
	book := listJSONBook{
		ID:          entry.ID,
		Title:       entry.Title,
		AuthorID:    entry.AuthorID,
		Author:      reference.AuthorName(authors, entry.AuthorID),
		Genres:      append([]string{}, entry.Genres...),
		Image:       entry.Image,
		Description: entry.Description,
	}
	if !entry.Published.IsZero() {
		book.Published = entry.Published.Format("2006-01-02")
	}
	return book
}

func supportsUnicode(writer io.Writer) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func publishedYear(entry catalog.Entry) string {
	if entry.Published.IsZero() {
		return "-"
	}
	return entry.Published.Format("2006")
}

func genreNames(genres *reference.Table, ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := genres.Lookup(id); ok {
			names = append(names, catalog.CleanLine(name))
			continue
		}
		names = append(names, catalog.CleanLine(id))
	}
	return names
}
