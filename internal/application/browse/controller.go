// Package browse coordinates the catalog store, preview units and the
// visible surface for the filter, load-more and selection flows.
package browse

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexisbeaulieu97/bookconnect/internal/domain/catalog"
	logginginfra "github.com/alexisbeaulieu97/bookconnect/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
	"github.com/alexisbeaulieu97/bookconnect/internal/preview"
)

// NoMoreResultsMessage is the notice shown when load-more finds nothing.
const NoMoreResultsMessage = "No more books to show"

// SkippedMessage is the notice shown when n malformed entries were left out.
func SkippedMessage(n int) string {
	return fmt.Sprintf("Skipped %d malformed entries", n)
}

// UnitFactory builds a bound unit for entry.
type UnitFactory func(entry catalog.Entry) ports.Unit

// Options carries the controller's collaborators. Every field is optional.
type Options struct {
	Authors   ports.AuthorDirectory
	Details   ports.DetailDisplay
	Notices   ports.Notifier
	Overlay   ports.Overlay
	Publisher ports.EventPublisher
	Logger    ports.Logger
	NewUnit   UnitFactory
}

// Controller drives the three catalog transitions. At most one filter or
// load-more transition runs at a time.
type Controller struct {
	store   *catalog.Store
	surface ports.Surface

	details   ports.DetailDisplay
	notices   ports.Notifier
	overlay   ports.Overlay
	publisher ports.EventPublisher
	logger    ports.Logger
	newUnit   UnitFactory

	transition   sync.Mutex
	subscription ports.Subscription
}

// NewController wires the controller and subscribes its selection handler
// on surface.
func NewController(store *catalog.Store, surface ports.Surface, opts Options) (*Controller, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store is required")
	}
	if surface == nil {
		return nil, fmt.Errorf("surface is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = logginginfra.NewNoOpLogger()
	}

	c := &Controller{
		store:     store,
		surface:   surface,
		details:   opts.Details,
		notices:   opts.Notices,
		overlay:   opts.Overlay,
		publisher: opts.Publisher,
		logger:    logger.With("layer", "application", "component", "controller"),
		newUnit:   opts.NewUnit,
	}
	if c.newUnit == nil {
		authors := opts.Authors
		c.newUnit = func(entry catalog.Entry) ports.Unit {
			unit := preview.New(authors)
			unit.Bind(entry)
			return unit
		}
	}

	sub, err := surface.Subscribe(c.handleSelection)
	if err != nil {
		return nil, fmt.Errorf("subscribe to selections: %w", err)
	}
	c.subscription = sub
	return c, nil
}

// Close removes the selection subscription.
func (c *Controller) Close() {
	if c.subscription != nil {
		c.subscription.Unsubscribe()
		c.subscription = nil
	}
}

// Start resets to the initial state: every entry matches, the cursor is at
// page 1 and the first page is on the surface.
func (c *Controller) Start(ctx context.Context) Status {
	c.transition.Lock()
	defer c.transition.Unlock()

	c.store.ApplyFilter(catalog.MatchAll())
	c.surface.Clear()
	appended := c.render(ctx, c.store.NextPage())

	status := c.Status()
	c.logger.Info(ctx, "catalog ready", "total", status.Total, "appended", appended)
	c.emit(ctx, ports.EventCatalogInitialized, eventFields{
		"total":    status.Total,
		"rendered": status.Rendered,
	})
	return status
}

// ApplyFilter replaces the result set with the entries matching criteria,
// rebuilds the surface from the first page and closes the filter overlay.
func (c *Controller) ApplyFilter(ctx context.Context, criteria catalog.FilterCriteria) (Status, error) {
	if !c.transition.TryLock() {
		return c.Status(), catalog.ErrTransitionInProgress
	}
	defer c.transition.Unlock()

	if err := ctx.Err(); err != nil {
		return c.Status(), err
	}

	matches := c.store.ApplyFilter(criteria)
	c.surface.Clear()
	appended := c.render(ctx, c.store.NextPage())

	if c.overlay != nil {
		c.overlay.CloseFilter()
	}

	status := c.Status()
	status.ScrollToTop = true

	c.logger.Info(ctx, "filter applied",
		"title_query", criteria.TitleQuery,
		"author_id", criteria.AuthorID,
		"genre_id", criteria.GenreID,
		"matches", len(matches),
		"appended", appended,
	)
	c.emit(ctx, ports.EventCatalogFiltered, eventFields{
		"title_query": criteria.TitleQuery,
		"author_id":   criteria.AuthorID,
		"genre_id":    criteria.GenreID,
		"matches":     len(matches),
	})
	return status, nil
}

// LoadMore appends the next page. An exhausted result set produces a notice
// and leaves the surface untouched.
func (c *Controller) LoadMore(ctx context.Context) (Status, error) {
	if !c.transition.TryLock() {
		return c.Status(), catalog.ErrTransitionInProgress
	}
	defer c.transition.Unlock()

	if err := ctx.Err(); err != nil {
		return c.Status(), err
	}

	page := c.store.NextPage()
	if len(page) == 0 {
		c.logger.Debug(ctx, "no more results", "page_index", c.store.PageIndex(), "matches", c.store.Len())
		c.notify(ctx, ports.NoticeInfo, NoMoreResultsMessage)
		c.emit(ctx, ports.EventNoMoreResults, eventFields{
			"matches": c.store.Len(),
		})
		return c.Status(), nil
	}

	appended := c.render(ctx, page)
	status := c.Status()

	c.logger.Debug(ctx, "page loaded", "page_index", status.PageIndex, "appended", appended, "remaining", status.Remaining)
	c.emit(ctx, ports.EventPageLoaded, eventFields{
		"page_index": status.PageIndex,
		"appended":   appended,
		"remaining":  status.Remaining,
	})
	return status, nil
}

// Select resolves entryID against the full catalog and hands the entry to
// the detail display. Unknown ids are logged and otherwise ignored.
func (c *Controller) Select(ctx context.Context, entryID string) error {
	entry, err := c.store.Lookup(entryID)
	if err != nil {
		c.logger.Warn(ctx, "selected entry not found", "entry_id", entryID, "error", err)
		c.emit(ctx, ports.EventEntryNotFound, eventFields{
			"entry_id": entryID,
		})
		return err
	}

	c.logger.Debug(ctx, "entry selected", "entry_id", entryID)
	if c.details != nil {
		c.details.ShowDetail(ctx, entry)
	}
	return nil
}

// Status derives the current presentation state from the store and surface.
func (c *Controller) Status() Status {
	remaining := c.store.RemainingCount()
	matches := c.store.Len()
	return Status{
		Total:           c.store.Total(),
		Matches:         matches,
		Rendered:        c.store.RenderedCount(),
		Visible:         c.surface.Len(),
		Remaining:       remaining,
		PageIndex:       c.store.PageIndex(),
		LoadMoreEnabled: remaining > 0,
		LoadMoreLabel:   LoadMoreLabel(remaining),
		NoResults:       matches == 0,
	}
}

func (c *Controller) handleSelection(ctx context.Context, event ports.DomainEvent) error {
	selection, ok := event.(ports.SelectionEvent)
	if !ok {
		return nil
	}
	// Unknown ids are already logged by Select.
	_ = c.Select(ctx, selection.EntryID)
	return nil
}

// render appends one unit per valid entry and returns how many were added.
func (c *Controller) render(ctx context.Context, page []catalog.Entry) int {
	appended, skipped := 0, 0
	for _, entry := range page {
		if err := c.appendEntry(entry); err != nil {
			skipped++
			c.logger.Warn(ctx, "skipping malformed entry", "entry_id", entry.ID, "error", err)
			continue
		}
		appended++
	}
	if skipped > 0 {
		c.notify(ctx, ports.NoticeWarning, SkippedMessage(skipped))
	}
	return appended
}

func (c *Controller) appendEntry(entry catalog.Entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render entry %q: %v", entry.ID, r)
		}
	}()

	if err := entry.Validate(); err != nil {
		return err
	}
	unit := c.newUnit(entry)
	if unit == nil {
		return fmt.Errorf("render entry %q: no unit", entry.ID)
	}
	c.surface.Append(unit)
	return nil
}

func (c *Controller) notify(ctx context.Context, level ports.NoticeLevel, message string) {
	if c.notices == nil {
		return
	}
	c.notices.Notify(ctx, ports.Notice{Level: level, Message: message})
}
