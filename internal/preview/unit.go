// Package preview renders a compact, selectable summary of one catalog entry.
package preview

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/bookconnect/internal/components"
	"github.com/alexisbeaulieu97/bookconnect/internal/domain/catalog"
	"github.com/alexisbeaulieu97/bookconnect/internal/domain/reference"
	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
)

const cardIcon = "📖"

// ViewModel is the structured description a unit renders.
type ViewModel struct {
	EntryID    string
	Title      string
	AuthorName string
	Image      string
	Bound      bool
}

// Unit is a preview bound to at most one entry at a time.
type Unit struct {
	mu        sync.RWMutex
	authors   ports.AuthorDirectory
	view      ViewModel
	publisher ports.EventPublisher
}

var _ ports.Unit = (*Unit)(nil)

// New creates an unbound unit resolving author names through authors.
func New(authors ports.AuthorDirectory) *Unit {
	return &Unit{authors: authors}
}

// Bind replaces the unit's view model with one derived from entry.
func (u *Unit) Bind(entry catalog.Entry) {
	view := ViewModel{
		EntryID:    entry.ID,
		Title:      Sanitize(entry.Title),
		AuthorName: Sanitize(reference.AuthorName(u.authors, entry.AuthorID)),
		Image:      Sanitize(entry.Image),
		Bound:      true,
	}

	u.mu.Lock()
	u.view = view
	u.mu.Unlock()
}

// View returns the current view model; the zero value when unbound.
func (u *Unit) View() ViewModel {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.view
}

// EntryID returns the bound entry id, or "" when unbound.
func (u *Unit) EntryID() string {
	return u.View().EntryID
}

// Attach routes selection events through publisher.
func (u *Unit) Attach(publisher ports.EventPublisher) {
	u.mu.Lock()
	u.publisher = publisher
	u.mu.Unlock()
}

// Detach stops the unit from emitting selection events.
func (u *Unit) Detach() {
	u.Attach(nil)
}

// Activate emits one selection event for the bound entry. Unbound or
// detached units emit nothing.
func (u *Unit) Activate(ctx context.Context) error {
	u.mu.RLock()
	view, publisher := u.view, u.publisher
	u.mu.RUnlock()

	if !view.Bound || publisher == nil {
		return nil
	}
	return publisher.Publish(ctx, ports.SelectionEvent{EntryID: view.EntryID})
}

// Render draws the unit as a card. Unbound units render as "".
func (u *Unit) Render(theme components.Theme, width int, selected bool) string {
	view := u.View()
	if !view.Bound {
		return ""
	}

	style := components.DefaultCardStyle(theme)
	if selected {
		style = components.SelectedCardStyle(theme)
	}
	card := components.NewCard(components.CardData{
		Title:    view.Title,
		Subtitle: view.AuthorName,
		Icon:     cardIcon,
	}, style)
	if width > 0 {
		card.WithWidth(width)
	}
	return card.View()
}

// Sanitize drops control characters so entry text cannot inject terminal
// escape sequences or break the card layout.
func Sanitize(text string) string {
	return catalog.CleanLine(text)
}
