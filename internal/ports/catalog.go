package ports

import (
	"context"

	"github.com/alexisbeaulieu97/bookconnect/internal/domain/catalog"
	"github.com/alexisbeaulieu97/bookconnect/internal/domain/reference"
)

// Catalog is the dataset loaded at startup: entries plus the author and genre
// reference tables they point into.
type Catalog struct {
	Entries []catalog.Entry
	Authors *reference.Table
	Genres  *reference.Table
	// Skipped counts malformed records left out of Entries.
	Skipped int
}

// CatalogSource loads the catalog from an external location such as a file
// or an embedded asset. Implementations respect ctx before expensive work and
// return typed parse/validation errors.
type CatalogSource interface {
	Load(ctx context.Context) (*Catalog, error)
}

// AuthorDirectory resolves author ids to display names.
type AuthorDirectory interface {
	Lookup(id string) (string, bool)
}

// DetailDisplay renders a fully resolved entry, usually in an overlay.
type DetailDisplay interface {
	ShowDetail(ctx context.Context, entry catalog.Entry)
}

// NoticeLevel grades a transient user notice.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient, dismissible message for the user.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// Notifier surfaces notices to the user.
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}

// Overlay controls the filter-input overlay.
type Overlay interface {
	CloseFilter()
}

// Unit is a rendered visual unit bound to one entry. Units receive the
// surface's publisher when appended so their selection events reach every
// listener registered on the surface.
type Unit interface {
	EntryID() string
	Attach(publisher EventPublisher)
	Detach()
}

// Surface is the ordered, append-only container the controller mutates.
type Surface interface {
	Clear()
	Append(unit Unit)
	Len() int
	Subscribe(handler EventHandler) (Subscription, error)
}
