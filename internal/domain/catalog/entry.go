package catalog

import (
	"strings"
	"time"
)

// Entry is one catalog record. Entries are loaded once and treated as
// read-only afterwards.
type Entry struct {
	ID          string
	AuthorID    string
	Title       string
	Image       string
	Published   time.Time
	Description string
	Genres      []string
}

// Validate reports whether the entry carries the fields required to render a
// preview.
func (e Entry) Validate() error {
	switch {
	case strings.TrimSpace(e.ID) == "":
		return newInvalidEntryError(e.ID, "id")
	case strings.TrimSpace(e.Title) == "":
		return newInvalidEntryError(e.ID, "title")
	case strings.TrimSpace(e.AuthorID) == "":
		return newInvalidEntryError(e.ID, "author")
	}
	return nil
}

// HasGenre reports whether genreID appears in the entry's genre list.
func (e Entry) HasGenre(genreID string) bool {
	for _, g := range e.Genres {
		if g == genreID {
			return true
		}
	}
	return false
}
