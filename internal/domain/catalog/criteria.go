package catalog

import "strings"

// AnyID is the wildcard sentinel accepted for author and genre criteria.
const AnyID = "any"

// FilterCriteria is a single filter request.
type FilterCriteria struct {
	TitleQuery string
	AuthorID   string
	GenreID    string
}

// NewFilterCriteria builds criteria from raw form values. The title is
// trimmed and blank author/genre values collapse to AnyID.
func NewFilterCriteria(title, author, genre string) FilterCriteria {
	return FilterCriteria{
		TitleQuery: strings.TrimSpace(title),
		AuthorID:   normalizeID(author),
		GenreID:    normalizeID(genre),
	}
}

// MatchAll returns criteria that accept every entry.
func MatchAll() FilterCriteria {
	return FilterCriteria{AuthorID: AnyID, GenreID: AnyID}
}

// IsMatchAll reports whether the criteria place no restriction on entries.
func (c FilterCriteria) IsMatchAll() bool {
	return strings.TrimSpace(c.TitleQuery) == "" && isAny(c.AuthorID) && isAny(c.GenreID)
}

// Matches applies the title, author and genre predicates conjunctively.
func (c FilterCriteria) Matches(entry Entry) bool {
	query := strings.ToLower(strings.TrimSpace(c.TitleQuery))
	if query != "" && !strings.Contains(strings.ToLower(entry.Title), query) {
		return false
	}
	if !isAny(c.AuthorID) && entry.AuthorID != c.AuthorID {
		return false
	}
	if !isAny(c.GenreID) && !entry.HasGenre(c.GenreID) {
		return false
	}
	return true
}

func normalizeID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return AnyID
	}
	return id
}

// isAny treats the zero value as a wildcard so a zero FilterCriteria matches
// everything.
func isAny(id string) bool {
	return id == "" || id == AnyID
}
