package catalog

import "sync"

// DefaultPageSize matches the number of previews rendered per page when no
// explicit size is configured.
const DefaultPageSize = 36

// Store owns the backing entry set, the current result set and the pagination
// cursor.
//
// The cursor is 1-based and is reset to 1 by Initialize and ApplyFilter. The
// reset value already names the first page, so the first NextPage after a
// reset hands out page 1 without advancing; every later non-empty NextPage
// hands out the slice [pageIndex*pageSize, (pageIndex+1)*pageSize) and
// advances the cursor by one.
type Store struct {
	mu        sync.RWMutex
	pageSize  int
	entries   []Entry
	index     map[string]int
	results   []Entry
	pageIndex int
	// primed is set once the page named by a freshly reset cursor has been
	// handed out.
	primed bool
}

// NewStore creates an empty store with the provided page size.
func NewStore(pageSize int) (*Store, error) {
	if pageSize < 1 {
		return nil, ErrInvalidPageSize.WithContext(map[string]interface{}{"page_size": pageSize})
	}
	return &Store{
		pageSize:  pageSize,
		index:     map[string]int{},
		pageIndex: 1,
	}, nil
}

// Initialize sets the backing entry set. An empty set returns ErrEmptyCatalog
// but leaves the store usable with zero results.
func (s *Store) Initialize(entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]Entry(nil), entries...)
	s.index = make(map[string]int, len(s.entries))
	for i, entry := range s.entries {
		if _, exists := s.index[entry.ID]; !exists {
			s.index[entry.ID] = i
		}
	}
	s.results = s.entries
	s.pageIndex = 1
	s.primed = false

	if len(s.entries) == 0 {
		return ErrEmptyCatalog
	}
	return nil
}

// ApplyFilter replaces the result set with the entries matching criteria and
// resets the cursor to the first page.
func (s *Store) ApplyFilter(criteria FilterCriteria) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := Filter(s.entries, criteria)
	s.results = results
	s.pageIndex = 1
	s.primed = false
	return append([]Entry(nil), results...)
}

// NextPage returns the next unrendered slice of the result set. An empty
// slice means there is nothing left and leaves the cursor untouched.
func (s *Store) NextPage() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.primed {
		page := s.sliceLocked(0, s.pageSize)
		if len(page) > 0 {
			s.primed = true
		}
		return page
	}

	start := s.pageIndex * s.pageSize
	page := s.sliceLocked(start, start+s.pageSize)
	if len(page) == 0 {
		return page
	}
	s.pageIndex++
	return page
}

// RemainingCount returns how many matching entries have not been rendered.
func (s *Store) RemainingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	remaining := len(s.results) - s.renderedLocked()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RenderedCount returns min(pageIndex*pageSize, len(results)) once the first
// page has been handed out, and zero before that.
func (s *Store) RenderedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.renderedLocked()
}

// PageIndex returns the 1-based pagination cursor.
func (s *Store) PageIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pageIndex
}

// PageSize returns the configured page size.
func (s *Store) PageSize() int {
	return s.pageSize
}

// Results returns a copy of the current result set.
func (s *Store) Results() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Entry(nil), s.results...)
}

// Len returns the size of the current result set.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

// Total returns the size of the backing entry set.
func (s *Store) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Lookup resolves an id against the backing set, independent of the active
// filter.
func (s *Store) Lookup(id string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return Entry{}, newNotFoundError(id)
	}
	return s.entries[i], nil
}

func (s *Store) renderedLocked() int {
	if !s.primed {
		return 0
	}
	rendered := s.pageIndex * s.pageSize
	if rendered > len(s.results) {
		return len(s.results)
	}
	return rendered
}

func (s *Store) sliceLocked(start, end int) []Entry {
	if start >= len(s.results) {
		return []Entry{}
	}
	if end > len(s.results) {
		end = len(s.results)
	}
	return append([]Entry(nil), s.results[start:end]...)
}
