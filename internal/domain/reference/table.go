// Package reference holds the read-only author and genre lookup tables the
// catalog refers to by id.
package reference

// UnknownAuthor is displayed when an entry references an author id missing
// from the author table.
const UnknownAuthor = "Unknown Author"

// Item is a single id/name pair.
type Item struct {
	ID   string
	Name string
}

// Table maps stable ids to display names while remembering insertion order,
// which drives the order of dropdown options.
type Table struct {
	items []Item
	index map[string]int
}

// NewTable builds a table from items. Later duplicates replace the name of
// the first occurrence without changing its position.
func NewTable(items ...Item) *Table {
	t := &Table{index: make(map[string]int, len(items))}
	for _, item := range items {
		t.put(item)
	}
	return t
}

func (t *Table) put(item Item) {
	if i, ok := t.index[item.ID]; ok {
		t.items[i].Name = item.Name
		return
	}
	t.index[item.ID] = len(t.items)
	t.items = append(t.items, item)
}

// Lookup returns the display name for id.
func (t *Table) Lookup(id string) (string, bool) {
	if t == nil {
		return "", false
	}
	i, ok := t.index[id]
	if !ok {
		return "", false
	}
	return t.items[i].Name, true
}

// Items returns the table contents in insertion order.
func (t *Table) Items() []Item {
	if t == nil {
		return nil
	}
	return append([]Item(nil), t.items...)
}

// Len returns the number of ids in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}

// Lookuper is satisfied by Table and by any other id→name source.
type Lookuper interface {
	Lookup(id string) (string, bool)
}

// AuthorName resolves an author id, falling back to UnknownAuthor.
func AuthorName(authors Lookuper, id string) string {
	if authors != nil {
		if name, ok := authors.Lookup(id); ok {
			return name
		}
	}
	return UnknownAuthor
}

// Options returns dropdown options: the "any" wildcard labelled anyLabel,
// followed by the table items in insertion order.
func Options(t *Table, anyID, anyLabel string) []Item {
	options := make([]Item, 0, t.Len()+1)
	options = append(options, Item{ID: anyID, Name: anyLabel})
	return append(options, t.Items()...)
}
