package catalog

// Filter returns the entries matching criteria in their original order. The
// input slice is never modified.
func Filter(entries []Entry, criteria FilterCriteria) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if criteria.Matches(entry) {
			out = append(out, entry)
		}
	}
	return out
}
