package browse

import "fmt"

// Status is the presentation state derived after every transition.
type Status struct {
	// Total is the size of the backing catalog.
	Total int
	// Matches is the size of the current result set.
	Matches int
	// Rendered is how many matches the cursor has handed out.
	Rendered int
	// Visible is how many units sit on the surface. It is lower than
	// Rendered when malformed entries were skipped.
	Visible         int
	Remaining       int
	PageIndex       int
	LoadMoreEnabled bool
	LoadMoreLabel   string
	NoResults       bool
	// ScrollToTop is set only by the filter transition.
	ScrollToTop bool
}

// LoadMoreLabel formats the load-more control text. Negative counts clamp
// to zero.
func LoadMoreLabel(remaining int) string {
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("Show more (%d)", remaining)
}
