package browser

// ViewMode determines which screen to render
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewFilter
	ViewSettings
)

// clearNoticeMsg expires the notice with the matching sequence number.
type clearNoticeMsg struct {
	seq int
}

// copiedMsg reports the outcome of a clipboard write.
type copiedMsg struct {
	text string
	err  error
}
