package components

import (
	"github.com/charmbracelet/lipgloss"
)

// Button is a single-line action label.
type Button struct {
	label    string
	disabled bool
}

func NewButton(label string) *Button {
	return &Button{label: label}
}

// WithDisabled toggles the disabled state.
func (b *Button) WithDisabled(disabled bool) *Button {
	b.disabled = disabled
	return b
}

// Disabled reports whether the button ignores activation.
func (b *Button) Disabled() bool {
	return b.disabled
}

// Label returns the button text.
func (b *Button) Label() string {
	return b.label
}

// View renders the button using theme.
func (b *Button) View(theme Theme) string {
	return Style(theme, lipgloss.NewStyle(), ButtonStyle(b.disabled)...).Render(b.label)
}
