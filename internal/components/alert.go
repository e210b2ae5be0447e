package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const dismissHint = "[esc] dismiss"

// Alert is a one-message banner. Its variant picks both the palette slot and
// the leading icon.
type Alert struct {
	variant     AlertVariant
	message     string
	width       int
	dismissible bool
}

// NewAlert creates an info alert for message.
func NewAlert(message string) Alert {
	return Alert{message: message}
}

func (a Alert) Variant(variant AlertVariant) Alert {
	a.variant = variant
	return a
}

// Width wraps the message to fit width columns, border included. Zero
// disables wrapping.
func (a Alert) Width(width int) Alert {
	a.width = width
	return a
}

func (a Alert) Dismissible(on bool) Alert {
	a.dismissible = on
	return a
}

// Icon returns the glyph prefixed to the message.
func (v AlertVariant) Icon() string {
	switch v {
	case AlertVariantWarning:
		return "⚠"
	case AlertVariantError:
		return "✗"
	default:
		return "ℹ"
	}
}

// View renders the alert using theme.
func (a Alert) View(theme Theme) string {
	body := a.variant.Icon() + " " + a.message
	// AlertStyle draws a one-cell border and small horizontal padding.
	if inner := a.width - 2 - 2*PaddingValue(theme, SpacingSizeSmall); inner > 0 {
		body = wordwrap.String(body, inner)
	}

	lines := []string{body}
	if a.dismissible {
		hint := Style(theme, lipgloss.NewStyle(), MutedForeground(PaletteNeutral))
		lines = append(lines, hint.Render(dismissHint))
	}
	return Style(theme, lipgloss.NewStyle(), AlertStyle(a.variant)...).Render(strings.Join(lines, "\n"))
}
