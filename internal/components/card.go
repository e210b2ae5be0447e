package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// CardStyle defines the visual appearance of a Card component.
type CardStyle struct {
	BorderStyle   lipgloss.Style
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	IconStyle     lipgloss.Style
	// Width is the outer width of the card in cells, border included.
	Width int
}

// DefaultCardStyle returns the card style for theme.
func DefaultCardStyle(theme Theme) CardStyle {
	return CardStyle{
		BorderStyle:   Style(theme, lipgloss.NewStyle(), CardBaseStyle()...),
		TitleStyle:    Style(theme, lipgloss.NewStyle(), Bold(), Foreground(PalettePrimary)),
		SubtitleStyle: Style(theme, lipgloss.NewStyle(), MutedForeground(PaletteSurface)),
		IconStyle:     Style(theme, lipgloss.NewStyle(), Foreground(PaletteInfo)),
		Width:         40,
	}
}

// SelectedCardStyle highlights the focused card.
func SelectedCardStyle(theme Theme) CardStyle {
	style := DefaultCardStyle(theme)
	style.BorderStyle = Style(theme, lipgloss.NewStyle(), CardSelectedStyle()...)
	return style
}

// CardData represents the content of a card.
type CardData struct {
	Title    string
	Subtitle string
	Icon     string
	// Lines are rendered below the subtitle in order.
	Lines []string
}

// Card is a bordered block with a title, a subtitle and optional extra lines.
type Card struct {
	data  CardData
	style CardStyle
}

func NewCard(data CardData, style CardStyle) *Card {
	return &Card{data: data, style: style}
}

// WithWidth sets the card width.
func (c *Card) WithWidth(width int) *Card {
	c.style.Width = width
	return c
}

// View renders the card.
func (c *Card) View() string {
	inner := c.innerWidth()
	var content []string

	header := c.data.Title
	if inner > 0 {
		header = c.fit(header, inner-iconWidth(c.data.Icon))
	}
	header = c.style.TitleStyle.Render(header)
	if c.data.Icon != "" {
		header = c.style.IconStyle.Render(c.data.Icon+" ") + header
	}
	content = append(content, header)

	if c.data.Subtitle != "" {
		content = append(content, c.style.SubtitleStyle.Render(c.fit(c.data.Subtitle, inner)))
	}
	for _, line := range c.data.Lines {
		content = append(content, c.wrapText(line))
	}

	style := c.style.BorderStyle
	if c.style.Width > 0 {
		style = style.Width(c.style.Width - horizontalBorderWidth(style))
	}
	return style.Render(strings.Join(content, "\n"))
}

func (c *Card) innerWidth() int {
	if c.style.Width <= 0 {
		return 0
	}
	style := c.style.BorderStyle
	width := c.style.Width - horizontalBorderWidth(style) - style.GetHorizontalPadding()
	if width < 1 {
		return 0
	}
	return width
}

func (c *Card) fit(text string, width int) string {
	if width <= 0 {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}

// wrapText wraps text to fit within the card width.
func (c *Card) wrapText(text string) string {
	inner := c.innerWidth()
	if inner <= 0 {
		return text
	}
	return wordwrap.String(text, inner)
}

func iconWidth(icon string) int {
	if icon == "" {
		return 0
	}
	return lipgloss.Width(icon) + 1
}

// horizontalBorderWidth sums left and right border sizes, falling back to zero on error.
func horizontalBorderWidth(style lipgloss.Style) (width int) {
	defer func() {
		if recover() != nil {
			width = 0
		}
	}()

	width = style.GetBorderLeftSize() + style.GetBorderRightSize()
	if width < 0 {
		return 0
	}
	return width
}
