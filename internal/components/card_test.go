package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	data := CardData{Title: "Dune", Subtitle: "Frank Herbert"}
	style := DefaultCardStyle(DayTheme())

	card := NewCard(data, style)

	require.NotNil(t, card)
	assert.Equal(t, data, card.data)
	assert.Equal(t, style, card.style)
}

func TestCardViewContainsTitleAndSubtitle(t *testing.T) {
	view := NewCard(CardData{Title: "Dune", Subtitle: "Frank Herbert"}, DefaultCardStyle(NightTheme())).View()

	assert.Contains(t, view, "Dune")
	assert.Contains(t, view, "Frank Herbert")
}

func TestCardViewTruncatesLongTitle(t *testing.T) {
	card := NewCard(CardData{Title: strings.Repeat("a", 60)}, DefaultCardStyle(DayTheme())).WithWidth(20)

	view := card.View()

	assert.Contains(t, view, "…")
	assert.NotContains(t, view, strings.Repeat("a", 60))
}

func TestCardViewEmptyData(t *testing.T) {
	view := NewCard(CardData{}, DefaultCardStyle(DayTheme())).View()
	assert.NotEmpty(t, view)
}

func TestCardWrapText(t *testing.T) {
	card := NewCard(CardData{}, DefaultCardStyle(DayTheme()))

	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{name: "Short text", text: "Short", width: 20, expected: "Short"},
		{name: "Long text", text: "This is a very long text", width: 10, expected: "This is a\nvery long\ntext"},
		{name: "Empty text", text: "", width: 10, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card.WithWidth(tt.width + 4) // border and padding
			assert.Equal(t, tt.expected, card.wrapText(tt.text))
		})
	}
}

func TestSelectedCardStyleDiffersFromDefault(t *testing.T) {
	theme := DayTheme()
	assert.NotEqual(t,
		DefaultCardStyle(theme).BorderStyle.GetBorderTopForeground(),
		SelectedCardStyle(theme).BorderStyle.GetBorderTopForeground(),
	)
}
