package browser

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/bookconnect/internal/components"
)

const (
	maxCardWidth = 72
	// chromeHeight is the number of rows used around the list viewport by
	// the header, the load-more button and the help footer.
	chromeHeight = 9
	minListRows  = 3
)

func titleStyle(theme components.Theme) lipgloss.Style {
	return components.Style(theme, lipgloss.NewStyle(), components.Bold(), components.Foreground(components.PalettePrimary)).
		PaddingRight(2)
}

func headerStyle(theme components.Theme, width int) lipgloss.Style {
	style := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(theme.Palette.Neutral.Muted).
		MarginBottom(1)
	if width > 2 {
		style = style.Width(width - 2)
	}
	return style
}

func mutedStyle(theme components.Theme) lipgloss.Style {
	return components.Style(theme, lipgloss.NewStyle(), components.MutedForeground(components.PaletteSurface))
}

func labelStyle(theme components.Theme) lipgloss.Style {
	return components.Style(theme, lipgloss.NewStyle(), components.Bold(), components.MutedForeground(components.PaletteSurface)).
		Width(10)
}

func emptyStateStyle(theme components.Theme) lipgloss.Style {
	return mutedStyle(theme).
		Italic(true).
		PaddingTop(2).
		PaddingBottom(2).
		PaddingLeft(2)
}

func footerStyle(theme components.Theme) lipgloss.Style {
	return mutedStyle(theme).MarginTop(1)
}

func overlayStyle(theme components.Theme, width int) lipgloss.Style {
	style := components.Style(theme, lipgloss.NewStyle(),
		components.Border(components.BorderVariantRounded, components.PalettePrimary),
		components.PaddingX(components.SpacingSizeMedium),
		components.PaddingY(components.SpacingSizeSmall),
	)
	if width > 4 {
		style = style.Width(min(width-4, maxCardWidth+8))
	}
	return style
}

func cardWidth(width int) int {
	if width <= 0 {
		return maxCardWidth
	}
	return min(width-2, maxCardWidth)
}
