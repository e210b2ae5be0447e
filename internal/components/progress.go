package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const defaultProgressWidth = 20

// Progress renders how much of a result set is on screen.
type Progress struct {
	bar   progress.Model
	total int
}

// NewProgress creates a progress bar for total items, coloured from theme.
func NewProgress(theme Theme, total int) Progress {
	bar := progress.New(
		progress.WithSolidFill(string(theme.Palette.Primary.Base)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(theme.Palette.Neutral.Muted)
	bar.Width = defaultProgressWidth
	return Progress{bar: bar, total: total}
}

// WithWidth sets the bar width in cells.
func (p Progress) WithWidth(width int) Progress {
	if width > 0 {
		p.bar.Width = width
	}
	return p
}

// View renders the bar followed by a shown/total label. The bar is capped at
// full, the label is not.
func (p Progress) View(shown int) string {
	ratio := 0.0
	if p.total > 0 {
		ratio = math.Min(1.0, float64(shown)/float64(p.total))
	}
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%s/%s", humanize.Comma(int64(shown)), humanize.Comma(int64(p.total))))
	return lipgloss.JoinHorizontal(lipgloss.Left, p.bar.ViewAs(ratio), " ", label)
}
