package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProgress(t *testing.T) {
	t.Parallel()

	t.Run("creates progress with specified total", func(t *testing.T) {
		t.Parallel()
		p := NewProgress(DayTheme(), 10)
		require.Equal(t, 10, p.total)
		require.Equal(t, defaultProgressWidth, p.bar.Width)
	})

	t.Run("width override", func(t *testing.T) {
		t.Parallel()
		p := NewProgress(NightTheme(), 10).WithWidth(8)
		require.Equal(t, 8, p.bar.Width)

		p = p.WithWidth(0)
		require.Equal(t, 8, p.bar.Width)
	})
}

func TestProgressView(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		total int
		shown int
		label string
	}{
		{name: "empty result set", total: 0, shown: 0, label: "0/0"},
		{name: "partial", total: 10, shown: 5, label: "5/10"},
		{name: "complete", total: 10, shown: 10, label: "10/10"},
		{name: "beyond total keeps real count", total: 10, shown: 15, label: "15/10"},
		{name: "thousands separator", total: 1500, shown: 36, label: "36/1,500"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			view := NewProgress(DayTheme(), tt.total).View(tt.shown)
			require.Contains(t, view, tt.label)
			require.Greater(t, len(strings.TrimSpace(view)), len(tt.label),
				"expected view to contain a bar in addition to the label")
		})
	}
}
