package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestButton(t *testing.T) {
	button := NewButton("Show more (12)")

	assert.False(t, button.Disabled())
	assert.Equal(t, "Show more (12)", button.Label())
	assert.Contains(t, button.View(DayTheme()), "Show more (12)")

	button.WithDisabled(true)
	assert.True(t, button.Disabled())
	assert.Contains(t, button.View(NightTheme()), "Show more (12)")
}
