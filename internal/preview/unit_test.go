package preview

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/bookconnect/internal/components"
	"github.com/alexisbeaulieu97/bookconnect/internal/domain/catalog"
	"github.com/alexisbeaulieu97/bookconnect/internal/domain/reference"
	"github.com/alexisbeaulieu97/bookconnect/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
)

func authors() *reference.Table {
	return reference.NewTable(
		reference.Item{ID: "a1", Name: "Ursula K. Le Guin"},
		reference.Item{ID: "a2", Name: "Octavia E. Butler"},
	)
}

func TestBindDerivesViewModel(t *testing.T) {
	unit := New(authors())
	unit.Bind(catalog.Entry{ID: "b1", AuthorID: "a1", Title: "The Dispossessed", Image: "https://img/b1.jpg"})

	assert.Equal(t, ViewModel{
		EntryID:    "b1",
		Title:      "The Dispossessed",
		AuthorName: "Ursula K. Le Guin",
		Image:      "https://img/b1.jpg",
		Bound:      true,
	}, unit.View())
	assert.Equal(t, "b1", unit.EntryID())
}

func TestRebindReplacesEveryField(t *testing.T) {
	unit := New(authors())
	unit.Bind(catalog.Entry{ID: "b1", AuthorID: "a1", Title: "The Dispossessed", Image: "one.jpg"})
	unit.Bind(catalog.Entry{ID: "b2", AuthorID: "a2", Title: "Kindred"})

	view := unit.View()
	assert.Equal(t, "b2", view.EntryID)
	assert.Equal(t, "Kindred", view.Title)
	assert.Equal(t, "Octavia E. Butler", view.AuthorName)
	assert.Empty(t, view.Image)
}

func TestUnknownAuthorFallback(t *testing.T) {
	unit := New(authors())
	unit.Bind(catalog.Entry{ID: "b3", AuthorID: "missing", Title: "Orphan"})

	assert.Equal(t, reference.UnknownAuthor, unit.View().AuthorName)
	assert.Contains(t, unit.Render(components.DayTheme(), 40, false), "Unknown Author")
}

func TestUnboundUnitRendersNothing(t *testing.T) {
	unit := New(nil)

	assert.Equal(t, ViewModel{}, unit.View())
	assert.NotPanics(t, func() {
		assert.Equal(t, "", unit.Render(components.NightTheme(), 40, true))
	})
}

func TestRenderShowsTitleAndAuthor(t *testing.T) {
	unit := New(authors())
	unit.Bind(catalog.Entry{ID: "b1", AuthorID: "a1", Title: "Lathe"})

	for _, selected := range []bool{false, true} {
		view := unit.Render(components.DayTheme(), 40, selected)
		assert.Contains(t, view, "Lathe")
		assert.Contains(t, view, "Ursula K. Le Guin")
	}
}

func TestActivateEmitsExactlyOneEvent(t *testing.T) {
	publisher := events.NewLoggingPublisher(nil)
	var received []string
	_, err := publisher.Subscribe(ports.EventPreviewSelected, func(_ context.Context, event ports.DomainEvent) error {
		received = append(received, event.(ports.SelectionEvent).EntryID)
		return nil
	})
	require.NoError(t, err)

	unit := New(authors())
	unit.Bind(catalog.Entry{ID: "b1", AuthorID: "a1", Title: "Lathe"})
	unit.Attach(publisher)

	require.NoError(t, unit.Activate(context.Background()))
	assert.Equal(t, []string{"b1"}, received)
}

func TestActivateWithoutBindingOrPublisherIsSilent(t *testing.T) {
	publisher := events.NewLoggingPublisher(nil)
	calls := 0
	_, err := publisher.Subscribe(ports.EventPreviewSelected, func(context.Context, ports.DomainEvent) error {
		calls++
		return nil
	})
	require.NoError(t, err)

	unbound := New(authors())
	unbound.Attach(publisher)
	require.NoError(t, unbound.Activate(context.Background()))

	detached := New(authors())
	detached.Bind(catalog.Entry{ID: "b1", Title: "Lathe"})
	detached.Attach(publisher)
	detached.Detach()
	require.NoError(t, detached.Activate(context.Background()))

	assert.Zero(t, calls)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Kindred", want: "Kindred"},
		{name: "escape sequence", input: "\x1b[31mRed\x1b[0m", want: "[31mRed[0m"},
		{name: "newline", input: "Two\nLines", want: "TwoLines"},
		{name: "tab", input: "a\tb", want: "a b"},
		{name: "unicode kept", input: "Café 📖", want: "Café 📖"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestBindSanitizesTitle(t *testing.T) {
	unit := New(authors())
	unit.Bind(catalog.Entry{ID: "b1", AuthorID: "a1", Title: "Evil\x1b]0;pwned\x07"})

	assert.Equal(t, "Evil]0;pwned", unit.View().Title)
}
