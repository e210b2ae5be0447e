package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/bookconnect/internal/domain/catalog"
	"github.com/alexisbeaulieu97/bookconnect/internal/domain/reference"
)

func TestListCommand_TableOutput(t *testing.T) {
	isolateConfig(t)

	stdout, _, err := executeCommand(t, "list", "--page-size", "5", "--log-level", "disabled")
	require.NoError(t, err)

	assert.Contains(t, stdout, "ID")
	assert.Contains(t, stdout, "TITLE")
	assert.Contains(t, stdout, "bk-001")
	assert.Contains(t, stdout, "Pride and Prejudice")
	assert.Contains(t, stdout, "Jane Austen")
	assert.Contains(t, stdout, "1813")
	assert.NotContains(t, stdout, "bk-006")
	assert.Contains(t, stdout, "Page 1: books 1-5 of 40. Show more (35)")
}

func TestListCommand_SecondPage(t *testing.T) {
	isolateConfig(t)

	stdout, _, err := executeCommand(t, "list", "--page-size", "5", "--page", "2", "--log-level", "disabled")
	require.NoError(t, err)

	assert.Contains(t, stdout, "bk-006")
	assert.NotContains(t, stdout, "bk-005")
	assert.Contains(t, stdout, "Page 2: books 6-10 of 40. Show more (30)")
}

func TestListCommand_FilterByAuthorName(t *testing.T) {
	isolateConfig(t)

	stdout, _, err := executeCommand(t, "list", "--author", "jane austen", "--log-level", "disabled")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Emma")
	assert.NotContains(t, stdout, "Silas Marner")
	assert.Contains(t, stdout, "of 4. Show more (0)")
}

func TestListCommand_NoMatches(t *testing.T) {
	isolateConfig(t)

	stdout, _, err := executeCommand(t, "list", "--title", "zzz-no-such-title", "--log-level", "disabled")
	require.NoError(t, err)
	assert.Contains(t, stdout, noResultsMessage)
}

func TestListCommand_PagePastEnd(t *testing.T) {
	isolateConfig(t)

	_, _, err := executeCommand(t, "list", "--page", "99", "--log-level", "disabled")
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrNoMoreResults)
	assert.Contains(t, err.Error(), "Suggestion:")
}

func TestListCommand_InvalidPage(t *testing.T) {
	isolateConfig(t)

	_, _, err := executeCommand(t, "list", "--page", "0", "--log-level", "disabled")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page must be at least 1")
}

func TestListCommand_JSONOutput(t *testing.T) {
	home := isolateConfig(t)
	data := writeFile(t, home, "books.yaml", fixtureDataset)

	stdout, _, err := executeCommand(t, "list", "--data", data, "--genre", "sf", "--json", "--log-level", "disabled")
	require.NoError(t, err)

	var payload listJSONPayload
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	assert.Equal(t, 1, payload.Page)
	assert.Equal(t, 2, payload.Matches)
	assert.Equal(t, 3, payload.Total)
	assert.Zero(t, payload.Remaining)
	require.Len(t, payload.Books, 2)
	assert.Equal(t, "one", payload.Books[0].ID)
	assert.Equal(t, "Octavia E. Butler", payload.Books[0].Author)
	assert.Equal(t, "1979-06-01", payload.Books[0].Published)
	assert.Empty(t, payload.Books[1].Published)
}

func TestListCommand_MissingDataset(t *testing.T) {
	home := isolateConfig(t)

	_, _, err := executeCommand(t, "list", "--data", home+"/missing.yaml", "--log-level", "disabled")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Check the --data path")
}

func TestResolveReference(t *testing.T) {
	t.Parallel()

	table := reference.NewTable(
		reference.Item{ID: "austen", Name: "Jane Austen"},
		reference.Item{ID: "twain", Name: "Mark Twain"},
	)

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "blank is any", value: "  ", want: catalog.AnyID},
		{name: "id", value: "twain", want: "twain"},
		{name: "name ignores case", value: "JANE AUSTEN", want: "austen"},
		{name: "unknown passes through", value: "woolf", want: "woolf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveReference(table, tt.value))
		})
	}
}

func TestFetchPage(t *testing.T) {
	t.Parallel()

	store, err := catalog.NewStore(2)
	require.NoError(t, err)
	require.NoError(t, store.Initialize([]catalog.Entry{
		{ID: "1", Title: "A", AuthorID: "x"},
		{ID: "2", Title: "B", AuthorID: "x"},
		{ID: "3", Title: "C", AuthorID: "x"},
	}))

	page, err := fetchPage(store, catalog.MatchAll(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Offset)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, "3", page.Entries[0].ID)
	assert.Zero(t, page.Remaining())

	_, err = fetchPage(store, catalog.MatchAll(), 3)
	assert.ErrorIs(t, err, catalog.ErrNoMoreResults)
}

func TestRenderListTableStripsEscapeSequences(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	page := listPage{
		Number:  1,
		Size:    10,
		Matches: 1,
		Total:   1,
		Entries: []catalog.Entry{{ID: "x", Title: "Evil\x1b]0;pwned\x07", AuthorID: "a", Genres: []string{"g"}}},
		Authors: reference.NewTable(reference.Item{ID: "a", Name: "Ann"}),
		Genres:  reference.NewTable(reference.Item{ID: "g", Name: "Gothic\x1b[2J"}),
	}
	require.NoError(t, renderListTable(&buf, page))

	out := buf.String()
	assert.NotContains(t, out, "\x1b")
	assert.NotContains(t, out, "\x07")
	assert.Contains(t, out, "Evil]0;pwned")
	assert.Contains(t, out, "Gothic[2J")
}
