package browser

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"

	"github.com/alexisbeaulieu97/bookconnect/internal/components"
	"github.com/alexisbeaulieu97/bookconnect/internal/domain/catalog"
	"github.com/alexisbeaulieu97/bookconnect/internal/domain/reference"
)

const (
	fieldTitle  = "title"
	fieldAuthor = "author"
	fieldGenre  = "genre"
	fieldTheme  = "theme"

	allAuthorsLabel = "All Authors"
	allGenresLabel  = "All Genres"
)

func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel"))
	return km
}

func formTheme(mode components.ThemeMode) *huh.Theme {
	if mode == components.ThemeNight {
		return huh.ThemeCharm()
	}
	return huh.ThemeBase()
}

// filterValues holds the fields bound to the search overlay.
type filterValues struct {
	title  string
	author string
	genre  string
}

func newFilterValues(current catalog.FilterCriteria) *filterValues {
	return &filterValues{title: current.TitleQuery, author: current.AuthorID, genre: current.GenreID}
}

func (v *filterValues) criteria() catalog.FilterCriteria {
	return catalog.NewFilterCriteria(v.title, v.author, v.genre)
}

// buildFilterForm binds the search overlay to values, which start out as the
// active criteria.
func buildFilterForm(values *filterValues, authors, genres *reference.Table, mode components.ThemeMode) *huh.Form {
	group := huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Description("Matches any part of the title, ignoring case.").
			Placeholder("Any title").
			Key(fieldTitle).
			Value(&values.title),
		huh.NewSelect[string]().
			Title("Author").
			Key(fieldAuthor).
			Options(selectOptions(reference.Options(authors, catalog.AnyID, allAuthorsLabel))...).
			Value(&values.author),
		huh.NewSelect[string]().
			Title("Genre").
			Key(fieldGenre).
			Options(selectOptions(reference.Options(genres, catalog.AnyID, allGenresLabel))...).
			Value(&values.genre),
	)

	return huh.NewForm(group).
		WithKeyMap(formKeyMap()).
		WithTheme(formTheme(mode)).
		WithShowHelp(true)
}

// settingsValues holds the fields bound to the settings overlay.
type settingsValues struct {
	theme string
}

func (v *settingsValues) mode(fallback components.ThemeMode) components.ThemeMode {
	mode, err := components.ParseThemeMode(strings.TrimSpace(v.theme))
	if err != nil {
		return fallback
	}
	return mode
}

func buildSettingsForm(values *settingsValues, mode components.ThemeMode) *huh.Form {
	group := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Key(fieldTheme).
			Options(
				huh.NewOption("Day", string(components.ThemeDay)),
				huh.NewOption("Night", string(components.ThemeNight)),
			).
			Value(&values.theme),
	)

	return huh.NewForm(group).
		WithKeyMap(formKeyMap()).
		WithTheme(formTheme(mode)).
		WithShowHelp(true)
}

func selectOptions(items []reference.Item) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(items))
	for _, item := range items {
		options = append(options, huh.NewOption(item.Name, item.ID))
	}
	return options
}
