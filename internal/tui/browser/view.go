package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"

	"github.com/alexisbeaulieu97/bookconnect/internal/components"
	"github.com/alexisbeaulieu97/bookconnect/internal/domain/catalog"
	"github.com/alexisbeaulieu97/bookconnect/internal/domain/reference"
	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
)

const emptyStateMessage = "No results found. Your filters might be too narrow."

// View renders the current model state
func (m Model) View() string {
	switch m.viewMode {
	case ViewDetail:
		return m.renderDetailView()
	case ViewFilter:
		return m.renderFormView("Search the catalog")
	case ViewSettings:
		return m.renderFormView("Settings")
	default:
		return m.renderListView()
	}
}

// renderListView renders the catalog list with its chrome
func (m Model) renderListView() string {
	theme := m.themes.Theme()

	var content strings.Builder
	content.WriteString(m.renderHeader(theme))
	content.WriteString("\n")

	if notice := m.renderNotice(theme); notice != "" {
		content.WriteString(notice)
		content.WriteString("\n")
	}

	if m.status.NoResults {
		content.WriteString(emptyStateStyle(theme).Render(emptyStateMessage))
	} else {
		content.WriteString(m.viewport.View())
	}
	content.WriteString("\n")

	button := components.NewButton(m.status.LoadMoreLabel).WithDisabled(!m.status.LoadMoreEnabled)
	content.WriteString(button.View(theme))
	content.WriteString("\n")

	content.WriteString(footerStyle(theme).Render(m.help.View(m.keys)))
	return content.String()
}

// renderHeader renders the title and the result summary
func (m Model) renderHeader(theme components.Theme) string {
	title := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle(theme).Render("📚 BookConnect"),
		components.NewProgress(theme, m.status.Matches).View(m.status.Visible),
	)

	summary := fmt.Sprintf("Showing %s of %s books",
		humanize.Comma(int64(m.status.Visible)),
		humanize.Comma(int64(m.status.Matches)),
	)
	if m.status.Matches != m.status.Total {
		summary += fmt.Sprintf(" (%s in catalog)", humanize.Comma(int64(m.status.Total)))
	}
	if filter := m.describeCriteria(); filter != "" {
		summary += "  " + filter
	}

	header := lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle(theme).Render(summary))
	return headerStyle(theme, m.width).Render(header)
}

// describeCriteria summarizes the active filter, empty for match-all.
func (m Model) describeCriteria() string {
	if m.criteria.IsMatchAll() {
		return ""
	}
	var parts []string
	if m.criteria.TitleQuery != "" {
		parts = append(parts, fmt.Sprintf("title %q", m.criteria.TitleQuery))
	}
	if m.criteria.AuthorID != catalog.AnyID {
		parts = append(parts, "by "+reference.AuthorName(m.authors, m.criteria.AuthorID))
	}
	if m.criteria.GenreID != catalog.AnyID {
		name, ok := m.genres.Lookup(m.criteria.GenreID)
		if !ok {
			name = m.criteria.GenreID
		}
		parts = append(parts, "in "+name)
	}
	return "· " + strings.Join(parts, ", ")
}

func (m Model) renderNotice(theme components.Theme) string {
	if m.notice == nil {
		return ""
	}
	variant := components.AlertVariantInfo
	switch m.notice.Level {
	case ports.NoticeWarning:
		variant = components.AlertVariantWarning
	case ports.NoticeError:
		variant = components.AlertVariantError
	}
	return components.NewAlert(m.notice.Message).
		Variant(variant).
		Width(cardWidth(m.width)).
		Dismissible(true).
		View(theme)
}

// renderDetailView renders the full record of the selected entry
func (m Model) renderDetailView() string {
	if m.detail == nil {
		return m.renderListView()
	}
	theme := m.themes.Theme()
	entry := m.detail.Clean()
	width := cardWidth(m.width)

	var content strings.Builder
	content.WriteString(titleStyle(theme).Render(entry.Title))
	content.WriteString("\n\n")

	rows := [][2]string{
		{"Author", catalog.CleanLine(reference.AuthorName(m.authors, entry.AuthorID))},
		{"Published", formatPublished(entry.Published, time.Now())},
		{"Genres", m.genreNames(entry.Genres)},
		{"Cover", entry.Image},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		content.WriteString(labelStyle(theme).Render(row[0]))
		content.WriteString(row[1])
		content.WriteString("\n")
	}

	if entry.Description != "" {
		content.WriteString("\n")
		content.WriteString(wordwrap.String(entry.Description, max(width-4, 20)))
		content.WriteString("\n")
	}

	if notice := m.renderNotice(theme); notice != "" {
		content.WriteString("\n")
		content.WriteString(notice)
		content.WriteString("\n")
	}

	content.WriteString(footerStyle(theme).Render("esc back • c copy title • t day/night • q quit"))
	return overlayStyle(theme, m.width).Render(content.String())
}

func (m Model) renderFormView(heading string) string {
	theme := m.themes.Theme()
	if m.form == nil {
		return m.renderListView()
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle(theme).Render(heading),
		"",
		m.form.View(),
	)
	return overlayStyle(theme, m.width).Render(body)
}

func (m Model) genreNames(ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := m.genres.Lookup(id); ok {
			names = append(names, catalog.CleanLine(name))
		}
	}
	return strings.Join(names, ", ")
}

func formatPublished(published, now time.Time) string {
	if published.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s (%s)", published.Format("2 January 2006"), humanize.RelTime(published, now, "ago", "from now"))
}
