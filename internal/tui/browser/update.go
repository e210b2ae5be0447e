package browser

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/alexisbeaulieu97/bookconnect/internal/domain/catalog"
	"github.com/alexisbeaulieu97/bookconnect/internal/domain/reference"
	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(size.Width, size.Height)
	}

	if m.form != nil && (m.viewMode == ViewFilter || m.viewMode == ViewSettings) {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.clearNotice()
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.logger.Warn(m.ctx, "clipboard write failed", "error", msg.err)
			return m, m.setNotice(ports.Notice{Level: ports.NoticeError, Message: fmt.Sprintf("Copy failed: %v", msg.err)})
		}
		return m, m.setNotice(ports.Notice{Level: ports.NoticeInfo, Message: "Copied to clipboard"})
	}

	return m, nil
}

// updateForm forwards messages to the open huh form, following the embedded
// form pattern: inspect State after every update.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	formModel, cmd := m.form.Update(msg)
	if form, ok := formModel.(*huh.Form); ok {
		m.form = form
	}

	switch m.form.State {
	case huh.StateCompleted:
		var follow tea.Cmd
		switch m.viewMode {
		case ViewFilter:
			follow = m.applyFilter(m.filter.criteria())
		case ViewSettings:
			m.themes.SetMode(m.settings.mode(m.themes.Mode()))
			m.refreshContent()
		}
		m.closeForm()
		return m, tea.Batch(cmd, follow)
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}

	return m, cmd
}

// handleKeyPress handles keyboard input based on current view mode
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewDetail:
		return m.handleDetailKeys(msg)
	default:
		return m.handleListKeys(msg)
	}
}

// handleListKeys handles keys in list view
func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m, m.selectCurrent()

	case key.Matches(msg, m.keys.More):
		return m, m.loadMore()

	case key.Matches(msg, m.keys.Filter):
		m.filter = newFilterValues(m.criteria)
		m.form = buildFilterForm(m.filter, m.authors, m.genres, m.themes.Mode()).WithWidth(min(m.width-4, maxCardWidth))
		m.viewMode = ViewFilter
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Reset):
		if m.criteria.IsMatchAll() {
			return m, nil
		}
		return m, m.applyFilter(catalog.MatchAll())

	case key.Matches(msg, m.keys.Theme):
		m.themes.SetMode(m.themes.Mode().Toggle())
		m.refreshContent()
		return m, nil

	case key.Matches(msg, m.keys.Settings):
		m.settings = &settingsValues{theme: string(m.themes.Mode())}
		m.form = buildSettingsForm(m.settings, m.themes.Mode()).WithWidth(min(m.width-4, maxCardWidth))
		m.viewMode = ViewSettings
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Dismiss), key.Matches(msg, m.keys.Back):
		m.clearNotice()
		return m, nil
	}

	return m, nil
}

// handleDetailKeys handles keys in detail view
func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Select):
		m.detail = nil
		m.viewMode = ViewList
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if m.detail == nil {
			return m, nil
		}
		text := catalog.CleanLine(fmt.Sprintf("%s by %s", m.detail.Title, reference.AuthorName(m.authors, m.detail.AuthorID)))
		return m, copyCmd(m.clipboard, text)

	case key.Matches(msg, m.keys.Theme):
		m.themes.SetMode(m.themes.Mode().Toggle())
		m.refreshContent()
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.clearNotice()
		return m, nil
	}

	return m, nil
}

func (m *Model) closeForm() {
	m.form = nil
	m.filter = nil
	m.settings = nil
	m.viewMode = ViewList
}

func (m *Model) moveCursor(delta int) {
	count := m.surface.Len()
	if count == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= count {
		m.cursor = count - 1
	}
	m.refreshContent()
}

// selectCurrent activates the highlighted unit, which routes through the
// surface to the controller and back as a detail callback.
func (m *Model) selectCurrent() tea.Cmd {
	unit, ok := m.surface.At(m.cursor)
	if !ok {
		return nil
	}
	target, ok := unit.(activator)
	if !ok {
		return nil
	}
	if err := target.Activate(m.ctx); err != nil {
		m.logger.Warn(m.ctx, "selection failed", "entry_id", unit.EntryID(), "error", err)
		return m.setNotice(ports.Notice{Level: ports.NoticeError, Message: err.Error()})
	}
	return m.absorb()
}

func (m *Model) loadMore() tea.Cmd {
	status, err := m.controller.LoadMore(m.ctx)
	if err != nil {
		return m.transitionFailed("load more", err)
	}
	m.applyStatus(status)
	return m.absorb()
}

func (m *Model) applyFilter(criteria catalog.FilterCriteria) tea.Cmd {
	status, err := m.controller.ApplyFilter(m.ctx, criteria)
	if err != nil {
		return m.transitionFailed("filter", err)
	}
	m.criteria = criteria
	m.applyStatus(status)
	return m.absorb()
}

func (m *Model) transitionFailed(action string, err error) tea.Cmd {
	m.logger.Warn(m.ctx, "transition failed", "action", action, "error", err)
	if errors.Is(err, catalog.ErrTransitionInProgress) {
		return nil
	}
	return m.setNotice(ports.Notice{Level: ports.NoticeError, Message: fmt.Sprintf("Could not %s: %v", action, err)})
}
