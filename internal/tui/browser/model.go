package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/bookconnect/internal/application/browse"
	"github.com/alexisbeaulieu97/bookconnect/internal/components"
	"github.com/alexisbeaulieu97/bookconnect/internal/domain/catalog"
	"github.com/alexisbeaulieu97/bookconnect/internal/domain/reference"
	logginginfra "github.com/alexisbeaulieu97/bookconnect/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
	"github.com/alexisbeaulieu97/bookconnect/internal/surface"
)

// renderer is implemented by units that can draw themselves.
type renderer interface {
	Render(theme components.Theme, width int, selected bool) string
}

// activator is implemented by units that raise a selection event.
type activator interface {
	Activate(ctx context.Context) error
}

// Config wires the browser to the catalog core.
type Config struct {
	Context    context.Context
	Controller *browse.Controller
	Surface    *surface.Surface
	Bridge     *Bridge
	Authors    *reference.Table
	Genres     *reference.Table
	Themes     *components.ThemeManager
	Logger     ports.Logger
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

// Model is the Bubble Tea model of the catalog browser.
type Model struct {
	// Core collaborators
	ctx        context.Context
	controller *browse.Controller
	surface    *surface.Surface
	bridge     *Bridge
	authors    *reference.Table
	genres     *reference.Table
	themes     *components.ThemeManager
	logger     ports.Logger
	clipboard  func(string) error

	// Catalog state
	status   browse.Status
	criteria catalog.FilterCriteria
	detail   *catalog.Entry

	// UI state
	viewMode ViewMode
	cursor   int
	offsets  []int
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	form     *huh.Form
	filter   *filterValues
	settings *settingsValues

	notice    *ports.Notice
	noticeSeq int
	startup   tea.Cmd

	// Dimensions
	width  int
	height int
}

// NewModel renders the initial page and returns the model.
func NewModel(cfg Config) Model {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logginginfra.NewNoOpLogger()
	}
	bridge := cfg.Bridge
	if bridge == nil {
		bridge = NewBridge()
	}
	themes := cfg.Themes
	if themes == nil {
		themes = components.NewThemeManager(components.ThemeDay)
	}
	copyFn := cfg.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	m := Model{
		ctx:        ctx,
		controller: cfg.Controller,
		surface:    cfg.Surface,
		bridge:     bridge,
		authors:    cfg.Authors,
		genres:     cfg.Genres,
		themes:     themes,
		logger:     logger.With("layer", "presentation", "component", "browser"),
		clipboard:  copyFn,
		criteria:   catalog.MatchAll(),
		viewMode:   ViewList,
		viewport:   viewport.New(80, 24-chromeHeight),
		help:       help.New(),
		keys:       defaultKeyMap(),
		width:      80,
		height:     24,
	}

	m.status = m.controller.Start(ctx)
	m.refreshContent()
	m.startup = m.absorb()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("bookconnect"), m.startup)
}

// Run starts the interactive browser and blocks until it exits.
func Run(ctx context.Context, model Model, opts ...tea.ProgramOption) error {
	options := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(model, options...).Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}

// Status returns the latest catalog status.
func (m Model) Status() browse.Status {
	return m.status
}

// GetViewMode returns the current view mode
func (m Model) GetViewMode() ViewMode {
	return m.viewMode
}

// Cursor returns the index of the highlighted unit.
func (m Model) Cursor() int {
	return m.cursor
}

// Detail returns the entry shown in the detail view.
func (m Model) Detail() (catalog.Entry, bool) {
	if m.detail == nil {
		return catalog.Entry{}, false
	}
	return *m.detail, true
}

// Notice returns the visible notice, if any.
func (m Model) Notice() (ports.Notice, bool) {
	if m.notice == nil {
		return ports.Notice{}, false
	}
	return *m.notice, true
}

// absorb applies the controller callbacks collected by the bridge.
func (m *Model) absorb() tea.Cmd {
	p := m.bridge.drain()

	if p.filterClosed && m.viewMode == ViewFilter {
		m.closeForm()
	}
	if p.detail != nil {
		m.detail = p.detail
		m.viewMode = ViewDetail
	}
	if len(p.notices) > 0 {
		return m.setNotice(p.notices[len(p.notices)-1])
	}
	return nil
}

func (m *Model) applyStatus(status browse.Status) {
	m.status = status
	if status.ScrollToTop {
		m.cursor = 0
		m.viewport.GotoTop()
	}
	m.refreshContent()
}

// refreshContent re-renders every unit into the viewport and records where
// each one starts.
func (m *Model) refreshContent() {
	if m.surface == nil {
		return
	}
	units := m.surface.Units()
	if m.cursor >= len(units) {
		m.cursor = len(units) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	theme := m.themes.Theme()
	width := cardWidth(m.width)

	var b strings.Builder
	offsets := make([]int, 0, len(units))
	line := 0
	for i, unit := range units {
		r, ok := unit.(renderer)
		if !ok {
			continue
		}
		view := r.Render(theme, width, i == m.cursor)
		if view == "" {
			continue
		}
		offsets = append(offsets, line)
		b.WriteString(view)
		b.WriteString("\n")
		line += lipgloss.Height(view)
	}
	m.offsets = offsets
	m.viewport.SetContent(b.String())
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	if m.cursor < 0 || m.cursor >= len(m.offsets) {
		return
	}
	top := m.offsets[m.cursor]
	bottom := m.viewport.TotalLineCount()
	if m.cursor+1 < len(m.offsets) {
		bottom = m.offsets[m.cursor+1]
	}

	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-chromeHeight, minListRows)
	m.help.Width = width
	if m.form != nil {
		m.form = m.form.WithWidth(min(width-4, maxCardWidth))
	}
	m.refreshContent()
}

func (m *Model) setNotice(notice ports.Notice) tea.Cmd {
	m.noticeSeq++
	m.notice = &notice
	return expireNoticeCmd(m.noticeSeq)
}

func (m *Model) clearNotice() {
	m.notice = nil
}
