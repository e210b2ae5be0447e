package components

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ThemeMode selects one of the two visual themes.
type ThemeMode string

const (
	ThemeDay   ThemeMode = "day"
	ThemeNight ThemeMode = "night"
)

// ParseThemeMode accepts "day" or "night" in any case.
func ParseThemeMode(value string) (ThemeMode, error) {
	switch ThemeMode(strings.ToLower(strings.TrimSpace(value))) {
	case ThemeDay:
		return ThemeDay, nil
	case ThemeNight:
		return ThemeNight, nil
	default:
		return "", fmt.Errorf("unknown theme %q (expected day or night)", value)
	}
}

// Toggle returns the opposite mode.
func (m ThemeMode) Toggle() ThemeMode {
	if m == ThemeNight {
		return ThemeDay
	}
	return ThemeNight
}

// SpacingSize enumerates supported spacing size tokens.
type SpacingSize int

const (
	SpacingSizeNone SpacingSize = iota
	SpacingSizeExtraSmall
	SpacingSizeSmall
	SpacingSizeMedium
	SpacingSizeLarge
)

const spacingSizeCount = int(SpacingSizeLarge) + 1

type spacingTable [spacingSizeCount]int

type BorderVariant int

const (
	BorderVariantNone BorderVariant = iota
	BorderVariantNormal
	BorderVariantRounded
	BorderVariantThick
)

type AlertVariant int

const (
	AlertVariantInfo AlertVariant = iota
	AlertVariantWarning
	AlertVariantError
)

// ColourSet represents a semantic colour slot.
type ColourSet struct {
	Base   lipgloss.Color
	OnBase lipgloss.Color
	Muted  lipgloss.Color
}

// Palette describes semantic colour slots used by components.
type Palette struct {
	Surface ColourSet
	Primary ColourSet
	Neutral ColourSet
	Info    ColourSet
	Warning ColourSet
	Danger  ColourSet
}

// BorderSet groups reusable border definitions.
type BorderSet struct {
	None    lipgloss.Border
	Normal  lipgloss.Border
	Rounded lipgloss.Border
	Thick   lipgloss.Border
}

// Theme represents the styling theme handed to components.
type Theme struct {
	Mode    ThemeMode
	Palette Palette
	Borders BorderSet
	Padding spacingTable
}

func defaultBorders() BorderSet {
	return BorderSet{
		None:    lipgloss.HiddenBorder(),
		Normal:  lipgloss.NormalBorder(),
		Rounded: lipgloss.RoundedBorder(),
		Thick:   lipgloss.ThickBorder(),
	}
}

func defaultPadding() spacingTable {
	return spacingTable{
		SpacingSizeNone:       0,
		SpacingSizeExtraSmall: 1,
		SpacingSizeSmall:      1,
		SpacingSizeMedium:     2,
		SpacingSizeLarge:      3,
	}
}

// DayTheme renders dark text on a light surface.
func DayTheme() Theme {
	return Theme{
		Mode: ThemeDay,
		Palette: Palette{
			Surface: ColourSet{Base: "#ffffff", OnBase: "#0a0a14", Muted: "#6b6b73"},
			Primary: ColourSet{Base: "#0096ff", OnBase: "#ffffff", Muted: "#0066b3"},
			Neutral: ColourSet{Base: "#d9d9dc", OnBase: "#0a0a14", Muted: "#9a9aa1"},
			Info:    ColourSet{Base: "#dbeafe", OnBase: "#1e3a8a", Muted: "#3b82f6"},
			Warning: ColourSet{Base: "#fef3c7", OnBase: "#78350f", Muted: "#d97706"},
			Danger:  ColourSet{Base: "#fee2e2", OnBase: "#7f1d1d", Muted: "#dc2626"},
		},
		Borders: defaultBorders(),
		Padding: defaultPadding(),
	}
}

// NightTheme swaps the surface colours of DayTheme.
func NightTheme() Theme {
	return Theme{
		Mode: ThemeNight,
		Palette: Palette{
			Surface: ColourSet{Base: "#0a0a14", OnBase: "#ffffff", Muted: "#9a9aa1"},
			Primary: ColourSet{Base: "#3fb0ff", OnBase: "#0a0a14", Muted: "#0096ff"},
			Neutral: ColourSet{Base: "#2a2a33", OnBase: "#ffffff", Muted: "#5c5c66"},
			Info:    ColourSet{Base: "#1e3a8a", OnBase: "#dbeafe", Muted: "#60a5fa"},
			Warning: ColourSet{Base: "#78350f", OnBase: "#fef3c7", Muted: "#fbbf24"},
			Danger:  ColourSet{Base: "#7f1d1d", OnBase: "#fee2e2", Muted: "#f87171"},
		},
		Borders: defaultBorders(),
		Padding: defaultPadding(),
	}
}

// ThemeFor returns the theme matching mode, defaulting to DayTheme.
func ThemeFor(mode ThemeMode) Theme {
	if mode == ThemeNight {
		return NightTheme()
	}
	return DayTheme()
}

// ThemeManager coordinates access to the active Theme.
type ThemeManager struct {
	mu    sync.RWMutex
	theme Theme
}

// NewThemeManager allocates a ThemeManager starting in mode.
func NewThemeManager(mode ThemeMode) *ThemeManager {
	return &ThemeManager{theme: ThemeFor(mode)}
}

// SetMode switches the active theme.
func (m *ThemeManager) SetMode(mode ThemeMode) {
	m.mu.Lock()
	m.theme = ThemeFor(mode)
	m.mu.Unlock()
}

// Mode returns the active mode.
func (m *ThemeManager) Mode() ThemeMode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.theme.Mode
}

// Theme returns a copy of the active theme.
func (m *ThemeManager) Theme() Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.theme
}

// StyleApplier represents a modifier that can apply styling to a lipgloss.Style
type StyleApplier interface {
	Apply(base lipgloss.Style, theme Theme) lipgloss.Style
}

// StyleFunc implements StyleApplier for a function type
type StyleFunc func(lipgloss.Style, Theme) lipgloss.Style

func (fn StyleFunc) Apply(base lipgloss.Style, theme Theme) lipgloss.Style {
	return fn(base, theme)
}

// Style applies a series of modifiers using theme.
func Style(theme Theme, base lipgloss.Style, appliers ...StyleApplier) lipgloss.Style {
	for _, applier := range appliers {
		base = applier.Apply(base, theme)
	}
	return base
}

// PaletteSlot provides access to a semantic colour slot.
type PaletteSlot func(Palette) ColourSet

var (
	PaletteSurface PaletteSlot = func(p Palette) ColourSet { return p.Surface }
	PalettePrimary PaletteSlot = func(p Palette) ColourSet { return p.Primary }
	PaletteNeutral PaletteSlot = func(p Palette) ColourSet { return p.Neutral }
	PaletteInfo    PaletteSlot = func(p Palette) ColourSet { return p.Info }
	PaletteWarning PaletteSlot = func(p Palette) ColourSet { return p.Warning }
	PaletteDanger  PaletteSlot = func(p Palette) ColourSet { return p.Danger }
)

// Background applies a semantic background colour and matching foreground.
func Background(slot PaletteSlot) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		cs := slot(theme.Palette)
		return base.Background(cs.Base).Foreground(cs.OnBase)
	}
}

// Foreground applies a semantic foreground colour.
func Foreground(slot PaletteSlot) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		return base.Foreground(slot(theme.Palette).Base)
	}
}

// MutedForeground applies the muted tone of a slot.
func MutedForeground(slot PaletteSlot) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		return base.Foreground(slot(theme.Palette).Muted)
	}
}

// Border applies a border variant coloured with the slot's muted tone.
func Border(variant BorderVariant, slot PaletteSlot) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		return base.Border(borderForVariant(theme, variant)).BorderForeground(slot(theme.Palette).Muted)
	}
}

func borderForVariant(theme Theme, variant BorderVariant) lipgloss.Border {
	switch variant {
	case BorderVariantNormal:
		return theme.Borders.Normal
	case BorderVariantRounded:
		return theme.Borders.Rounded
	case BorderVariantThick:
		return theme.Borders.Thick
	default:
		return theme.Borders.None
	}
}

func PaddingX(size SpacingSize) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		value := spacingLookup(theme.Padding, size)
		return base.PaddingLeft(value).PaddingRight(value)
	}
}

func PaddingY(size SpacingSize) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		value := spacingLookup(theme.Padding, size)
		return base.PaddingTop(value).PaddingBottom(value)
	}
}

// Bold sets bold text.
func Bold() StyleFunc {
	return func(base lipgloss.Style, _ Theme) lipgloss.Style {
		return base.Bold(true)
	}
}

// PaddingValue resolves a spacing token against theme.
func PaddingValue(theme Theme, size SpacingSize) int {
	return spacingLookup(theme.Padding, size)
}

func spacingLookup(table spacingTable, size SpacingSize) int {
	index := int(size)
	if index < 0 || index >= len(table) {
		index = int(SpacingSizeMedium)
	}
	return table[index]
}

// Predefined style bundles

func CardBaseStyle() []StyleApplier {
	return []StyleApplier{
		Border(BorderVariantRounded, PaletteNeutral),
		PaddingX(SpacingSizeSmall),
	}
}

func CardSelectedStyle() []StyleApplier {
	return []StyleApplier{
		Border(BorderVariantThick, PalettePrimary),
		PaddingX(SpacingSizeSmall),
	}
}

func AlertStyle(variant AlertVariant) []StyleApplier {
	slot := PaletteInfo
	switch variant {
	case AlertVariantWarning:
		slot = PaletteWarning
	case AlertVariantError:
		slot = PaletteDanger
	}
	return []StyleApplier{
		Background(slot),
		Border(BorderVariantNormal, slot),
		PaddingX(SpacingSizeSmall),
	}
}

func ButtonStyle(disabled bool) []StyleApplier {
	if disabled {
		return []StyleApplier{
			Background(PaletteNeutral),
			Border(BorderVariantNormal, PaletteNeutral),
			PaddingX(SpacingSizeMedium),
		}
	}
	return []StyleApplier{
		Background(PalettePrimary),
		Border(BorderVariantRounded, PalettePrimary),
		PaddingX(SpacingSizeMedium),
		Bold(),
	}
}
