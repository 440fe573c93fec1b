package theme

import (
	"sync"

	"github.com/atomicstack/rtc-menu/internal/ui/render"
	"github.com/charmbracelet/lipgloss"
)

// Theme maps render colour roles onto Lip Gloss styles. It satisfies
// render.Palette.
type Theme struct {
	fg   map[render.Color]lipgloss.Color
	bg   map[render.Color]lipgloss.Color
	bold map[render.Color]bool

	mu    sync.Mutex
	cache map[[2]render.Color]lipgloss.Style
}

var defaultForeground = map[render.Color]lipgloss.Color{
	render.ColorHeader:       "245",
	render.ColorItemText:     "249",
	render.ColorSelectedText: "255",
	render.ColorScrollTrack:  "238",
	render.ColorScrollThumb:  "33",
	render.ColorEditText:     "255",
	render.ColorCaret:        "0",
	render.ColorMuted:        "241",
	render.ColorError:        "196",
	render.ColorInfo:         "34",
}

var defaultBackground = map[render.Color]lipgloss.Color{
	render.ColorBackground:     "235",
	render.ColorItemBackground: "236",
	render.ColorSelection:      "238",
	render.ColorScrollTrack:    "238",
	render.ColorScrollThumb:    "33",
	render.ColorCaret:          "33",
}

var defaultBold = map[render.Color]bool{
	render.ColorHeader:       true,
	render.ColorSelectedText: true,
	render.ColorError:        true,
}

// Default returns the standard palette.
func Default() *Theme {
	return New(defaultForeground, defaultBackground, defaultBold)
}

// New builds a palette from explicit role tables. Roles missing from fg or bg
// fall back to the terminal default.
func New(fg, bg map[render.Color]lipgloss.Color, bold map[render.Color]bool) *Theme {
	return &Theme{
		fg:    fg,
		bg:    bg,
		bold:  bold,
		cache: make(map[[2]render.Color]lipgloss.Style),
	}
}

// Style returns the style for text in role fg drawn over role bg.
func (t *Theme) Style(fg, bg render.Color) lipgloss.Style {
	key := [2]render.Color{fg, bg}
	t.mu.Lock()
	defer t.mu.Unlock()
	if style, ok := t.cache[key]; ok {
		return style
	}
	style := lipgloss.NewStyle()
	if c, ok := t.fg[fg]; ok {
		style = style.Foreground(c)
	}
	if c, ok := t.bg[bg]; ok {
		style = style.Background(c)
	}
	if t.bold[fg] {
		style = style.Bold(true)
	}
	t.cache[key] = style
	return style
}

// Foreground reports the colour a role uses as text.
func (t *Theme) Foreground(role render.Color) (lipgloss.Color, bool) {
	c, ok := t.fg[role]
	return c, ok
}

// Background reports the colour a role uses as fill.
func (t *Theme) Background(role render.Color) (lipgloss.Color, bool) {
	c, ok := t.bg[role]
	return c, ok
}

var _ render.Palette = (*Theme)(nil)
