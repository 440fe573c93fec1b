package testutil

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

var namedKeys = map[string]tea.KeyType{
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"backspace": tea.KeyBackspace,
	"space":     tea.KeySpace,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+h":    tea.KeyCtrlH,
	"ctrl+u":    tea.KeyCtrlU,
	"ctrl+w":    tea.KeyCtrlW,
}

// Key builds the message Bubble Tea would deliver for a named key. Unknown
// names are treated as typed text.
func Key(name string) tea.KeyMsg {
	if kt, ok := namedKeys[name]; ok {
		if kt == tea.KeySpace {
			return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		}
		return tea.KeyMsg{Type: kt}
	}
	return Runes(name)
}

// Runes builds a typed-text message.
func Runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

// Paste builds a bracketed-paste message.
func Paste(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text), Paste: true}
}

// Keys builds one message per name.
func Keys(names ...string) []tea.Msg {
	out := make([]tea.Msg, len(names))
	for i, name := range names {
		out[i] = Key(name)
	}
	return out
}

// FrameLines strips styling from a rendered frame and splits it into rows.
func FrameLines(frame string) []string {
	return strings.Split(ansi.Strip(frame), "\n")
}
