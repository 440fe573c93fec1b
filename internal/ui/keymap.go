package ui

import (
	"unicode"

	"github.com/atomicstack/rtc-menu/internal/logging/events"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// ListKeyMap holds the bindings active while browsing the list.
type ListKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Exit   key.Binding
}

// EditKeyMap holds the bindings active in the inline editor. Printable keys
// that match none of them are typed into the buffer.
type EditKeyMap struct {
	Commit     key.Binding
	Cancel     key.Binding
	Exit       key.Binding
	Backspace  key.Binding
	DeleteWord key.Binding
	Clear      key.Binding
}

// KeyMap translates Bubble Tea key messages into logical events per mode.
type KeyMap struct {
	List ListKeyMap
	Edit EditKeyMap
}

// DefaultKeyMap returns the standard bindings. Space is reserved in both
// modes: it leaves the list, and it abandons an edit.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		List: ListKeyMap{
			Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
			Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
			Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
			Exit:   key.NewBinding(key.WithKeys("esc", " ", "backspace", "ctrl+c"), key.WithHelp("esc", "quit")),
		},
		Edit: EditKeyMap{
			Commit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
			Cancel:     key.NewBinding(key.WithKeys("esc", " "), key.WithHelp("esc", "cancel")),
			Exit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
			Backspace:  key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("⌫", "delete")),
			DeleteWord: key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "delete word")),
			Clear:      key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear")),
		},
	}
}

// Translate maps one key message to zero or more events. Pasted text and
// multi-rune messages produce one Char event per rune.
func (k KeyMap) Translate(mode Mode, msg tea.KeyMsg) []Event {
	var out []Event
	switch mode {
	case ModeList:
		out = k.translateList(msg)
	case ModeEdit:
		out = k.translateEdit(msg)
	}
	if len(out) == 0 {
		events.UI.Unmapped(msg.String(), mode.String())
	}
	return out
}

func (k KeyMap) translateList(msg tea.KeyMsg) []Event {
	switch {
	case key.Matches(msg, k.List.Up):
		return []Event{{Kind: EventUp}}
	case key.Matches(msg, k.List.Down):
		return []Event{{Kind: EventDown}}
	case key.Matches(msg, k.List.Select):
		return []Event{{Kind: EventSelect}}
	case key.Matches(msg, k.List.Exit):
		return []Event{{Kind: EventExit}}
	}
	return runeEvents(msg)
}

func (k KeyMap) translateEdit(msg tea.KeyMsg) []Event {
	// Pasted text is content even when it contains a space.
	if msg.Paste {
		return runeEvents(msg)
	}
	switch {
	case key.Matches(msg, k.Edit.Commit):
		return []Event{{Kind: EventCommit}}
	case key.Matches(msg, k.Edit.Cancel):
		return []Event{{Kind: EventCancel}}
	case key.Matches(msg, k.Edit.Exit):
		return []Event{{Kind: EventExit}}
	case key.Matches(msg, k.Edit.Backspace):
		return []Event{{Kind: EventBackspace}}
	case key.Matches(msg, k.Edit.DeleteWord):
		return []Event{{Kind: EventDeleteWord}}
	case key.Matches(msg, k.Edit.Clear):
		return []Event{{Kind: EventClear}}
	}
	return runeEvents(msg)
}

func runeEvents(msg tea.KeyMsg) []Event {
	if msg.Alt {
		return nil
	}
	var runes []rune
	switch msg.Type {
	case tea.KeyRunes:
		runes = msg.Runes
	case tea.KeySpace:
		runes = []rune{' '}
	default:
		return nil
	}
	out := make([]Event, 0, len(runes))
	for _, r := range runes {
		if !unicode.IsPrint(r) {
			continue
		}
		out = append(out, CharEvent(r))
	}
	return out
}

// ShortHelp lists the bindings shown in the footer for mode.
func (k KeyMap) ShortHelp(mode Mode) []key.Binding {
	if mode == ModeEdit {
		return []key.Binding{k.Edit.Commit, k.Edit.Cancel, k.Edit.Backspace, k.Edit.Clear}
	}
	return []key.Binding{k.List.Up, k.List.Down, k.List.Select, k.List.Exit}
}

// FooterFunc renders the short help for each mode as plain text.
func FooterFunc(keys KeyMap) func(Mode) string {
	h := help.New()
	h.ShortSeparator = "  "
	return func(mode Mode) string {
		return ansi.Strip(h.ShortHelpView(keys.ShortHelp(mode)))
	}
}
