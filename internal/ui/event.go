package ui

import "fmt"

// EventKind is a logical input, independent of the key that produced it.
type EventKind int

const (
	EventUp EventKind = iota
	EventDown
	EventSelect
	EventExit
	EventChar
	EventCommit
	EventCancel
	EventBackspace
	EventDeleteWord
	EventClear
)

var eventNames = [...]string{
	EventUp:         "up",
	EventDown:       "down",
	EventSelect:     "select",
	EventExit:       "exit",
	EventChar:       "char",
	EventCommit:     "commit",
	EventCancel:     "cancel",
	EventBackspace:  "backspace",
	EventDeleteWord: "delete-word",
	EventClear:      "clear",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is one logical input. Char is only meaningful for EventChar.
type Event struct {
	Kind EventKind
	Char rune
}

// CharEvent is shorthand for a character input.
func CharEvent(r rune) Event {
	return Event{Kind: EventChar, Char: r}
}

func (e Event) String() string {
	if e.Kind == EventChar {
		return fmt.Sprintf("char(%q)", e.Char)
	}
	return e.Kind.String()
}
