package state

import "unicode"

// EditSession is the buffer behind the inline editor. It is started with the
// current value, edited at the end only, and then either committed or
// cancelled.
type EditSession struct {
	active bool
	buffer []rune
}

func NewEditSession() *EditSession {
	return &EditSession{}
}

// Start activates the session with seed as the initial buffer.
func (s *EditSession) Start(seed string) {
	s.active = true
	s.buffer = []rune(seed)
}

func (s *EditSession) Active() bool {
	return s.active
}

// Value returns the current buffer.
func (s *EditSession) Value() string {
	return string(s.buffer)
}

// AppendChar adds one printable rune. Control runes are refused so reserved
// keys can never leak into the value.
func (s *EditSession) AppendChar(r rune) bool {
	if !s.active || !unicode.IsPrint(r) {
		return false
	}
	s.buffer = append(s.buffer, r)
	return true
}

// Backspace drops the last rune. It is a no-op on an empty buffer.
func (s *EditSession) Backspace() bool {
	if !s.active || len(s.buffer) == 0 {
		return false
	}
	s.buffer = s.buffer[:len(s.buffer)-1]
	return true
}

// DeleteWordBackward removes trailing spaces and the word before them.
func (s *EditSession) DeleteWordBackward() bool {
	if !s.active || len(s.buffer) == 0 {
		return false
	}
	i := len(s.buffer)
	for i > 0 && unicode.IsSpace(s.buffer[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(s.buffer[i-1]) {
		i--
	}
	s.buffer = s.buffer[:i]
	return true
}

// Clear empties the buffer.
func (s *EditSession) Clear() bool {
	if !s.active || len(s.buffer) == 0 {
		return false
	}
	s.buffer = s.buffer[:0]
	return true
}

// Commit ends the session and hands back the buffer for persisting.
func (s *EditSession) Commit() string {
	value := string(s.buffer)
	s.active = false
	s.buffer = nil
	return value
}

// Cancel ends the session and discards the buffer.
func (s *EditSession) Cancel() {
	s.active = false
	s.buffer = nil
}
