// Package textutil provides width-aware truncation and word wrapping for the
// menu and edit views.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks a truncated label.
const Ellipsis = "..."

// Width returns the number of terminal columns s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most width columns. When s does not fit, the tail
// is replaced with Ellipsis so the result is exactly width columns wide for
// single-width text.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if Width(s) <= width {
		return s
	}
	marker := Width(Ellipsis)
	if width <= marker {
		return Ellipsis[:width]
	}
	avail := width - marker
	var b strings.Builder
	used := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if used+rw > avail {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	b.WriteString(Ellipsis)
	return b.String()
}

// Wrap breaks text into lines no wider than width columns. Lines are broken
// at the last space that fits; a word longer than width is split hard.
// Existing newlines are kept and reset the column count.
func Wrap(text string, width int) string {
	if width <= 0 || text == "" {
		return text
	}
	src := strings.Split(text, "\n")
	out := make([]string, 0, len(src))
	for _, line := range src {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

// Lines is Wrap split into individual lines.
func Lines(text string, width int) []string {
	return strings.Split(Wrap(text, width), "\n")
}

func wrapLine(line string, width int) []string {
	var (
		lines []string
		cur   []rune
		used  int
	)
	flush := func(r []rune) {
		lines = append(lines, string(r))
	}
	for _, r := range line {
		rw := runewidth.RuneWidth(r)
		if used+rw > width {
			if r == ' ' {
				flush(cur)
				cur, used = nil, 0
				continue
			}
			for len(cur) > 0 && used+rw > width {
				if idx := lastSpace(cur); idx >= 0 {
					flush(cur[:idx])
					cur = append([]rune(nil), cur[idx+1:]...)
				} else {
					flush(cur)
					cur = nil
				}
				used = runewidth.StringWidth(string(cur))
			}
		}
		cur = append(cur, r)
		used += rw
	}
	flush(cur)
	return lines
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}
