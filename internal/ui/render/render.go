// Package render defines the drawing capability the menu controller issues
// its frame through, together with a cell canvas that implements it on top of
// Lip Gloss.
package render

// Point is a cell position; X is the column and Y the row, both from zero.
type Point struct {
	X int
	Y int
}

// Size is a width and height in cells.
type Size struct {
	W int
	H int
}

// Align positions text horizontally relative to the anchor column.
type Align int

const (
	// AlignLeft starts the text at the anchor.
	AlignLeft Align = iota
	// AlignCenter centres the text on the anchor.
	AlignCenter
	// AlignRight ends the text on the anchor.
	AlignRight
)

// Color is a palette role, not a concrete colour. The palette decides how a
// role looks.
type Color int

const (
	ColorNone Color = iota
	ColorBackground
	ColorHeader
	ColorItemText
	ColorItemBackground
	ColorSelectedText
	ColorSelection
	ColorScrollTrack
	ColorScrollThumb
	ColorEditText
	ColorCaret
	ColorMuted
	ColorError
	ColorInfo
)

var colorNames = map[Color]string{
	ColorNone:           "none",
	ColorBackground:     "background",
	ColorHeader:         "header",
	ColorItemText:       "item-text",
	ColorItemBackground: "item-background",
	ColorSelectedText:   "selected-text",
	ColorSelection:      "selection",
	ColorScrollTrack:    "scroll-track",
	ColorScrollThumb:    "scroll-thumb",
	ColorEditText:       "edit-text",
	ColorCaret:          "caret",
	ColorMuted:          "muted",
	ColorError:          "error",
	ColorInfo:           "info",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// Renderer receives one frame worth of draw calls followed by Present.
// Implementations must tolerate coordinates outside the drawable area.
type Renderer interface {
	DrawText(text string, at Point, align Align, color Color)
	DrawRect(at Point, size Size, color Color)
	DrawSelectionHighlight(at Point, size Size)
	Present()
}
