package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// Palette turns a foreground/background role pair into a style.
type Palette interface {
	Style(fg, bg Color) lipgloss.Style
}

type cell struct {
	r  rune
	w  int // 0 marks the trailing half of a wide rune
	fg Color
	bg Color
}

var blank = cell{r: ' ', w: 1}

// Canvas is a Renderer backed by a grid of cells. Draw calls mutate the grid;
// Present serialises it into the frame string returned by Frame.
type Canvas struct {
	size    Size
	cells   [][]cell
	palette Palette
	frame   string
}

// NewCanvas returns a blank canvas. A nil palette renders unstyled text.
func NewCanvas(size Size, palette Palette) *Canvas {
	c := &Canvas{palette: palette}
	c.Reset(size)
	return c
}

// Reset clears the grid and resizes it.
func (c *Canvas) Reset(size Size) {
	if size.W < 0 {
		size.W = 0
	}
	if size.H < 0 {
		size.H = 0
	}
	c.size = size
	c.cells = make([][]cell, size.H)
	for y := range c.cells {
		row := make([]cell, size.W)
		for x := range row {
			row[x] = blank
		}
		c.cells[y] = row
	}
}

func (c *Canvas) Size() Size { return c.size }

// Frame returns the output of the last Present.
func (c *Canvas) Frame() string { return c.frame }

// DrawText writes text on row at.Y in the given foreground role, keeping the
// background already under each cell. Text running off either edge is
// clipped; wide runes that do not fit entirely are dropped.
func (c *Canvas) DrawText(text string, at Point, align Align, color Color) {
	if at.Y < 0 || at.Y >= c.size.H || text == "" {
		return
	}
	width := runewidth.StringWidth(text)
	x := at.X
	switch align {
	case AlignCenter:
		x -= width / 2
	case AlignRight:
		x -= width - 1
	}
	row := c.cells[at.Y]
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= 0 && x+w <= c.size.W {
			c.clearWide(row, x)
			if w == 2 {
				c.clearWide(row, x+1)
			}
			row[x] = cell{r: r, w: w, fg: color, bg: row[x].bg}
			if w == 2 {
				row[x+1] = cell{w: 0, fg: color, bg: row[x+1].bg}
			}
		}
		x += w
		if x >= c.size.W {
			return
		}
	}
}

// DrawRect fills a rectangle with blank cells in the background role.
func (c *Canvas) DrawRect(at Point, size Size, color Color) {
	c.fill(at, size, func(cl *cell) {
		*cl = cell{r: ' ', w: 1, fg: cl.fg, bg: color}
	})
}

// DrawSelectionHighlight paints the selection background under a rectangle
// without disturbing the text already drawn there.
func (c *Canvas) DrawSelectionHighlight(at Point, size Size) {
	c.fill(at, size, func(cl *cell) {
		cl.bg = ColorSelection
	})
}

// Present serialises the grid. Adjacent cells sharing a role pair are styled
// as one run.
func (c *Canvas) Present() {
	lines := make([]string, len(c.cells))
	for y, row := range c.cells {
		lines[y] = c.renderRow(row)
	}
	c.frame = strings.Join(lines, "\n")
}

func (c *Canvas) renderRow(row []cell) string {
	var out, run strings.Builder
	var fg, bg Color
	flush := func() {
		if run.Len() == 0 {
			return
		}
		text := run.String()
		run.Reset()
		if c.palette == nil || (fg == ColorNone && bg == ColorNone) {
			out.WriteString(text)
			return
		}
		out.WriteString(c.palette.Style(fg, bg).Render(text))
	}
	for i, cl := range row {
		if cl.w == 0 {
			continue
		}
		if i > 0 && (cl.fg != fg || cl.bg != bg) {
			flush()
		}
		fg, bg = cl.fg, cl.bg
		run.WriteRune(cl.r)
	}
	flush()
	line := out.String()
	if c.size.W > 0 && lipgloss.Width(line) > c.size.W {
		line = truncate.String(line, uint(c.size.W))
	}
	return line
}

func (c *Canvas) fill(at Point, size Size, apply func(*cell)) {
	for y := at.Y; y < at.Y+size.H; y++ {
		if y < 0 || y >= c.size.H {
			continue
		}
		row := c.cells[y]
		for x := at.X; x < at.X+size.W; x++ {
			if x < 0 || x >= c.size.W {
				continue
			}
			apply(&row[x])
		}
	}
}

// clearWide blanks both halves of a wide rune overlapping column x so a
// partial overwrite never leaves half a glyph behind.
func (c *Canvas) clearWide(row []cell, x int) {
	switch {
	case row[x].w == 0 && x > 0:
		row[x-1] = cell{r: ' ', w: 1, fg: row[x-1].fg, bg: row[x-1].bg}
		row[x] = cell{r: ' ', w: 1, fg: row[x].fg, bg: row[x].bg}
	case row[x].w == 2 && x+1 < len(row):
		row[x+1] = cell{r: ' ', w: 1, fg: row[x+1].fg, bg: row[x+1].bg}
	}
}

var _ Renderer = (*Canvas)(nil)
