package ui

import (
	"github.com/atomicstack/rtc-menu/internal/textutil"
	"github.com/atomicstack/rtc-menu/internal/ui/render"
)

const (
	listTop     = 1 // first item row, below the title
	itemX       = 1
	editTop     = 2
	editX       = 2
	bottomRows  = 2 // status line and footer
	chromeRows  = listTop + bottomRows
	errorPrefix = "Error: "
)

// PageSizeFor returns how many items fit on a screen height rows tall, capped
// at limit.
func PageSizeFor(height, limit int) int {
	size := height - chromeRows
	if limit > 0 && size > limit {
		size = limit
	}
	if size < 1 {
		size = 1
	}
	return size
}

// Render draws the current state and presents the frame. It only reads
// controller state.
func (c *Controller) Render(size render.Size, caretVisible bool) {
	r := c.renderer
	if r == nil {
		return
	}
	r.DrawRect(render.Point{}, size, render.ColorBackground)
	switch c.mode {
	case ModeEdit:
		c.drawEdit(r, size, caretVisible)
	default:
		c.drawList(r, size)
	}
	c.drawStatus(r, size)
	r.Present()
}

func (c *Controller) drawList(r render.Renderer, size render.Size) {
	r.DrawText(textutil.Truncate(c.opts.Title, size.W-2), render.Point{X: itemX, Y: 0}, render.AlignLeft, render.ColorHeader)

	itemWidth := size.W - 3
	offset := c.nav.Offset()
	for _, v := range c.nav.VisibleSlice() {
		row := listTop + v.Index - offset
		at := render.Point{X: itemX, Y: row}
		color := render.ColorItemText
		if v.Selected {
			r.DrawSelectionHighlight(at, render.Size{W: itemWidth, H: 1})
			color = render.ColorSelectedText
		}
		r.DrawText(textutil.Truncate(v.Item.Label, itemWidth), at, render.AlignLeft, color)
	}

	sb := c.nav.Scrollbar()
	if !sb.Visible {
		return
	}
	track := c.nav.PageSize()
	if avail := size.H - chromeRows; track > avail {
		track = avail
	}
	if track < 1 {
		return
	}
	x := size.W - 1
	r.DrawRect(render.Point{X: x, Y: listTop}, render.Size{W: 1, H: track}, render.ColorScrollTrack)
	thumbOffset, thumbRows := sb.Thumb(track)
	r.DrawRect(render.Point{X: x, Y: listTop + thumbOffset}, render.Size{W: 1, H: thumbRows}, render.ColorScrollThumb)
}

func (c *Controller) drawEdit(r render.Renderer, size render.Size, caretVisible bool) {
	title := c.opts.Title
	if item, err := c.nav.SelectedItem(); err == nil {
		title = item.Label
	}
	r.DrawText(textutil.Truncate(title, size.W-2), render.Point{X: itemX, Y: 0}, render.AlignLeft, render.ColorHeader)

	width := size.W - 4
	if width < 1 {
		width = 1
	}
	lastRow := size.H - bottomRows - 1
	lines := textutil.Lines(c.session.Value(), width)
	for i, line := range lines {
		row := editTop + i
		if row > lastRow {
			break
		}
		r.DrawText(line, render.Point{X: editX, Y: row}, render.AlignLeft, render.ColorEditText)
	}
	if !caretVisible {
		return
	}
	caretRow := editTop + len(lines) - 1
	caretX := editX + textutil.Width(lines[len(lines)-1])
	if caretX >= editX+width {
		caretX = editX
		caretRow++
	}
	if caretRow <= lastRow {
		r.DrawRect(render.Point{X: caretX, Y: caretRow}, render.Size{W: 1, H: 1}, render.ColorCaret)
	}
}

func (c *Controller) drawStatus(r render.Renderer, size render.Size) {
	statusRow := size.H - bottomRows
	if statusRow > 0 {
		text, isErr := c.Status()
		switch {
		case isErr:
			r.DrawText(textutil.Truncate(errorPrefix+text, size.W-2), render.Point{X: itemX, Y: statusRow}, render.AlignLeft, render.ColorError)
		case text != "":
			r.DrawText(textutil.Truncate(text, size.W-2), render.Point{X: itemX, Y: statusRow}, render.AlignLeft, render.ColorInfo)
		case c.query != "" && c.mode == ModeList:
			r.DrawText(textutil.Truncate("jump: "+c.query, size.W-2), render.Point{X: itemX, Y: statusRow}, render.AlignLeft, render.ColorMuted)
		}
	}
	if c.opts.Footer == nil || size.H < 2 {
		return
	}
	footer := c.opts.Footer(c.mode)
	r.DrawText(textutil.Truncate(footer, size.W-2), render.Point{X: itemX, Y: size.H - 1}, render.AlignLeft, render.ColorMuted)
}
