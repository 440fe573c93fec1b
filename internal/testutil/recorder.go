package testutil

import (
	"fmt"

	"github.com/atomicstack/rtc-menu/internal/ui/render"
)

// DrawCall is one recorded Renderer invocation.
type DrawCall struct {
	Op    string
	Text  string
	At    render.Point
	Size  render.Size
	Align render.Align
	Color render.Color
}

func (d DrawCall) String() string {
	switch d.Op {
	case "text":
		return fmt.Sprintf("text %q @%d,%d %s", d.Text, d.At.X, d.At.Y, d.Color)
	case "present":
		return "present"
	default:
		return fmt.Sprintf("%s @%d,%d %dx%d %s", d.Op, d.At.X, d.At.Y, d.Size.W, d.Size.H, d.Color)
	}
}

// Recorder is a render.Renderer that keeps every call for inspection.
type Recorder struct {
	Calls    []DrawCall
	Presents int
}

func (r *Recorder) DrawText(text string, at render.Point, align render.Align, color render.Color) {
	r.Calls = append(r.Calls, DrawCall{Op: "text", Text: text, At: at, Align: align, Color: color})
}

func (r *Recorder) DrawRect(at render.Point, size render.Size, color render.Color) {
	r.Calls = append(r.Calls, DrawCall{Op: "rect", At: at, Size: size, Color: color})
}

func (r *Recorder) DrawSelectionHighlight(at render.Point, size render.Size) {
	r.Calls = append(r.Calls, DrawCall{Op: "highlight", At: at, Size: size, Color: render.ColorSelection})
}

func (r *Recorder) Present() {
	r.Presents++
	r.Calls = append(r.Calls, DrawCall{Op: "present"})
}

// Reset forgets recorded calls.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Presents = 0
}

// Texts returns the recorded text calls in order.
func (r *Recorder) Texts() []DrawCall {
	var out []DrawCall
	for _, c := range r.Calls {
		if c.Op == "text" {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the first call matching op and color.
func (r *Recorder) Find(op string, color render.Color) (DrawCall, bool) {
	for _, c := range r.Calls {
		if c.Op == op && c.Color == color {
			return c, true
		}
	}
	return DrawCall{}, false
}

var _ render.Renderer = (*Recorder)(nil)
