package state

import "math"

// MinThumbPercent keeps the scroll thumb visible on very long lists.
const MinThumbPercent = 5.0

// Scrollbar describes the scroll indicator in percent of the track, the
// convention the renderer positions by.
type Scrollbar struct {
	Visible         bool
	PagesTotal      int
	CurrentPage     int
	HeightPercent   float64
	PositionPercent float64
}

// Scrollbar derives indicator geometry from the current page.
func (n *Navigator) Scrollbar() Scrollbar {
	total := len(n.items)
	if total == 0 || n.pageSize < 1 {
		return Scrollbar{}
	}
	pages := (total + n.pageSize - 1) / n.pageSize
	current := n.offset / n.pageSize
	height := clampPercent(100*float64(n.pageSize)/float64(total), MinThumbPercent)
	denom := pages - 1
	if denom < 1 {
		denom = 1
	}
	position := clampPercent(100*float64(current)/float64(denom), 0)
	return Scrollbar{
		Visible:         pages > 1,
		PagesTotal:      pages,
		CurrentPage:     current,
		HeightPercent:   height,
		PositionPercent: position,
	}
}

// Thumb resolves the indicator to whole rows on a track of the given height.
func (s Scrollbar) Thumb(track int) (offset, rows int) {
	if track <= 0 {
		return 0, 0
	}
	rows = int(math.Round(float64(track) * s.HeightPercent / 100))
	if rows < 1 {
		rows = 1
	}
	if rows > track {
		rows = track
	}
	offset = int(math.Round(float64(track-rows) * s.PositionPercent / 100))
	return offset, rows
}

func clampPercent(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	if v > 100 {
		return 100
	}
	return v
}
