package state

import (
	"fmt"

	"github.com/atomicstack/rtc-menu/internal/menu"
)

// VisibleItem is one row of the current page.
type VisibleItem struct {
	Index    int
	Item     menu.Item
	Selected bool
}

// Navigator tracks the selected entry of a fixed list and the page-aligned
// window of entries that fits on screen.
type Navigator struct {
	items    []menu.Item
	selected int
	offset   int
	pageSize int
}

// NewNavigator selects the first item of items, showing pageSize entries at a
// time.
func NewNavigator(items []menu.Item, pageSize int) (*Navigator, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("navigator needs at least one item: %w", ErrInvalidState)
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("page size must be positive (got %d): %w", pageSize, ErrInvalidState)
	}
	return &Navigator{items: menu.CloneItems(items), pageSize: pageSize}, nil
}

func (n *Navigator) Len() int      { return len(n.items) }
func (n *Navigator) Selected() int { return n.selected }
func (n *Navigator) Offset() int   { return n.offset }
func (n *Navigator) PageSize() int { return n.pageSize }

// Items returns a copy of the full list.
func (n *Navigator) Items() []menu.Item {
	return menu.CloneItems(n.items)
}

// SelectedItem returns the entry under the cursor.
func (n *Navigator) SelectedItem() (menu.Item, error) {
	if err := n.check(); err != nil {
		return menu.Item{}, err
	}
	return n.items[n.selected], nil
}

// MoveUp selects the previous entry, wrapping from the first to the last.
func (n *Navigator) MoveUp() error {
	if err := n.check(); err != nil {
		return err
	}
	if n.selected > 0 {
		n.selected--
	} else {
		n.selected = len(n.items) - 1
	}
	n.RecomputeOffset()
	return nil
}

// MoveDown selects the next entry, wrapping from the last to the first.
func (n *Navigator) MoveDown() error {
	if err := n.check(); err != nil {
		return err
	}
	if n.selected < len(n.items)-1 {
		n.selected++
	} else {
		n.selected = 0
	}
	n.RecomputeOffset()
	return nil
}

// Select moves the cursor to index.
func (n *Navigator) Select(index int) error {
	if err := n.check(); err != nil {
		return err
	}
	if index < 0 || index >= len(n.items) {
		return fmt.Errorf("index %d outside 0..%d: %w", index, len(n.items)-1, ErrInvalidState)
	}
	n.selected = index
	n.RecomputeOffset()
	return nil
}

// SetPageSize changes how many entries fit on one page.
func (n *Navigator) SetPageSize(size int) error {
	if size < 1 {
		return fmt.Errorf("page size must be positive (got %d): %w", size, ErrInvalidState)
	}
	n.pageSize = size
	n.RecomputeOffset()
	return nil
}

// RecomputeOffset aligns the viewport to the page holding the selection.
// Offsets are always whole multiples of the page size.
func (n *Navigator) RecomputeOffset() {
	if n.pageSize < 1 || n.selected < n.pageSize {
		n.offset = 0
		return
	}
	n.offset = n.selected / n.pageSize * n.pageSize
}

// VisibleSlice returns the entries of the current page in order.
func (n *Navigator) VisibleSlice() []VisibleItem {
	if len(n.items) == 0 || n.pageSize < 1 {
		return nil
	}
	end := n.offset + n.pageSize
	if end > len(n.items) {
		end = len(n.items)
	}
	out := make([]VisibleItem, 0, end-n.offset)
	for i := n.offset; i < end; i++ {
		out = append(out, VisibleItem{Index: i, Item: n.items[i], Selected: i == n.selected})
	}
	return out
}

// Find returns the index best matching query, or -1.
func (n *Navigator) Find(query string) int {
	return BestMatchIndex(n.items, query)
}

func (n *Navigator) check() error {
	if n == nil || len(n.items) == 0 {
		return ErrInvalidState
	}
	return nil
}
