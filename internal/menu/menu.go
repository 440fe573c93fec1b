package menu

import (
	"fmt"
	"strings"
)

// Item represents a selectable menu entry. Its identity is its position in
// the list; ID is a stable slug used for logging.
type Item struct {
	ID       string
	Label    string
	Editable bool
}

const (
	// RTCItemID identifies the editable clock entry in the default list.
	RTCItemID = "set-rtc"
	// DefaultTitle heads the menu when none is configured.
	DefaultTitle = "Menu"
)

var idCleaner = strings.NewReplacer(" ", "-", "_", "-", "/", "-")

// DefaultItems returns the built-in list.
func DefaultItems() []Item {
	return []Item{
		{ID: RTCItemID, Label: "Set RTC", Editable: true},
		{ID: "option-2", Label: "Option 2"},
		{ID: "option-3", Label: "Option 3"},
	}
}

// FromLabels builds a list from plain labels, marking the entry at editable
// as the one that opens the editor. A negative index leaves every entry
// read-only.
func FromLabels(labels []string, editable int) ([]Item, error) {
	if editable >= len(labels) {
		return nil, fmt.Errorf("editable index %d out of range for %d items", editable, len(labels))
	}
	items := make([]Item, len(labels))
	for i, label := range labels {
		items[i] = Item{
			ID:       slug(label, i),
			Label:    label,
			Editable: i == editable,
		}
	}
	return items, nil
}

// Labels returns the display labels in order.
func Labels(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label
	}
	return out
}

// CloneItems returns a copy that does not share the backing array.
func CloneItems(items []Item) []Item {
	if len(items) == 0 {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

func slug(label string, index int) string {
	s := idCleaner.Replace(strings.ToLower(strings.TrimSpace(label)))
	if s == "" {
		return fmt.Sprintf("item-%d", index)
	}
	return s
}
