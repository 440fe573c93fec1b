package state

import (
	"strings"

	"github.com/atomicstack/rtc-menu/internal/menu"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// BestMatchIndex ranks items against query: exact label, then label prefix,
// then substring, then the closest fuzzy match. It returns -1 when the query
// is blank or nothing matches.
func BestMatchIndex(items []menu.Item, query string) int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || len(items) == 0 {
		return -1
	}
	lower := strings.ToLower(trimmed)
	for i, item := range items {
		if strings.EqualFold(item.Label, trimmed) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Label), lower) {
			return i
		}
	}
	for i, item := range items {
		if strings.Contains(strings.ToLower(item.Label), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, menu.Labels(items))
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(items) {
		return -1
	}
	return best.OriginalIndex
}
