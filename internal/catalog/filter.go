package catalog

import (
	"sort"
	"strings"
)

type SortKey string

const (
	SortByName         SortKey = "name"
	SortByPrice        SortKey = "price"
	SortByAvailability SortKey = "availability"
)

// Query holds the local refinement applied on top of a fetched listing.
// Zero value means "everything, backend order".
type Query struct {
	Category Category
	Search   string
	Sort     SortKey
}

// Filter returns the subsequence matching the query. Category matching is
// exact, with CategoryAll (and empty) passing everything; search is a
// case-insensitive substring match against name or description. Pure; safe
// to re-run on every keystroke.
func Filter(items []Equipment, q Query) []Equipment {
	out := make([]Equipment, 0, len(items))
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	for _, item := range items {
		if q.Category != "" && q.Category != CategoryAll && item.Category != q.Category {
			continue
		}
		if needle != "" && !matches(item, needle) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matches(item Equipment, needle string) bool {
	return strings.Contains(strings.ToLower(item.Name), needle) ||
		strings.Contains(strings.ToLower(item.Description), needle)
}

// Sort orders a copy of items by the given key. All orderings are stable so
// ties keep the backend's order. An unknown key returns the copy untouched.
func Sort(items []Equipment, key SortKey) []Equipment {
	out := make([]Equipment, len(items))
	copy(out, items)

	switch key {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case SortByPrice:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DailyRate < out[j].DailyRate
		})
	case SortByAvailability:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Available && !out[j].Available
		})
	}
	return out
}

// Refine applies filter then sort in one pass over the listing.
func Refine(items []Equipment, q Query) []Equipment {
	return Sort(Filter(items, q), q.Sort)
}
