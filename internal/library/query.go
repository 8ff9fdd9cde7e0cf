package library

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Apply returns the entries matching q in the order q asks for. entries is
// not modified. Title and author order use a case-insensitive collation.
func Apply(entries []Entry, q ListQuery) []Entry {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if needle != "" && !matchesSearch(e, needle) {
			continue
		}
		if q.Status != "" && e.Status() != q.Status {
			continue
		}
		if !matchesFilter(e, q.Filter) {
			continue
		}
		out = append(out, e)
	}

	sortEntries(out, q.Sort)
	return out
}

func matchesSearch(e Entry, needle string) bool {
	if strings.Contains(strings.ToLower(e.Title), needle) {
		return true
	}
	for _, a := range e.Authors {
		if strings.Contains(strings.ToLower(a), needle) {
			return true
		}
	}
	return false
}

func matchesFilter(e Entry, filter string) bool {
	switch filter {
	case FilterRated:
		return e.UserRating > 0
	case FilterUnrated:
		return e.UserRating == 0
	case FilterHighRated:
		return e.Recommendation.StarRating >= 4
	default:
		return true
	}
}

func firstAuthor(e Entry) string {
	if len(e.Authors) == 0 {
		return ""
	}
	return e.Authors[0]
}

func sortEntries(entries []Entry, by string) {
	switch by {
	case SortTitle, SortAuthor:
		key := func(e Entry) string { return e.Title }
		if by == SortAuthor {
			key = firstAuthor
		}
		col := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(entries, func(i, j int) bool {
			return col.CompareString(key(entries[i]), key(entries[j])) < 0
		})
	case SortRating:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Recommendation.Score > entries[j].Recommendation.Score
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].ScannedAt.After(entries[j].ScannedAt)
		})
	}
}
