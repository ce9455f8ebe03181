package domain

import (
	"sort"
	"strings"
)

// SortKey selects the ordering applied to query results.
type SortKey string

const (
	// SortByName orders by display name, case-insensitive ascending.
	SortByName SortKey = "name"
	// SortByVotes orders by vote count, descending (absent counts as 0).
	SortByVotes SortKey = "votes"
	// SortBySource orders by source label ascending, unlabeled entries last.
	SortBySource SortKey = "source"
)

// ParseSortKey maps user input to a SortKey, defaulting to SortByName.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortByVotes:
		return SortByVotes
	case SortBySource:
		return SortBySource
	default:
		return SortByName
	}
}

// Filter describes which entries pass into the result set.
// A zero Filter passes everything.
type Filter struct {
	// Query is matched case-insensitively as a substring of the
	// entry's name and address. Empty matches all.
	Query string

	// Tags must ALL be present on an entry for it to pass
	// (logical AND, not OR). Empty matches all.
	Tags []Tag
}

// Search returns the entries passing f, ordered by key. It is pure:
// the input slice is never mutated and entries are not copied.
// Empty input or an all-filtered result yields an empty slice.
func Search(entries []*Entry, f Filter, key SortKey) []*Entry {
	needle := strings.ToLower(strings.TrimSpace(f.Query))

	result := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		if !matchesText(e, needle) {
			continue
		}
		if !matchesTags(e, f.Tags) {
			continue
		}
		result = append(result, e)
	}

	sortEntries(result, key)
	return result
}

func matchesText(e *Entry, needle string) bool {
	if needle == "" {
		return true
	}
	haystack := strings.ToLower(e.Name + e.Address)
	return strings.Contains(haystack, needle)
}

func matchesTags(e *Entry, required []Tag) bool {
	for _, t := range required {
		if !e.HasTag(t) {
			return false
		}
	}
	return true
}

// sortEntries applies a stable sort so that ties keep input order.
func sortEntries(entries []*Entry, key SortKey) {
	switch key {
	case SortByVotes:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].VoteCount > entries[j].VoteCount
		})
	case SortBySource:
		sort.SliceStable(entries, func(i, j int) bool {
			return lessSource(entries[i].SourceLabel, entries[j].SourceLabel)
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
		})
	}
}

// lessSource orders labels ascending with missing labels sorted strictly
// after every labeled value. This replaces the usual "zzz" sentinel trick,
// which breaks as soon as a real label sorts after the sentinel.
func lessSource(a, b string) bool {
	switch {
	case a == "" && b == "":
		return false
	case a == "":
		return false
	case b == "":
		return true
	default:
		return strings.ToLower(a) < strings.ToLower(b)
	}
}
