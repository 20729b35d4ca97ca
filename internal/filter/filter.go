// Package filter selects entries by date range and note text.
package filter

import (
	"strings"

	"github.com/xolan/shifttrack/internal/entry"
	"github.com/xolan/shifttrack/internal/timeutil"
)

// Filter represents search and filtering criteria for shift entries.
// All filter fields are optional - zero values match all entries.
type Filter struct {
	Range   timeutil.Range // Inclusive date range; zero bounds are open
	Keyword string         // Case-insensitive substring search in entry notes
}

// IsEmpty returns true if the filter matches every entry
func (f Filter) IsEmpty() bool {
	return f.Range.Start.IsZero() && f.Range.End.IsZero() && strings.TrimSpace(f.Keyword) == ""
}

// Matches reports whether e satisfies every criterion.
func (f Filter) Matches(e entry.Entry) bool {
	return f.Range.Contains(e.Date) && f.MatchesKeyword(e)
}

// MatchesKeyword returns true if the keyword is found in the entry's note (case-insensitive).
// An empty keyword matches all entries.
func (f Filter) MatchesKeyword(e entry.Entry) bool {
	keyword := strings.TrimSpace(f.Keyword)
	if keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Note), strings.ToLower(keyword))
}

// Apply returns a new slice containing only entries that match the filter.
// If the filter is empty, returns entries unchanged.
func Apply(entries []entry.Entry, f Filter) []entry.Entry {
	if f.IsEmpty() {
		return entries
	}

	filtered := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
