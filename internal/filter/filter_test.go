package filter

import (
	"testing"
	"time"

	"github.com/xolan/shifttrack/internal/entry"
	"github.com/xolan/shifttrack/internal/timeutil"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.Local)
}

func testEntries() []entry.Entry {
	return []entry.Entry{
		{ID: "a", Date: day(1), Note: "Opening shift"},
		{ID: "b", Date: day(5), Note: "inventory count"},
		{ID: "c", Date: day(10), Note: ""},
		{ID: "d", Date: day(20), Note: "closing, INVENTORY"},
	}
}

func ids(entries []entry.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{
			name:     "empty filter matches all",
			filter:   Filter{},
			expected: []string{"a", "b", "c", "d"},
		},
		{
			name:     "keyword is case-insensitive",
			filter:   Filter{Keyword: "Inventory"},
			expected: []string{"b", "d"},
		},
		{
			name:     "whitespace keyword matches all",
			filter:   Filter{Keyword: "   "},
			expected: []string{"a", "b", "c", "d"},
		},
		{
			name:     "range is inclusive",
			filter:   Filter{Range: timeutil.Range{Start: day(5), End: timeutil.EndOfDay(day(10))}},
			expected: []string{"b", "c"},
		},
		{
			name:     "open start",
			filter:   Filter{Range: timeutil.Range{End: timeutil.EndOfDay(day(5))}},
			expected: []string{"a", "b"},
		},
		{
			name: "range and keyword",
			filter: Filter{
				Range:   timeutil.Range{Start: day(2), End: timeutil.EndOfDay(day(31))},
				Keyword: "inventory",
			},
			expected: []string{"b", "d"},
		},
		{
			name:     "no match",
			filter:   Filter{Keyword: "holiday"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(testEntries(), tt.filter))
			if len(got) != len(tt.expected) {
				t.Fatalf("Apply() = %v, expected %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Apply() = %v, expected %v", got, tt.expected)
					break
				}
			}
		})
	}
}

func TestIsEmpty(t *testing.T) {
	if !(Filter{}).IsEmpty() {
		t.Error("zero Filter should be empty")
	}
	if (Filter{Keyword: "x"}).IsEmpty() {
		t.Error("Filter with keyword should not be empty")
	}
	if (Filter{Range: timeutil.Range{End: day(1)}}).IsEmpty() {
		t.Error("Filter with range should not be empty")
	}
}
