package timeutil

import (
	"strings"
	"testing"
	"time"
)

func TestRange_Contains(t *testing.T) {
	r := Range{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC),
	}

	tests := []struct {
		name     string
		t        time.Time
		expected bool
	}{
		{"start boundary", r.Start, true},
		{"end boundary", r.End, true},
		{"inside", time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), true},
		{"before", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), false},
		{"after", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.t); got != tt.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tt.t, got, tt.expected)
			}
		})
	}

	open := Range{End: r.End}
	if !open.Contains(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("a range without start should contain early dates")
	}
}

func TestRange_Days(t *testing.T) {
	if got := Month(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)).Days(); got != 29 {
		t.Errorf("Month(Feb 2024).Days() = %d, expected 29", got)
	}
	if got := Week(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "monday").Days(); got != 7 {
		t.Errorf("Week().Days() = %d, expected 7", got)
	}
	if got := (Range{End: time.Now()}).Days(); got != 0 {
		t.Errorf("unbounded range Days() = %d, expected 0", got)
	}
}

func TestRange_String(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if got := (Range{Start: day, End: EndOfDay(day)}).String(); got != "2024-03-05" {
		t.Errorf("String() = %q", got)
	}
	if got := Month(day).String(); got != "2024-03-01 to 2024-03-31" {
		t.Errorf("String() = %q", got)
	}
}

func TestLastDays(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	r := LastDays(now, 7)
	if !r.Start.Equal(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v", r.Start)
	}
	if !r.End.Equal(EndOfDay(now)) {
		t.Errorf("End = %v", r.End)
	}
}

func TestParseRangeFlags(t *testing.T) {
	r, err := ParseRangeFlags("2024-01-01", "2024-01-31", 0)
	if err != nil {
		t.Fatalf("ParseRangeFlags() returned unexpected error: %v", err)
	}
	if !r.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("Start = %v", r.Start)
	}
	if !r.End.Equal(EndOfDay(time.Date(2024, 1, 31, 0, 0, 0, 0, time.Local))) {
		t.Errorf("End = %v", r.End)
	}

	r, err = ParseRangeFlags("", "", 0)
	if err != nil {
		t.Fatalf("ParseRangeFlags() returned unexpected error: %v", err)
	}
	if !r.Start.IsZero() {
		t.Errorf("no flags should leave Start unbounded, got %v", r.Start)
	}

	r, err = ParseRangeFlags("", "", 3)
	if err != nil {
		t.Fatalf("ParseRangeFlags() returned unexpected error: %v", err)
	}
	if r.Days() != 3 {
		t.Errorf("--last 3 should span 3 days, got %d", r.Days())
	}
}

func TestParseRangeFlags_Errors(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		last    int
		errPart string
	}{
		{"last with from", "2024-01-01", "", 7, "cannot use --last"},
		{"negative last", "", "", -1, "must be positive"},
		{"bad from", "nope", "", 0, "invalid --from"},
		{"bad to", "", "nope", 0, "invalid --to"},
		{"from after to", "2024-02-01", "2024-01-01", 0, "is after"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRangeFlags(tt.from, tt.to, tt.last)
			if err == nil {
				t.Fatal("ParseRangeFlags() should return an error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %q should contain %q", err.Error(), tt.errPart)
			}
		})
	}
}
