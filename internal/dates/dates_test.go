package dates

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWithinInclusive(t *testing.T) {
	start := day(2024, time.March, 1)
	end := day(2024, time.March, 20)

	tests := []struct {
		name      string
		reference time.Time
		want      bool
	}{
		{"before range", day(2024, time.February, 29), false},
		{"on start date", start, true},
		{"inside range", day(2024, time.March, 10), true},
		{"on end date", end, true},
		{"after range", day(2024, time.March, 21), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinInclusive(start, end, tt.reference); got != tt.want {
				t.Errorf("WithinInclusive(%v, %v, %v) = %v, want %v", start, end, tt.reference, got, tt.want)
			}
		})
	}
}

func TestWithinInclusiveSingleDayRangeContainsItself(t *testing.T) {
	d := day(2024, time.March, 10)
	if !WithinInclusive(d, d, d) {
		t.Error("a single-day range must contain its own day")
	}
}

func TestWithinInclusiveIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, time.March, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 1, 0, 0, 1, 0, time.UTC)
	reference := time.Date(2024, time.March, 1, 12, 30, 0, 0, time.UTC)

	if !WithinInclusive(start, end, reference) {
		t.Error("same calendar day with different clock times must be in range")
	}
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name                           string
		startA, endA, startB, endB     time.Time
		want                           bool
	}{
		{
			"disjoint",
			day(2024, 3, 1), day(2024, 3, 5),
			day(2024, 3, 6), day(2024, 3, 10),
			false,
		},
		{
			"shared boundary day",
			day(2024, 3, 1), day(2024, 3, 5),
			day(2024, 3, 5), day(2024, 3, 10),
			true,
		},
		{
			"contained",
			day(2024, 3, 1), day(2024, 3, 31),
			day(2024, 3, 10), day(2024, 3, 12),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RangesOverlap(tt.startA, tt.endA, tt.startB, tt.endB); got != tt.want {
				t.Errorf("RangesOverlap = %v, want %v", got, tt.want)
			}
			// overlap is symmetric
			if got := RangesOverlap(tt.startB, tt.endB, tt.startA, tt.endA); got != tt.want {
				t.Errorf("RangesOverlap (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatKey(t *testing.T) {
	got := FormatKey(time.Date(2024, time.March, 10, 18, 45, 0, 0, time.UTC))
	if got != "10-03-2024" {
		t.Errorf("FormatKey = %q, want %q", got, "10-03-2024")
	}
}

func TestParseKeyRoundTrip(t *testing.T) {
	parsed, err := ParseKey("07-03-2024")
	if err != nil {
		t.Fatalf("ParseKey failed: %v", err)
	}
	if !parsed.Equal(day(2024, time.March, 7)) {
		t.Errorf("ParseKey = %v, want 2024-03-07", parsed)
	}
	if FormatKey(parsed) != "07-03-2024" {
		t.Errorf("round trip mismatch: %q", FormatKey(parsed))
	}
}

func TestParseKeyRejectsGarbage(t *testing.T) {
	if _, err := ParseKey("2024-03-07"); err == nil {
		t.Error("expected error for wrong layout")
	}
}

func TestDaysBetween(t *testing.T) {
	if got := DaysBetween(day(2024, 3, 1), day(2024, 3, 3)); got != 2 {
		t.Errorf("DaysBetween = %d, want 2", got)
	}
	if got := DaysBetween(day(2024, 3, 3), day(2024, 3, 1)); got != -2 {
		t.Errorf("DaysBetween reversed = %d, want -2", got)
	}
	// across the Feb 29 leap boundary
	if got := DaysBetween(day(2024, 2, 28), day(2024, 3, 1)); got != 2 {
		t.Errorf("DaysBetween over leap day = %d, want 2", got)
	}
}

func TestAddDays(t *testing.T) {
	got := AddDays(time.Date(2024, time.February, 28, 13, 0, 0, 0, time.UTC), 2)
	if !got.Equal(day(2024, time.March, 1)) {
		t.Errorf("AddDays = %v, want 2024-03-01", got)
	}
}
