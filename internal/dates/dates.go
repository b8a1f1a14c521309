// Package dates holds the calendar-day arithmetic every progress key and
// window check is built on. All comparisons are done at day granularity:
// time-of-day is normalized away before anything is compared.
package dates

import "time"

// KeyFormat is the canonical date key layout (dd-MM-yyyy). Every progress
// key and heatmap date_key uses this format; weekly bucket keys are two of
// these joined by a single space.
const KeyFormat = "02-01-2006"

// Normalize truncates t to its calendar day (midnight UTC).
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func FormatKey(t time.Time) string {
	return Normalize(t).Format(KeyFormat)
}

func ParseKey(key string) (time.Time, error) {
	return time.ParseInLocation(KeyFormat, key, time.UTC)
}

// AddDays returns the normalized day `days` calendar days after t.
func AddDays(t time.Time, days int) time.Time {
	return Normalize(t).AddDate(0, 0, days)
}

// DaysBetween returns the number of calendar days from start to end
// (negative when end precedes start).
func DaysBetween(start, end time.Time) int {
	return int(Normalize(end).Sub(Normalize(start)).Hours() / 24)
}

// WithinInclusive reports whether reference falls inside [start, end] at day
// granularity, inclusive on BOTH boundaries. A goal must count as in range on
// its exact start and end dates; strict before/after comparisons are wrong
// here.
func WithinInclusive(start, end, reference time.Time) bool {
	s, e, r := Normalize(start), Normalize(end), Normalize(reference)
	return !r.Before(s) && !r.After(e)
}

// RangesOverlap reports whether [startA, endA] and [startB, endB] share at
// least one calendar day.
func RangesOverlap(startA, endA, startB, endB time.Time) bool {
	return !Normalize(startA).After(Normalize(endB)) && !Normalize(endA).Before(Normalize(startB))
}
