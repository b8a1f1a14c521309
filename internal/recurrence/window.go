package recurrence

import (
	"time"

	"github.com/alaminShaheen/PrepTracker/internal/dates"
	"github.com/alaminShaheen/PrepTracker/internal/types/goal"
)

// Window names one of the dashboard lookahead ranges.
type Window string

const (
	WindowToday     Window = "TODAY"
	WindowTomorrow  Window = "TOMORROW"
	WindowNext7Days Window = "NEXT_7_DAYS"
)

// referenceDates expands a window into its reference days: a single day for
// today/tomorrow, the seven days tomorrow..tomorrow+6 for next-7-days.
func referenceDates(window Window, now time.Time) []time.Time {
	today := dates.Normalize(now)
	switch window {
	case WindowToday:
		return []time.Time{today}
	case WindowTomorrow:
		return []time.Time{dates.AddDays(today, 1)}
	default:
		refs := make([]time.Time, 0, 7)
		for i := 1; i <= 7; i++ {
			refs = append(refs, dates.AddDays(today, i))
		}
		return refs
	}
}

// InWindow reports whether at least one of the goal's progress keys is
// relevant to the window. Daily and one-time goals match on the exact day
// key (or any day inside the next-7-days span); weekly goals match when a
// bucket's range contains any of the window's reference days, boundary days
// included.
func InWindow(g *goal.Goal, window Window, now time.Time) bool {
	refs := referenceDates(window, now)

	if g.GoalType == goal.TypeWeekly {
		for key := range g.Progress {
			bucketStart, bucketEnd, err := ParseBucketKey(key)
			if err != nil {
				continue
			}
			for _, ref := range refs {
				if dates.WithinInclusive(bucketStart, bucketEnd, ref) {
					return true
				}
			}
		}
		return false
	}

	if window == WindowNext7Days {
		first, last := refs[0], refs[len(refs)-1]
		for key := range g.Progress {
			day, err := dates.ParseKey(key)
			if err != nil {
				continue
			}
			if dates.WithinInclusive(first, last, day) {
				return true
			}
		}
		return false
	}

	_, ok := g.Progress[dates.FormatKey(refs[0])]
	return ok
}

// ActiveKey resolves the single progress key the user interacts with in a
// window: the reference day's key for daily/one-time goals, the bucket key
// covering the reference day for weekly goals. Returns "" when no tracked
// period covers the reference day, and always "" for next-7-days, which has
// no single reference day.
func ActiveKey(g *goal.Goal, window Window, now time.Time) string {
	if window == WindowNext7Days {
		return ""
	}
	ref := referenceDates(window, now)[0]

	if g.GoalType == goal.TypeWeekly {
		for key := range g.Progress {
			bucketStart, bucketEnd, err := ParseBucketKey(key)
			if err != nil {
				continue
			}
			if dates.WithinInclusive(bucketStart, bucketEnd, ref) {
				return key
			}
		}
		return ""
	}

	key := dates.FormatKey(ref)
	if _, ok := g.Progress[key]; ok {
		return key
	}
	return ""
}

// Actionable reports whether a goal can be toggled in a window. Only the
// today window accepts toggles; the other windows render goals read-only.
func Actionable(window Window, activeKey string) bool {
	return window == WindowToday && activeKey != ""
}
