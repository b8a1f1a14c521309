package recurrence

import (
	"sort"

	"github.com/alaminShaheen/PrepTracker/internal/dates"
	"github.com/alaminShaheen/PrepTracker/internal/types/goal"
)

// Delta is one per-day adjustment to a user's heatmap aggregate.
type Delta struct {
	DateKey string
	Change  int
}

// DiffProgress compares a goal's progress map before and after an edit and
// emits +1/-1 deltas for keys whose completion flag flipped. Keys with equal
// values on both sides emit nothing, so a delta is never applied twice. Keys
// new in the updated map count only when they arrive already completed; keys
// that disappeared (a shrunken date range) are left alone; completions
// already counted are not reverted.
//
// Weekly buckets span several days but the heatmap is per-day, so their
// deltas are attributed to the bucket's start date.
func DiffProgress(goalType goal.GoalType, before, after map[string]bool) []Delta {
	keys := make([]string, 0, len(after))
	for key := range after {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var deltas []Delta
	for _, key := range keys {
		value := after[key]
		prev, existed := before[key]
		if existed && prev == value {
			continue
		}
		if !existed && !value {
			continue
		}
		change := 1
		if !value {
			change = -1
		}
		deltas = append(deltas, Delta{DateKey: attributionKey(goalType, key), Change: change})
	}
	return deltas
}

// attributionKey maps a progress key to the heatmap day it counts toward.
func attributionKey(goalType goal.GoalType, key string) string {
	if goalType != goal.TypeWeekly {
		return key
	}
	bucketStart, _, err := ParseBucketKey(key)
	if err != nil {
		return key
	}
	return dates.FormatKey(bucketStart)
}
