// Package recurrence computes the progress key sets of goals, classifies
// goals into the dashboard windows (today / tomorrow / next 7 days) and
// diffs progress maps into heatmap deltas. Everything here is pure; the
// current time is always an explicit parameter.
package recurrence

import (
	"fmt"
	"strings"
	"time"

	"github.com/alaminShaheen/PrepTracker/internal/dates"
	"github.com/alaminShaheen/PrepTracker/internal/types/goal"
)

// BuildProgress returns the initial progress map for a goal, every key false.
// Daily goals get one key per calendar day from start to end inclusive.
// Weekly goals get one key per 7-day bucket anchored at the start date, the
// last bucket clipped by the end date. One-time goals track only their start
// date, even though the end date is stored.
//
// Callers must have validated endDate >= startDate already.
func BuildProgress(goalType goal.GoalType, startDate, endDate time.Time) map[string]bool {
	progress := make(map[string]bool)

	switch goalType {
	case goal.TypeDaily:
		totalDays := dates.DaysBetween(startDate, endDate)
		for i := 0; i <= totalDays; i++ {
			progress[dates.FormatKey(dates.AddDays(startDate, i))] = false
		}
	case goal.TypeWeekly:
		end := dates.Normalize(endDate)
		for bucketStart := dates.Normalize(startDate); !bucketStart.After(end); bucketStart = dates.AddDays(bucketStart, 7) {
			bucketEnd := dates.AddDays(bucketStart, 6)
			if bucketEnd.After(end) {
				bucketEnd = end
			}
			progress[BucketKey(bucketStart, bucketEnd)] = false
		}
	default:
		progress[dates.FormatKey(startDate)] = false
	}

	return progress
}

// BucketKey formats a weekly bucket's key: both boundary dates joined by a
// single space.
func BucketKey(bucketStart, bucketEnd time.Time) string {
	return dates.FormatKey(bucketStart) + " " + dates.FormatKey(bucketEnd)
}

// ParseBucketKey splits a weekly bucket key back into its boundary dates.
func ParseBucketKey(key string) (time.Time, time.Time, error) {
	parts := strings.SplitN(key, " ", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed bucket key %q", key)
	}
	bucketStart, err := dates.ParseKey(parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed bucket key %q: %w", key, err)
	}
	bucketEnd, err := dates.ParseKey(parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed bucket key %q: %w", key, err)
	}
	return bucketStart, bucketEnd, nil
}
