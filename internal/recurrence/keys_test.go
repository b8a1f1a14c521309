package recurrence

import (
	"testing"
	"time"

	"github.com/alaminShaheen/PrepTracker/internal/dates"
	"github.com/alaminShaheen/PrepTracker/internal/types/goal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildProgressOneTime(t *testing.T) {
	// one-time goals ignore the end date for key purposes
	progress := BuildProgress(goal.TypeOneTime, day(2024, time.March, 10), day(2024, time.March, 10))

	if len(progress) != 1 {
		t.Fatalf("expected 1 key, got %d", len(progress))
	}
	completed, ok := progress["10-03-2024"]
	if !ok {
		t.Fatalf("missing key 10-03-2024, got %v", progress)
	}
	if completed {
		t.Error("initial progress must be false")
	}
}

func TestBuildProgressDaily(t *testing.T) {
	progress := BuildProgress(goal.TypeDaily, day(2024, time.March, 1), day(2024, time.March, 3))

	want := []string{"01-03-2024", "02-03-2024", "03-03-2024"}
	if len(progress) != len(want) {
		t.Fatalf("expected %d keys, got %d: %v", len(want), len(progress), progress)
	}
	for _, key := range want {
		completed, ok := progress[key]
		if !ok {
			t.Errorf("missing key %s", key)
		}
		if completed {
			t.Errorf("key %s must start false", key)
		}
	}
}

func TestBuildProgressDailyKeyCount(t *testing.T) {
	// |keys| == daysBetween(start, end) + 1 and every key lies in [start, end]
	start, end := day(2024, time.February, 25), day(2024, time.March, 12)
	progress := BuildProgress(goal.TypeDaily, start, end)

	if wantCount := dates.DaysBetween(start, end) + 1; len(progress) != wantCount {
		t.Fatalf("expected %d keys, got %d", wantCount, len(progress))
	}
	for key := range progress {
		d, err := dates.ParseKey(key)
		if err != nil {
			t.Fatalf("unparseable key %q: %v", key, err)
		}
		if !dates.WithinInclusive(start, end, d) {
			t.Errorf("key %s outside [start, end]", key)
		}
	}
}

func TestBuildProgressWeekly(t *testing.T) {
	progress := BuildProgress(goal.TypeWeekly, day(2024, time.March, 1), day(2024, time.March, 20))

	want := []string{
		"01-03-2024 07-03-2024",
		"08-03-2024 14-03-2024",
		"15-03-2024 20-03-2024", // clipped to 6 days by the end date
	}
	if len(progress) != len(want) {
		t.Fatalf("expected %d buckets, got %d: %v", len(want), len(progress), progress)
	}
	for _, key := range want {
		if _, ok := progress[key]; !ok {
			t.Errorf("missing bucket key %q", key)
		}
	}
}

func TestBuildProgressWeeklySingleDay(t *testing.T) {
	progress := BuildProgress(goal.TypeWeekly, day(2024, time.March, 5), day(2024, time.March, 5))

	if len(progress) != 1 {
		t.Fatalf("expected 1 bucket, got %v", progress)
	}
	if _, ok := progress["05-03-2024 05-03-2024"]; !ok {
		t.Errorf("expected one-day bucket, got %v", progress)
	}
}

func TestBuildProgressWeeklyPartitions(t *testing.T) {
	// buckets partition [start, end]: consecutive, non-overlapping, <=7 days,
	// no gaps, last bucket ends exactly on the end date
	start, end := day(2024, time.January, 3), day(2024, time.February, 14)
	progress := BuildProgress(goal.TypeWeekly, start, end)

	expectedStart := start
	var lastEnd time.Time
	for !expectedStart.After(end) {
		found := ""
		for key := range progress {
			bucketStart, _, err := ParseBucketKey(key)
			if err != nil {
				t.Fatalf("unparseable bucket key %q: %v", key, err)
			}
			if bucketStart.Equal(expectedStart) {
				found = key
				break
			}
		}
		if found == "" {
			t.Fatalf("no bucket starts on %s", dates.FormatKey(expectedStart))
		}

		bucketStart, bucketEnd, _ := ParseBucketKey(found)
		if span := dates.DaysBetween(bucketStart, bucketEnd); span < 0 || span > 6 {
			t.Errorf("bucket %q spans %d days", found, span+1)
		}
		if bucketEnd.After(end) {
			t.Errorf("bucket %q overruns the end date", found)
		}
		lastEnd = bucketEnd
		expectedStart = dates.AddDays(bucketEnd, 1)
	}

	if !lastEnd.Equal(end) {
		t.Errorf("last bucket ends %s, want %s", dates.FormatKey(lastEnd), dates.FormatKey(end))
	}
}

func TestParseBucketKey(t *testing.T) {
	bucketStart, bucketEnd, err := ParseBucketKey("01-03-2024 07-03-2024")
	if err != nil {
		t.Fatalf("ParseBucketKey failed: %v", err)
	}
	if !bucketStart.Equal(day(2024, time.March, 1)) || !bucketEnd.Equal(day(2024, time.March, 7)) {
		t.Errorf("got %v / %v", bucketStart, bucketEnd)
	}

	for _, bad := range []string{"01-03-2024", "not a key", "01-03-2024 garbage"} {
		if _, _, err := ParseBucketKey(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
