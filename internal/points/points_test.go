package points

import (
	"testing"
	"time"

	"github.com/zzspin/tally/internal/constants"
	"github.com/zzspin/tally/internal/models"
)

func entry(points int64, at time.Time, paid, custom bool) models.LogEntry {
	return models.LogEntry{
		ID:          "test",
		Points:      points,
		Timestamp:   at.UnixMilli(),
		IsPaid:      paid,
		IsCustomAdd: custom,
	}
}

func TestComputeTotals(t *testing.T) {
	now := time.Now()
	entries := []models.LogEntry{
		entry(constants.DonePoints, now, true, false), // paid done
		entry(-5000, now, false, false),               // used
		entry(0, now, false, false),                   // skipped
	}

	got := Compute(entries)
	if got.Net != 15000 {
		t.Errorf("Net = %d, want 15000", got.Net)
	}
	if got.GrossPaid != 20000 {
		t.Errorf("GrossPaid = %d, want 20000", got.GrossPaid)
	}
	if got.Used != 5000 {
		t.Errorf("Used = %d, want 5000", got.Used)
	}
	if n := CompletedCount(entries); n != 1 {
		t.Errorf("CompletedCount = %d, want 1", n)
	}
}

func TestComputeEmpty(t *testing.T) {
	got := Compute(nil)
	if got.Net != 0 || got.GrossPaid != 0 || got.Used != 0 {
		t.Errorf("Compute(nil) = %+v, want zeroes", got)
	}
}

func TestMonthlyFiltersByLocalMonth(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)
	entries := []models.LogEntry{
		entry(100, time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local), false, true),
		entry(200, time.Date(2026, 2, 28, 0, 0, 0, 0, time.Local), false, true),
		// Same month last year must not count.
		entry(400, time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local), false, true),
	}

	got := Monthly(entries, now)
	if got.Net != 100 {
		t.Errorf("Monthly Net = %d, want 100", got.Net)
	}
}

func TestSevenDayBuckets(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)
	entries := []models.LogEntry{
		entry(100, now, false, true),
		entry(-40, now.AddDate(0, 0, -1), false, false),
		entry(999, now.AddDate(0, 0, -7), false, true), // outside window
	}

	buckets := SevenDayBuckets(entries, now)
	if len(buckets) != constants.ChartDays {
		t.Fatalf("got %d buckets, want %d", len(buckets), constants.ChartDays)
	}

	if buckets[6].Net != 100 {
		t.Errorf("today's bucket = %d, want 100", buckets[6].Net)
	}
	if buckets[5].Net != -40 {
		t.Errorf("yesterday's bucket = %d, want -40", buckets[5].Net)
	}
	if buckets[0].Net != 0 {
		t.Errorf("oldest bucket = %d, want 0 (8-day-old entry must be excluded)", buckets[0].Net)
	}
	if buckets[6].Label != now.Format("01/02") {
		t.Errorf("today's label = %q, want %q", buckets[6].Label, now.Format("01/02"))
	}
}

func TestSevenDayBucketBoundaries(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)

	lastMilli := time.Date(2026, 3, 14, 23, 59, 59, 999_000_000, time.Local)
	firstMilli := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	entries := []models.LogEntry{
		entry(1, lastMilli, false, true),
		entry(2, firstMilli, false, true),
	}

	buckets := SevenDayBuckets(entries, now)
	if buckets[5].Net != 1 {
		t.Errorf("23:59:59.999 entry landed in bucket %d, want yesterday's bucket", buckets[5].Net)
	}
	if buckets[6].Net != 2 {
		t.Errorf("00:00:00.000 entry landed in bucket %d, want today's bucket", buckets[6].Net)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		v    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{20000, "20,000"},
		{-5000, "-5,000"},
		{1234567, "1,234,567"},
	}
	for _, c := range cases {
		if got := Format(c.v); got != c.want {
			t.Errorf("Format(%d) = %q, want %q", c.v, got, c.want)
		}
	}
}
