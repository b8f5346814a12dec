// Package points derives balance totals and the 7-day trend series from the
// entry log.
package points

import (
	"strconv"
	"strings"
	"time"

	"github.com/zzspin/tally/internal/constants"
	"github.com/zzspin/tally/internal/models"
)

// Totals is the aggregate point balance over a set of entries.
type Totals struct {
	Net       int64 // sum of all points, earned minus used
	GrossPaid int64 // sum of points on entries already marked paid
	Used      int64 // magnitude of negative entries
}

// Compute sums the given entries.
func Compute(entries []models.LogEntry) Totals {
	var t Totals
	for _, e := range entries {
		t.Net += e.Points
		if e.IsPaid {
			t.GrossPaid += e.Points
		}
		if e.Points < 0 {
			t.Used += -e.Points
		}
	}
	return t
}

// Monthly sums only the entries whose local month and year match now's.
func Monthly(entries []models.LogEntry, now time.Time) Totals {
	var month []models.LogEntry
	for _, e := range entries {
		et := e.Time()
		if et.Month() == now.Month() && et.Year() == now.Year() {
			month = append(month, e)
		}
	}
	return Compute(month)
}

// DayBucket is one day of the trend chart.
type DayBucket struct {
	Label string // short MM/dd label
	Net   int64
}

// SevenDayBuckets returns one bucket per calendar day for the 7 days ending
// today, oldest first. A day's bucket sums the points of entries whose local
// timestamp falls inside [00:00:00.000, 23:59:59.999] of that day.
func SevenDayBuckets(entries []models.LogEntry, now time.Time) []DayBucket {
	buckets := make([]DayBucket, 0, constants.ChartDays)
	for i := constants.ChartDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 0, 1).Add(-time.Millisecond)

		var net int64
		for _, e := range entries {
			if e.Timestamp >= start.UnixMilli() && e.Timestamp <= end.UnixMilli() {
				net += e.Points
			}
		}
		buckets = append(buckets, DayBucket{
			Label: day.Format("01/02"),
			Net:   net,
		})
	}
	return buckets
}

// Format renders a point value with thousands separators, e.g. 20,000.
func Format(v int64) string {
	neg := v < 0
	s := strconv.FormatInt(v, 10)
	if neg {
		s = s[1:]
	}

	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)

	out := strings.Join(groups, ",")
	if neg {
		return "-" + out
	}
	return out
}

// CompletedCount counts entries carrying exactly the fixed DONE value. A
// custom add of the same value is counted too; the badge has always worked
// that way.
func CompletedCount(entries []models.LogEntry) int {
	count := 0
	for _, e := range entries {
		if e.Points == constants.DonePoints {
			count++
		}
	}
	return count
}
