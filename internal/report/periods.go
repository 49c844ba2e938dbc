package report

import (
	"time"

	"keur/internal/core"
)

// MonthsBetween partitions [start, end] into the ordered sequence of
// calendar months it spans. The first bucket starts on the first day of
// start's month, the last ends on the last day of end's month, and the
// buckets are contiguous and non-overlapping. An inverted input yields
// an empty sequence. The result depends only on the inputs, so the same
// call always regenerates the same buckets.
func MonthsBetween(start, end core.Date) []core.DateRange {
	if start.IsZero() || end.IsZero() || start.After(end.Time) {
		return nil
	}
	var out []core.DateRange
	cursor := core.NewDate(start.Year(), int(start.Month()), 1)
	last := core.NewDate(end.Year(), int(end.Month()), 1)
	for !cursor.After(last.Time) {
		monthEnd := core.Date{Time: cursor.AddDate(0, 1, -1)}
		out = append(out, core.DateRange{Start: cursor, End: monthEnd})
		cursor = core.Date{Time: cursor.AddDate(0, 1, 0)}
	}
	return out
}

// MonthOf returns the calendar-month window containing the given day.
func MonthOf(year int, month time.Month) core.DateRange {
	start := core.NewDate(year, int(month), 1)
	return core.DateRange{Start: start, End: core.Date{Time: start.AddDate(0, 1, -1)}}
}
