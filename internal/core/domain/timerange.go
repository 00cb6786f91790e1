package domain

import (
	"fmt"
	"time"
)

// Range selects the reporting window for dashboard queries.
type Range string

const (
	RangeToday Range = "today"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeAll   Range = "all"
)

// ParseRange converts a query parameter into a Range. An empty value defaults
// to "today", mirroring the dashboard's initial state.
func ParseRange(s string) (Range, error) {
	switch Range(s) {
	case RangeToday, RangeWeek, RangeMonth, RangeAll:
		return Range(s), nil
	case "":
		return RangeToday, nil
	default:
		return "", fmt.Errorf("%w: unknown range %q", ErrInvalidInput, s)
	}
}

// ResolveRangeStart maps a range to its inclusive lower time bound relative to
// now. The boundary is the local wall-clock midnight in now's location:
//
//	today → midnight of now's date
//	week  → midnight of the most recent Sunday on/before now
//	month → midnight of day 1 of now's month
//	all   → no bound (ok=false)
//
// Entries with start_time >= the returned instant fall inside the range, so a
// call at exactly midnight places the boundary inside the new period.
func ResolveRangeStart(r Range, now time.Time) (start time.Time, ok bool) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch r {
	case RangeToday:
		return midnight, true
	case RangeWeek:
		return midnight.AddDate(0, 0, -int(now.Weekday())), true
	case RangeMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	default: // RangeAll
		return time.Time{}, false
	}
}
