package domain

import (
	"fmt"
	"time"
)

// Display sentinels for entries without a category. Every uncategorized entry
// maps to the same bucket with the same neutral color.
const (
	UncategorizedLabel = "未分類"
	UncategorizedColor = "#64748b"
)

// UntitledTaskLabel is shown when an entry has an empty description.
const UntitledTaskLabel = "名称未設定のタスク"

// FormatDuration renders a duration in the coarsest applicable unit pair:
// seconds below a minute, whole minutes below an hour, hours and minutes
// above. Seconds are dropped once minutes are shown.
func FormatDuration(seconds int64) string {
	switch {
	case seconds >= 3600:
		return fmt.Sprintf("%d時間 %d分", seconds/3600, (seconds%3600)/60)
	case seconds >= 60:
		return fmt.Sprintf("%d分", seconds/60)
	default:
		return fmt.Sprintf("%d秒", seconds)
	}
}

// FormatTotal renders a zero-padded HH:MM:SS total for the dashboard header.
// Hours are not wrapped at 24.
func FormatTotal(seconds int64) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// FormatEndTime renders the log row's end-time label: a bare clock time
// prefixed with 今日 when the entry ended on now's calendar date, and a
// month/day form otherwise. Both instants are compared in now's location.
func FormatEndTime(end, now time.Time) string {
	end = end.In(now.Location())
	ey, em, ed := end.Date()
	ny, nm, nd := now.Date()
	if ey == ny && em == nm && ed == nd {
		return "今日 " + end.Format("15:04")
	}
	return fmt.Sprintf("%d/%d %s", int(em), ed, end.Format("15:04"))
}

// DisplayTitle falls back to the untitled sentinel for empty descriptions.
func DisplayTitle(description string) string {
	if description == "" {
		return UntitledTaskLabel
	}
	return description
}
