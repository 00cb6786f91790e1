package ports

import (
	"context"

	"github.com/workmania/timetrack/internal/core/domain"
)

// ChartSlice is one pie-chart bucket: total seconds per category label.
type ChartSlice struct {
	Name  string
	Value int64
	Color string
}

// LogRow is one formatted line of the dashboard log list.
type LogRow struct {
	ID              string
	Title           string
	Category        string
	Time            string // human duration, e.g. "1時間 2分"
	Date            string // human end time, e.g. "今日 14:05" or "3/2 09:41"
	Color           string
	DurationSeconds int64
}

// Report is the aggregated dashboard view for one range.
type Report struct {
	Range        domain.Range
	TotalSeconds int64
	TotalTime    string // zero-padded HH:MM:SS
	Chart        []ChartSlice
	Logs         []LogRow
}

// UpdateEntryInput applies a partial edit to a closed entry.
type UpdateEntryInput struct {
	UserID  string
	EntryID string
	Patch   EntryPatch
}

// ReportService computes dashboard aggregations and applies log edits.
// It holds no cache: every call reads fresh from storage, so edits and
// deletes are reflected by simply re-requesting the report.
type ReportService interface {
	BuildReport(ctx context.Context, userID string, r domain.Range) (*Report, error)
	// ListEntries returns the closed entries for the range, newest end first,
	// each joined with its category when one is referenced.
	ListEntries(ctx context.Context, userID string, r domain.Range) ([]*domain.TimeEntry, error)
	UpdateEntry(ctx context.Context, input UpdateEntryInput) (*domain.TimeEntry, error)
	DeleteEntry(ctx context.Context, entryID, userID string) error
}
