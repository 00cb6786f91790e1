package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/workmania/timetrack/internal/core/domain"
	"github.com/workmania/timetrack/internal/core/ports"
)

// ReportService is the aggregation engine: it turns the closed entries of a
// range into the dashboard total, the per-category chart buckets, and the
// formatted log rows. It holds no cache and recomputes on every call.
type ReportService struct {
	entries    ports.EntryRepository
	categories ports.CategoryRepository
	loc        *time.Location
	now        func() time.Time
	logger     zerolog.Logger
}

func NewReportService(entries ports.EntryRepository, categories ports.CategoryRepository, loc *time.Location, logger zerolog.Logger) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		entries:    entries,
		categories: categories,
		loc:        loc,
		now:        time.Now,
		logger:     logger,
	}
}

// ListEntries returns the range's closed entries, newest end first, joined
// with their categories. The range boundary is resolved fresh on every call:
// "today" moves as the wall clock does.
func (s *ReportService) ListEntries(ctx context.Context, userID string, r domain.Range) ([]*domain.TimeEntry, error) {
	var lower *time.Time
	if start, ok := domain.ResolveRangeStart(r, s.now().In(s.loc)); ok {
		lower = &start
	}

	entries, err := s.entries.ListClosed(ctx, userID, lower)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	if err := s.joinCategories(ctx, userID, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// BuildReport aggregates the range's entries into the dashboard view.
func (s *ReportService) BuildReport(ctx context.Context, userID string, r domain.Range) (*ports.Report, error) {
	entries, err := s.ListEntries(ctx, userID, r)
	if err != nil {
		return nil, err
	}

	report := &ports.Report{
		Range: r,
		Chart: []ports.ChartSlice{},
		Logs:  make([]ports.LogRow, 0, len(entries)),
	}

	// One chart bucket per distinct label, first-seen order. All entries of a
	// label share the same category, hence the same color.
	bucketIndex := make(map[string]int)
	now := s.now().In(s.loc)

	for _, entry := range entries {
		report.TotalSeconds += entry.DurationSeconds

		label, color := domain.UncategorizedLabel, domain.UncategorizedColor
		if entry.Category != nil {
			label, color = entry.Category.Name, entry.Category.Color
		}

		i, seen := bucketIndex[label]
		if !seen {
			i = len(report.Chart)
			bucketIndex[label] = i
			report.Chart = append(report.Chart, ports.ChartSlice{Name: label, Color: color})
		}
		report.Chart[i].Value += entry.DurationSeconds

		row := ports.LogRow{
			ID:              entry.ID,
			Title:           domain.DisplayTitle(entry.Description),
			Category:        label,
			Time:            domain.FormatDuration(entry.DurationSeconds),
			Color:           color,
			DurationSeconds: entry.DurationSeconds,
		}
		if entry.EndTime != nil {
			row.Date = domain.FormatEndTime(*entry.EndTime, now)
		}
		report.Logs = append(report.Logs, row)
	}

	report.TotalTime = domain.FormatTotal(report.TotalSeconds)

	s.logger.Debug().
		Str("user_id", userID).
		Str("range", string(r)).
		Int("entries", len(entries)).
		Int64("total_seconds", report.TotalSeconds).
		Msg("report built")
	return report, nil
}

// UpdateEntry applies a partial edit to a closed entry. A duration set here
// may disagree with end_time - start_time: manual correction is intentional.
func (s *ReportService) UpdateEntry(ctx context.Context, input ports.UpdateEntryInput) (*domain.TimeEntry, error) {
	if input.Patch.Empty() {
		return nil, fmt.Errorf("%w: empty patch", domain.ErrInvalidInput)
	}
	if input.Patch.DurationSeconds != nil && *input.Patch.DurationSeconds < 0 {
		return nil, fmt.Errorf("%w: duration must be non-negative", domain.ErrInvalidInput)
	}
	if input.Patch.CategoryID != nil && *input.Patch.CategoryID != "" {
		if _, err := s.categories.FindByID(ctx, *input.Patch.CategoryID, input.UserID); err != nil {
			return nil, err
		}
	}

	updated, err := s.entries.Update(ctx, input.EntryID, input.UserID, input.Patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", input.UserID).Str("entry_id", input.EntryID).Msg("entry updated")
	return updated, nil
}

// DeleteEntry removes a closed entry after the ownership check.
func (s *ReportService) DeleteEntry(ctx context.Context, entryID, userID string) error {
	if err := s.entries.Delete(ctx, entryID, userID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Str("entry_id", entryID).Msg("entry deleted")
	return nil
}

// joinCategories resolves category references with a single list query
// instead of one lookup per entry.
func (s *ReportService) joinCategories(ctx context.Context, userID string, entries []*domain.TimeEntry) error {
	needed := false
	for _, e := range entries {
		if e.CategoryID != "" {
			needed = true
			break
		}
	}
	if !needed {
		return nil
	}

	categories, err := s.categories.List(ctx, userID)
	if err != nil {
		return fmt.Errorf("join categories: %w", err)
	}

	byID := make(map[string]*domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	for _, e := range entries {
		if e.CategoryID != "" {
			e.Category = byID[e.CategoryID]
		}
	}
	return nil
}
