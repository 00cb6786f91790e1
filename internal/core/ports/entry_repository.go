package ports

import (
	"context"
	"time"

	"github.com/workmania/timetrack/internal/core/domain"
)

// EntryPatch carries a partial update for a closed entry. Nil fields are left
// untouched. CategoryID present-but-empty clears the category reference.
type EntryPatch struct {
	EndTime         *time.Time
	DurationSeconds *int64
	Description     *string
	CategoryID      *string
}

// Empty reports whether the patch carries no fields at all.
func (p EntryPatch) Empty() bool {
	return p.EndTime == nil && p.DurationSeconds == nil && p.Description == nil && p.CategoryID == nil
}

// EntryRepository defines persistence operations for time entries. Every
// operation is scoped by userID; an entry owned by another user behaves
// exactly like a missing one.
type EntryRepository interface {
	// CreateOpen inserts a new open entry (end_time null) and fills in its ID.
	// The insert and the "no other open entry" check are a single atomic unit:
	// a second open entry for the same user fails with ErrTimerAlreadyRunning.
	CreateOpen(ctx context.Context, entry *domain.TimeEntry) error
	// FindOpen returns the user's running entry, or ErrNoOpenEntry.
	FindOpen(ctx context.Context, userID string) (*domain.TimeEntry, error)
	// Close sets end_time and duration on the user's open entry with the given
	// id. Fails with ErrEntryNotFound when the entry is missing, closed, or
	// owned by someone else.
	Close(ctx context.Context, entryID, userID string, endTime time.Time, durationSeconds int64) (*domain.TimeEntry, error)
	// ListClosed returns the user's closed entries ordered by end_time
	// descending, optionally bounded by start_time >= startAfter.
	ListClosed(ctx context.Context, userID string, startAfter *time.Time) ([]*domain.TimeEntry, error)
	Update(ctx context.Context, entryID, userID string, patch EntryPatch) (*domain.TimeEntry, error)
	Delete(ctx context.Context, entryID, userID string) error
	// CountByCategory reports how many entries still reference a category.
	CountByCategory(ctx context.Context, userID, categoryID string) (int64, error)
}
