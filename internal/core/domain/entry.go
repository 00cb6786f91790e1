package domain

import (
	"errors"
	"time"
)

// DefaultDescription is stored when a timer is started with an empty description.
const DefaultDescription = "Untitled Task"

var ErrTimerAlreadyRunning = errors.New("timer already running")
var ErrNoOpenEntry = errors.New("no open entry")
var ErrEntryNotFound = errors.New("time entry not found")
var ErrCategoryNotFound = errors.New("category not found")
var ErrCategoryInUse = errors.New("category in use")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidSession = errors.New("invalid session")
var ErrInvalidInput = errors.New("invalid input")

// TimeEntry is the core aggregate. An entry is open (timer running) while
// EndTime is nil, and closed once Stop sets EndTime and DurationSeconds.
// Invariant: a user has at most one open entry at any time; the storage layer
// enforces this with a partial unique index so concurrent starts cannot race.
type TimeEntry struct {
	ID              string     `json:"id" bson:"_id,omitempty"`
	UserID          string     `json:"user_id" bson:"user_id"`
	StartTime       time.Time  `json:"start_time" bson:"start_time"`
	EndTime         *time.Time `json:"end_time" bson:"end_time"`
	DurationSeconds int64      `json:"duration_seconds" bson:"duration_seconds"`
	Description     string     `json:"description" bson:"description"`
	CategoryID      string     `json:"category_id,omitempty" bson:"category_id,omitempty"`

	// Category is populated by the service layer when entries are listed
	// joined with their category. Never persisted on the entry document.
	Category *Category `json:"category,omitempty" bson:"-"`
}

// Open reports whether the entry represents a running timer.
func (e *TimeEntry) Open() bool {
	return e.EndTime == nil
}

// ElapsedSince returns the whole seconds elapsed between StartTime and now,
// clamped to zero to tolerate clock skew between client and server.
func (e *TimeEntry) ElapsedSince(now time.Time) int64 {
	elapsed := int64(now.Sub(e.StartTime) / time.Second)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Category groups time entries for reporting. Archived categories are hidden
// from new-entry selection but remain valid references on historical entries.
type Category struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	UserID     string    `json:"user_id" bson:"user_id"`
	Name       string    `json:"name" bson:"name"`
	Color      string    `json:"color" bson:"color"`
	IsArchived bool      `json:"is_archived" bson:"is_archived"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
