package ports

import (
	"context"

	"github.com/workmania/timetrack/internal/core/domain"
)

// TimerState is the observable state of a user's timer: either idle, or
// running with the elapsed seconds reconstructed from the entry's start time.
type TimerState struct {
	Running        bool
	Entry          *domain.TimeEntry
	ElapsedSeconds int64
	// Debounced is true when a Toggle was suppressed because another
	// start/stop for the same user was still in flight.
	Debounced bool
}

// StartInput carries the parameters for starting a timer.
type StartInput struct {
	UserID      string
	Description string
	CategoryID  string
}

// StopInput closes a running entry. ElapsedSeconds is the client's locally
// ticked counter and is stored verbatim, preserving exactly what the user saw.
type StopInput struct {
	UserID         string
	EntryID        string
	ElapsedSeconds int64
}

// ToggleInput starts or stops depending on the current state. ElapsedSeconds
// may be nil when the caller has no local counter; the service then derives
// the duration from the entry's start time.
type ToggleInput struct {
	UserID         string
	Description    string
	CategoryID     string
	ElapsedSeconds *int64
}

// TimerService owns the timer lifecycle: at most one open entry per user.
type TimerService interface {
	// Resume reconstructs the timer state after a page reload or client
	// restart. Idempotent: repeated calls with no intervening start/stop
	// observe the same state.
	Resume(ctx context.Context, userID string) (*TimerState, error)
	Start(ctx context.Context, input StartInput) (*domain.TimeEntry, error)
	Stop(ctx context.Context, input StopInput) (*domain.TimeEntry, error)
	Toggle(ctx context.Context, input ToggleInput) (*TimerState, error)
}
