package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/workmania/timetrack/internal/core/domain"
	"github.com/workmania/timetrack/internal/core/ports"
)

// ToggleGuard abstracts the per-user in-flight lock (Redis) that debounces
// rapid repeated Toggle calls such as key-repeat.
type ToggleGuard interface {
	// Acquire returns false when another toggle for the user is in flight.
	Acquire(ctx context.Context, userID string) (bool, error)
	Release(ctx context.Context, userID string) error
}

// TimerService implements the timer state machine. The single-open-entry
// invariant lives in the repository's atomic check-and-insert; this layer
// adds defaulting, elapsed-time reconstruction, and toggle composition.
type TimerService struct {
	entries ports.EntryRepository
	guard   ToggleGuard
	now     func() time.Time
	logger  zerolog.Logger
}

func NewTimerService(entries ports.EntryRepository, guard ToggleGuard, logger zerolog.Logger) *TimerService {
	return &TimerService{
		entries: entries,
		guard:   guard,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logger,
	}
}

// Resume reconstructs the timer state from storage. This is how a running
// timer survives a reload: nothing durable lives on the client.
func (s *TimerService) Resume(ctx context.Context, userID string) (*ports.TimerState, error) {
	entry, err := s.entries.FindOpen(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoOpenEntry) {
			return &ports.TimerState{Running: false}, nil
		}
		return nil, fmt.Errorf("resume: %w", err)
	}

	return &ports.TimerState{
		Running:        true,
		Entry:          entry,
		ElapsedSeconds: entry.ElapsedSince(s.now()),
	}, nil
}

// Start opens a new entry. Fails with ErrTimerAlreadyRunning when the user
// already has an open entry, including under concurrent calls.
func (s *TimerService) Start(ctx context.Context, input ports.StartInput) (*domain.TimeEntry, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = domain.DefaultDescription
	}

	entry := &domain.TimeEntry{
		UserID:      input.UserID,
		StartTime:   s.now(),
		Description: description,
		CategoryID:  input.CategoryID,
	}

	if err := s.entries.CreateOpen(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrTimerAlreadyRunning) {
			s.logger.Warn().Str("user_id", input.UserID).Msg("start rejected: timer already running")
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", input.UserID).Str("entry_id", entry.ID).Msg("timer started")
	return entry, nil
}

// Stop closes the entry with the client's locally ticked elapsed seconds.
// The counter is stored verbatim rather than recomputed so the record matches
// exactly what the user observed.
func (s *TimerService) Stop(ctx context.Context, input ports.StopInput) (*domain.TimeEntry, error) {
	if input.ElapsedSeconds < 0 {
		return nil, fmt.Errorf("%w: elapsed seconds must be non-negative", domain.ErrInvalidInput)
	}

	closed, err := s.entries.Close(ctx, input.EntryID, input.UserID, s.now(), input.ElapsedSeconds)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", input.UserID).
		Str("entry_id", closed.ID).
		Int64("duration_seconds", closed.DurationSeconds).
		Msg("timer stopped")
	return closed, nil
}

// Toggle stops the running timer or starts a new one. While a toggle for the
// same user is in flight the call is a no-op that reports the current state,
// so a burst of invocations cannot produce two open entries or a spurious
// immediate stop.
func (s *TimerService) Toggle(ctx context.Context, input ports.ToggleInput) (*ports.TimerState, error) {
	acquired, err := s.guard.Acquire(ctx, input.UserID)
	if err != nil {
		// The guard is a debounce aid, not the correctness boundary; the
		// repository still rejects a second open entry.
		s.logger.Warn().Err(err).Str("user_id", input.UserID).Msg("toggle guard unavailable, proceeding")
	} else if !acquired {
		state, err := s.Resume(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		state.Debounced = true
		return state, nil
	} else {
		defer func() {
			if relErr := s.guard.Release(ctx, input.UserID); relErr != nil {
				s.logger.Warn().Err(relErr).Str("user_id", input.UserID).Msg("toggle guard release failed")
			}
		}()
	}

	open, err := s.entries.FindOpen(ctx, input.UserID)
	if err != nil && !errors.Is(err, domain.ErrNoOpenEntry) {
		return nil, fmt.Errorf("toggle: %w", err)
	}

	if open != nil {
		elapsed := open.ElapsedSince(s.now())
		if input.ElapsedSeconds != nil {
			elapsed = *input.ElapsedSeconds
		}
		closed, err := s.Stop(ctx, ports.StopInput{
			UserID:         input.UserID,
			EntryID:        open.ID,
			ElapsedSeconds: elapsed,
		})
		if err != nil {
			return nil, err
		}
		return &ports.TimerState{Running: false, Entry: closed}, nil
	}

	started, err := s.Start(ctx, ports.StartInput{
		UserID:      input.UserID,
		Description: input.Description,
		CategoryID:  input.CategoryID,
	})
	if err != nil {
		return nil, err
	}
	return &ports.TimerState{Running: true, Entry: started}, nil
}
