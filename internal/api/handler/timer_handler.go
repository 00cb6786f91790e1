package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workmania/timetrack/internal/api/metrics"
	"github.com/workmania/timetrack/internal/core/domain"
	"github.com/workmania/timetrack/internal/core/ports"
)

// TimerHandler handles the timer lifecycle: resume, start, stop, toggle.
type TimerHandler struct {
	service ports.TimerService
}

func NewTimerHandler(service ports.TimerService) *TimerHandler {
	return &TimerHandler{service: service}
}

// --- Request / Response types ---

type startTimerRequest struct {
	Description string `json:"description" validate:"max=200"`
	CategoryID  string `json:"category_id"`
}

type stopTimerRequest struct {
	ElapsedSeconds int64 `json:"elapsed_seconds" validate:"gte=0"`
}

type toggleTimerRequest struct {
	Description    string `json:"description" validate:"max=200"`
	CategoryID     string `json:"category_id"`
	ElapsedSeconds *int64 `json:"elapsed_seconds,omitempty"`
}

type entryResponse struct {
	ID              string     `json:"id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationSeconds int64      `json:"duration_seconds"`
	Description     string     `json:"description"`
	CategoryID      string     `json:"category_id,omitempty"`
}

type activeTimerResponse struct {
	ActiveEntry *activeEntry `json:"active_entry"`
}

type activeEntry struct {
	ID             string    `json:"id"`
	StartTime      time.Time `json:"start_time"`
	ElapsedSeconds int64     `json:"elapsed_seconds"`
}

type timerStateResponse struct {
	Running        bool           `json:"running"`
	Debounced      bool           `json:"debounced,omitempty"`
	ElapsedSeconds int64          `json:"elapsed_seconds"`
	Entry          *entryResponse `json:"entry,omitempty"`
}

func toEntryResponse(e *domain.TimeEntry) *entryResponse {
	if e == nil {
		return nil
	}
	return &entryResponse{
		ID:              e.ID,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		DurationSeconds: e.DurationSeconds,
		Description:     e.Description,
		CategoryID:      e.CategoryID,
	}
}

// Active handles GET /v1/time-entries/active — the Resume operation. The
// client calls this once on load to reconstruct a running timer.
//
// @Summary      Get the running timer, if any
// @Tags         timer
// @Produce      json
// @Success      200  {object}  activeTimerResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/time-entries/active [get]
func (h *TimerHandler) Active(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	state, err := h.service.Resume(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	resp := activeTimerResponse{}
	if state.Running {
		resp.ActiveEntry = &activeEntry{
			ID:             state.Entry.ID,
			StartTime:      state.Entry.StartTime,
			ElapsedSeconds: state.ElapsedSeconds,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Start handles POST /v1/time-entries.
//
// @Summary      Start a timer
// @Tags         timer
// @Accept       json
// @Produce      json
// @Param        body  body      startTimerRequest  true  "Task description and optional category"
// @Success      201   {object}  entryResponse
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string  "a timer is already running"
// @Router       /v1/time-entries [post]
func (h *TimerHandler) Start(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req startTimerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.service.Start(c.Request().Context(), ports.StartInput{
		UserID:      userID,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		if err == domain.ErrTimerAlreadyRunning {
			metrics.TimerStartConflictsTotal.Inc()
		}
		return err
	}

	metrics.TimersStartedTotal.Inc()
	return c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// Stop handles POST /v1/time-entries/:id/stop. The elapsed seconds are the
// client's locally ticked counter.
//
// @Summary      Stop a running timer
// @Tags         timer
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Entry id"
// @Param        body  body      stopTimerRequest  true  "Locally ticked elapsed seconds"
// @Success      200   {object}  entryResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/time-entries/{id}/stop [post]
func (h *TimerHandler) Stop(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req stopTimerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	closed, err := h.service.Stop(c.Request().Context(), ports.StopInput{
		UserID:         userID,
		EntryID:        c.Param("id"),
		ElapsedSeconds: req.ElapsedSeconds,
	})
	if err != nil {
		return err
	}

	metrics.TimersStoppedTotal.Inc()
	return c.JSON(http.StatusOK, toEntryResponse(closed))
}

// Toggle handles POST /v1/timer/toggle — start when idle, stop when running.
// Debounced server-side: while a start/stop for the user is in flight, the
// call is a no-op reporting the current state.
//
// @Summary      Toggle the timer
// @Tags         timer
// @Accept       json
// @Produce      json
// @Param        body  body      toggleTimerRequest  true  "Description/category for a start, elapsed seconds for a stop"
// @Success      200   {object}  timerStateResponse
// @Failure      401   {object}  map[string]string
// @Router       /v1/timer/toggle [post]
func (h *TimerHandler) Toggle(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req toggleTimerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	state, err := h.service.Toggle(c.Request().Context(), ports.ToggleInput{
		UserID:         userID,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		ElapsedSeconds: req.ElapsedSeconds,
	})
	if err != nil {
		return err
	}

	if state.Debounced {
		metrics.TogglesDebouncedTotal.Inc()
	} else if state.Running {
		metrics.TimersStartedTotal.Inc()
	} else {
		metrics.TimersStoppedTotal.Inc()
	}

	return c.JSON(http.StatusOK, timerStateResponse{
		Running:        state.Running,
		Debounced:      state.Debounced,
		ElapsedSeconds: state.ElapsedSeconds,
		Entry:          toEntryResponse(state.Entry),
	})
}
