package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workmania/timetrack/internal/core/domain"
	"github.com/workmania/timetrack/internal/core/ports"
)

// stubTimerService records the last input and plays back scripted results.
type stubTimerService struct {
	resumeState *ports.TimerState
	startEntry  *domain.TimeEntry
	stopEntry   *domain.TimeEntry
	toggleState *ports.TimerState
	err         error

	lastStart  ports.StartInput
	lastStop   ports.StopInput
	lastToggle ports.ToggleInput
}

func (s *stubTimerService) Resume(_ context.Context, _ string) (*ports.TimerState, error) {
	return s.resumeState, s.err
}

func (s *stubTimerService) Start(_ context.Context, input ports.StartInput) (*domain.TimeEntry, error) {
	s.lastStart = input
	return s.startEntry, s.err
}

func (s *stubTimerService) Stop(_ context.Context, input ports.StopInput) (*domain.TimeEntry, error) {
	s.lastStop = input
	return s.stopEntry, s.err
}

func (s *stubTimerService) Toggle(_ context.Context, input ports.ToggleInput) (*ports.TimerState, error) {
	s.lastToggle = input
	return s.toggleState, s.err
}

func newTimerContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user-1")
	return c, rec
}

func TestTimerHandler_Active_Running(t *testing.T) {
	start := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	svc := &stubTimerService{
		resumeState: &ports.TimerState{
			Running:        true,
			Entry:          &domain.TimeEntry{ID: "entry-1", UserID: "user-1", StartTime: start},
			ElapsedSeconds: 90,
		},
	}
	h := NewTimerHandler(svc)

	c, rec := newTimerContext(t, http.MethodGet, "/v1/time-entries/active", "")
	if err := h.Active(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		ActiveEntry *struct {
			ID             string `json:"id"`
			ElapsedSeconds int64  `json:"elapsed_seconds"`
		} `json:"active_entry"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ActiveEntry == nil || resp.ActiveEntry.ID != "entry-1" || resp.ActiveEntry.ElapsedSeconds != 90 {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestTimerHandler_Active_Idle(t *testing.T) {
	h := NewTimerHandler(&stubTimerService{resumeState: &ports.TimerState{Running: false}})

	c, rec := newTimerContext(t, http.MethodGet, "/v1/time-entries/active", "")
	if err := h.Active(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the idle shape is an explicit null, not a missing key
	if !strings.Contains(rec.Body.String(), `"active_entry":null`) {
		t.Errorf("expected explicit null active_entry, got %s", rec.Body.String())
	}
}

func TestTimerHandler_Start(t *testing.T) {
	svc := &stubTimerService{
		startEntry: &domain.TimeEntry{ID: "entry-1", UserID: "user-1", Description: "meeting"},
	}
	h := NewTimerHandler(svc)

	c, rec := newTimerContext(t, http.MethodPost, "/v1/time-entries", `{"description":"meeting","category_id":"cat-1"}`)
	if err := h.Start(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if svc.lastStart.UserID != "user-1" || svc.lastStart.Description != "meeting" || svc.lastStart.CategoryID != "cat-1" {
		t.Errorf("unexpected service input: %+v", svc.lastStart)
	}
}

func TestTimerHandler_Start_ConflictPropagates(t *testing.T) {
	h := NewTimerHandler(&stubTimerService{err: domain.ErrTimerAlreadyRunning})

	c, _ := newTimerContext(t, http.MethodPost, "/v1/time-entries", `{"description":"x"}`)
	err := h.Start(c)
	if err != domain.ErrTimerAlreadyRunning {
		t.Errorf("expected conflict to propagate to the error handler, got %v", err)
	}
}

func TestTimerHandler_Start_DescriptionTooLong(t *testing.T) {
	h := NewTimerHandler(&stubTimerService{})

	long := strings.Repeat("a", 201)
	c, _ := newTimerContext(t, http.MethodPost, "/v1/time-entries", `{"description":"`+long+`"}`)
	err := h.Start(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestTimerHandler_Start_MissingIdentity(t *testing.T) {
	h := NewTimerHandler(&stubTimerService{})

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/v1/time-entries", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Start(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without session identity, got %v", err)
	}
}

func TestTimerHandler_Stop(t *testing.T) {
	end := time.Date(2026, 3, 4, 13, 0, 0, 0, time.UTC)
	svc := &stubTimerService{
		stopEntry: &domain.TimeEntry{ID: "entry-1", UserID: "user-1", EndTime: &end, DurationSeconds: 123},
	}
	h := NewTimerHandler(svc)

	c, rec := newTimerContext(t, http.MethodPost, "/v1/time-entries/entry-1/stop", `{"elapsed_seconds":123}`)
	c.SetParamNames("id")
	c.SetParamValues("entry-1")

	if err := h.Stop(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if svc.lastStop.EntryID != "entry-1" || svc.lastStop.ElapsedSeconds != 123 {
		t.Errorf("unexpected service input: %+v", svc.lastStop)
	}
}

func TestTimerHandler_Stop_NegativeElapsed(t *testing.T) {
	h := NewTimerHandler(&stubTimerService{})

	c, _ := newTimerContext(t, http.MethodPost, "/v1/time-entries/entry-1/stop", `{"elapsed_seconds":-1}`)
	c.SetParamNames("id")
	c.SetParamValues("entry-1")

	err := h.Stop(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestTimerHandler_Toggle_ForwardsElapsedCounter(t *testing.T) {
	svc := &stubTimerService{
		toggleState: &ports.TimerState{
			Running: false,
			Entry:   &domain.TimeEntry{ID: "entry-1", DurationSeconds: 55},
		},
	}
	h := NewTimerHandler(svc)

	c, rec := newTimerContext(t, http.MethodPost, "/v1/timer/toggle", `{"elapsed_seconds":55}`)
	if err := h.Toggle(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if svc.lastToggle.ElapsedSeconds == nil || *svc.lastToggle.ElapsedSeconds != 55 {
		t.Errorf("expected forwarded counter 55, got %+v", svc.lastToggle.ElapsedSeconds)
	}
}

func TestTimerHandler_Toggle_OmittedCounterStaysNil(t *testing.T) {
	svc := &stubTimerService{
		toggleState: &ports.TimerState{Running: true, Entry: &domain.TimeEntry{ID: "entry-1"}},
	}
	h := NewTimerHandler(svc)

	c, _ := newTimerContext(t, http.MethodPost, "/v1/timer/toggle", `{"description":"x"}`)
	if err := h.Toggle(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.lastToggle.ElapsedSeconds != nil {
		t.Errorf("absent counter must stay nil, got %v", *svc.lastToggle.ElapsedSeconds)
	}
}

func TestTimerHandler_Toggle_DebouncedShape(t *testing.T) {
	svc := &stubTimerService{
		toggleState: &ports.TimerState{
			Running:        true,
			Debounced:      true,
			Entry:          &domain.TimeEntry{ID: "entry-1"},
			ElapsedSeconds: 10,
		},
	}
	h := NewTimerHandler(svc)

	c, rec := newTimerContext(t, http.MethodPost, "/v1/timer/toggle", `{}`)
	if err := h.Toggle(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Running   bool `json:"running"`
		Debounced bool `json:"debounced"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Debounced || !resp.Running {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
