package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/workmania/timetrack/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"timer running", domain.ErrTimerAlreadyRunning, http.StatusConflict, "timer already running"},
		{"category in use", domain.ErrCategoryInUse, http.StatusConflict, "category in use"},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{"entry missing", domain.ErrEntryNotFound, http.StatusNotFound, "time entry not found"},
		{"category missing", domain.ErrCategoryNotFound, http.StatusNotFound, "category not found"},
		{"unknown employee", domain.ErrUserNotFound, http.StatusUnauthorized, "unknown employee code"},
		{"invalid session", domain.ErrInvalidSession, http.StatusUnauthorized, "invalid session"},
		{"wrapped domain error", fmt.Errorf("stop: %w", domain.ErrEntryNotFound), http.StatusNotFound, "time entry not found"},
		{"invalid input keeps detail", fmt.Errorf("%w: duration must be non-negative", domain.ErrInvalidInput), http.StatusBadRequest, "invalid input: duration must be non-negative"},
		{"echo error passthrough", echo.NewHTTPError(http.StatusTeapot, "teapot"), http.StatusTeapot, "teapot"},
		{"unexpected error hidden", errors.New("mongo exploded"), http.StatusInternalServerError, "internal server error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/v1/report", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Errorf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var resp struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid envelope %q: %v", rec.Body.String(), err)
			}
			if resp.Error != tc.wantMsg {
				t.Errorf("expected message %q, got %q", tc.wantMsg, resp.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponseUntouched(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if err := c.NoContent(http.StatusOK); err != nil {
		t.Fatal(err)
	}

	handler(errors.New("late error"), c)

	if rec.Code != http.StatusOK {
		t.Errorf("a committed response must not be rewritten, got %d", rec.Code)
	}
}
