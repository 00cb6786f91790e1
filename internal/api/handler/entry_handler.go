package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workmania/timetrack/internal/api/metrics"
	"github.com/workmania/timetrack/internal/core/domain"
	"github.com/workmania/timetrack/internal/core/ports"
)

// EntryHandler handles the closed-entry log: list, edit, delete.
type EntryHandler struct {
	service ports.ReportService
}

func NewEntryHandler(service ports.ReportService) *EntryHandler {
	return &EntryHandler{service: service}
}

// --- Request / Response types ---

type categoryRefResponse struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type listedEntryResponse struct {
	ID              string               `json:"id"`
	StartTime       time.Time            `json:"start_time"`
	EndTime         *time.Time           `json:"end_time"`
	DurationSeconds int64                `json:"duration_seconds"`
	Description     string               `json:"description"`
	CategoryID      string               `json:"category_id,omitempty"`
	Category        *categoryRefResponse `json:"category"`
}

// updateEntryRequest is a partial edit: absent fields stay untouched.
// Pointer fields distinguish "not sent" from a zero value; category_id may be
// sent as an empty string to clear the reference.
type updateEntryRequest struct {
	EndTime         *time.Time `json:"end_time"`
	DurationSeconds *int64     `json:"duration_seconds"`
	Description     *string    `json:"description"`
	CategoryID      *string    `json:"category_id"`
}

func toListedEntryResponse(e *domain.TimeEntry) listedEntryResponse {
	resp := listedEntryResponse{
		ID:              e.ID,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		DurationSeconds: e.DurationSeconds,
		Description:     e.Description,
		CategoryID:      e.CategoryID,
	}
	if e.Category != nil {
		resp.Category = &categoryRefResponse{Name: e.Category.Name, Color: e.Category.Color}
	}
	return resp
}

// List handles GET /v1/time-entries?range=today|week|month|all.
//
// @Summary      List closed entries for a range
// @Tags         entries
// @Produce      json
// @Param        range  query     string  false  "today (default), week, month, or all"
// @Success      200    {array}   listedEntryResponse
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /v1/time-entries [get]
func (h *EntryHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	rng, err := domain.ParseRange(c.QueryParam("range"))
	if err != nil {
		return err
	}

	entries, err := h.service.ListEntries(c.Request().Context(), userID, rng)
	if err != nil {
		return err
	}

	resp := make([]listedEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toListedEntryResponse(e))
	}
	return c.JSON(http.StatusOK, resp)
}

// Update handles PATCH /v1/time-entries/:id.
//
// @Summary      Edit a closed entry
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Entry id"
// @Param        body  body      updateEntryRequest  true  "Fields to change"
// @Success      200   {object}  listedEntryResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/time-entries/{id} [patch]
func (h *EntryHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.service.UpdateEntry(c.Request().Context(), ports.UpdateEntryInput{
		UserID:  userID,
		EntryID: c.Param("id"),
		Patch: ports.EntryPatch{
			EndTime:         req.EndTime,
			DurationSeconds: req.DurationSeconds,
			Description:     req.Description,
			CategoryID:      req.CategoryID,
		},
	})
	if err != nil {
		return err
	}

	metrics.EntriesEditedTotal.Inc()
	return c.JSON(http.StatusOK, toListedEntryResponse(updated))
}

// Delete handles DELETE /v1/time-entries/:id.
//
// @Summary      Delete an entry
// @Tags         entries
// @Produce      json
// @Param        id  path      string  true  "Entry id"
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/time-entries/{id} [delete]
func (h *EntryHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteEntry(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}

	metrics.EntriesDeletedTotal.Inc()
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
