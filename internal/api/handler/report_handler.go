package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/workmania/timetrack/internal/api/metrics"
	"github.com/workmania/timetrack/internal/core/domain"
	"github.com/workmania/timetrack/internal/core/ports"
)

// ReportHandler serves the aggregated dashboard view.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

type chartSliceResponse struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Color string `json:"color"`
}

type logRowResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Category        string `json:"category"`
	Time            string `json:"time"`
	Date            string `json:"date"`
	Color           string `json:"color"`
	DurationSeconds int64  `json:"duration"`
}

type reportResponse struct {
	Range        string               `json:"range"`
	TotalSeconds int64                `json:"total_seconds"`
	TotalTime    string               `json:"total_time"`
	Chart        []chartSliceResponse `json:"chart"`
	Logs         []logRowResponse     `json:"logs"`
}

// Get handles GET /v1/report?range=today|week|month|all.
//
// @Summary      Aggregated report for a range
// @Tags         report
// @Produce      json
// @Param        range  query     string  false  "today (default), week, month, or all"
// @Success      200    {object}  reportResponse
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /v1/report [get]
func (h *ReportHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	rng, err := domain.ParseRange(c.QueryParam("range"))
	if err != nil {
		return err
	}

	timer := prometheus.NewTimer(metrics.ReportBuildDuration.WithLabelValues(string(rng)))
	report, err := h.service.BuildReport(c.Request().Context(), userID, rng)
	timer.ObserveDuration()
	if err != nil {
		return err
	}
	metrics.ReportRequestsTotal.WithLabelValues(string(rng)).Inc()

	resp := reportResponse{
		Range:        string(report.Range),
		TotalSeconds: report.TotalSeconds,
		TotalTime:    report.TotalTime,
		Chart:        make([]chartSliceResponse, 0, len(report.Chart)),
		Logs:         make([]logRowResponse, 0, len(report.Logs)),
	}
	for _, s := range report.Chart {
		resp.Chart = append(resp.Chart, chartSliceResponse{Name: s.Name, Value: s.Value, Color: s.Color})
	}
	for _, row := range report.Logs {
		resp.Logs = append(resp.Logs, logRowResponse{
			ID:              row.ID,
			Title:           row.Title,
			Category:        row.Category,
			Time:            row.Time,
			Date:            row.Date,
			Color:           row.Color,
			DurationSeconds: row.DurationSeconds,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
