package controllers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	h "volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/domain"
	"volunteerhub/internal/services"
)

type ReportController struct {
	Logger  *slog.Logger
	Service services.ReportService
}

func NewReportController(logger *slog.Logger, svc services.ReportService) *ReportController {
	return &ReportController{Logger: logger, Service: svc}
}

// VolunteerHistory godoc
// @Summary Export the volunteer history report
// @Description One row per participation across all volunteers. Admin only.
// @Tags reports
// @Produce text/csv
// @Security BearerAuth
// @Param format query string false "csv (default) or xlsx"
// @Success 200 {file} file "report file"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reports/volunteer-history [get]
func (c *ReportController) VolunteerHistory(w http.ResponseWriter, r *http.Request) {
	c.export(w, r, c.Service.VolunteerHistory)
}

// EventAssignments godoc
// @Summary Export the event assignments report
// @Description One row per non-cancelled (event, volunteer) assignment. Admin only.
// @Tags reports
// @Produce text/csv
// @Security BearerAuth
// @Param format query string false "csv (default) or xlsx"
// @Success 200 {file} file "report file"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reports/event-assignments [get]
func (c *ReportController) EventAssignments(w http.ResponseWriter, r *http.Request) {
	c.export(w, r, c.Service.EventAssignments)
}

func (c *ReportController) export(w http.ResponseWriter, r *http.Request,
	generate func(ctx context.Context, format string) ([]byte, string, string, error)) {
	format := r.URL.Query().Get("format")
	data, contentType, filename, err := generate(r.Context(), format)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
