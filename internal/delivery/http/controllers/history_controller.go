package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/delivery/http/middleware"
	"volunteerhub/internal/domain"
)

// UpdateParticipationStatusRequest is the request body for
// PUT /history/events/{eventID}/status. VolunteerID may only be set by
// admins; volunteers update their own record.
type UpdateParticipationStatusRequest struct {
	VolunteerID string `json:"volunteer_id"`
	Status      string `json:"status"`
}

// Validate implements Validator.
func (u UpdateParticipationStatusRequest) Validate() []string {
	switch u.Status {
	case domain.ParticipationPending, domain.ParticipationConfirmed,
		domain.ParticipationCompleted, domain.ParticipationCancelled,
		domain.ParticipationNoShow:
		return nil
	case "":
		return []string{"status is required"}
	default:
		return []string{"unknown status"}
	}
}

type HistoryController struct {
	Logger  *slog.Logger
	Service domain.ParticipationService
	IDs     *PublicIDs
}

func NewHistoryController(logger *slog.Logger, svc domain.ParticipationService, ids *PublicIDs) *HistoryController {
	return &HistoryController{Logger: logger, Service: svc, IDs: ids}
}

func (c *HistoryController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
}

// Participate godoc
// @Summary Join an event
// @Description Records a pending participation for the authenticated volunteer.
// @Tags history
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 201 {object} helpers.APIResponse "data contains the participation"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /history/events/{eventID}/participation [post]
func (c *HistoryController) Participate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	eventKey, ok := c.IDs.ResolvePath(w, r, "eventID")
	if !ok {
		return
	}
	participation, err := c.Service.Participate(r.Context(), userID, eventKey)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyParticipating):
			h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "already participating in this event")
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
		default:
			c.internalError(w, r, err)
		}
		return
	}
	if err := c.IDs.FillParticipation(r.Context(), participation); err != nil {
		c.internalError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, participation)
}

// UpdateStatus godoc
// @Summary Update a participation status
// @Description Applies a transition in the participation lifecycle. Volunteers update their own record; admins may name another volunteer in the body.
// @Tags history
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param body body UpdateParticipationStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse "data contains the updated participation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /history/events/{eventID}/status [put]
func (c *HistoryController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	eventKey, ok := c.IDs.ResolvePath(w, r, "eventID")
	if !ok {
		return
	}
	var req UpdateParticipationStatusRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	volunteerID := userID
	if req.VolunteerID != "" && req.VolunteerID != userID {
		if !middleware.HasRole(r.Context(), domain.RoleAdmin) {
			h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "cannot update another volunteer's participation")
			return
		}
		volunteerID = req.VolunteerID
	}
	participation, err := c.Service.UpdateStatus(r.Context(), volunteerID, eventKey, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrParticipationNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "participation not found")
		case errors.Is(err, domain.ErrInvalidTransition):
			h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, err.Error())
		default:
			c.internalError(w, r, err)
		}
		return
	}
	if err := c.IDs.FillParticipation(r.Context(), participation); err != nil {
		c.internalError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, participation)
}

// Me godoc
// @Summary Get my participation history
// @Tags history
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains participations"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /history/me [get]
func (c *HistoryController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	history, err := c.Service.GetHistory(r.Context(), userID)
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	if err := c.IDs.FillParticipations(r.Context(), history); err != nil {
		c.internalError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, history)
}

// ListAll godoc
// @Summary List all participations
// @Description Admin only.
// @Tags history
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains participations"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /history [get]
func (c *HistoryController) ListAll(w http.ResponseWriter, r *http.Request) {
	all, err := c.Service.ListAll(r.Context())
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	if err := c.IDs.FillParticipations(r.Context(), all); err != nil {
		c.internalError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, all)
}

// MyStats godoc
// @Summary Get my volunteer statistics
// @Tags history
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the stats"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /history/stats [get]
func (c *HistoryController) MyStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	c.writeStats(w, r, userID)
}

// StatsFor godoc
// @Summary Get a volunteer's statistics
// @Description Admin only.
// @Tags history
// @Produce json
// @Security BearerAuth
// @Param userID path string true "Volunteer user ID"
// @Success 200 {object} helpers.APIResponse "data contains the stats"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /history/stats/{userID} [get]
func (c *HistoryController) StatsFor(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing userID")
		return
	}
	c.writeStats(w, r, userID)
}

func (c *HistoryController) writeStats(w http.ResponseWriter, r *http.Request, userID string) {
	stats, err := c.Service.GetStats(r.Context(), userID)
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, stats)
}
