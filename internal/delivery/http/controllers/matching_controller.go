package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/delivery/http/middleware"
	"volunteerhub/internal/domain"
)

// SignupRequest is the request body for POST and DELETE /matching/signups.
// EventID is the event's public numeric id.
type SignupRequest struct {
	EventID int64 `json:"event_id"`
}

// Validate implements Validator.
func (s SignupRequest) Validate() []string {
	if s.EventID <= 0 {
		return []string{"event_id is required"}
	}
	return nil
}

// AssignRequest is the request body for POST /matching/events/{eventID}/assign.
type AssignRequest struct {
	VolunteerID string `json:"volunteer_id"`
}

// Validate implements Validator.
func (a AssignRequest) Validate() []string {
	if a.VolunteerID == "" {
		return []string{"volunteer_id is required"}
	}
	return nil
}

type MatchingController struct {
	Logger        *slog.Logger
	Service       domain.MatchingService
	Participation domain.ParticipationService
	IDs           *PublicIDs
}

func NewMatchingController(logger *slog.Logger, svc domain.MatchingService, participation domain.ParticipationService, ids *PublicIDs) *MatchingController {
	return &MatchingController{Logger: logger, Service: svc, Participation: participation, IDs: ids}
}

func (c *MatchingController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
}

// resolveEventBody translates the numeric event id in a signup body.
func (c *MatchingController) resolveEventBody(w http.ResponseWriter, r *http.Request, externalID int64) (string, bool) {
	key, err := c.IDs.resolver.Resolve(r.Context(), externalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
			return "", false
		}
		c.internalError(w, r, err)
		return "", false
	}
	return key, true
}

// Signup godoc
// @Summary Sign up for an event
// @Description Creates a pending signup for the authenticated volunteer.
// @Tags matching
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SignupRequest true "Event reference"
// @Success 201 {object} helpers.APIResponse "data contains the signup"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /matching/signups [post]
func (c *MatchingController) Signup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SignupRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	eventKey, ok := c.resolveEventBody(w, r, req.EventID)
	if !ok {
		return
	}
	signup, err := c.Service.SignupForEvent(r.Context(), userID, eventKey)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadySignedUp):
			h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "already signed up for this event")
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
		default:
			c.internalError(w, r, err)
		}
		return
	}
	if err := c.IDs.FillSignup(r.Context(), signup); err != nil {
		c.internalError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, signup)
}

// CancelSignup godoc
// @Summary Cancel my active signup for an event
// @Tags matching
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SignupRequest true "Event reference"
// @Success 200 {object} helpers.APIResponse "data contains cancelled: true"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /matching/signups [delete]
func (c *MatchingController) CancelSignup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SignupRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	eventKey, ok := c.resolveEventBody(w, r, req.EventID)
	if !ok {
		return
	}
	if err := c.Service.CancelSignup(r.Context(), userID, eventKey); err != nil {
		if errors.Is(err, domain.ErrSignupNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "no active signup for this event")
			return
		}
		c.internalError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"cancelled": true})
}

// ListEventSignups godoc
// @Summary List active signups for an event
// @Tags matching
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains signups"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /matching/events/{eventID} [get]
func (c *MatchingController) ListEventSignups(w http.ResponseWriter, r *http.Request) {
	eventKey, ok := c.IDs.ResolvePath(w, r, "eventID")
	if !ok {
		return
	}
	signups, err := c.Service.ListSignupsForEvent(r.Context(), eventKey)
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	if err := c.IDs.FillSignups(r.Context(), signups); err != nil {
		c.internalError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, signups)
}

// ListVolunteerSignups godoc
// @Summary List a volunteer's active signups
// @Tags matching
// @Produce json
// @Security BearerAuth
// @Param volunteerID path string true "Volunteer user ID"
// @Success 200 {object} helpers.APIResponse "data contains signups"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /matching/volunteers/{volunteerID} [get]
func (c *MatchingController) ListVolunteerSignups(w http.ResponseWriter, r *http.Request) {
	volunteerID := r.PathValue("volunteerID")
	if volunteerID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing volunteerID")
		return
	}
	signups, err := c.Service.ListSignupsForVolunteer(r.Context(), volunteerID)
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	if err := c.IDs.FillSignups(r.Context(), signups); err != nil {
		c.internalError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, signups)
}

// AutoMatch godoc
// @Summary Rank candidate volunteers for an event
// @Description Pure read: returns ranked candidates without creating signups or participations. Admin only.
// @Tags matching
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains ranked candidates"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /matching/events/{eventID}/auto-match [post]
func (c *MatchingController) AutoMatch(w http.ResponseWriter, r *http.Request) {
	eventKey, ok := c.IDs.ResolvePath(w, r, "eventID")
	if !ok {
		return
	}
	candidates, err := c.Service.AutoMatch(r.Context(), eventKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
			return
		}
		c.internalError(w, r, err)
		return
	}
	if candidates == nil {
		candidates = []*domain.MatchCandidate{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, candidates)
}

// Assign godoc
// @Summary Assign a volunteer to an event
// @Description Creates a confirmed participation, bypassing signup. Admin only.
// @Tags matching
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param body body AssignRequest true "Volunteer reference"
// @Success 201 {object} helpers.APIResponse "data contains the participation"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /matching/events/{eventID}/assign [post]
func (c *MatchingController) Assign(w http.ResponseWriter, r *http.Request) {
	eventKey, ok := c.IDs.ResolvePath(w, r, "eventID")
	if !ok {
		return
	}
	var req AssignRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	participation, err := c.Participation.Assign(r.Context(), req.VolunteerID, eventKey)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyParticipating):
			h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "volunteer already participating in this event")
		case errors.Is(err, domain.ErrUserNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "volunteer not found")
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
