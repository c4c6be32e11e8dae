package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	h "volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/delivery/http/middleware"
	"volunteerhub/internal/domain"
)

// AvailabilitySlotRequest is one availability entry in a profile request.
type AvailabilitySlotRequest struct {
	Date time.Time `json:"date"`
	Time string    `json:"time"`
}

// PutProfileRequest is the request body for PUT /profile. It creates the
// profile on first call and replaces it afterwards.
type PutProfileRequest struct {
	Address      string                    `json:"address"`
	City         string                    `json:"city"`
	StateCode    string                    `json:"state_code"`
	ZipCode      string                    `json:"zip_code"`
	Skills       []string                  `json:"skills"`
	Preferences  string                    `json:"preferences"`
	Availability []AvailabilitySlotRequest `json:"availability"`
}

// Validate implements Validator.
func (p PutProfileRequest) Validate() []string {
	var errs []string
	if len(p.Skills) == 0 {
		errs = append(errs, "at least one skill is required")
	}
	if len(p.Availability) == 0 {
		errs = append(errs, "at least one availability slot is required")
	}
	for _, slot := range p.Availability {
		if slot.Date.IsZero() || slot.Time == "" {
			errs = append(errs, "availability slots need date and time")
			break
		}
	}
	return errs
}

func (p PutProfileRequest) toDomain(userID string) *domain.VolunteerProfile {
	slots := make([]domain.AvailabilitySlot, 0, len(p.Availability))
	for _, s := range p.Availability {
		slots = append(slots, domain.AvailabilitySlot{Date: s.Date, TimeOfDay: s.Time})
	}
	return &domain.VolunteerProfile{
		UserID:       userID,
		Address:      p.Address,
		City:         p.City,
		StateCode:    p.StateCode,
		ZipCode:      p.ZipCode,
		Skills:       p.Skills,
		Preferences:  p.Preferences,
		Availability: slots,
	}
}

type ProfileController struct {
	Logger  *slog.Logger
	Service domain.ProfileService
}

func NewProfileController(logger *slog.Logger, svc domain.ProfileService) *ProfileController {
	return &ProfileController{Logger: logger, Service: svc}
}

// Get godoc
// @Summary Get my volunteer profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the profile"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile [get]
func (c *ProfileController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	profile, err := c.Service.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "profile not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, profile)
}

// Put godoc
// @Summary Create or replace my volunteer profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body PutProfileRequest true "Profile data"
// @Success 200 {object} helpers.APIResponse "data contains the stored profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile [put]
func (c *ProfileController) Put(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req PutProfileRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	profile := req.toDomain(userID)

	err := c.Service.Update(r.Context(), profile)
	if errors.Is(err, domain.ErrProfileNotFound) {
		err = c.Service.Create(r.Context(), profile)
	}
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, profile)
}
