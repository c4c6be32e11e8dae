package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	RequiredSkills []string  `json:"required_skills"`
	Urgency        string    `json:"urgency"`
	EventDate      time.Time `json:"event_date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	Location       string    `json:"location"`
	Capacity       int       `json:"capacity"`
}

// Validate implements Validator. Field-level rules (lengths, vocabulary,
// time ordering) are enforced by the service; only shape checks live here.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.Category) == "" {
		errs = append(errs, "category is required")
	}
	if c.EventDate.IsZero() {
		errs = append(errs, "event_date is required")
	}
	if c.StartTime == "" || c.EndTime == "" {
		errs = append(errs, "start_time and end_time are required")
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}.
// All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Category       *string    `json:"category"`
	RequiredSkills *[]string  `json:"required_skills"`
	Urgency        *string    `json:"urgency"`
	EventDate      *time.Time `json:"event_date"`
	StartTime      *string    `json:"start_time"`
	EndTime        *string    `json:"end_time"`
	Location       *string    `json:"location"`
	Capacity       *int       `json:"capacity"`
	Status         *string    `json:"status"`
}

// EventListResponse is the response body for GET /events.
type EventListResponse struct {
	Events []*domain.Event  `json:"events"`
	Meta   h.PaginationMeta `json:"meta"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
	IDs     *PublicIDs
}

func NewEventController(logger *slog.Logger, svc domain.EventService, ids *PublicIDs) *EventController {
	return &EventController{Logger: logger, Service: svc, IDs: ids}
}

func (c *EventController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
}

// Create godoc
// @Summary Create an event
// @Description Create a new volunteer event. Status starts as "open". Admin only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event := &domain.Event{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		RequiredSkills: req.RequiredSkills,
		Urgency:        req.Urgency,
		EventDate:      req.EventDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Location:       req.Location,
		Capacity:       req.Capacity,
	}
	if err := c.Service.Create(r.Context(), event); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.internalError(w, r, err)
		return
	}
	if err := c.IDs.FillEvent(r.Context(), event); err != nil {
		c.internalError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, event)
}

// Get godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	key, ok := c.IDs.ResolvePath(w, r, "eventID")
	if !ok {
		return
	}
	event, err := c.Service.GetByID(r.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
			return
		}
		c.internalError(w, r, err)
		return
	}
	if err := c.IDs.FillEvent(r.Context(), event); err != nil {
		c.internalError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// List godoc
// @Summary List events
// @Description Paginated event listing with optional search, category, and status filters.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search in title and description"
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by status (open, closed, cancelled)"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains events and meta"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.EventFilter{
		Search:           q.Get("search"),
		Category:         q.Get("category"),
		Status:           q.Get("status"),
		PaginationParams: h.ParsePagination(r),
	}
	events, total, err := c.Service.List(r.Context(), filter)
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	if err := c.IDs.FillEvents(r.Context(), events); err != nil {
		c.internalError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, EventListResponse{
		Events: events,
		Meta:   h.NewPaginationMeta(filter.Page, filter.PageSize, total),
	})
}

// Update godoc
// @Summary Update an event
// @Description Partial update; omitted fields are unchanged. Admin only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param event body UpdateEventRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	key, ok := c.IDs.ResolvePath(w, r, "eventID")
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	update := &domain.EventUpdate{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		RequiredSkills: req.RequiredSkills,
		Urgency:        req.Urgency,
		EventDate:      req.EventDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Location:       req.Location,
		Capacity:       req.Capacity,
		Status:         req.Status,
	}
	event, err := c.Service.Update(r.Context(), key, update)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrInvalidInput):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		default:
			c.internalError(w, r, err)
		}
		return
	}
	if err := c.IDs.FillEvent(r.Context(), event); err != nil {
		c.internalError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains deleted: true"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	key, ok := c.IDs.ResolvePath(w, r, "eventID")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), key); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
			return
		}
		c.internalError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}
