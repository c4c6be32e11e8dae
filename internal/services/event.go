package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"volunteerhub/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	profileRepo    domain.ProfileRepository
	notifier       domain.Notifier
	validate       *validator.Validate
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewEventService(
	eventRepo domain.EventRepository,
	profileRepo domain.ProfileRepository,
	notifier domain.Notifier,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		profileRepo:    profileRepo,
		notifier:       notifier,
		validate:       validator.New(),
		logger:         logger,
		contextTimeout: timeout,
	}
}

// validateEvent runs struct-tag validation plus the rules tags cannot
// express: skill labels from the vocabulary and end time after start time.
func (s *eventService) validateEvent(event *domain.Event) error {
	if err := s.validate.Struct(event); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	for _, skill := range event.RequiredSkills {
		if !domain.IsValidSkill(skill) {
			return fmt.Errorf("%w: unknown skill %q", domain.ErrInvalidInput, skill)
		}
	}
	if event.EndTime <= event.StartTime {
		return fmt.Errorf("%w: end time must be after start time", domain.ErrInvalidInput)
	}
	return nil
}

func (s *eventService) Create(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.Status == "" {
		event.Status = domain.EventStatusOpen
	}
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.validateEvent(event); err != nil {
		return err
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	s.logger.Info("event created", "event_id", event.ID, "title", event.Title)
	s.announceNewEvent(ctx, event)
	return nil
}

// announceNewEvent notifies volunteers whose skills intersect the event's
// required skills (all volunteers when the event requires none). Best
// effort: a failed profile listing only logs.
func (s *eventService) announceNewEvent(ctx context.Context, event *domain.Event) {
	profiles, err := s.profileRepo.ListAll(ctx)
	if err != nil {
		s.logger.Warn("new event announcement skipped", "event_id", event.ID, "error", err)
		return
	}
	required := make(map[string]struct{}, len(event.RequiredSkills))
	for _, skill := range event.RequiredSkills {
		required[skill] = struct{}{}
	}
	for _, profile := range profiles {
		if len(required) > 0 && !hasAnySkill(profile.Skills, required) {
			continue
		}
		s.notifier.Notify(ctx, profile.UserID, domain.NotificationNewEvent,
			"New event: "+event.Title,
			fmt.Sprintf("A new event matching your skills was posted for %s.",
				event.EventDate.Format("2006-01-02")),
			event.ID)
	}
}

func hasAnySkill(skills []string, required map[string]struct{}) bool {
	for _, skill := range skills {
		if _, ok := required[skill]; ok {
			return true
		}
	}
	return false
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

func (s *eventService) Update(ctx context.Context, id string, update *domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	applyEventUpdate(event, update)
	event.UpdatedAt = time.Now().UTC()

	if err := s.validateEvent(event); err != nil {
		return nil, err
	}
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	s.logger.Info("event updated", "event_id", event.ID)
	return event, nil
}

func applyEventUpdate(event *domain.Event, update *domain.EventUpdate) {
	if update.Title != nil {
		event.Title = *update.Title
	}
	if update.Description != nil {
		event.Description = *update.Description
	}
	if update.Category != nil {
		event.Category = *update.Category
	}
	if update.RequiredSkills != nil {
		event.RequiredSkills = *update.RequiredSkills
	}
	if update.Urgency != nil {
		event.Urgency = *update.Urgency
	}
	if update.EventDate != nil {
		event.EventDate = *update.EventDate
	}
	if update.StartTime != nil {
		event.StartTime = *update.StartTime
	}
	if update.EndTime != nil {
		event.EndTime = *update.EndTime
	}
	if update.Location != nil {
		event.Location = *update.Location
	}
	if update.Capacity != nil {
		event.Capacity = *update.Capacity
	}
	if update.Status != nil {
		event.Status = *update.Status
	}
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	s.logger.Info("event deleted", "event_id", id)
	return nil
}
