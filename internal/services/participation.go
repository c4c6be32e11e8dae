package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"volunteerhub/internal/adapters/cache"
	"volunteerhub/internal/domain"
)

// allowedTransitions is the participation status graph. Completed,
// cancelled, and no_show are terminal.
var allowedTransitions = map[string]map[string]struct{}{
	domain.ParticipationPending: {
		domain.ParticipationConfirmed: {},
		domain.ParticipationCancelled: {},
	},
	domain.ParticipationConfirmed: {
		domain.ParticipationCompleted: {},
		domain.ParticipationCancelled: {},
		domain.ParticipationNoShow:    {},
	},
}

func canTransition(from, to string) bool {
	targets, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

type participationService struct {
	participationRepo domain.ParticipationRepository
	eventRepo         domain.EventRepository
	userRepo          domain.UserRepository
	notifier          domain.Notifier
	matchCache        *cache.MatchCache
	logger            *slog.Logger
	contextTimeout    time.Duration
}

func NewParticipationService(
	participationRepo domain.ParticipationRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	notifier domain.Notifier,
	matchCache *cache.MatchCache,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ParticipationService {
	return &participationService{
		participationRepo: participationRepo,
		eventRepo:         eventRepo,
		userRepo:          userRepo,
		notifier:          notifier,
		matchCache:        matchCache,
		logger:            logger,
		contextTimeout:    timeout,
	}
}

func (s *participationService) Participate(ctx context.Context, volunteerID, eventID string) (*domain.Participation, error) {
	return s.create(ctx, volunteerID, eventID, domain.ParticipationPending,
		domain.NotificationStatusUpdate, "Participation recorded",
		"Your participation request has been recorded and is pending review.")
}

func (s *participationService) Assign(ctx context.Context, volunteerID, eventID string) (*domain.Participation, error) {
	// The volunteer id comes from the admin's request body, not from an
	// authenticated session; reject assignments to unknown accounts.
	if _, err := s.userRepo.GetByID(ctx, volunteerID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get volunteer: %w", err)
	}
	return s.create(ctx, volunteerID, eventID, domain.ParticipationConfirmed,
		domain.NotificationEventAssignment, "You have been assigned to an event",
		"An administrator has assigned you to an event. See your dashboard for details.")
}

func (s *participationService) create(ctx context.Context, volunteerID, eventID, status string, kind domain.NotificationKind, title, message string) (*domain.Participation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	p := &domain.Participation{
		EventID:           eventID,
		VolunteerID:       volunteerID,
		ParticipationDate: event.EventDate,
		Status:            status,
		JoinedAt:          time.Now().UTC(),
	}
	if err := s.participationRepo.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrAlreadyParticipating) {
			return nil, domain.ErrAlreadyParticipating
		}
		return nil, fmt.Errorf("create participation: %w", err)
	}

	s.matchCache.Invalidate(ctx, eventID)
	s.notifier.Notify(ctx, volunteerID, kind, title, message, eventID)
	s.logger.Info("participation created",
		"volunteer_id", volunteerID, "event_id", eventID, "status", status)
	return p, nil
}

func (s *participationService) UpdateStatus(ctx context.Context, volunteerID, eventID, status string) (*domain.Participation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	current, err := s.participationRepo.GetByEventAndVolunteer(ctx, eventID, volunteerID)
	if err != nil {
		if errors.Is(err, domain.ErrParticipationNotFound) {
			return nil, domain.ErrParticipationNotFound
		}
		return nil, fmt.Errorf("get participation: %w", err)
	}
	if !canTransition(current.Status, status) {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.participationRepo.UpdateStatus(ctx, eventID, volunteerID, current.Status, status)
	if err != nil {
		if errors.Is(err, domain.ErrParticipationNotFound) {
			// The record existed a moment ago, so a concurrent transition
			// moved it between the graph check and the write.
			return nil, domain.ErrInvalidTransition
		}
		return nil, fmt.Errorf("update participation status: %w", err)
	}

	if status == domain.ParticipationCancelled || status == domain.ParticipationNoShow {
		s.matchCache.Invalidate(ctx, eventID)
	}
	s.notifier.Notify(ctx, volunteerID, domain.NotificationStatusUpdate,
		"Participation status updated",
		fmt.Sprintf("Your participation status is now %q.", status), eventID)
	s.logger.Info("participation status updated",
		"volunteer_id", volunteerID, "event_id", eventID,
		"from", current.Status, "to", status)
	return updated, nil
}

func (s *participationService) GetHistory(ctx context.Context, volunteerID string) ([]*domain.Participation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	history, err := s.participationRepo.ListByVolunteerID(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}
	if history == nil {
		history = []*domain.Participation{}
	}
	return history, nil
}

func (s *participationService) ListAll(ctx context.Context) ([]*domain.Participation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	all, err := s.participationRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}
	if all == nil {
		all = []*domain.Participation{}
	}
	return all, nil
}

func (s *participationService) GetStats(ctx context.Context, volunteerID string) (*domain.VolunteerStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	history, err := s.participationRepo.ListByVolunteerID(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}

	stats := &domain.VolunteerStats{VolunteerID: volunteerID}
	for _, p := range history {
		stats.TotalEvents++
		stats.TotalHours += p.HoursVolunteered
		switch p.Status {
		case domain.ParticipationPending:
			stats.PendingEvents++
		case domain.ParticipationConfirmed:
			stats.ConfirmedEvents++
		case domain.ParticipationCompleted:
			stats.CompletedEvents++
		case domain.ParticipationCancelled:
			stats.CancelledEvents++
		case domain.ParticipationNoShow:
			stats.NoShowEvents++
		}
	}
	if stats.TotalEvents > 0 {
		stats.CompletionRate = float64(stats.CompletedEvents) / float64(stats.TotalEvents)
	}
	return stats, nil
}
