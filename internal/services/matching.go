package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"volunteerhub/internal/adapters/cache"
	"volunteerhub/internal/domain"
)

// Scoring weights for auto-match. Skill overlap dominates; date availability
// and location proximity refine the ranking.
const (
	weightSkill        = 0.6
	weightAvailability = 0.3
	weightLocation     = 0.1
)

type matchingService struct {
	eventRepo         domain.EventRepository
	profileRepo       domain.ProfileRepository
	participationRepo domain.ParticipationRepository
	signupRepo        domain.SignupRepository
	matchCache        *cache.MatchCache
	logger            *slog.Logger
	contextTimeout    time.Duration
}

func NewMatchingService(
	eventRepo domain.EventRepository,
	profileRepo domain.ProfileRepository,
	participationRepo domain.ParticipationRepository,
	signupRepo domain.SignupRepository,
	matchCache *cache.MatchCache,
	logger *slog.Logger,
	timeout time.Duration,
) domain.MatchingService {
	return &matchingService{
		eventRepo:         eventRepo,
		profileRepo:       profileRepo,
		participationRepo: participationRepo,
		signupRepo:        signupRepo,
		matchCache:        matchCache,
		logger:            logger,
		contextTimeout:    timeout,
	}
}

func (s *matchingService) AutoMatch(ctx context.Context, eventID string) ([]*domain.MatchCandidate, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if cached, ok := s.matchCache.Get(ctx, eventID); ok {
		return cached, nil
	}

	profiles, err := s.profileRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	participations, err := s.participationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}
	excluded := make(map[string]struct{}, len(participations))
	for _, p := range participations {
		excluded[p.VolunteerID] = struct{}{}
	}

	candidates := make([]*domain.MatchCandidate, 0, len(profiles))
	for _, profile := range profiles {
		if _, ok := excluded[profile.UserID]; ok {
			continue
		}
		c := scoreCandidate(event, profile)
		if c.Score <= 0 {
			continue
		}
		candidates = append(candidates, c)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].VolunteerID < candidates[j].VolunteerID
	})

	s.matchCache.Set(ctx, eventID, candidates)
	return candidates, nil
}

// scoreCandidate computes the weighted match between one profile and one
// event. Skill labels compare case-sensitively against the vocabulary;
// availability compares dates only; location checks the volunteer's city as
// a case-insensitive substring of the event location.
func scoreCandidate(event *domain.Event, profile *domain.VolunteerProfile) *domain.MatchCandidate {
	c := &domain.MatchCandidate{
		VolunteerID:   profile.UserID,
		MatchedSkills: []string{},
		MissingSkills: []string{},
	}

	if len(event.RequiredSkills) == 0 {
		c.SkillScore = 1.0
	} else {
		have := make(map[string]struct{}, len(profile.Skills))
		for _, skill := range profile.Skills {
			have[skill] = struct{}{}
		}
		for _, required := range event.RequiredSkills {
			if _, ok := have[required]; ok {
				c.MatchedSkills = append(c.MatchedSkills, required)
			} else {
				c.MissingSkills = append(c.MissingSkills, required)
			}
		}
		c.SkillScore = float64(len(c.MatchedSkills)) / float64(len(event.RequiredSkills))
	}

	eventDay := event.EventDate.Format("2006-01-02")
	for _, slot := range profile.Availability {
		if slot.Date.Format("2006-01-02") == eventDay {
			c.Available = true
			break
		}
	}

	if profile.City != "" &&
		strings.Contains(strings.ToLower(event.Location), strings.ToLower(profile.City)) {
		c.LocationMatch = true
	}

	c.Score = weightSkill * c.SkillScore
	if c.Available {
		c.Score += weightAvailability
	}
	if c.LocationMatch {
		c.Score += weightLocation
	}
	return c
}

func (s *matchingService) SignupForEvent(ctx context.Context, volunteerID, eventID string) (*domain.Signup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	signup := &domain.Signup{
		EventID:     eventID,
		VolunteerID: volunteerID,
		Status:      domain.SignupStatusPending,
		SignupTime:  time.Now().UTC(),
	}
	if err := s.signupRepo.Create(ctx, signup); err != nil {
		if errors.Is(err, domain.ErrAlreadySignedUp) {
			return nil, domain.ErrAlreadySignedUp
		}
		return nil, fmt.Errorf("create signup: %w", err)
	}
	s.logger.Info("volunteer signed up", "volunteer_id", volunteerID, "event_id", eventID)
	return signup, nil
}

func (s *matchingService) CancelSignup(ctx context.Context, volunteerID, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	signup, err := s.signupRepo.GetActiveByEventAndVolunteer(ctx, eventID, volunteerID)
	if err != nil {
		if errors.Is(err, domain.ErrSignupNotFound) {
			return domain.ErrSignupNotFound
		}
		return fmt.Errorf("get active signup: %w", err)
	}
	if err := s.signupRepo.UpdateStatus(ctx, signup.ID, domain.SignupStatusCancelled); err != nil {
		return fmt.Errorf("cancel signup: %w", err)
	}
	s.logger.Info("signup cancelled", "volunteer_id", volunteerID, "event_id", eventID)
	return nil
}

func (s *matchingService) ListSignupsForEvent(ctx context.Context, eventID string) ([]*domain.Signup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	signups, err := s.signupRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list signups: %w", err)
	}
	if signups == nil {
		signups = []*domain.Signup{}
	}
	return signups, nil
}

func (s *matchingService) ListSignupsForVolunteer(ctx context.Context, volunteerID string) ([]*domain.Signup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	signups, err := s.signupRepo.ListByVolunteerID(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("list signups: %w", err)
	}
	if signups == nil {
		signups = []*domain.Signup{}
	}
	return signups, nil
}
