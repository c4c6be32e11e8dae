package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"volunteerhub/internal/domain"
)

type profileService struct {
	profileRepo    domain.ProfileRepository
	validate       *validator.Validate
	contextTimeout time.Duration
}

func NewProfileService(profileRepo domain.ProfileRepository, timeout time.Duration) domain.ProfileService {
	return &profileService{
		profileRepo:    profileRepo,
		validate:       validator.New(),
		contextTimeout: timeout,
	}
}

func (s *profileService) validateProfile(p *domain.VolunteerProfile) error {
	if err := s.validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	for _, skill := range p.Skills {
		if !domain.IsValidSkill(skill) {
			return fmt.Errorf("%w: unknown skill %q", domain.ErrInvalidInput, skill)
		}
	}
	seen := make(map[string]struct{}, len(p.Availability))
	for _, slot := range p.Availability {
		key := slot.Date.Format("2006-01-02") + " " + slot.TimeOfDay
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: duplicate availability slot %s", domain.ErrInvalidInput, key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func (s *profileService) Create(ctx context.Context, p *domain.VolunteerProfile) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.validateProfile(p); err != nil {
		return err
	}
	if err := s.profileRepo.Create(ctx, p); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (s *profileService) GetByUserID(ctx context.Context, userID string) (*domain.VolunteerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, p *domain.VolunteerProfile) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p.UpdatedAt = time.Now().UTC()
	if err := s.validateProfile(p); err != nil {
		return err
	}
	if err := s.profileRepo.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return domain.ErrProfileNotFound
		}
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (s *profileService) ListAll(ctx context.Context) ([]*domain.VolunteerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	profiles, err := s.profileRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	if profiles == nil {
		profiles = []*domain.VolunteerProfile{}
	}
	return profiles, nil
}
