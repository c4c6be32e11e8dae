package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"volunteerhub/internal/domain"
)

type signupRepository struct {
	mu      sync.Mutex
	signups map[string]*domain.Signup
}

func NewSignupRepository() domain.SignupRepository {
	return &signupRepository{signups: make(map[string]*domain.Signup)}
}

func (r *signupRepository) Create(ctx context.Context, signup *domain.Signup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.signups {
		if s.EventID == signup.EventID && s.VolunteerID == signup.VolunteerID &&
			s.Status != domain.SignupStatusCancelled {
			return domain.ErrAlreadySignedUp
		}
	}
	signup.ID = uuid.NewString()
	c := *signup
	r.signups[signup.ID] = &c
	return nil
}

func (r *signupRepository) GetActiveByEventAndVolunteer(ctx context.Context, eventID, volunteerID string) (*domain.Signup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.signups {
		if s.EventID == eventID && s.VolunteerID == volunteerID &&
			s.Status != domain.SignupStatusCancelled {
			c := *s
			return &c, nil
		}
	}
	return nil, domain.ErrSignupNotFound
}

func (r *signupRepository) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.signups[id]
	if !ok {
		return domain.ErrSignupNotFound
	}
	s.Status = status
	return nil
}

func (r *signupRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Signup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Signup
	for _, s := range r.signups {
		if s.EventID == eventID && s.Status != domain.SignupStatusCancelled {
			out = append(out, s)
		}
	}
	sortSignups(out)
	return cloneSlice(out), nil
}

func (r *signupRepository) ListByVolunteerID(ctx context.Context, volunteerID string) ([]*domain.Signup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Signup
	for _, s := range r.signups {
		if s.VolunteerID == volunteerID && s.Status != domain.SignupStatusCancelled {
			out = append(out, s)
		}
	}
	sortSignups(out)
	return cloneSlice(out), nil
}

func sortSignups(signups []*domain.Signup) {
	sort.Slice(signups, func(i, j int) bool {
		if !signups[i].SignupTime.Equal(signups[j].SignupTime) {
			return signups[i].SignupTime.Before(signups[j].SignupTime)
		}
		return signups[i].ID < signups[j].ID
	})
}
