package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"volunteerhub/internal/domain"
)

type profileRepository struct {
	mu       sync.RWMutex
	byUserID map[string]*domain.VolunteerProfile
}

func NewProfileRepository() domain.ProfileRepository {
	return &profileRepository{byUserID: make(map[string]*domain.VolunteerProfile)}
}

func (r *profileRepository) Create(ctx context.Context, p *domain.VolunteerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.NewString()
	c := *p
	r.byUserID[p.UserID] = &c
	return nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.VolunteerProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byUserID[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	c := *p
	return &c, nil
}

func (r *profileRepository) Update(ctx context.Context, p *domain.VolunteerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byUserID[p.UserID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.ID = existing.ID
	c := *p
	r.byUserID[p.UserID] = &c
	return nil
}

func (r *profileRepository) ListAll(ctx context.Context) ([]*domain.VolunteerProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*domain.VolunteerProfile, 0, len(r.byUserID))
	for _, p := range r.byUserID {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UserID < all[j].UserID })
	return cloneSlice(all), nil
}
