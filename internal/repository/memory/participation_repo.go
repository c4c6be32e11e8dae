package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"volunteerhub/internal/domain"
)

type participationRepository struct {
	mu sync.Mutex
	// keyed by event_id + "|" + volunteer_id, mirroring the unique constraint
	pairs map[string]*domain.Participation
}

func NewParticipationRepository() domain.ParticipationRepository {
	return &participationRepository{pairs: make(map[string]*domain.Participation)}
}

func pairKey(eventID, volunteerID string) string {
	return eventID + "|" + volunteerID
}

func (r *participationRepository) Create(ctx context.Context, p *domain.Participation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey(p.EventID, p.VolunteerID)
	if _, ok := r.pairs[key]; ok {
		return domain.ErrAlreadyParticipating
	}
	p.ID = uuid.NewString()
	c := *p
	r.pairs[key] = &c
	return nil
}

func (r *participationRepository) GetByEventAndVolunteer(ctx context.Context, eventID, volunteerID string) (*domain.Participation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pairs[pairKey(eventID, volunteerID)]
	if !ok {
		return nil, domain.ErrParticipationNotFound
	}
	c := *p
	return &c, nil
}

func (r *participationRepository) UpdateStatus(ctx context.Context, eventID, volunteerID, from, to string) (*domain.Participation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pairs[pairKey(eventID, volunteerID)]
	if !ok || p.Status != from {
		return nil, domain.ErrParticipationNotFound
	}
	p.Status = to
	c := *p
	return &c, nil
}

func (r *participationRepository) ListByVolunteerID(ctx context.Context, volunteerID string) ([]*domain.Participation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Participation
	for _, p := range r.pairs {
		if p.VolunteerID == volunteerID {
			out = append(out, p)
		}
	}
	sortParticipations(out)
	return cloneSlice(out), nil
}

func (r *participationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Participation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Participation
	for _, p := range r.pairs {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	sortParticipations(out)
	return cloneSlice(out), nil
}

func (r *participationRepository) ListAll(ctx context.Context) ([]*domain.Participation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Participation, 0, len(r.pairs))
	for _, p := range r.pairs {
		out = append(out, p)
	}
	sortParticipations(out)
	return cloneSlice(out), nil
}

func sortParticipations(ps []*domain.Participation) {
	sort.Slice(ps, func(i, j int) bool {
		if !ps[i].JoinedAt.Equal(ps[j].JoinedAt) {
			return ps[i].JoinedAt.Before(ps[j].JoinedAt)
		}
		return ps[i].ID < ps[j].ID
	})
}
