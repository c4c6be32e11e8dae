package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"volunteerhub/internal/domain"
)

type eventRepository struct {
	mu     sync.RWMutex
	events map[string]*domain.Event
}

func NewEventRepository() domain.EventRepository {
	return &eventRepository{events: make(map[string]*domain.Event)}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = uuid.NewString()
	c := *event
	r.events[event.ID] = &c
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ev, ok := r.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *ev
	return &c, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, int, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	filtered := all[:0]
	for _, ev := range all {
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(ev.Title), s) &&
				!strings.Contains(strings.ToLower(ev.Description), s) {
				continue
			}
		}
		if filter.Category != "" && !strings.EqualFold(ev.Category, filter.Category) {
			continue
		}
		if filter.Status != "" && ev.Status != filter.Status {
			continue
		}
		filtered = append(filtered, ev)
	}
	total := len(filtered)
	start := filter.Offset()
	if start > total {
		start = total
	}
	end := start + filter.PageSize
	if filter.PageSize <= 0 || end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*domain.Event, 0, len(r.events))
	for _, ev := range r.events {
		c := *ev
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].EventDate.Equal(all[j].EventDate) {
			return all[i].EventDate.Before(all[j].EventDate)
		}
		return all[i].ID < all[j].ID
	})
	return all, nil
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[event.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *event
	r.events[event.ID] = &c
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.events, id)
	return nil
}
