package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"volunteerhub/internal/domain"
)

type notificationRepository struct {
	mu            sync.Mutex
	notifications map[string]*domain.Notification
}

func NewNotificationRepository() domain.NotificationRepository {
	return &notificationRepository{notifications: make(map[string]*domain.Notification)}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = uuid.NewString()
	c := *n
	r.notifications[n.ID] = &c
	return nil
}

func (r *notificationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	// newest first, matching the postgres ORDER BY created_at DESC
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return cloneSlice(out), nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok || n.UserID != userID {
		return domain.ErrNotificationNotFound
	}
	n.IsRead = true
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok || n.UserID != userID {
		return domain.ErrNotificationNotFound
	}
	delete(r.notifications, id)
	return nil
}
