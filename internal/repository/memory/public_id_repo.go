package memory

import (
	"context"
	"sync"

	"volunteerhub/internal/domain"
)

type publicIDRepository struct {
	mu         sync.Mutex
	byKey      map[string]int64
	byExternal map[int64]string
}

func NewPublicIDRepository() domain.PublicIDRepository {
	return &publicIDRepository{
		byKey:      make(map[string]int64),
		byExternal: make(map[int64]string),
	}
}

func (r *publicIDRepository) GetByKey(ctx context.Context, key string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byKey[key]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

func (r *publicIDRepository) GetByExternalID(ctx context.Context, externalID int64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key, ok := r.byExternal[externalID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return key, nil
}

func (r *publicIDRepository) Create(ctx context.Context, key string, externalID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byExternal[externalID]; ok {
		return domain.ErrExternalIDTaken
	}
	if _, ok := r.byKey[key]; ok {
		return domain.ErrExternalIDTaken
	}
	r.byKey[key] = externalID
	r.byExternal[externalID] = key
	return nil
}
