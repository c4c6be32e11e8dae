package services

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"time"

	"volunteerhub/internal/domain"
)

// externalIDSpace bounds external ids to 20 bits so they stay small and
// stable for numeric-id API clients.
const externalIDSpace = 1 << 20

type publicIDResolver struct {
	repo           domain.PublicIDRepository
	contextTimeout time.Duration
}

// NewPublicIDResolver returns a resolver backed by a persisted mapping
// table. Ids are derived from the internal key, so the same record yields
// the same external id across restarts and processes.
func NewPublicIDResolver(repo domain.PublicIDRepository, timeout time.Duration) domain.PublicIDResolver {
	return &publicIDResolver{repo: repo, contextTimeout: timeout}
}

func (r *publicIDResolver) ExternalID(ctx context.Context, key string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.contextTimeout)
	defer cancel()

	id, err := r.repo.GetByKey(ctx, key)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("get external id: %w", err)
	}

	// First sighting of this key: derive a candidate id and probe past any
	// ids already taken by other keys. The repository's uniqueness guarantee
	// is the serialization point against concurrent assignment.
	candidate := int64(crc32.ChecksumIEEE([]byte(key)) % externalIDSpace)
	for i := 0; i < externalIDSpace; i++ {
		err := r.repo.Create(ctx, key, candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, domain.ErrExternalIDTaken) {
			return 0, fmt.Errorf("assign external id: %w", err)
		}
		// A concurrent request may have assigned this key while we probed.
		if id, err := r.repo.GetByKey(ctx, key); err == nil {
			return id, nil
		}
		candidate = (candidate + 1) % externalIDSpace
	}
	return 0, fmt.Errorf("external id space exhausted")
}

func (r *publicIDResolver) Resolve(ctx context.Context, externalID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.contextTimeout)
	defer cancel()

	key, err := r.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("resolve external id: %w", err)
	}
	return key, nil
}
