package domain

import (
	"context"
	"errors"
)

// ErrExternalIDTaken is returned by PublicIDRepository.Create when the
// external id is already mapped to a different internal key.
var ErrExternalIDTaken = errors.New("external id already assigned")

// PublicIDRepository persists the bijective mapping between internal record
// keys and externally exposed numeric ids. The mapping is written once per
// key and never changes, so external ids are stable across processes.
type PublicIDRepository interface {
	GetByKey(ctx context.Context, key string) (int64, error)
	GetByExternalID(ctx context.Context, externalID int64) (string, error)
	// Create stores a new mapping. Returns ErrExternalIDTaken when the
	// external id is already assigned (the serialization point for
	// concurrent assignment of the same id).
	Create(ctx context.Context, key string, externalID int64) error
}

// PublicIDResolver translates between internal keys and external numeric
// ids. ExternalID is deterministic per key: the same record always yields
// the same id across calls, restarts, and processes.
type PublicIDResolver interface {
	ExternalID(ctx context.Context, key string) (int64, error)
	// Resolve returns the internal key for an external id, or ErrNotFound.
	Resolve(ctx context.Context, externalID int64) (string, error)
}
