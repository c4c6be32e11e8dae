package postgres

import (
	"context"
	"database/sql"
	"errors"

	"volunteerhub/internal/domain"
)

type publicIDRepository struct {
	DB *sql.DB
}

// NewPublicIDRepository returns a PublicIDRepository backed by postgres.
// The public_ids table has a primary key on internal_key and a unique
// constraint on external_id, so each mapping is written exactly once and
// concurrent assignment of the same external id cannot both succeed.
func NewPublicIDRepository(db *sql.DB) domain.PublicIDRepository {
	return &publicIDRepository{
		DB: db,
	}
}

func (r *publicIDRepository) GetByKey(ctx context.Context, key string) (int64, error) {
	var externalID int64
	err := r.DB.QueryRowContext(ctx,
		`SELECT external_id FROM public_ids WHERE internal_key = $1`, key).Scan(&externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return externalID, nil
}

func (r *publicIDRepository) GetByExternalID(ctx context.Context, externalID int64) (string, error) {
	var key string
	err := r.DB.QueryRowContext(ctx,
		`SELECT internal_key FROM public_ids WHERE external_id = $1`, externalID).Scan(&key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return key, nil
}

func (r *publicIDRepository) Create(ctx context.Context, key string, externalID int64) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO public_ids (internal_key, external_id) VALUES ($1, $2)`, key, externalID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrExternalIDTaken
		}
		return err
	}
	return nil
}
