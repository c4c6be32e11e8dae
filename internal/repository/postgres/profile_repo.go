package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"volunteerhub/internal/domain"
)

type profileRepository struct {
	DB *sql.DB
}

// NewProfileRepository returns a ProfileRepository backed by postgres.
// Availability slots are stored as a JSONB column.
func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{
		DB: db,
	}
}

const profileColumns = `id, user_id, address, city, state_code, zip_code, skills, preferences, availability, created_at, updated_at`

func (r *profileRepository) Create(ctx context.Context, p *domain.VolunteerProfile) error {
	availability, err := json.Marshal(p.Availability)
	if err != nil {
		return fmt.Errorf("marshal availability: %w", err)
	}
	query := `
		INSERT INTO profiles (user_id, address, city, state_code, zip_code, skills, preferences, availability, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		p.UserID, p.Address, p.City, p.StateCode, p.ZipCode,
		pq.Array(p.Skills), p.Preferences, availability, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.VolunteerProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	p, err := scanProfile(r.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *domain.VolunteerProfile) error {
	availability, err := json.Marshal(p.Availability)
	if err != nil {
		return fmt.Errorf("marshal availability: %w", err)
	}
	query := `
		UPDATE profiles
		SET address = $2, city = $3, state_code = $4, zip_code = $5, skills = $6,
		    preferences = $7, availability = $8, updated_at = $9
		WHERE user_id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		p.UserID, p.Address, p.City, p.StateCode, p.ZipCode,
		pq.Array(p.Skills), p.Preferences, availability, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) ListAll(ctx context.Context) ([]*domain.VolunteerProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY user_id ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []*domain.VolunteerProfile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

func scanProfile(row interface{ Scan(...any) error }) (*domain.VolunteerProfile, error) {
	p := &domain.VolunteerProfile{}
	var availability []byte
	err := row.Scan(
		&p.ID, &p.UserID, &p.Address, &p.City, &p.StateCode, &p.ZipCode,
		pq.Array(&p.Skills), &p.Preferences, &availability, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(availability) > 0 {
		if err := json.Unmarshal(availability, &p.Availability); err != nil {
			return nil, fmt.Errorf("unmarshal availability: %w", err)
		}
	}
	return p, nil
}
