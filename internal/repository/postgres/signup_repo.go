package postgres

import (
	"context"
	"database/sql"
	"errors"

	"volunteerhub/internal/domain"
)

type signupRepository struct {
	DB *sql.DB
}

// NewSignupRepository returns a SignupRepository backed by postgres. The
// at-most-one-active-signup invariant is enforced by a partial unique index
// on (event_id, volunteer_id) WHERE status <> 'cancelled'.
func NewSignupRepository(db *sql.DB) domain.SignupRepository {
	return &signupRepository{
		DB: db,
	}
}

func (r *signupRepository) Create(ctx context.Context, signup *domain.Signup) error {
	query := `
		INSERT INTO signups (event_id, volunteer_id, status, signup_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		signup.EventID, signup.VolunteerID, signup.Status, signup.SignupTime,
	).Scan(&signup.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadySignedUp
		}
		return err
	}
	return nil
}

func (r *signupRepository) GetActiveByEventAndVolunteer(ctx context.Context, eventID, volunteerID string) (*domain.Signup, error) {
	query := `
		SELECT id, event_id, volunteer_id, status, signup_time
		FROM signups
		WHERE event_id = $1 AND volunteer_id = $2 AND status <> 'cancelled'
	`
	s := &domain.Signup{}
	err := r.DB.QueryRowContext(ctx, query, eventID, volunteerID).
		Scan(&s.ID, &s.EventID, &s.VolunteerID, &s.Status, &s.SignupTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSignupNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *signupRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE signups SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrSignupNotFound
	}
	return nil
}

func (r *signupRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Signup, error) {
	query := `
		SELECT id, event_id, volunteer_id, status, signup_time
		FROM signups
		WHERE event_id = $1 AND status <> 'cancelled'
		ORDER BY signup_time ASC
	`
	return r.list(ctx, query, eventID)
}

func (r *signupRepository) ListByVolunteerID(ctx context.Context, volunteerID string) ([]*domain.Signup, error) {
	query := `
		SELECT id, event_id, volunteer_id, status, signup_time
		FROM signups
		WHERE volunteer_id = $1 AND status <> 'cancelled'
		ORDER BY signup_time ASC
	`
	return r.list(ctx, query, volunteerID)
}

func (r *signupRepository) list(ctx context.Context, query string, arg any) ([]*domain.Signup, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	signups := []*domain.Signup{}
	for rows.Next() {
		s := &domain.Signup{}
		if err := rows.Scan(&s.ID, &s.EventID, &s.VolunteerID, &s.Status, &s.SignupTime); err != nil {
			return nil, err
		}
		signups = append(signups, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return signups, nil
}
