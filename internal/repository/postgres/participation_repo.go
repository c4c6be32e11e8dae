package postgres

import (
	"context"
	"database/sql"
	"errors"

	"volunteerhub/internal/domain"
)

type participationRepository struct {
	DB *sql.DB
}

// NewParticipationRepository returns a ParticipationRepository backed by
// postgres. The at-most-one-per-pair invariant is enforced by a unique
// constraint on (event_id, volunteer_id).
func NewParticipationRepository(db *sql.DB) domain.ParticipationRepository {
	return &participationRepository{
		DB: db,
	}
}

const participationColumns = `id, event_id, volunteer_id, participation_date, hours_volunteered, status, joined_at`

func (r *participationRepository) Create(ctx context.Context, p *domain.Participation) error {
	query := `
		INSERT INTO participations (event_id, volunteer_id, participation_date, hours_volunteered, status, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		p.EventID, p.VolunteerID, p.ParticipationDate, p.HoursVolunteered, p.Status, p.JoinedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyParticipating
		}
		return err
	}
	return nil
}

func (r *participationRepository) GetByEventAndVolunteer(ctx context.Context, eventID, volunteerID string) (*domain.Participation, error) {
	query := `SELECT ` + participationColumns + ` FROM participations WHERE event_id = $1 AND volunteer_id = $2`
	p := &domain.Participation{}
	err := r.DB.QueryRowContext(ctx, query, eventID, volunteerID).
		Scan(&p.ID, &p.EventID, &p.VolunteerID, &p.ParticipationDate, &p.HoursVolunteered, &p.Status, &p.JoinedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrParticipationNotFound
		}
		return nil, err
	}
	return p, nil
}

// UpdateStatus is a compare-and-swap on the status column: the WHERE clause
// pins the expected current status so concurrent transitions serialize.
func (r *participationRepository) UpdateStatus(ctx context.Context, eventID, volunteerID, from, to string) (*domain.Participation, error) {
	query := `
		UPDATE participations
		SET status = $4
		WHERE event_id = $1 AND volunteer_id = $2 AND status = $3
		RETURNING ` + participationColumns
	p := &domain.Participation{}
	err := r.DB.QueryRowContext(ctx, query, eventID, volunteerID, from, to).
		Scan(&p.ID, &p.EventID, &p.VolunteerID, &p.ParticipationDate, &p.HoursVolunteered, &p.Status, &p.JoinedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrParticipationNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *participationRepository) ListByVolunteerID(ctx context.Context, volunteerID string) ([]*domain.Participation, error) {
	query := `SELECT ` + participationColumns + ` FROM participations WHERE volunteer_id = $1 ORDER BY joined_at ASC`
	return r.list(ctx, query, volunteerID)
}

func (r *participationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Participation, error) {
	query := `SELECT ` + participationColumns + ` FROM participations WHERE event_id = $1 ORDER BY joined_at ASC`
	return r.list(ctx, query, eventID)
}

func (r *participationRepository) ListAll(ctx context.Context) ([]*domain.Participation, error) {
	query := `SELECT ` + participationColumns + ` FROM participations ORDER BY joined_at ASC`
	return r.list(ctx, query)
}

func (r *participationRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Participation, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participations := []*domain.Participation{}
	for rows.Next() {
		p := &domain.Participation{}
		if err := rows.Scan(&p.ID, &p.EventID, &p.VolunteerID, &p.ParticipationDate, &p.HoursVolunteered, &p.Status, &p.JoinedAt); err != nil {
			return nil, err
		}
		participations = append(participations, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return participations, nil
}
