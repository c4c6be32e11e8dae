package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"volunteerhub/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `id, title, description, category, required_skills, urgency, event_date, start_time, end_time, location, capacity, status, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	ev := &domain.Event{}
	err := row.Scan(
		&ev.ID, &ev.Title, &ev.Description, &ev.Category, pq.Array(&ev.RequiredSkills),
		&ev.Urgency, &ev.EventDate, &ev.StartTime, &ev.EndTime,
		&ev.Location, &ev.Capacity, &ev.Status, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if ev.RequiredSkills == nil {
		ev.RequiredSkills = []string{}
	}
	return ev, nil
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (title, description, category, required_skills, urgency, event_date, start_time, end_time, location, capacity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		event.Title, event.Description, event.Category, pq.Array(event.RequiredSkills),
		event.Urgency, event.EventDate, event.StartTime, event.EndTime,
		event.Location, event.Capacity, event.Status, event.CreatedAt, event.UpdatedAt,
	).Scan(&event.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	ev, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return ev, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, int, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", p, p))
	}
	if filter.Category != "" {
		conds = append(conds, "LOWER(category) = LOWER("+arg(filter.Category)+")")
	}
	if filter.Status != "" {
		conds = append(conds, "status = "+arg(filter.Status))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM events"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + eventColumns + ` FROM events` + where +
		` ORDER BY event_date ASC, id ASC LIMIT ` + arg(filter.PageSize) + ` OFFSET ` + arg(filter.Offset())
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := []*domain.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY event_date ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*domain.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, category = $4, required_skills = $5, urgency = $6,
		    event_date = $7, start_time = $8, end_time = $9, location = $10, capacity = $11,
		    status = $12, updated_at = $13
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, event.Category, pq.Array(event.RequiredSkills),
		event.Urgency, event.EventDate, event.StartTime, event.EndTime,
		event.Location, event.Capacity, event.Status, event.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
