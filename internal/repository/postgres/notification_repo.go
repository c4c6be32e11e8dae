package postgres

import (
	"context"
	"database/sql"

	"volunteerhub/internal/domain"
)

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) domain.NotificationRepository {
	return &notificationRepository{
		DB: db,
	}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, kind, title, message, event_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		n.UserID, string(n.Kind), n.Title, n.Message, n.EventID, n.IsRead, n.CreatedAt,
	).Scan(&n.ID)
}

func (r *notificationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Notification, error) {
	query := `
		SELECT id, user_id, kind, title, message, COALESCE(event_id::text, ''), is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []*domain.Notification{}
	for rows.Next() {
		n := &domain.Notification{}
		var kind string
		if err := rows.Scan(&n.ID, &n.UserID, &kind, &n.Title, &n.Message, &n.EventID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Kind = domain.NotificationKind(kind)
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return r.affectedOrNotFound(res)
}

func (r *notificationRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return r.affectedOrNotFound(res)
}

func (r *notificationRepository) affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}
