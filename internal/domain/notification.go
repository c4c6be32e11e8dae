package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotificationNotFound is returned for operations on an absent notification.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationKind classifies a notification.
type NotificationKind string

// Notification kinds.
const (
	NotificationEventAssignment    NotificationKind = "event_assignment"
	NotificationEventReminder      NotificationKind = "event_reminder"
	NotificationNewEvent           NotificationKind = "new_event"
	NotificationStatusUpdate       NotificationKind = "status_update"
	NotificationSystemAnnouncement NotificationKind = "system_announcement"
)

// Notification is a stored notice for a user. EventID is empty for notices
// not tied to an event.
// swagger:model Notification
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	EventID   string           `json:"event_id,omitempty"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

// NotificationRepository defines storage operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUserID(ctx context.Context, userID string) ([]*Notification, error)
	// MarkRead marks the user's notification as read, or returns
	// ErrNotificationNotFound.
	MarkRead(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id, userID string) error
}

// Notifier is the fire-and-forget notification sink used by state-changing
// operations. Implementations must never fail the caller: delivery errors
// are logged and swallowed, and dispatch stays off the critical path.
type Notifier interface {
	Notify(ctx context.Context, userID string, kind NotificationKind, title, message, eventID string)
}

// NotificationService defines user-facing notification operations.
type NotificationService interface {
	Notifier
	ListForUser(ctx context.Context, userID string) ([]*Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id, userID string) error
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// NotificationEmailData holds data for the notification email template.
type NotificationEmailData struct {
	Name    string
	Title   string
	Message string
}
