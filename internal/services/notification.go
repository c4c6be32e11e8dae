package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"volunteerhub/internal/domain"
)

type notificationService struct {
	notificationRepo domain.NotificationRepository
	userRepo         domain.UserRepository
	mailer           domain.Mailer
	renderer         domain.EmailTemplateRenderer
	logger           *slog.Logger
	contextTimeout   time.Duration
}

func NewNotificationService(
	notificationRepo domain.NotificationRepository,
	userRepo domain.UserRepository,
	mailer domain.Mailer,
	renderer domain.EmailTemplateRenderer,
	logger *slog.Logger,
	timeout time.Duration,
) domain.NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		mailer:           mailer,
		renderer:         renderer,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

// Notify stores the notice and dispatches email off the critical path.
// It never fails the caller: storage and delivery errors are logged.
func (s *notificationService) Notify(ctx context.Context, userID string, kind domain.NotificationKind, title, message, eventID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.contextTimeout)
	defer cancel()

	n := &domain.Notification{
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Message:   message,
		EventID:   eventID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Error("store notification", "user_id", userID, "kind", kind, "error", err)
		return
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("notification email skipped: user lookup failed",
			"user_id", userID, "error", err)
		return
	}

	go func() {
		subject, html, text, err := s.renderer.Render("notification", domain.NotificationEmailData{
			Name:    user.Name,
			Title:   title,
			Message: message,
		})
		if err != nil {
			s.logger.Error("render notification email", "user_id", userID, "error", err)
			return
		}
		if err := s.mailer.Send(user.Email, subject, html, text); err != nil {
			s.logger.Error("send notification email", "user_id", userID, "error", err)
		}
	}()
}

func (s *notificationService) ListForUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	notifications, err := s.notificationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	if notifications == nil {
		notifications = []*domain.Notification{}
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.notificationRepo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return domain.ErrNotificationNotFound
		}
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (s *notificationService) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.notificationRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return domain.ErrNotificationNotFound
		}
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}
