package store

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finbro-app/finbro/internal/models"
)

// Notification operations bypass the undo stack: notifications are
// informational, not financial records, so they are not undoable.

// AddNotification prepends a new unread notification.
func (s *Store) AddNotification(ctx context.Context, title, message string, notifyType models.NotificationType) {
	n := models.Notification{
		ID:      uuid.New().String(),
		Title:   title,
		Message: message,
		Date:    nowISO(),
		IsRead:  false,
		Type:    notifyType,
	}
	s.notifications = append([]models.Notification{n}, s.notifications...)
	s.persistNotifications(ctx)
}

// MarkNotificationRead marks one notification as read. Unknown ids are a no-op.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) {
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].IsRead = true
			s.persistNotifications(ctx)
			return
		}
	}
}

// MarkAllNotificationsRead marks every notification as read.
func (s *Store) MarkAllNotificationsRead(ctx context.Context) {
	for i := range s.notifications {
		s.notifications[i].IsRead = true
	}
	s.persistNotifications(ctx)
}

// DeleteNotification removes one notification. Unknown ids are a no-op.
func (s *Store) DeleteNotification(ctx context.Context, id string) {
	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			s.persistNotifications(ctx)
			return
		}
	}
}

// ClearNotifications removes every notification.
func (s *Store) ClearNotifications(ctx context.Context) {
	s.notifications = []models.Notification{}
	s.persistNotifications(ctx)
}

// UnreadNotifications counts notifications not yet read.
func (s *Store) UnreadNotifications() int {
	count := 0
	for _, n := range s.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// seedWelcomeNotification adds the first-boot greeting exactly once, gated by
// a persisted flag.
func (s *Store) seedWelcomeNotification(ctx context.Context) {
	_, shown, err := s.kv.Get(ctx, keyWelcomeShown)
	if err != nil {
		slog.Error("failed to read welcome flag", "error", err)
		return
	}
	if shown {
		return
	}

	s.AddNotification(ctx,
		"Welcome to FinBro!",
		"Start managing your money with ease. Record transactions, set budgets, and keep track of your debts and receivables.",
		models.NotifyInfo,
	)
	s.setFlag(ctx, keyWelcomeShown)
}
