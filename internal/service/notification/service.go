package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/notification"
	"github.com/google/uuid"
)

type NotificationServiceImpl struct {
	notification.NotificationRepository
}

func NewNotificationService(repo notification.NotificationRepository) notification.Service {
	return &NotificationServiceImpl{NotificationRepository: repo}
}

// ListMine implements notification.Service.
func (s *NotificationServiceImpl) ListMine(ctx context.Context, userID string) ([]notification.NotificationResponse, error) {
	notifications, err := s.NotificationRepository.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	responses := make([]notification.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		var readAt *string
		if n.ReadAt != nil {
			s := n.ReadAt.UTC().Format(time.RFC3339)
			readAt = &s
		}
		responses = append(responses, notification.NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Body:      n.Body,
			ReadAt:    readAt,
			CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return responses, nil
}

// MarkAllRead implements notification.Service.
func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, userID string) error {
	return s.NotificationRepository.MarkAllRead(ctx, userID)
}

// Notify implements notification.Service.
func (s *NotificationServiceImpl) Notify(ctx context.Context, userID, title, body string) error {
	_, err := s.NotificationRepository.Create(ctx, notification.Notification{
		ID:     uuid.NewString(),
		UserID: userID,
		Title:  title,
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}
