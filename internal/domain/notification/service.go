package notification

import "context"

type NotificationResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	ReadAt    *string `json:"read_at,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// Service exposes the in-app notification feed.
type Service interface {
	ListMine(ctx context.Context, userID string) ([]NotificationResponse, error)
	MarkAllRead(ctx context.Context, userID string) error
	Notify(ctx context.Context, userID, title, body string) error
}
